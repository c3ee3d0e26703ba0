// Package llm provides chat-completion backends for token classification.
package llm

import (
	"context"
	"fmt"

	"github.com/sashabaranov/go-openai"
)

const (
	// Groq serves an OpenAI-compatible API and is the default backend.
	defaultBaseURL = "https://api.groq.com/openai/v1"
	defaultModel   = "llama-3.3-70b-versatile"
)

// Client talks to any OpenAI-compatible chat-completion endpoint.
type Client struct {
	client *openai.Client
	model  string
}

// NewClient builds a client. Empty baseURL and model select the Groq
// defaults; an OpenAI or DeepSeek endpoint works the same way.
func NewClient(apiKey, baseURL, model string) *Client {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	cfg.BaseURL = baseURL
	if model == "" {
		model = defaultModel
	}
	return &Client{
		client: openai.NewClientWithConfig(cfg),
		model:  model,
	}
}

// Complete sends one system+user exchange and returns the completion text.
func (c *Client) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	resp, err := c.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model: c.model,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleSystem,
					Content: systemPrompt,
				},
				{
					Role:    openai.ChatMessageRoleUser,
					Content: userPrompt,
				},
			},
			// Low temperature keeps classifications stable across calls.
			Temperature: 0.1,
		},
	)
	if err != nil {
		return "", fmt.Errorf("chat completion error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no response from model")
	}

	return resp.Choices[0].Message.Content, nil
}
