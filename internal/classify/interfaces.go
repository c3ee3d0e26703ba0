package classify

import "context"

// LLM is the minimal surface of a chat-completion backend used for token
// classification. Implementations must return the raw completion text.
type LLM interface {
	Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}
