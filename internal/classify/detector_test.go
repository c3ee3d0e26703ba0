package classify

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/songzhibin97/rugscan/internal/models"
)

type stubLLM struct {
	response string
	err      error
	calls    int
}

func (s *stubLLM) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	s.calls++
	return s.response, s.err
}

func TestDetector_ManualOverride(t *testing.T) {
	llm := &stubLLM{}
	d := NewDetector(llm, 0, nil)

	tests := []struct {
		name     string
		manual   string
		wantMeme bool
	}{
		{"manual meme", "MEME_TOKEN", true},
		{"manual utility", "UTILITY_TOKEN", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := d.Resolve(context.Background(), &models.TokenMetadata{
				Symbol:               "XYZ",
				ManualClassification: tt.manual,
			})
			require.NotNil(t, c)
			assert.Equal(t, tt.wantMeme, c.IsMeme)
			assert.Equal(t, 100, c.Confidence)
			assert.True(t, c.IsManualOverride)
		})
	}

	assert.Equal(t, 0, llm.calls, "manual override must not reach the LLM")
}

func TestDetector_Whitelist(t *testing.T) {
	llm := &stubLLM{}
	d := NewDetector(llm, 0, nil)

	for _, symbol := range []string{"BTC", "eth", " UNI "} {
		c := d.Resolve(context.Background(), &models.TokenMetadata{Symbol: symbol})
		require.NotNil(t, c)
		assert.False(t, c.IsMeme, "whitelisted %q must never be a meme", symbol)
		assert.Equal(t, 100, c.Confidence)
	}
	assert.Equal(t, 0, llm.calls)
}

func TestDetector_MemeKeywordFastPath(t *testing.T) {
	llm := &stubLLM{}
	d := NewDetector(llm, 0, nil)

	c := d.Resolve(context.Background(), &models.TokenMetadata{
		Symbol: "WOOFINU",
		Name:   "Woof Inu",
	})

	require.NotNil(t, c)
	assert.True(t, c.IsMeme)
	assert.Equal(t, 95, c.Confidence)
	assert.Equal(t, 0, llm.calls, "keyword fast path must not reach the LLM")
}

func TestDetector_UtilityKeywordsBlockFastPath(t *testing.T) {
	llm := &stubLLM{response: `{"classification": "UTILITY", "confidence": 88, "reasoning": "staking protocol"}`}
	d := NewDetector(llm, 0, nil)

	// Meme-looking symbol but a utility-keyword name goes to the LLM.
	c := d.Resolve(context.Background(), &models.TokenMetadata{
		Symbol: "MOON",
		Name:   "Moonbeam Staking Protocol",
	})

	require.NotNil(t, c)
	assert.False(t, c.IsMeme)
	assert.Equal(t, 88, c.Confidence)
	assert.Equal(t, 1, llm.calls)
}

func TestDetector_LLMClassification(t *testing.T) {
	tests := []struct {
		name           string
		response       string
		wantMeme       bool
		wantConfidence int
	}{
		{
			name:           "clean json",
			response:       `{"classification": "MEME", "confidence": 85, "reasoning": "frog themed"}`,
			wantMeme:       true,
			wantConfidence: 85,
		},
		{
			name:           "json wrapped in prose",
			response:       "Sure! Here is my analysis:\n{\"classification\": \"UTILITY\", \"confidence\": 90, \"reasoning\": \"oracle network\"}\nHope that helps.",
			wantMeme:       false,
			wantConfidence: 90,
		},
		{
			name:           "confidence clamped",
			response:       `{"classification": "MEME", "confidence": 250, "reasoning": "very sure"}`,
			wantMeme:       true,
			wantConfidence: 100,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := NewDetector(&stubLLM{response: tt.response}, 0, nil)
			c := d.Resolve(context.Background(), &models.TokenMetadata{
				Symbol: "ZZZ",
				Name:   "Zambezi",
			})
			require.NotNil(t, c)
			assert.Equal(t, tt.wantMeme, c.IsMeme)
			assert.Equal(t, tt.wantConfidence, c.Confidence)
		})
	}
}

func TestDetector_LLMFailureFallsBack(t *testing.T) {
	tests := []struct {
		name string
		llm  *stubLLM
	}{
		{"transport error", &stubLLM{err: errors.New("rate limited")}},
		{"no json in response", &stubLLM{response: "I cannot classify this token."}},
		{"broken json", &stubLLM{response: `{"classification": `}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := NewDetector(tt.llm, 0, nil)
			c := d.Resolve(context.Background(), &models.TokenMetadata{
				Symbol: "ZZZ",
				Name:   "Zambezi",
			})
			require.NotNil(t, c)
			assert.False(t, c.IsMeme)
			assert.Equal(t, 50, c.Confidence)
		})
	}
}

func TestDetector_NoLLMConfigured(t *testing.T) {
	d := NewDetector(nil, 0, nil)

	c := d.Resolve(context.Background(), &models.TokenMetadata{
		Symbol: "ZZZ",
		Name:   "Zambezi",
	})

	require.NotNil(t, c)
	assert.False(t, c.IsMeme)
	assert.Equal(t, 50, c.Confidence)
}

func TestDetector_NilMetadata(t *testing.T) {
	d := NewDetector(nil, 0, nil)
	c := d.Resolve(context.Background(), nil)
	require.NotNil(t, c)
	assert.False(t, c.IsMeme)
}
