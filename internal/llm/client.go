// Package llm provides the AI fallback path: chat clients for LLM
// providers, the utterance decomposer, and the adapter that maps its
// output back into the canonical result types.
package llm

import (
	"context"
	"time"
)

// Client defines the interface for LLM providers. Chat sends one prompt
// and returns the raw response text.
type Client interface {
	Chat(ctx context.Context, prompt string) (string, error)
}

// Config holds configuration for the LLM path.
type Config struct {
	Provider    string
	APIKey      string
	Model       string
	Timeout     time.Duration
	MaxRetries  int
	RetryDelay  time.Duration
	Temperature float64
	MaxTokens   int
}

// DefaultConfig returns the LLM path defaults: a 5 second call timeout
// and a budget of one retry.
func DefaultConfig() Config {
	return Config{
		Provider:    "openai",
		Timeout:     5 * time.Second,
		MaxRetries:  1,
		RetryDelay:  200 * time.Millisecond,
		Temperature: 0.3,
		MaxTokens:   800,
	}
}
