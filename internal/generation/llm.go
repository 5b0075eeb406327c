// Package generation assembles long-form story expansion requests from a story
// prompt and retrieved reference context, and sends them to a language model.
package generation

import (
	"context"
	"errors"
	"time"
)

var (
	ErrLLMFailed     = errors.New("LLM request failed")
	ErrInvalidConfig = errors.New("invalid LLM configuration")
	ErrEmptyPrompt   = errors.New("story prompt is required")
)

// LLM defines the interface for interacting with language models.
// Implementations must be thread-safe.
type LLM interface {
	// Generate produces text for a system instruction and a single user message.
	Generate(ctx context.Context, system, user string) (string, error)
}

// LLMConfig holds common configuration options for LLM providers.
type LLMConfig struct {
	// Model specifies the model identifier
	Model string

	// Temperature controls randomness (0 = provider default)
	Temperature float64

	// MaxTokens limits the response length (0 = provider default)
	MaxTokens int

	// APIKey is the authentication key for the provider
	APIKey string

	// BaseURL overrides the provider endpoint, for compatible gateways
	BaseURL string

	// Timeout bounds a single request
	Timeout time.Duration
}

// DefaultLLMConfig returns defaults suited to very long story generation.
func DefaultLLMConfig() LLMConfig {
	return LLMConfig{
		Model:       "gpt-4o",
		Temperature: 1,
		MaxTokens:   32000,
		Timeout:     5 * time.Minute,
	}
}
