package service

import (
	"context"

	"github.com/eggjam/eggjam-go/internal/client"
)

// TextGenerator is the contract services use to call the text-generation
// provider. *client.OpenAIClient satisfies it; tests substitute fakes.
// Provider failures must be recovered locally with fallback text and never
// surfaced to the API caller.
type TextGenerator interface {
	Chat(ctx context.Context, messages []client.Message, temperature float64, maxTokens int) (string, error)
}
