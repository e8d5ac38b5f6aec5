package embedding

import "context"

// Provider contract
type Provider interface {
	// Embed generates the embedding vector for a single text.
	Embed(ctx context.Context, text string) ([]float32, error)
}
