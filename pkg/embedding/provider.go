package embedding

import "context"

// Provider defines the interface for generating text embeddings. All vectors
// from one provider share a fixed dimensionality.
type Provider interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}
