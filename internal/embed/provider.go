package embed

import (
	"context"
	"time"
)

// Provider maps text to fixed-dimension dense vectors. Implementations must
// be safe for concurrent use: one provider instance is constructed at startup
// and shared by every check request.
type Provider interface {
	// Name identifies the provider and model, used for cache keying
	Name() string

	// Dimension returns the length of every vector this provider produces
	Dimension() int

	// Encode returns the embedding for a single text. Empty or
	// whitespace-only input returns a zero vector, never an error.
	Encode(ctx context.Context, text string) ([]float32, error)

	// EncodeBatch returns one embedding per input text, order-preserving
	EncodeBatch(ctx context.Context, texts []string) ([][]float32, error)
}

// Config holds embedding provider configuration
type Config struct {
	// Model is the versioned embedding model identifier
	Model string

	// Dimension is the expected vector dimension. Zero means "learn from
	// the first response"; non-zero is validated against the model output
	// during Probe.
	Dimension int

	// APIKey for the embeddings API
	APIKey string

	// BaseURL for custom endpoints (empty = provider default)
	BaseURL string

	// Timeout for individual API requests
	Timeout time.Duration

	// BatchSize caps how many texts go into one API request
	BatchSize int
}
