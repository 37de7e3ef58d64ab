package embed

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"
)

// OpenAIProvider implements Provider using the OpenAI embeddings API.
// The underlying client is a stateless HTTP client, so concurrent Encode
// calls are safe without additional locking.
type OpenAIProvider struct {
	client    *openai.Client
	model     string
	dimension int
	timeout   time.Duration
	batchSize int
}

// NewOpenAIProvider creates an embeddings provider. Call Probe before
// serving requests to verify the model loads and matches the configured
// dimension.
func NewOpenAIProvider(config Config) (*OpenAIProvider, error) {
	if config.APIKey == "" {
		return nil, fmt.Errorf("OpenAI API key is required")
	}
	if config.Model == "" {
		return nil, fmt.Errorf("embedding model is required")
	}

	clientConfig := openai.DefaultConfig(config.APIKey)
	if config.BaseURL != "" {
		clientConfig.BaseURL = config.BaseURL
	}

	timeout := config.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	batchSize := config.BatchSize
	if batchSize <= 0 {
		batchSize = 64
	}

	return &OpenAIProvider{
		client:    openai.NewClientWithConfig(clientConfig),
		model:     config.Model,
		dimension: config.Dimension,
		timeout:   timeout,
		batchSize: batchSize,
	}, nil
}

// Name returns the provider and model identifier
func (p *OpenAIProvider) Name() string {
	return "openai/" + p.model
}

// Dimension returns the vector dimension. Zero until Probe has run when no
// dimension was configured.
func (p *OpenAIProvider) Dimension() int {
	return p.dimension
}

// Probe makes a single embedding call to verify the configured model is
// usable and that its output dimension matches the configuration. A failure
// here is a fatal initialization error: the process must not serve checks.
func (p *OpenAIProvider) Probe(ctx context.Context) error {
	vectors, err := p.encodeBatch(ctx, []string{"startup probe"})
	if err != nil {
		return fmt.Errorf("embedding model %q unusable: %w", p.model, err)
	}
	got := len(vectors[0])
	if got == 0 {
		return fmt.Errorf("embedding model %q returned an empty vector", p.model)
	}
	if p.dimension == 0 {
		p.dimension = got
		return nil
	}
	if got != p.dimension {
		return fmt.Errorf("embedding model %q produces %d-dimensional vectors, config expects %d",
			p.model, got, p.dimension)
	}
	return nil
}

// Encode returns the embedding for a single text
func (p *OpenAIProvider) Encode(ctx context.Context, text string) ([]float32, error) {
	vectors, err := p.EncodeBatch(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return vectors[0], nil
}

// EncodeBatch returns one embedding per text, order-preserving. Empty texts
// map to zero vectors without an API call so similarity against them is a
// well-defined 0 rather than an error.
func (p *OpenAIProvider) EncodeBatch(ctx context.Context, texts []string) ([][]float32, error) {
	vectors := make([][]float32, len(texts))

	// Collect the non-empty texts; empties get the zero sentinel
	var pending []string
	var pendingIdx []int
	for i, text := range texts {
		if strings.TrimSpace(text) == "" {
			vectors[i] = make([]float32, p.dimension)
			continue
		}
		pending = append(pending, text)
		pendingIdx = append(pendingIdx, i)
	}

	for start := 0; start < len(pending); start += p.batchSize {
		end := start + p.batchSize
		if end > len(pending) {
			end = len(pending)
		}

		batch, err := p.encodeBatch(ctx, pending[start:end])
		if err != nil {
			return nil, err
		}
		for j, vec := range batch {
			vectors[pendingIdx[start+j]] = vec
		}
	}

	return vectors, nil
}

// encodeBatch performs one embeddings API call
func (p *OpenAIProvider) encodeBatch(ctx context.Context, texts []string) ([][]float32, error) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	resp, err := p.client.CreateEmbeddings(ctx, openai.EmbeddingRequest{
		Input: texts,
		Model: openai.EmbeddingModel(p.model),
	})
	if err != nil {
		return nil, fmt.Errorf("OpenAI embeddings API error: %w", err)
	}
	if len(resp.Data) != len(texts) {
		return nil, fmt.Errorf("embeddings API returned %d vectors for %d inputs", len(resp.Data), len(texts))
	}

	// The API documents that results come back in input order, but Index is
	// authoritative
	vectors := make([][]float32, len(texts))
	for _, item := range resp.Data {
		if item.Index < 0 || item.Index >= len(vectors) {
			return nil, fmt.Errorf("embeddings API returned out-of-range index %d", item.Index)
		}
		vectors[item.Index] = item.Embedding
	}
	return vectors, nil
}
