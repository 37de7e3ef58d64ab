package embed

import (
	"context"
	"hash/fnv"
	"math"
	"strings"
	"sync"
	"unicode"
)

// MockProvider is a deterministic in-memory provider for tests. It hashes
// lowercased word tokens into a fixed number of buckets, so texts that share
// vocabulary produce vectors with high cosine similarity while unrelated
// texts score near zero. It also counts calls, which lets tests verify that
// the segment-level pass is skipped when gating applies.
type MockProvider struct {
	dimension int

	// FailOn, when set, is consulted per text; a non-nil error simulates an
	// embedding failure for that text
	FailOn func(text string) error

	mu          sync.Mutex
	encodeCalls int
	batchCalls  int
}

// NewMockProvider returns a mock provider with the given vector dimension
func NewMockProvider(dimension int) *MockProvider {
	if dimension <= 0 {
		dimension = 256
	}
	return &MockProvider{dimension: dimension}
}

// Name identifies the mock provider
func (m *MockProvider) Name() string {
	return "mock"
}

// Dimension returns the vector dimension
func (m *MockProvider) Dimension() int {
	return m.dimension
}

// Encode returns a deterministic bag-of-words vector
func (m *MockProvider) Encode(ctx context.Context, text string) ([]float32, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.Lock()
	m.encodeCalls++
	m.mu.Unlock()

	return m.embed(text)
}

// EncodeBatch encodes each text, order-preserving
func (m *MockProvider) EncodeBatch(ctx context.Context, texts []string) ([][]float32, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.Lock()
	m.batchCalls++
	m.mu.Unlock()

	vectors := make([][]float32, len(texts))
	for i, text := range texts {
		vec, err := m.embed(text)
		if err != nil {
			return nil, err
		}
		vectors[i] = vec
	}
	return vectors, nil
}

// EncodeCalls returns how many single-text encodes have run
func (m *MockProvider) EncodeCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.encodeCalls
}

// BatchCalls returns how many batch encodes have run
func (m *MockProvider) BatchCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.batchCalls
}

// ResetCalls zeroes both call counters
func (m *MockProvider) ResetCalls() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.encodeCalls = 0
	m.batchCalls = 0
}

func (m *MockProvider) embed(text string) ([]float32, error) {
	if m.FailOn != nil {
		if err := m.FailOn(text); err != nil {
			return nil, err
		}
	}

	vec := make([]float32, m.dimension)
	tokens := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})
	if len(tokens) == 0 {
		return vec, nil
	}

	for _, token := range tokens {
		h := fnv.New32a()
		_, _ = h.Write([]byte(token))
		vec[int(h.Sum32())%m.dimension]++
	}

	// Normalize to unit length so dot products are cosine similarities
	var sum float64
	for _, v := range vec {
		sum += float64(v) * float64(v)
	}
	norm := float32(1.0 / math.Sqrt(sum))
	for i := range vec {
		vec[i] *= norm
	}
	return vec, nil
}
