package embed

import (
	"context"
	"encoding/json"
	"time"

	"github.com/factnet/factnet/internal/cache"
)

// Cached decorates a Provider with a content-addressed vector cache.
// Embeddings are deterministic for a fixed model version, so cached vectors
// never go stale within a model's lifetime; the TTL only bounds disk growth.
type Cached struct {
	inner Provider
	cache cache.Cache
	ttl   time.Duration
}

// NewCached wraps provider with the given cache
func NewCached(provider Provider, c cache.Cache, ttl time.Duration) *Cached {
	return &Cached{
		inner: provider,
		cache: c,
		ttl:   ttl,
	}
}

// Name returns the wrapped provider's identifier
func (c *Cached) Name() string {
	return c.inner.Name()
}

// Dimension returns the wrapped provider's vector dimension
func (c *Cached) Dimension() int {
	return c.inner.Dimension()
}

// Encode returns a cached vector when available, otherwise delegates and
// stores the result
func (c *Cached) Encode(ctx context.Context, text string) ([]float32, error) {
	key := cache.EmbeddingKey(c.inner.Name(), text)
	if vec, ok := c.lookup(key); ok {
		return vec, nil
	}

	vec, err := c.inner.Encode(ctx, text)
	if err != nil {
		return nil, err
	}
	c.storeVector(key, vec)
	return vec, nil
}

// EncodeBatch serves cache hits locally and forwards only the misses to the
// wrapped provider in a single batch, preserving input order
func (c *Cached) EncodeBatch(ctx context.Context, texts []string) ([][]float32, error) {
	vectors := make([][]float32, len(texts))
	keys := make([]string, len(texts))

	var missing []string
	var missingIdx []int
	for i, text := range texts {
		keys[i] = cache.EmbeddingKey(c.inner.Name(), text)
		if vec, ok := c.lookup(keys[i]); ok {
			vectors[i] = vec
			continue
		}
		missing = append(missing, text)
		missingIdx = append(missingIdx, i)
	}

	if len(missing) == 0 {
		return vectors, nil
	}

	fresh, err := c.inner.EncodeBatch(ctx, missing)
	if err != nil {
		return nil, err
	}
	for j, vec := range fresh {
		i := missingIdx[j]
		vectors[i] = vec
		c.storeVector(keys[i], vec)
	}

	return vectors, nil
}

func (c *Cached) lookup(key string) ([]float32, bool) {
	data, found := c.cache.Get(key)
	if !found {
		return nil, false
	}
	var vec []float32
	if err := json.Unmarshal(data, &vec); err != nil {
		// Corrupt entry: drop it and recompute
		_ = c.cache.Delete(key)
		return nil, false
	}
	return vec, true
}

func (c *Cached) storeVector(key string, vec []float32) {
	data, err := json.Marshal(vec)
	if err != nil {
		return
	}
	// Cache failures are not embedding failures; the vector is already computed
	_ = c.cache.Set(key, data, c.ttl)
}
