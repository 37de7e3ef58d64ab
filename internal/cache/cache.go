package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Cache defines the interface for caching serialized embedding vectors
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// EmbeddingKey generates a cache key for an embedding. The provider name
// carries the model identifier, so a model upgrade never serves vectors
// computed by the previous model.
func EmbeddingKey(provider, text string) string {
	h := sha256.New()
	h.Write([]byte(provider))
	h.Write([]byte{0})
	h.Write([]byte(text))
	return "factnet:v1:" + hex.EncodeToString(h.Sum(nil))
}
