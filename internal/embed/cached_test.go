package embed

import (
	"context"
	"reflect"
	"testing"
	"time"

	"github.com/factnet/factnet/internal/cache"
)

func TestCached_Encode_HitSkipsProvider(t *testing.T) {
	provider := NewMockProvider(64)
	cached := NewCached(provider, cache.NewMemoryCache(time.Minute, time.Minute), time.Minute)
	ctx := context.Background()

	first, err := cached.Encode(ctx, "the central bank raised interest rates")
	if err != nil {
		t.Fatalf("first encode failed: %v", err)
	}
	if provider.EncodeCalls() != 1 {
		t.Fatalf("expected 1 provider call, got %d", provider.EncodeCalls())
	}

	second, err := cached.Encode(ctx, "the central bank raised interest rates")
	if err != nil {
		t.Fatalf("second encode failed: %v", err)
	}
	if provider.EncodeCalls() != 1 {
		t.Errorf("expected cache hit to skip the provider, got %d calls", provider.EncodeCalls())
	}
	if !reflect.DeepEqual(first, second) {
		t.Error("cached vector differs from the original")
	}
}

func TestCached_EncodeBatch_OnlyMissesReachProvider(t *testing.T) {
	provider := NewMockProvider(64)
	cached := NewCached(provider, cache.NewMemoryCache(time.Minute, time.Minute), time.Minute)
	ctx := context.Background()

	warm, err := cached.Encode(ctx, "already cached sentence")
	if err != nil {
		t.Fatalf("warmup encode failed: %v", err)
	}

	vectors, err := cached.EncodeBatch(ctx, []string{
		"already cached sentence",
		"a brand new sentence",
	})
	if err != nil {
		t.Fatalf("batch encode failed: %v", err)
	}
	if !reflect.DeepEqual(vectors[0], warm) {
		t.Error("cached entry not reused in batch")
	}
	if provider.BatchCalls() != 1 {
		t.Errorf("expected exactly one provider batch for the miss, got %d", provider.BatchCalls())
	}

	// Everything cached now: no provider traffic at all
	provider.ResetCalls()
	if _, err := cached.EncodeBatch(ctx, []string{"already cached sentence", "a brand new sentence"}); err != nil {
		t.Fatalf("fully cached batch failed: %v", err)
	}
	if provider.BatchCalls() != 0 || provider.EncodeCalls() != 0 {
		t.Error("expected a fully cached batch to skip the provider")
	}
}

func TestEmbeddingKey_ModelScoped(t *testing.T) {
	a := cache.EmbeddingKey("openai/text-embedding-3-small", "same text")
	b := cache.EmbeddingKey("openai/text-embedding-3-large", "same text")
	if a == b {
		t.Error("different models must produce different cache keys")
	}
}
