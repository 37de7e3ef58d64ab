package store

import (
	"context"
	"time"

	"github.com/factnet/factnet/internal/model"
)

// Store persists aggregated articles and serves candidate pools for
// similarity checks
type Store interface {
	// UpsertArticles inserts articles, skipping URLs already present.
	// Returns the number of newly stored articles.
	UpsertArticles(ctx context.Context, articles []model.Article) (int, error)

	// RecentTrusted returns trusted articles published within maxAge of
	// now, newest first, capped at limit. This is the candidate pool for
	// similarity checks; callers perform no further filtering.
	RecentTrusted(ctx context.Context, maxAge time.Duration, limit int) ([]model.Article, error)

	// Uncategorized returns articles the categorizer has not processed yet
	Uncategorized(ctx context.Context) ([]model.Article, error)

	// SetCategory records the categorizer's decision for one article
	SetCategory(ctx context.Context, id, category string, confidence float64) error

	// Count returns the total number of stored articles
	Count(ctx context.Context) (int, error)

	// Close releases the underlying database handle
	Close() error
}
