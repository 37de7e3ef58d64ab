// Package pipeline wires the stores, feeds and scoring components into the
// operations the CLI exposes.
package pipeline

import (
	"context"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/factnet/factnet/internal/cache"
	"github.com/factnet/factnet/internal/categorize"
	"github.com/factnet/factnet/internal/check"
	"github.com/factnet/factnet/internal/embed"
	"github.com/factnet/factnet/internal/feed"
	"github.com/factnet/factnet/internal/model"
	"github.com/factnet/factnet/internal/segment"
	"github.com/factnet/factnet/internal/similarity"
	"github.com/factnet/factnet/internal/store"
)

// Pipeline owns the article store and the fact-checking components. The store
// side is always available; call EnableChecking before CheckText, since the
// embedding provider needs credentials the fetch and categorize paths do not.
type Pipeline struct {
	cfg    *model.Config
	logger *zap.Logger

	store       store.Store
	aggregator  *feed.Aggregator
	categorizer *categorize.Categorizer

	checker *check.Checker
}

// NewPipeline opens the article store and builds the ingestion components
func NewPipeline(cfg *model.Config, logger *zap.Logger) (*Pipeline, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	st, err := store.NewSQLiteStore(cfg.Store.Path)
	if err != nil {
		return nil, fmt.Errorf("open article store: %w", err)
	}

	return &Pipeline{
		cfg:         cfg,
		logger:      logger,
		store:       st,
		aggregator:  feed.NewAggregator(st, feed.DefaultSources(), cfg.Feeds, logger),
		categorizer: categorize.NewCategorizer(),
	}, nil
}

// EnableChecking builds the embedding provider and checker. The provider is
// probed once up front; a model that cannot embed is a fatal setup error.
func (p *Pipeline) EnableChecking(ctx context.Context) error {
	provider, err := embed.NewOpenAIProvider(embed.Config{
		Model:     p.cfg.Embedding.Model,
		Dimension: p.cfg.Embedding.Dimension,
		APIKey:    os.Getenv("OPENAI_API_KEY"),
		BaseURL:   p.cfg.Embedding.BaseURL,
		Timeout:   p.cfg.Embedding.Timeout,
		BatchSize: p.cfg.Embedding.BatchSize,
	})
	if err != nil {
		return fmt.Errorf("configure embedding provider: %w", err)
	}
	if err := provider.Probe(ctx); err != nil {
		return err
	}

	var embedder embed.Provider = provider
	if p.cfg.Cache.Enabled {
		embedder = embed.NewCached(provider, p.buildCache(), 0)
	}

	segmenter := segment.NewSegmenter(p.cfg.Similarity.MinSegmentTokens)
	engine := similarity.NewEngine(embedder, segmenter,
		p.cfg.Similarity.DocumentWeight,
		p.cfg.Similarity.SegmentWeight,
		p.cfg.Check.MediumThreshold)
	p.checker = check.NewChecker(engine, segmenter, p.cfg.Check, p.logger)

	p.logger.Debug("checking enabled",
		zap.String("provider", embedder.Name()),
		zap.Int("dimension", embedder.Dimension()),
		zap.Bool("cache", p.cfg.Cache.Enabled))
	return nil
}

func (p *Pipeline) buildCache() cache.Cache {
	if p.cfg.Cache.Dir != "" {
		return cache.NewLayeredCache(p.cfg.Cache.MemoryTTL, p.cfg.Cache.Dir, p.cfg.Cache.DiskTTL)
	}
	return cache.NewMemoryCache(p.cfg.Cache.MemoryTTL, 10*time.Minute)
}

// CheckText scores a submission against the recent trusted articles in the
// store and returns the verdict
func (p *Pipeline) CheckText(ctx context.Context, text string) (*model.Verdict, error) {
	if p.checker == nil {
		return nil, fmt.Errorf("checking is not enabled; call EnableChecking first")
	}

	maxAge := time.Duration(p.cfg.Candidates.MaxAgeDays) * 24 * time.Hour
	candidates, err := p.store.RecentTrusted(ctx, maxAge, p.cfg.Candidates.Limit)
	if err != nil {
		return nil, fmt.Errorf("load candidate articles: %w", err)
	}

	p.logger.Debug("checking submission",
		zap.Int("candidates", len(candidates)),
		zap.Int("submission_len", len(text)))

	return p.checker.Check(ctx, text, candidates)
}

// FetchFeeds pulls every configured feed once and returns the number of new
// articles stored
func (p *Pipeline) FetchFeeds(ctx context.Context) (int, error) {
	return p.aggregator.Run(ctx)
}

// CategorizeArticles assigns categories to all uncategorized stored articles
// and returns how many were updated
func (p *Pipeline) CategorizeArticles(ctx context.Context) (int, error) {
	articles, err := p.store.Uncategorized(ctx)
	if err != nil {
		return 0, fmt.Errorf("load uncategorized articles: %w", err)
	}

	updated := 0
	for _, article := range articles {
		if err := ctx.Err(); err != nil {
			return updated, err
		}

		category, confidence, _ := p.categorizer.Categorize(article.Headline, article.Content)
		if err := p.store.SetCategory(ctx, article.ID, category, confidence); err != nil {
			p.logger.Warn("failed to store category",
				zap.String("article_id", article.ID),
				zap.Error(err))
			continue
		}
		updated++
	}

	p.logger.Info("categorization complete",
		zap.Int("examined", len(articles)),
		zap.Int("updated", updated))
	return updated, nil
}

// ArticleCount returns the number of stored articles
func (p *Pipeline) ArticleCount(ctx context.Context) (int, error) {
	return p.store.Count(ctx)
}

// Close releases the store
func (p *Pipeline) Close() error {
	return p.store.Close()
}
