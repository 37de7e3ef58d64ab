package feed

import (
	"context"
	"fmt"
	"time"

	"github.com/mmcdole/gofeed"
	"go.uber.org/zap"

	"github.com/factnet/factnet/internal/model"
	"github.com/factnet/factnet/internal/store"
	"github.com/factnet/factnet/internal/worker"
)

// Aggregator collects articles from configured RSS feeds and stores them.
// Fetching honors robots.txt and per-host rate limits; a failing feed is
// logged and skipped so one dead feed never blocks the rest.
type Aggregator struct {
	parser  *gofeed.Parser
	robots  *RobotsChecker
	limiter *worker.Limiter
	store   store.Store
	logger  *zap.Logger
	sources []Source
}

// NewAggregator creates an aggregator over the given sources
func NewAggregator(st store.Store, sources []Source, cfg model.FeedConfig, logger *zap.Logger) *Aggregator {
	if logger == nil {
		logger = zap.NewNop()
	}

	parser := gofeed.NewParser()
	parser.UserAgent = cfg.UserAgent

	return &Aggregator{
		parser:  parser,
		robots:  NewRobotsChecker(cfg.UserAgent, cfg.Timeout),
		limiter: worker.NewLimiter(cfg.RequestsPerSecond, cfg.Burst),
		store:   st,
		logger:  logger,
		sources: sources,
	}
}

// Run fetches every configured feed once and returns the number of newly
// stored articles
func (a *Aggregator) Run(ctx context.Context) (int, error) {
	total := 0

	for _, source := range a.sources {
		for _, feedURL := range source.Feeds {
			n, err := a.fetchFeed(ctx, source, feedURL)
			if err != nil {
				if ctx.Err() != nil {
					return total, ctx.Err()
				}
				a.logger.Warn("skipping feed",
					zap.String("source", source.Name),
					zap.String("feed", feedURL),
					zap.Error(err))
				continue
			}
			total += n
		}
	}

	a.logger.Info("aggregation complete", zap.Int("new_articles", total))
	return total, nil
}

// fetchFeed downloads one feed and stores its items
func (a *Aggregator) fetchFeed(ctx context.Context, source Source, feedURL string) (int, error) {
	allowed, crawlDelay, err := a.robots.CanFetch(ctx, feedURL)
	if err != nil {
		return 0, fmt.Errorf("robots check: %w", err)
	}
	if !allowed {
		return 0, fmt.Errorf("disallowed by robots.txt")
	}

	if err := a.limiter.WaitWithDelay(ctx, feedURL, crawlDelay); err != nil {
		return 0, fmt.Errorf("rate limit: %w", err)
	}

	parsed, err := a.parser.ParseURLWithContext(feedURL, ctx)
	if err != nil {
		return 0, fmt.Errorf("parse feed: %w", err)
	}

	articles := make([]model.Article, 0, len(parsed.Items))
	now := time.Now().UTC()
	for _, item := range parsed.Items {
		article, ok := a.itemToArticle(item, source, now)
		if !ok {
			continue
		}
		articles = append(articles, article)
	}

	stored, err := a.store.UpsertArticles(ctx, articles)
	if err != nil {
		return 0, fmt.Errorf("store articles: %w", err)
	}

	a.logger.Debug("fetched feed",
		zap.String("source", source.Name),
		zap.String("feed", feedURL),
		zap.Int("items", len(parsed.Items)),
		zap.Int("new", stored))
	return stored, nil
}

// itemToArticle maps a feed item onto the article model. Items without a
// link are dropped since the URL is the deduplication key.
func (a *Aggregator) itemToArticle(item *gofeed.Item, source Source, now time.Time) (model.Article, bool) {
	if item.Link == "" {
		return model.Article{}, false
	}

	published := now
	if item.PublishedParsed != nil {
		published = item.PublishedParsed.UTC()
	} else if item.UpdatedParsed != nil {
		published = item.UpdatedParsed.UTC()
	} else {
		a.logger.Debug("item has no parseable date, using fetch time",
			zap.String("url", item.Link))
	}

	return model.Article{
		Headline:    CleanHTML(item.Title),
		Content:     CleanHTML(item.Description),
		Source:      source.Name,
		URL:         item.Link,
		IsTrusted:   source.Trusted,
		PublishedAt: published,
		FetchedAt:   now,
	}, true
}
