package check

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/factnet/factnet/internal/model"
	"github.com/factnet/factnet/internal/segment"
	"github.com/factnet/factnet/internal/similarity"
)

// Checker scores a submission against a pool of trusted articles and
// assembles the final verdict
type Checker struct {
	engine    *similarity.Engine
	segmenter *segment.Segmenter
	logger    *zap.Logger

	highThreshold   float64
	mediumThreshold float64
	topK            int
	timeout         time.Duration
}

// NewChecker creates a checker
func NewChecker(engine *similarity.Engine, segmenter *segment.Segmenter, cfg model.CheckConfig, logger *zap.Logger) *Checker {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Checker{
		engine:          engine,
		segmenter:       segmenter,
		logger:          logger,
		highThreshold:   cfg.HighThreshold,
		mediumThreshold: cfg.MediumThreshold,
		topK:            cfg.TopK,
		timeout:         cfg.Timeout,
	}
}

// Check scores submission against candidates and returns the verdict.
//
// A blank submission or empty candidate pool returns the degenerate Low
// verdict without any embedding work. A candidate whose similarity cannot be
// computed is logged and excluded from the ranking; only when every candidate
// fails, or the deadline expires, does Check return an error.
func (c *Checker) Check(ctx context.Context, submission string, candidates []model.Article) (*model.Verdict, error) {
	if strings.TrimSpace(submission) == "" || len(candidates) == 0 {
		return model.EmptyVerdict(), nil
	}

	// The embedding pass over the full pool is the dominant cost; bound it
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	// Segment the submission once, reused across every candidate
	submissionSegs := c.segmenter.Split(submission)

	matches := make([]model.Match, 0, len(candidates))
	failed := 0
	for _, article := range candidates {
		sim, err := c.engine.Combined(ctx, submission, submissionSegs, article.ComparisonText())
		if err != nil {
			if ctx.Err() != nil {
				return nil, fmt.Errorf("check aborted: %w", ctx.Err())
			}
			failed++
			c.logger.Warn("excluding candidate from ranking",
				zap.String("article_id", article.ID),
				zap.String("source", article.Source),
				zap.Error(err))
			continue
		}

		matches = append(matches, model.Match{
			ArticleID:  article.ID,
			Headline:   article.Headline,
			Source:     article.Source,
			URL:        article.URL,
			Similarity: sim,
		})
	}

	// A verdict built from zero scored candidates would be fabricated
	if len(matches) == 0 {
		return nil, fmt.Errorf("similarity computation failed for all %d candidates", failed)
	}

	// Descending by similarity; stable so ties keep candidate order
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Similarity > matches[j].Similarity
	})
	if len(matches) > c.topK {
		matches = matches[:c.topK]
	}

	overall := matches[0].Similarity
	return &model.Verdict{
		OverallSimilarity:    overall,
		SimilarityPercentage: model.FormatPercentage(overall),
		FactualAccuracy:      c.Classify(overall),
		Matches:              matches,
	}, nil
}

// Classify maps an overall similarity score to a factual accuracy level
func (c *Checker) Classify(similarity float64) model.FactualAccuracy {
	switch {
	case similarity >= c.highThreshold:
		return model.AccuracyHigh
	case similarity >= c.mediumThreshold:
		return model.AccuracyMedium
	default:
		return model.AccuracyLow
	}
}
