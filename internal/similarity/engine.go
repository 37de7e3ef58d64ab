package similarity

import (
	"context"
	"strings"

	"github.com/factnet/factnet/internal/embed"
	"github.com/factnet/factnet/internal/segment"
)

// Engine computes text similarity at two granularities: whole-document and
// sentence-level. The segment pass only runs when the document pass already
// shows moderate similarity, so clearly unrelated texts never pay for
// per-sentence embedding.
type Engine struct {
	provider  embed.Provider
	segmenter *segment.Segmenter

	docWeight     float64
	segWeight     float64
	gateThreshold float64
}

// NewEngine creates a similarity engine. gateThreshold is the document
// similarity below which the segment-level pass is skipped entirely.
func NewEngine(provider embed.Provider, segmenter *segment.Segmenter, docWeight, segWeight, gateThreshold float64) *Engine {
	return &Engine{
		provider:      provider,
		segmenter:     segmenter,
		docWeight:     docWeight,
		segWeight:     segWeight,
		gateThreshold: gateThreshold,
	}
}

// DocumentSimilarity returns the cosine similarity of two whole texts.
// Either text being empty short-circuits to 0 without an embedding call.
func (e *Engine) DocumentSimilarity(ctx context.Context, a, b string) (float64, error) {
	if strings.TrimSpace(a) == "" || strings.TrimSpace(b) == "" {
		return 0, nil
	}

	va, err := e.provider.Encode(ctx, a)
	if err != nil {
		return 0, err
	}
	vb, err := e.provider.Encode(ctx, b)
	if err != nil {
		return 0, err
	}

	return Cosine(va, vb), nil
}

// SegmentSimilarity measures how much of segsA is echoed somewhere in segsB:
// each A-segment is scored by its best match across all of B (several
// A-segments may match the same B-segment), and the per-segment maxima are
// averaged. The measure is deliberately asymmetric.
func (e *Engine) SegmentSimilarity(ctx context.Context, segsA, segsB []string) (float64, error) {
	if len(segsA) == 0 || len(segsB) == 0 {
		return 0, nil
	}

	vecsA, err := e.provider.EncodeBatch(ctx, segsA)
	if err != nil {
		return 0, err
	}
	vecsB, err := e.provider.EncodeBatch(ctx, segsB)
	if err != nil {
		return 0, err
	}

	var total float64
	for _, va := range vecsA {
		best := 0.0
		for _, vb := range vecsB {
			if sim := Cosine(va, vb); sim > best {
				best = sim
			}
		}
		total += best
	}

	return total / float64(len(vecsA)), nil
}

// CombinedSimilarity computes the weighted two-level similarity of a against
// b, segmenting a internally. Use Combined when a's segments are reused
// across many comparisons.
func (e *Engine) CombinedSimilarity(ctx context.Context, a, b string) (float64, error) {
	return e.Combined(ctx, a, e.segmenter.Split(a), b)
}

// Combined computes the weighted similarity of a (with pre-computed segments
// segsA) against b. When the document similarity falls below the gate
// threshold the segment contribution is 0 and no segment embedding happens,
// which makes the result exactly docWeight * documentSimilarity.
func (e *Engine) Combined(ctx context.Context, a string, segsA []string, b string) (float64, error) {
	docSim, err := e.DocumentSimilarity(ctx, a, b)
	if err != nil {
		return 0, err
	}

	segSim := 0.0
	if docSim >= e.gateThreshold {
		segSim, err = e.SegmentSimilarity(ctx, segsA, e.segmenter.Split(b))
		if err != nil {
			return 0, err
		}
	}

	return e.docWeight*docSim + e.segWeight*segSim, nil
}
