package similarity

import (
	"context"
	"math"
	"testing"

	"github.com/factnet/factnet/internal/embed"
	"github.com/factnet/factnet/internal/segment"
)

func newTestEngine(provider embed.Provider) *Engine {
	return NewEngine(provider, segment.NewSegmenter(3), 0.7, 0.3, 0.5)
}

func TestCosine(t *testing.T) {
	tests := []struct {
		name string
		a, b []float32
		want float64
	}{
		{"identical", []float32{1, 0, 0}, []float32{1, 0, 0}, 1.0},
		{"orthogonal", []float32{1, 0}, []float32{0, 1}, 0.0},
		{"opposite clipped to zero", []float32{1, 0}, []float32{-1, 0}, 0.0},
		{"zero vector", []float32{0, 0}, []float32{1, 1}, 0.0},
		{"length mismatch", []float32{1}, []float32{1, 0}, 0.0},
		{"empty", nil, nil, 0.0},
	}

	for _, tt := range tests {
		if got := Cosine(tt.a, tt.b); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("%s: Cosine = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestEngine_DocumentSimilarity_EmptyShortCircuits(t *testing.T) {
	provider := embed.NewMockProvider(64)
	engine := newTestEngine(provider)
	ctx := context.Background()

	for _, pair := range [][2]string{
		{"", "some text here"},
		{"some text here", ""},
		{"   ", "some text here"},
		{"", ""},
	} {
		sim, err := engine.DocumentSimilarity(ctx, pair[0], pair[1])
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if sim != 0 {
			t.Errorf("expected 0 for empty input pair %q, got %v", pair, sim)
		}
	}

	if provider.EncodeCalls() != 0 {
		t.Errorf("expected no embedding calls for empty inputs, got %d", provider.EncodeCalls())
	}
}

func TestEngine_DocumentSimilarity_SharedVocabulary(t *testing.T) {
	provider := embed.NewMockProvider(256)
	engine := newTestEngine(provider)
	ctx := context.Background()

	same, err := engine.DocumentSimilarity(ctx,
		"the central bank raised interest rates",
		"the central bank raised interest rates")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(same-1.0) > 1e-6 {
		t.Errorf("identical texts should score ~1.0, got %v", same)
	}

	unrelated, err := engine.DocumentSimilarity(ctx,
		"the central bank raised interest rates",
		"sunny skies expected over the weekend")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if unrelated >= same {
		t.Errorf("unrelated texts (%v) should score below identical texts (%v)", unrelated, same)
	}
}

func TestEngine_SegmentSimilarity_EmptyLists(t *testing.T) {
	provider := embed.NewMockProvider(64)
	engine := newTestEngine(provider)
	ctx := context.Background()

	sim, err := engine.SegmentSimilarity(ctx, nil, []string{"a sentence with enough tokens"})
	if err != nil || sim != 0 {
		t.Errorf("expected 0/nil for empty A side, got %v/%v", sim, err)
	}
	sim, err = engine.SegmentSimilarity(ctx, []string{"a sentence with enough tokens"}, nil)
	if err != nil || sim != 0 {
		t.Errorf("expected 0/nil for empty B side, got %v/%v", sim, err)
	}
	if provider.BatchCalls() != 0 {
		t.Errorf("expected no batch calls for empty segment lists, got %d", provider.BatchCalls())
	}
}

func TestEngine_SegmentSimilarity_Asymmetric(t *testing.T) {
	provider := embed.NewMockProvider(256)
	engine := newTestEngine(provider)
	ctx := context.Background()

	// Every X segment has a strong match in Y, but Y carries an extra
	// segment with no counterpart in X, so Y->X averages in a weak score.
	x := []string{"the central bank raised interest rates today"}
	y := []string{
		"the central bank raised interest rates today",
		"a completely unrelated story about marine biology research",
	}

	xy, err := engine.SegmentSimilarity(ctx, x, y)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	yx, err := engine.SegmentSimilarity(ctx, y, x)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if math.Abs(xy-yx) < 1e-6 {
		t.Errorf("expected asymmetric scores, got xy=%v yx=%v", xy, yx)
	}
	if xy <= yx {
		t.Errorf("X->Y (%v) should exceed Y->X (%v) when Y has unmatched segments", xy, yx)
	}
}

func TestEngine_Combined_GatingSkipsSegmentPass(t *testing.T) {
	provider := embed.NewMockProvider(256)
	engine := newTestEngine(provider)
	ctx := context.Background()

	a := "alpha beta gamma delta epsilon zeta"
	b := "completely different words appear in this sentence"

	docSim, err := engine.DocumentSimilarity(ctx, a, b)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if docSim >= 0.5 {
		t.Fatalf("fixture broken: document similarity %v should be below the gate", docSim)
	}

	provider.ResetCalls()
	combined, err := engine.CombinedSimilarity(ctx, a, b)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Below the gate the segment term is exactly zero, so the combined value
	// is exactly 0.7 * document similarity.
	if math.Abs(combined-0.7*docSim) > 1e-12 {
		t.Errorf("combined = %v, want exactly 0.7 * %v = %v", combined, docSim, 0.7*docSim)
	}
	if provider.BatchCalls() != 0 {
		t.Errorf("segment pass ran despite gating: %d batch calls", provider.BatchCalls())
	}
}

func TestEngine_Combined_AboveGateIncludesSegments(t *testing.T) {
	provider := embed.NewMockProvider(256)
	engine := newTestEngine(provider)
	ctx := context.Background()

	a := "the central bank raised interest rates today in a decisive move."
	b := "the central bank raised interest rates today in a surprising move."

	combined, err := engine.CombinedSimilarity(ctx, a, b)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if combined < 0.5 {
		t.Errorf("near-identical texts should score above the gate, got %v", combined)
	}
	if provider.BatchCalls() == 0 {
		t.Error("expected the segment pass to run above the gate")
	}
}
