package segment

import (
	"reflect"
	"testing"
)

func TestSegmenter_Split_Empty(t *testing.T) {
	s := NewSegmenter(3)

	if got := s.Split(""); len(got) != 0 {
		t.Errorf("expected no segments for empty input, got %v", got)
	}
	if got := s.Split("   \n\t  "); len(got) != 0 {
		t.Errorf("expected no segments for whitespace input, got %v", got)
	}
}

func TestSegmenter_Split_Sentences(t *testing.T) {
	s := NewSegmenter(3)

	text := "The central bank raised interest rates today. Markets reacted sharply to the decision. Analysts expect further hikes this year."
	got := s.Split(text)

	want := []string{
		"The central bank raised interest rates today.",
		"Markets reacted sharply to the decision.",
		"Analysts expect further hikes this year.",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Split mismatch:\ngot:  %v\nwant: %v", got, want)
	}
}

func TestSegmenter_Split_FiltersShortFragments(t *testing.T) {
	s := NewSegmenter(3)

	// "No comment today." has exactly 3 tokens and must be dropped;
	// "It rained all day long." has 5 and must survive.
	got := s.Split("No comment today. It rained all day long.")

	if len(got) != 1 {
		t.Fatalf("expected 1 segment, got %d: %v", len(got), got)
	}
	if got[0] != "It rained all day long." {
		t.Errorf("unexpected surviving segment: %q", got[0])
	}
}

func TestSegmenter_Split_TokenBoundary(t *testing.T) {
	s := NewSegmenter(3)

	// Exactly 4 tokens is the smallest sentence that survives the filter
	if got := s.Split("Four tokens right here."); len(got) != 1 {
		t.Errorf("expected 4-token sentence to survive, got %v", got)
	}
	if got := s.Split("Three tokens here."); len(got) != 0 {
		t.Errorf("expected 3-token sentence to be dropped, got %v", got)
	}
}

func TestSegmenter_Split_TrailingTextWithoutTerminator(t *testing.T) {
	s := NewSegmenter(3)

	got := s.Split("A full sentence comes first. then a dangling fragment with no period")
	if len(got) != 2 {
		t.Fatalf("expected 2 segments, got %d: %v", len(got), got)
	}
	if got[1] != "then a dangling fragment with no period" {
		t.Errorf("unexpected trailing segment: %q", got[1])
	}
}

func TestSegmenter_Split_DoesNotBreakOnDecimals(t *testing.T) {
	s := NewSegmenter(3)

	got := s.Split("Inflation rose by 2.5 percent last month according to the report.")
	if len(got) != 1 {
		t.Errorf("expected decimal to stay within one segment, got %v", got)
	}
}
