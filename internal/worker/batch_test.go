package worker

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/factnet/factnet/internal/model"
)

type stubRunner struct {
	failOn string
}

func (s *stubRunner) CheckText(ctx context.Context, text string) (*model.Verdict, error) {
	if s.failOn != "" && strings.Contains(text, s.failOn) {
		return nil, fmt.Errorf("stub failure for %q", text)
	}
	return &model.Verdict{
		OverallSimilarity:    0.5,
		SimilarityPercentage: "50.0%",
		FactualAccuracy:      model.AccuracyMedium,
		Matches:              []model.Match{},
	}, nil
}

func TestBatchProcessor_Process_PreservesOrder(t *testing.T) {
	bp := NewBatchProcessor(&stubRunner{}, 3, nil)

	texts := []string{"first claim", "second claim", "third claim", "fourth claim"}
	results := bp.Process(context.Background(), texts)

	if len(results) != len(texts) {
		t.Fatalf("expected %d results, got %d", len(texts), len(results))
	}
	for i, r := range results {
		if r.Index != i {
			t.Errorf("result %d has index %d", i, r.Index)
		}
		if r.Text != texts[i] {
			t.Errorf("result %d has text %q, expected %q", i, r.Text, texts[i])
		}
		if r.Err != nil {
			t.Errorf("unexpected error for %q: %v", r.Text, r.Err)
		}
	}
}

func TestBatchProcessor_Process_PerItemFailure(t *testing.T) {
	bp := NewBatchProcessor(&stubRunner{failOn: "bad"}, 2, nil)

	results := bp.Process(context.Background(), []string{"good claim", "bad claim", "another good one"})

	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
	if results[0].Err != nil || results[2].Err != nil {
		t.Error("healthy submissions should not carry errors")
	}
	if results[1].Err == nil {
		t.Error("expected error for failing submission")
	}
	if results[1].Verdict != nil {
		t.Error("failed submission should not carry a verdict")
	}
}

func TestReadSubmissionsFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "claims.txt")
	content := "First claim here\n\n# a comment\nSecond claim here\n   \n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	texts, err := ReadSubmissionsFromFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(texts) != 2 {
		t.Fatalf("expected 2 submissions, got %d: %v", len(texts), texts)
	}
	if texts[0] != "First claim here" || texts[1] != "Second claim here" {
		t.Errorf("unexpected submissions: %v", texts)
	}
}

func TestBatchProcessor_ProcessFile_Empty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.txt")
	if err := os.WriteFile(path, []byte("# only comments\n\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	bp := NewBatchProcessor(&stubRunner{}, 2, nil)
	if _, err := bp.ProcessFile(context.Background(), path); err == nil {
		t.Error("expected error for file with no submissions")
	}
}
