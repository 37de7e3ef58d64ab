package pipeline

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/factnet/factnet/internal/model"
)

// RenderJSON writes the verdict as indented JSON. An empty path writes to
// stdout.
func RenderJSON(verdict *model.Verdict, path string) error {
	data, err := json.MarshalIndent(verdict, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal verdict: %w", err)
	}
	data = append(data, '\n')

	if path == "" {
		_, err = os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write verdict: %w", err)
	}
	return nil
}

// RenderSummary writes a human-readable verdict summary
func RenderSummary(w io.Writer, verdict *model.Verdict) {
	fmt.Fprintf(w, "Similarity:       %s\n", verdict.SimilarityPercentage)
	fmt.Fprintf(w, "Factual Accuracy: %s\n", verdict.FactualAccuracy)

	if len(verdict.Matches) == 0 {
		fmt.Fprintln(w, "No matching trusted coverage found.")
		return
	}

	fmt.Fprintln(w, "Top Matches:")
	for i, match := range verdict.Matches {
		fmt.Fprintf(w, "  %d. [%s] %s (%s)\n", i+1, match.Source, match.Headline, model.FormatPercentage(match.Similarity))
		if match.URL != "" {
			fmt.Fprintf(w, "     %s\n", match.URL)
		}
	}
}
