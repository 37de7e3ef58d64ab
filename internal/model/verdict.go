package model

import "fmt"

// FactualAccuracy classifies how well a submission is echoed by trusted coverage
type FactualAccuracy string

const (
	AccuracyLow    FactualAccuracy = "Low"
	AccuracyMedium FactualAccuracy = "Medium"
	AccuracyHigh   FactualAccuracy = "High"
)

// Match is one ranked trusted article in a verdict's evidence list
type Match struct {
	ArticleID  string  `json:"article_id"`
	Headline   string  `json:"headline"`
	Source     string  `json:"source"`
	URL        string  `json:"url"`
	Similarity float64 `json:"similarity"`
}

// Verdict is the result of checking one submission against the trusted corpus.
// OverallSimilarity always equals the similarity of the top-ranked match, or
// 0.0 when there are no matches. Matches is sorted descending by similarity.
type Verdict struct {
	OverallSimilarity    float64         `json:"overall_similarity"`
	SimilarityPercentage string          `json:"similarity_percentage"`
	FactualAccuracy      FactualAccuracy `json:"factual_accuracy"`
	Matches              []Match         `json:"matches"`
}

// EmptyVerdict returns the degenerate Low-confidence verdict produced for a
// blank submission or an empty candidate pool
func EmptyVerdict() *Verdict {
	return &Verdict{
		OverallSimilarity:    0.0,
		SimilarityPercentage: FormatPercentage(0.0),
		FactualAccuracy:      AccuracyLow,
		Matches:              []Match{},
	}
}

// FormatPercentage renders a similarity score as a display percentage
// with one decimal place (0.8234 -> "82.3%")
func FormatPercentage(similarity float64) string {
	return fmt.Sprintf("%.1f%%", similarity*100)
}
