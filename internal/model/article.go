package model

import "time"

// Article represents a news article aggregated from an external feed
type Article struct {
	ID                 string    `json:"id"`
	Headline           string    `json:"headline"`
	Content            string    `json:"content"`
	Source             string    `json:"source"`              // Feed source name (e.g., "BBC", "Reuters")
	URL                string    `json:"url"`                 // Canonical article URL, unique per article
	Category           string    `json:"category,omitempty"`  // Assigned by the categorizer, empty until processed
	CategoryConfidence float64   `json:"category_confidence,omitempty"`
	IsTrusted          bool      `json:"is_trusted"`          // Whether the source is considered reliable
	Upvotes            int       `json:"upvotes"`
	Downvotes          int       `json:"downvotes"`
	PublishedAt        time.Time `json:"published_at"`
	FetchedAt          time.Time `json:"fetched_at"`
}

// ComparisonText returns the text used when comparing this article against
// a submission: headline and content joined by a single space.
func (a *Article) ComparisonText() string {
	return a.Headline + " " + a.Content
}
