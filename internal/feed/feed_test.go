package feed

import (
	"testing"
	"time"

	"github.com/mmcdole/gofeed"

	"github.com/factnet/factnet/internal/model"
)

func TestCleanHTML(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "empty",
			input:    "",
			expected: "",
		},
		{
			name:     "plain text unchanged",
			input:    "Plain sentence without markup.",
			expected: "Plain sentence without markup.",
		},
		{
			name:     "tags stripped",
			input:    "<p>Central bank holds <b>rates</b> steady.</p>",
			expected: "Central bank holds rates steady.",
		},
		{
			name:     "script content dropped",
			input:    "<p>Visible text.</p><script>alert('x')</script>",
			expected: "Visible text.",
		},
		{
			name:     "whitespace collapsed",
			input:    "<div>First\n\n   part</div>\t<div>second part</div>",
			expected: "First part second part",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CleanHTML(tt.input)
			if got != tt.expected {
				t.Errorf("CleanHTML(%q) = %q, expected %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestAggregator_ItemToArticle(t *testing.T) {
	agg := NewAggregator(nil, nil, model.DefaultConfig().Feeds, nil)

	source := Source{Name: "BBC", Trusted: true}
	published := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	now := time.Date(2024, 3, 2, 9, 0, 0, 0, time.UTC)

	item := &gofeed.Item{
		Title:           "Rates <b>held</b> steady",
		Description:     "<p>The central bank kept interest rates unchanged.</p>",
		Link:            "https://example.org/news/rates",
		PublishedParsed: &published,
	}

	article, ok := agg.itemToArticle(item, source, now)
	if !ok {
		t.Fatal("expected item with link to map to an article")
	}
	if article.Headline != "Rates held steady" {
		t.Errorf("unexpected headline: %q", article.Headline)
	}
	if article.Content != "The central bank kept interest rates unchanged." {
		t.Errorf("unexpected content: %q", article.Content)
	}
	if article.Source != "BBC" || !article.IsTrusted {
		t.Errorf("source metadata not carried over: %+v", article)
	}
	if !article.PublishedAt.Equal(published) {
		t.Errorf("expected published time %v, got %v", published, article.PublishedAt)
	}
	if !article.FetchedAt.Equal(now) {
		t.Errorf("expected fetch time %v, got %v", now, article.FetchedAt)
	}
}

func TestAggregator_ItemToArticle_NoDate(t *testing.T) {
	agg := NewAggregator(nil, nil, model.DefaultConfig().Feeds, nil)

	now := time.Date(2024, 3, 2, 9, 0, 0, 0, time.UTC)
	item := &gofeed.Item{
		Title: "Undated story",
		Link:  "https://example.org/news/undated",
	}

	article, ok := agg.itemToArticle(item, Source{Name: "Reuters", Trusted: true}, now)
	if !ok {
		t.Fatal("expected item to map")
	}
	if !article.PublishedAt.Equal(now) {
		t.Errorf("expected fetch time as published fallback, got %v", article.PublishedAt)
	}
}

func TestAggregator_ItemToArticle_MissingLink(t *testing.T) {
	agg := NewAggregator(nil, nil, model.DefaultConfig().Feeds, nil)

	item := &gofeed.Item{Title: "No link"}
	if _, ok := agg.itemToArticle(item, Source{Name: "BBC"}, time.Now()); ok {
		t.Error("expected item without link to be dropped")
	}
}

func TestDefaultSources_Trusted(t *testing.T) {
	for _, source := range DefaultSources() {
		if !source.Trusted {
			t.Errorf("built-in source %q should be trusted", source.Name)
		}
		if len(source.Feeds) == 0 {
			t.Errorf("source %q has no feeds", source.Name)
		}
	}
}
