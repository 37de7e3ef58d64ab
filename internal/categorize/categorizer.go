package categorize

import (
	"sort"
	"strings"
	"unicode"
)

// Uncategorized is assigned when no category keyword signal is strong enough
const Uncategorized = "uncategorized"

// minConfidence is the keyword-density floor below which an article stays
// uncategorized
const minConfidence = 0.01

// Categorizer assigns topic categories to articles by keyword matching
type Categorizer struct {
	keywords  map[string]map[string]struct{}
	stopwords map[string]struct{}
}

// NewCategorizer creates a categorizer with the built-in category keyword
// tables
func NewCategorizer() *Categorizer {
	keywords := make(map[string]map[string]struct{}, len(categoryKeywords))
	for category, words := range categoryKeywords {
		set := make(map[string]struct{}, len(words))
		for _, w := range words {
			set[w] = struct{}{}
		}
		keywords[category] = set
	}

	stop := make(map[string]struct{}, len(stopwordList))
	for _, w := range stopwordList {
		stop[w] = struct{}{}
	}

	return &Categorizer{keywords: keywords, stopwords: stop}
}

// Categorize assigns a category based on headline and content. The headline
// is counted twice so its keywords carry more weight. Returns the winning
// category, its confidence (keyword density), and the per-category scores.
func (c *Categorizer) Categorize(headline, content string) (string, float64, map[string]float64) {
	combined := headline + " " + headline + " " + content
	tokens := c.tokenize(combined)
	if len(tokens) == 0 {
		return Uncategorized, 0.0, map[string]float64{}
	}

	counts := make(map[string]int, len(c.keywords))
	for _, token := range tokens {
		for category, words := range c.keywords {
			if _, ok := words[token]; ok {
				counts[category]++
			}
		}
	}

	scores := make(map[string]float64, len(c.keywords))
	for category := range c.keywords {
		scores[category] = float64(counts[category]) / float64(len(tokens))
	}

	// Iterate in sorted order so ties resolve deterministically
	categories := make([]string, 0, len(scores))
	for category := range scores {
		categories = append(categories, category)
	}
	sort.Strings(categories)

	best, bestScore := Uncategorized, 0.0
	for _, category := range categories {
		if scores[category] > bestScore {
			best, bestScore = category, scores[category]
		}
	}

	if bestScore < minConfidence {
		return Uncategorized, 0.0, scores
	}
	return best, bestScore, scores
}

// tokenize lowercases, splits on non-letters, and drops stopwords and words
// of two letters or fewer
func (c *Categorizer) tokenize(text string) []string {
	raw := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r)
	})

	tokens := make([]string, 0, len(raw))
	for _, word := range raw {
		if len(word) <= 2 {
			continue
		}
		if _, ok := c.stopwords[word]; ok {
			continue
		}
		tokens = append(tokens, word)
	}
	return tokens
}
