package segment

import "strings"

// Segmenter splits raw text into sentence-sized units for fine-grained
// similarity comparison
type Segmenter struct {
	minTokens int
}

// NewSegmenter creates a segmenter that drops segments with minTokens or
// fewer whitespace-delimited tokens
func NewSegmenter(minTokens int) *Segmenter {
	if minTokens < 0 {
		minTokens = 3
	}
	return &Segmenter{minTokens: minTokens}
}

// Split splits text into sentences, preserving input order. Fragments too
// short to carry standalone meaning are discarded. Empty or whitespace-only
// input yields no segments.
func (s *Segmenter) Split(text string) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	// Newlines act as plain whitespace, not boundaries
	text = strings.ReplaceAll(text, "\n", " ")

	var segments []string
	var current strings.Builder

	for i, r := range text {
		current.WriteRune(r)

		if r == '.' || r == '!' || r == '?' {
			// Only split when the terminator ends a word; this avoids
			// breaking on decimals and most abbreviations mid-sentence
			if i+1 >= len(text) || text[i+1] == ' ' || text[i+1] == '\t' {
				s.flush(&current, &segments)
			}
		}
	}

	// Trailing text without a terminator still counts as a segment
	s.flush(&current, &segments)

	return segments
}

func (s *Segmenter) flush(current *strings.Builder, segments *[]string) {
	sentence := strings.TrimSpace(current.String())
	current.Reset()

	if sentence == "" {
		return
	}
	if len(strings.Fields(sentence)) <= s.minTokens {
		return
	}
	*segments = append(*segments, sentence)
}
