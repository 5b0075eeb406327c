package generation

import (
	"strings"
)

const (
	openingWords      = 200
	openingMatchRatio = 0.95
)

// Opening returns the first 200 whitespace-separated words of text joined by single spaces.
func Opening(text string) string {
	words := strings.Fields(text)
	if len(words) > openingWords {
		words = words[:openingWords]
	}
	return strings.Join(words, " ")
}

// ValidateOpening reports whether the expanded story starts with the original's
// opening: at least 95% of the original's first 200 words must match
// position by position, ignoring case.
func ValidateOpening(original, expanded string) bool {
	want := strings.Fields(strings.ToLower(Opening(original)))
	if len(want) == 0 {
		return true
	}
	got := strings.Fields(strings.ToLower(Opening(expanded)))

	matches := 0
	for i := 0; i < len(want) && i < len(got); i++ {
		if want[i] == got[i] {
			matches++
		}
	}
	return float64(matches)/float64(len(want)) >= openingMatchRatio
}
