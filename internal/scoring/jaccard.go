// Package scoring implements the lexical similarity used to rank chunks against a query.
package scoring

import (
	"regexp"
	"strings"
)

const (
	minTokenLength = 3
	keywordBonus   = 0.1
	maxScore       = 1.0
)

// Scorer computes Jaccard similarity over filtered word sets plus a bonus for
// theme keywords that both texts mention.
type Scorer struct {
	separator *regexp.Regexp
	stopwords map[string]struct{}
	keywords  []string
}

// NewScorer returns a Scorer with the default stop words and theme keywords.
func NewScorer() *Scorer {
	return &Scorer{
		separator: regexp.MustCompile(`\W+`),
		stopwords: defaultStopwords(),
		keywords:  defaultThemeKeywords(),
	}
}

// Score returns a similarity in [0, 1] between two texts.
func (s *Scorer) Score(a, b string) float64 {
	setA := s.TokenSet(a)
	setB := s.TokenSet(b)

	base := 0.0
	union := len(setA)
	inter := 0
	for t := range setB {
		if _, ok := setA[t]; ok {
			inter++
		} else {
			union++
		}
	}
	if union > 0 {
		base = float64(inter) / float64(union)
	}

	lowerA := strings.ToLower(a)
	lowerB := strings.ToLower(b)
	bonus := 0.0
	for _, kw := range s.keywords {
		if strings.Contains(lowerA, kw) && strings.Contains(lowerB, kw) {
			bonus += keywordBonus
		}
	}

	score := base + bonus
	if score > maxScore {
		score = maxScore
	}
	return score
}

// TokenSet lowercases text, splits it on non-word runs and drops short tokens and stop words.
func (s *Scorer) TokenSet(text string) map[string]struct{} {
	raw := s.separator.Split(strings.ToLower(text), -1)
	set := make(map[string]struct{}, len(raw))
	for _, t := range raw {
		if len(t) < minTokenLength {
			continue
		}
		if _, isStop := s.stopwords[t]; isStop {
			continue
		}
		set[t] = struct{}{}
	}
	return set
}

func defaultThemeKeywords() []string {
	return []string{
		"revenge", "betrayal", "sister", "wedding", "money", "credit", "fraud", "family", "marriage", "boyfriend",
		"girlfriend", "cheat", "lie", "steal", "plan", "scheme", "humiliate", "expose", "justice", "payback",
	}
}

func defaultStopwords() map[string]struct{} {
	words := []string{
		"the", "and", "but", "for", "you", "are", "any", "can", "had", "her", "was", "one", "our", "out", "day", "get", "has", "him", "his", "how", "its", "may", "new", "now", "old", "see", "two", "who", "boy", "did", "man", "car", "way", "use", "she", "all", "not", "from", "they", "said", "each", "which", "their", "time", "will", "about", "would", "there", "could", "other", "after", "first", "well", "water", "been", "call", "where", "find", "right", "think", "came", "just", "like", "long", "make", "many", "over", "such", "take", "than", "them", "were",
	}
	m := make(map[string]struct{}, len(words))
	for _, w := range words {
		m[w] = struct{}{}
	}
	return m
}
