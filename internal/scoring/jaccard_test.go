package scoring

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

const (
	weddingStory = "A sister stole a wedding dress and wore it."
	projectStory = "A coworker stole credit for a project."
)

func TestScore(t *testing.T) {
	s := NewScorer()
	tests := []struct {
		name string
		a, b string
		want float64
	}{
		{"jaccard plus two keyword bonuses", "sister wedding dress", weddingStory, 0.8},
		{"no overlap", "sister wedding dress", projectStory, 0},
		{"plain jaccard", "coworker project", projectStory, 0.5},
		{"keyword bonus is substring based", "planet", "airplane", 0.1},
		{"short tokens ignored", "an ox is up", "an ox is up", 0},
		{"stop words ignored", "the water", "the water", 0},
		{"empty", "", "", 0},
		{"case insensitive", "SISTER", "sister", 1.0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, s.Score(tt.a, tt.b), 1e-9)
		})
	}
}

func TestScore_ClampedToOne(t *testing.T) {
	s := NewScorer()
	all := strings.Join(defaultThemeKeywords(), " ")
	assert.InDelta(t, 1.0, s.Score(all, all+" extra words here"), 1e-9)
}

func TestScore_Symmetric(t *testing.T) {
	s := NewScorer()
	assert.InDelta(t, s.Score(weddingStory, projectStory), s.Score(projectStory, weddingStory), 1e-12)
}

func TestTokenSet(t *testing.T) {
	s := NewScorer()
	got := s.TokenSet("The sister's wedding-dress, and HER money!")
	want := map[string]struct{}{"sister": {}, "wedding": {}, "dress": {}, "money": {}}
	assert.Equal(t, want, got)
}
