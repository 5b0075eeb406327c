package analyzer

import (
	"regexp"
	"strings"
)

// ThemeRule assigns Tag to a text when at least two of its keywords occur in it.
type ThemeRule struct {
	Tag      string
	Keywords []string
}

// minThemeMatches is the number of distinct keywords a text needs to earn a theme.
const minThemeMatches = 2

// ThemeRules is the theme vocabulary, in reporting order. Keywords are lowercase.
var ThemeRules = []ThemeRule{
	{Tag: "revenge", Keywords: []string{"revenge", "payback", "get back", "retaliation", "justice", "reckoning"}},
	{Tag: "betrayal", Keywords: []string{"betray", "cheat", "deceive", "lie", "backstab", "unfaithful"}},
	{Tag: "family_drama", Keywords: []string{"sister", "brother", "mother", "father", "family", "parent"}},
	{Tag: "financial_fraud", Keywords: []string{"money", "credit", "fraud", "steal", "bank", "account", "debt"}},
	{Tag: "relationships", Keywords: []string{"wedding", "marriage", "boyfriend", "girlfriend", "love", "dating"}},
	{Tag: "legal_consequences", Keywords: []string{"lawyer", "court", "police", "fbi", "arrest", "prison"}},
	{Tag: "social_humiliation", Keywords: []string{"embarrass", "shame", "public", "humiliate", "expose"}},
	{Tag: "manipulation", Keywords: []string{"manipulate", "control", "scheme", "plan", "trick"}},
}

// PhraseRule assigns Tag when any of its phrases occurs in the lowercased text.
type PhraseRule struct {
	Tag     string
	Phrases []string
}

// PlotRules are evaluated in order; each tag is a presence flag, not a position in the text.
var PlotRules = []PhraseRule{
	{Tag: "backstory_opening", Phrases: []string{"when i was", "growing up"}},
	{Tag: "discovery_moment", Phrases: []string{"i discovered", "i found out"}},
	{Tag: "planning_phase", Phrases: []string{"i planned", "i decided"}},
	{Tag: "execution_scene", Phrases: []string{"the day of", "at the"}},
	{Tag: "aftermath_resolution", Phrases: []string{"months later", "years later"}},
}

func (r PhraseRule) matches(lower string) bool {
	for _, p := range r.Phrases {
		if strings.Contains(lower, p) {
			return true
		}
	}
	return false
}

const (
	detailedMinAvgSentence = 100.0
	conciseMaxAvgSentence  = 50.0
	dialogueMinQuotes      = 10
	firstPersonMinCount    = 20
)

var (
	sentenceSplitter = regexp.MustCompile(`[.!?]+`)
	firstPersonWord  = regexp.MustCompile(`(?i)\bi\b`)
	repeatedBang     = regexp.MustCompile(`!{2,}`)
)

// styleSignals are the measurements style rules are evaluated against.
type styleSignals struct {
	text        string
	lower       string
	avgSentence float64
}

func measureStyle(text string) styleSignals {
	sentences := sentenceSplitter.Split(text, -1)
	total := 0
	for _, s := range sentences {
		total += len([]rune(s))
	}
	return styleSignals{
		text:        text,
		lower:       strings.ToLower(text),
		avgSentence: float64(total) / float64(len(sentences)),
	}
}

// StyleRule assigns Tag when Match reports true for the measured text.
type StyleRule struct {
	Tag   string
	Match func(s styleSignals) bool
}

// StyleRules are independent of each other, except that concise_punchy never
// fires together with detailed_descriptive.
var StyleRules = []StyleRule{
	{Tag: "detailed_descriptive", Match: func(s styleSignals) bool {
		return s.avgSentence > detailedMinAvgSentence
	}},
	{Tag: "concise_punchy", Match: func(s styleSignals) bool {
		return s.avgSentence < conciseMaxAvgSentence && s.avgSentence <= detailedMinAvgSentence
	}},
	{Tag: "dialogue_heavy", Match: func(s styleSignals) bool {
		return strings.Count(s.text, `"`) > dialogueMinQuotes
	}},
	{Tag: "first_person_narrative", Match: func(s styleSignals) bool {
		return strings.Contains(s.lower, "i ") && len(firstPersonWord.FindAllStringIndex(s.text, -1)) > firstPersonMinCount
	}},
	{Tag: "emotionally_intense", Match: func(s styleSignals) bool {
		return repeatedBang.MatchString(s.text) ||
			strings.Contains(s.lower, "furious") ||
			strings.Contains(s.lower, "devastated")
	}},
}
