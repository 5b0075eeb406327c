// Package analyzer derives titles, themes, plot structure and writing style from story text.
package analyzer

import (
	"strings"

	"storyforge/internal/domain"
)

const (
	maxTitleRunes  = 100
	untitled       = "Untitled"
	synopsisLength = 2
	titleEllipsis  = "..."
)

// Analyzer classifies stories with the package rule tables.
type Analyzer struct {
	summarizer domain.Summarizer
}

// New returns an Analyzer. The summarizer is optional; without it stories get no synopsis.
func New(summarizer domain.Summarizer) *Analyzer {
	return &Analyzer{summarizer: summarizer}
}

// Analyze produces the metadata for one story.
func (a *Analyzer) Analyze(story domain.Story) domain.StoryMeta {
	meta := domain.StoryMeta{
		ID:             story.ID,
		Title:          Title(story.Content),
		MainThemes:     Themes(story.Content),
		CharacterCount: len([]rune(story.Content)),
		PlotStructure:  PlotStructure(story.Content),
		WritingStyle:   WritingStyle(story.Content),
	}
	if a.summarizer != nil {
		if synopsis, err := a.summarizer.Summarize(story.Content, synopsisLength); err == nil {
			meta.Synopsis = synopsis
		}
	}
	return meta
}

// Themes classifies arbitrary text (story, chunk or query).
func (a *Analyzer) Themes(text string) []string { return Themes(text) }

// Title returns the first non-empty line cut to 100 characters with an ellipsis appended.
func Title(text string) string {
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		r := []rune(line)
		if len(r) > maxTitleRunes {
			r = r[:maxTitleRunes]
		}
		return string(r) + titleEllipsis
	}
	return untitled
}

// Themes returns every theme tag for which at least two distinct keywords
// occur in text, ignoring case. The result is never nil.
func Themes(text string) []string {
	lower := strings.ToLower(text)
	themes := []string{}
	for _, rule := range ThemeRules {
		matches := 0
		for _, kw := range rule.Keywords {
			if strings.Contains(lower, kw) {
				matches++
			}
		}
		if matches >= minThemeMatches {
			themes = append(themes, rule.Tag)
		}
	}
	return themes
}

// PlotStructure returns the plot tags whose phrases occur in text, in rule order.
func PlotStructure(text string) []string {
	lower := strings.ToLower(text)
	tags := []string{}
	for _, rule := range PlotRules {
		if rule.matches(lower) {
			tags = append(tags, rule.Tag)
		}
	}
	return tags
}

// WritingStyle returns the style tags whose rules match text.
func WritingStyle(text string) []string {
	signals := measureStyle(text)
	tags := []string{}
	for _, rule := range StyleRules {
		if rule.Match(signals) {
			tags = append(tags, rule.Tag)
		}
	}
	return tags
}
