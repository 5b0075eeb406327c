// Package corpus reads the story corpus file and splits it into individual stories.
package corpus

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"

	"storyforge/internal/domain"
)

var (
	// ErrCorpusUnavailable is returned when the corpus file is missing or unreadable.
	ErrCorpusUnavailable = errors.New("corpus unavailable")
	// ErrCorpusEmpty is returned when the corpus holds no extractable story.
	ErrCorpusEmpty = errors.New("corpus empty")
)

// storyMarker matches "Story1:", "Story42:" and the whitespace after it.
// "Story 1:" is not a marker.
var storyMarker = regexp.MustCompile(`Story\d+:\s*`)

// Load reads the corpus at path and returns its stories in file order.
func Load(path string) ([]domain.Story, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrCorpusUnavailable, path, err)
	}
	stories, err := Parse(string(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return stories, nil
}

// Parse splits corpus text on story markers. Text before the first marker is
// not a story; whitespace-only segments are dropped.
func Parse(content string) ([]domain.Story, error) {
	if strings.TrimSpace(content) == "" {
		return nil, fmt.Errorf("%w: no content", ErrCorpusEmpty)
	}
	first := storyMarker.FindStringIndex(content)
	if first == nil {
		return nil, fmt.Errorf("%w: no story markers found", ErrCorpusEmpty)
	}
	var stories []domain.Story
	for _, segment := range storyMarker.Split(content[first[0]:], -1) {
		if strings.TrimSpace(segment) == "" {
			continue
		}
		n := len(stories) + 1
		stories = append(stories, domain.Story{
			ID:       "story_" + strconv.Itoa(n),
			Position: n,
			Content:  segment,
		})
	}
	if len(stories) == 0 {
		return nil, fmt.Errorf("%w: no stories found", ErrCorpusEmpty)
	}
	return stories, nil
}
