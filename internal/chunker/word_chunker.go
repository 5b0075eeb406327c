package chunker

import (
	"strconv"
	"strings"

	"storyforge/internal/domain"
)

const (
	// DefaultMaxChunkWords is the window size in words.
	DefaultMaxChunkWords = 800
	// DefaultOverlapWords is how many words consecutive chunks share.
	DefaultOverlapWords = 100
)

// ThemeFunc classifies a chunk's own text.
type ThemeFunc func(text string) []string

// WordChunker splits stories into overlapping word windows.
type WordChunker struct {
	maxChunkWords int
	overlapWords  int
	themes        ThemeFunc
}

// NewWordChunker returns a chunker. Non-positive sizes fall back to the defaults
// and the overlap is kept below the window so every step advances.
func NewWordChunker(maxChunkWords, overlapWords int, themes ThemeFunc) *WordChunker {
	if maxChunkWords <= 0 {
		maxChunkWords = DefaultMaxChunkWords
	}
	if overlapWords < 0 {
		overlapWords = 0
	}
	if overlapWords >= maxChunkWords {
		overlapWords = maxChunkWords - 1
	}
	return &WordChunker{
		maxChunkWords: maxChunkWords,
		overlapWords:  overlapWords,
		themes:        themes,
	}
}

// Chunk splits the story into windows of at most maxChunkWords words, each
// starting overlapWords before the previous one ended. It stops once the next
// start would be within overlapWords of the end of the story.
func (c *WordChunker) Chunk(story domain.Story) []domain.Chunk {
	words := strings.Fields(story.Content)
	total := len(words)
	if total == 0 {
		return nil
	}
	var chunks []domain.Chunk
	start := 0
	idx := 0
	for start < total {
		end := start + c.maxChunkWords
		if end > total {
			end = total
		}
		text := strings.Join(words[start:end], " ")
		chunk := domain.Chunk{
			ID:         story.ID + "_chunk_" + strconv.Itoa(idx),
			Content:    text,
			StoryID:    story.ID,
			ChunkIndex: idx,
			WordCount:  end - start,
			Themes:     []string{},
		}
		if c.themes != nil {
			chunk.Themes = c.themes(text)
		}
		chunks = append(chunks, chunk)
		idx++
		start = end - c.overlapWords
		if start >= total-c.overlapWords {
			break
		}
	}
	return chunks
}
