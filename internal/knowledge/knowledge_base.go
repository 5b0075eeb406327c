// Package knowledge builds the retrieval knowledge base from the story corpus
// and assembles reference context for generation prompts.
package knowledge

import (
	"log"
	"math"

	"storyforge/internal/analyzer"
	"storyforge/internal/chunker"
	"storyforge/internal/corpus"
	"storyforge/internal/domain"
	"storyforge/internal/index/memory"
	"storyforge/internal/scoring"
	"storyforge/internal/summarizer"
)

// Options tunes chunking and retrieval. Zero fields take the defaults, except
// OverlapWords: zero disables overlap and a negative value takes the default.
type Options struct {
	MaxChunkWords  int
	OverlapWords   int
	MinScore       float64
	ContextResults int
	ExampleChars   int
}

// DefaultOptions returns the standard retrieval parameters.
func DefaultOptions() Options {
	return Options{
		MaxChunkWords:  chunker.DefaultMaxChunkWords,
		OverlapWords:   chunker.DefaultOverlapWords,
		MinScore:       0.05,
		ContextResults: 2,
		ExampleChars:   1000,
	}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.MaxChunkWords <= 0 {
		o.MaxChunkWords = d.MaxChunkWords
	}
	if o.OverlapWords < 0 {
		o.OverlapWords = d.OverlapWords
	}
	if o.MinScore <= 0 {
		o.MinScore = d.MinScore
	}
	if o.ContextResults <= 0 {
		o.ContextResults = d.ContextResults
	}
	if o.ExampleChars <= 0 {
		o.ExampleChars = d.ExampleChars
	}
	return o
}

// KnowledgeBase is the analysed, chunked corpus. It is immutable once built,
// so every method is safe for concurrent use.
type KnowledgeBase struct {
	opts     Options
	metas    []domain.StoryMeta
	index    *memory.Index
	scorer   *scoring.Scorer
	analyzer domain.Analyzer
	chunker  domain.Chunker
}

var _ domain.KnowledgeBase = (*KnowledgeBase)(nil)

// Initialize loads the corpus at path, analyses and chunks every story.
// It fails with corpus.ErrCorpusUnavailable or corpus.ErrCorpusEmpty.
func Initialize(path string, opts Options) (*KnowledgeBase, error) {
	log.Printf("[kb] loading knowledge base from %s", path)
	stories, err := corpus.Load(path)
	if err != nil {
		return nil, err
	}
	kb := Build(stories, opts)
	log.Printf("[kb] processed %d stories into %d chunks", len(kb.metas), kb.index.Len())
	return kb, nil
}

// Build analyses and chunks already loaded stories.
func Build(stories []domain.Story, opts Options) *KnowledgeBase {
	opts = opts.withDefaults()
	an := analyzer.New(summarizer.NewFrequencySummarizer())
	kb := &KnowledgeBase{
		opts:     opts,
		metas:    make([]domain.StoryMeta, 0, len(stories)),
		scorer:   scoring.NewScorer(),
		analyzer: an,
		chunker:  chunker.NewWordChunker(opts.MaxChunkWords, opts.OverlapWords, an.Themes),
	}

	var chunks []domain.Chunk
	for _, story := range stories {
		kb.metas = append(kb.metas, kb.analyzer.Analyze(story))
		chunks = append(chunks, kb.chunker.Chunk(story)...)
	}
	kb.index = memory.New(chunks)
	return kb
}

// Search returns the best scoring chunks above the minimum score with their scores.
func (kb *KnowledgeBase) Search(query string, maxResults int) []domain.SearchResult {
	return kb.index.Search(query, kb.scorer.Score, kb.opts.MinScore, maxResults)
}

// SearchRelevantChunks returns at most maxResults chunks ranked by similarity to query.
func (kb *KnowledgeBase) SearchRelevantChunks(query string, maxResults int) []domain.Chunk {
	results := kb.Search(query, maxResults)
	chunks := make([]domain.Chunk, len(results))
	for i, r := range results {
		chunks[i] = r.Chunk
	}
	return chunks
}

// FindExamplesByTheme returns the first maxResults chunks sharing a theme with themes.
func (kb *KnowledgeBase) FindExamplesByTheme(themes []string, maxResults int) []domain.Chunk {
	return kb.index.ByTheme(themes, maxResults)
}

// GetWritingStyleExamples returns the first chunk of each of the first
// maxResults stories whose writing style shares a tag with styleFeatures.
func (kb *KnowledgeBase) GetWritingStyleExamples(styleFeatures []string, maxResults int) []domain.Chunk {
	if maxResults <= 0 || len(styleFeatures) == 0 {
		return nil
	}
	var out []domain.Chunk
	matched := 0
	for _, meta := range kb.metas {
		if matched == maxResults {
			break
		}
		if !intersects(meta.WritingStyle, styleFeatures) {
			continue
		}
		matched++
		if first, ok := kb.index.FirstOfStory(meta.ID); ok {
			out = append(out, first)
		}
	}
	return out
}

// PromptThemes classifies a free-text prompt with the story theme rules.
func (kb *KnowledgeBase) PromptThemes(prompt string) []string {
	return kb.analyzer.Themes(prompt)
}

// Stories returns the metadata of every story in corpus order.
func (kb *KnowledgeBase) Stories() []domain.StoryMeta {
	out := make([]domain.StoryMeta, len(kb.metas))
	copy(out, kb.metas)
	return out
}

// Stats returns a snapshot of corpus size and theme coverage.
func (kb *KnowledgeBase) Stats() domain.Stats {
	chunks := kb.index.All()
	stats := domain.Stats{
		TotalStories:    len(kb.metas),
		TotalChunks:     len(chunks),
		AvailableThemes: []string{},
	}
	seen := make(map[string]struct{})
	for _, ch := range chunks {
		stats.TotalWords += ch.WordCount
		for _, t := range ch.Themes {
			if _, ok := seen[t]; ok {
				continue
			}
			seen[t] = struct{}{}
			stats.AvailableThemes = append(stats.AvailableThemes, t)
		}
	}
	if len(chunks) > 0 {
		stats.AverageChunkSize = int(math.Round(float64(stats.TotalWords) / float64(len(chunks))))
	}
	return stats
}

func intersects(a, b []string) bool {
	for _, x := range a {
		for _, y := range b {
			if x == y {
				return true
			}
		}
	}
	return false
}
