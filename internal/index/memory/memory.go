// Package memory holds the chunk index in process memory.
package memory

import (
	"sort"

	"storyforge/internal/domain"
)

// ScoreFunc scores one chunk's content against a query.
type ScoreFunc func(query, content string) float64

// Index is an immutable, corpus-ordered collection of chunks. It is safe for
// concurrent readers because nothing mutates it after New.
type Index struct {
	chunks  []domain.Chunk
	byStory map[string][]int
}

// New builds an index over chunks, keeping their order.
func New(chunks []domain.Chunk) *Index {
	idx := &Index{
		chunks:  make([]domain.Chunk, len(chunks)),
		byStory: make(map[string][]int),
	}
	copy(idx.chunks, chunks)
	for i, ch := range idx.chunks {
		idx.byStory[ch.StoryID] = append(idx.byStory[ch.StoryID], i)
	}
	return idx
}

// Len returns the number of indexed chunks.
func (s *Index) Len() int { return len(s.chunks) }

// All returns a copy of every chunk in corpus order.
func (s *Index) All() []domain.Chunk {
	out := make([]domain.Chunk, len(s.chunks))
	copy(out, s.chunks)
	return out
}

// Search scores every chunk, keeps those strictly above minScore and returns
// the best topK by descending score. Equal scores keep corpus order.
func (s *Index) Search(query string, score ScoreFunc, minScore float64, topK int) []domain.SearchResult {
	if topK <= 0 {
		return nil
	}
	var results []domain.SearchResult
	for _, ch := range s.chunks {
		sc := score(query, ch.Content)
		if sc > minScore {
			results = append(results, domain.SearchResult{Chunk: ch, Score: sc})
		}
	}
	sort.SliceStable(results, func(i, j int) bool { return results[i].Score > results[j].Score })
	if topK < len(results) {
		results = results[:topK]
	}
	return results
}

// ByTheme returns the first maxResults chunks, in corpus order, that carry any of themes.
func (s *Index) ByTheme(themes []string, maxResults int) []domain.Chunk {
	if maxResults <= 0 || len(themes) == 0 {
		return nil
	}
	wanted := make(map[string]struct{}, len(themes))
	for _, t := range themes {
		wanted[t] = struct{}{}
	}
	var out []domain.Chunk
	for _, ch := range s.chunks {
		if !hasAny(ch.Themes, wanted) {
			continue
		}
		out = append(out, ch)
		if len(out) == maxResults {
			break
		}
	}
	return out
}

// FirstOfStory returns the lowest-index chunk of a story.
func (s *Index) FirstOfStory(storyID string) (domain.Chunk, bool) {
	positions := s.byStory[storyID]
	if len(positions) == 0 {
		return domain.Chunk{}, false
	}
	return s.chunks[positions[0]], true
}

func hasAny(tags []string, wanted map[string]struct{}) bool {
	for _, t := range tags {
		if _, ok := wanted[t]; ok {
			return true
		}
	}
	return false
}
