package domain

// Story is one raw story extracted from the corpus file.
type Story struct {
	ID       string
	Position int
	Content  string
}

// StoryMeta holds the derived description of a single story.
type StoryMeta struct {
	ID             string   `json:"id"`
	Title          string   `json:"title"`
	MainThemes     []string `json:"mainThemes"`
	CharacterCount int      `json:"characterCount"`
	PlotStructure  []string `json:"plotStructure"`
	WritingStyle   []string `json:"writingStyle"`
	Synopsis       string   `json:"synopsis,omitempty"`
}

// Chunk is an overlapping word window of one story, the unit of retrieval.
type Chunk struct {
	ID         string   `json:"id"`
	Content    string   `json:"content"`
	StoryID    string   `json:"storyId"`
	ChunkIndex int      `json:"chunkIndex"`
	WordCount  int      `json:"wordCount"`
	Themes     []string `json:"themes"`
}

// SearchResult represents a matching chunk with a relevance score.
type SearchResult struct {
	Chunk Chunk
	Score float64
}

// Stats is a read-only snapshot of the knowledge base.
type Stats struct {
	TotalStories     int      `json:"totalStories"`
	TotalChunks      int      `json:"totalChunks"`
	TotalWords       int      `json:"totalWords"`
	AvailableThemes  []string `json:"availableThemes"`
	AverageChunkSize int      `json:"averageChunkSize"`
}

// Chunker splits stories into chunks suitable for retrieval.
type Chunker interface {
	Chunk(story Story) []Chunk
}

// Analyzer derives story metadata and classifies free text by theme.
type Analyzer interface {
	Analyze(story Story) StoryMeta
	Themes(text string) []string
}

// Summarizer produces a brief summary of the provided text.
type Summarizer interface {
	Summarize(text string, maxSentences int) (string, error)
}

// KnowledgeBase defines the retrieval operations exposed to the generation builder and UIs.
type KnowledgeBase interface {
	SearchRelevantChunks(query string, maxResults int) []Chunk
	Search(query string, maxResults int) []SearchResult
	FindExamplesByTheme(themes []string, maxResults int) []Chunk
	GetWritingStyleExamples(styleFeatures []string, maxResults int) []Chunk
	GenerateContextForPrompt(userPrompt string) string
	Stories() []StoryMeta
	Stats() Stats
}
