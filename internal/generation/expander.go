package generation

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"
)

// ContextSource supplies reference context for a story prompt.
// knowledge.Provider satisfies it.
type ContextSource interface {
	Context(prompt string) string
}

// Expansion is one generated story.
type Expansion struct {
	Story            string    `json:"story"`
	WordCount        int       `json:"word_count"`
	OpeningPreserved bool      `json:"opening_preserved"`
	Model            string    `json:"model"`
	GeneratedAt      time.Time `json:"generated_at"`
}

// Expander turns a short story prompt into a long-form story using retrieved
// reference context and an LLM.
type Expander struct {
	llm     LLM
	source  ContextSource
	model   string
	timeNow func() time.Time
}

// NewExpander creates an expander. model is reported in results only.
func NewExpander(llm LLM, source ContextSource, model string) *Expander {
	return &Expander{
		llm:     llm,
		source:  source,
		model:   model,
		timeNow: time.Now,
	}
}

// Expand generates a story for storyPrompt. custom may be nil for the built-in prompts.
// A changed opening is logged and reported, never treated as a failure.
func (e *Expander) Expand(ctx context.Context, storyPrompt string, custom *CustomPrompt) (*Expansion, error) {
	if strings.TrimSpace(storyPrompt) == "" {
		return nil, ErrEmptyPrompt
	}
	if e.llm == nil {
		return nil, fmt.Errorf("%w: LLM is required", ErrInvalidConfig)
	}

	system, user := Messages(storyPrompt, e.Context(storyPrompt), custom)

	text, err := e.llm.Generate(ctx, system, user)
	if err != nil {
		if errors.Is(err, ErrLLMFailed) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", ErrLLMFailed, err)
	}

	preserved := ValidateOpening(storyPrompt, text)
	if preserved {
		log.Printf("[gen] opening preserved")
	} else {
		log.Printf("[gen] expanded story does not preserve the opening")
		log.Printf("[gen] original opening: %s", Opening(storyPrompt))
		log.Printf("[gen] expanded opening: %s", Opening(text))
	}

	return &Expansion{
		Story:            text,
		WordCount:        len(strings.Fields(text)),
		OpeningPreserved: preserved,
		Model:            e.model,
		GeneratedAt:      e.timeNow(),
	}, nil
}

// Context returns the reference context used for storyPrompt.
func (e *Expander) Context(storyPrompt string) string {
	if e.source == nil {
		return ""
	}
	return e.source.Context(storyPrompt)
}
