package knowledge

import (
	"fmt"
	"strings"

	"storyforge/internal/domain"
)

const (
	contextHeader    = "REFERENCE EXAMPLES FROM KNOWLEDGE BASE:\n\n"
	exampleDivider   = "=================================================="
	truncationMarker = "..."
)

// DefaultThemes are used when neither the prompt text nor its themes match any chunk.
var DefaultThemes = []string{"revenge", "betrayal", "family_drama"}

// WritingGuidelines is appended to every generated context.
const WritingGuidelines = `WRITING GUIDELINES:
- Follow the EXACT narrative style shown in the examples above
- Use first-person perspective throughout
- Include detailed character development and realistic dialogue  
- Build tension through careful pacing and plot progression
- Create emotional engagement with specific details and consequences
- Structure with clear acts: setup → conflict → planning → execution → resolution
- Include realistic aftermath and long-term consequences
- Match the tone, pacing, and emotional intensity of the reference examples
- Use similar themes and plot structures when appropriate`

// SelectExamples picks the reference chunks for a prompt: the best lexical
// matches, else chunks sharing the prompt's themes, else chunks with a default theme.
func (kb *KnowledgeBase) SelectExamples(userPrompt string) []domain.Chunk {
	n := kb.opts.ContextResults
	if examples := kb.SearchRelevantChunks(userPrompt, n); len(examples) > 0 {
		return examples
	}
	if themes := kb.PromptThemes(userPrompt); len(themes) > 0 {
		if examples := kb.FindExamplesByTheme(themes, n); len(examples) > 0 {
			return examples
		}
	}
	return kb.FindExamplesByTheme(DefaultThemes, n)
}

// GenerateContextForPrompt renders the selected examples and the writing
// guidelines into the reference block of a generation prompt. It never
// returns an empty string.
func (kb *KnowledgeBase) GenerateContextForPrompt(userPrompt string) string {
	return FormatContext(kb.SelectExamples(userPrompt), kb.opts.ExampleChars)
}

// FormatContext renders examples, each cut to exampleChars characters, followed by the guidelines.
func FormatContext(examples []domain.Chunk, exampleChars int) string {
	var b strings.Builder
	b.WriteString(contextHeader)
	for i, ch := range examples {
		b.WriteString(fmt.Sprintf("EXAMPLE %d - Themes: [%s]\n", i+1, strings.Join(ch.Themes, ", ")))
		b.WriteString("NARRATIVE STYLE REFERENCE:\n")
		content := []rune(ch.Content)
		truncated := len(content) > exampleChars
		if truncated {
			content = content[:exampleChars]
		}
		b.WriteString(string(content))
		b.WriteString("\n")
		if truncated {
			b.WriteString(truncationMarker + "\n")
		}
		b.WriteString("\n" + exampleDivider + "\n\n")
	}
	b.WriteString(WritingGuidelines)
	return b.String()
}
