package generation

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storyforge/internal/corpus"
	"storyforge/internal/knowledge"
)

type staticSource string

func (s staticSource) Context(string) string { return string(s) }

func words(n int, word string) string {
	return strings.TrimSpace(strings.Repeat(word+" ", n))
}

func TestOpening(t *testing.T) {
	assert.Equal(t, "a b c", Opening("  a\n b\t c  "))
	assert.Len(t, strings.Fields(Opening(words(250, "w"))), 200)
	assert.Empty(t, Opening("   "))
}

func TestValidateOpening(t *testing.T) {
	original := words(200, "alpha")

	cases := []struct {
		name     string
		expanded string
		want     bool
	}{
		{"identical then continued", original + " " + words(5000, "beta"), true},
		{"case insensitive", strings.ToUpper(original), true},
		{"ten words changed", words(10, "gamma") + " " + words(190, "alpha"), true},
		{"eleven words changed", words(11, "gamma") + " " + words(189, "alpha"), false},
		{"shorter expansion", words(100, "alpha"), false},
		{"unrelated", words(300, "delta"), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ValidateOpening(original, tc.expanded))
		})
	}
}

func TestValidateOpening_ShortOriginal(t *testing.T) {
	assert.True(t, ValidateOpening("My sister stole my dress.", "My sister stole my dress. Then she left."))
	assert.False(t, ValidateOpening("My sister stole my dress.", "Her sister stole his dress."))
	assert.True(t, ValidateOpening("", "anything"))
}

func TestDefaultMessages(t *testing.T) {
	system, user := Messages("She lied.", "CTX-BLOCK", nil)

	assert.True(t, strings.HasPrefix(system, systemPreamble))
	assert.Contains(t, system, "\n\nCTX-BLOCK\n\n")
	assert.Less(t, strings.Index(system, "CTX-BLOCK"), strings.Index(system, "CRITICAL INSTRUCTIONS:"))
	assert.Contains(t, system, "MANDATORY REALISM REQUIREMENTS:")

	assert.True(t, strings.HasPrefix(user, "Story Prompt to Expand:\n\n<prompt>\nShe lied.\n</prompt>\n\n"))
	assert.Contains(t, user, "MINIMUM 14,000 WORDS")
}

func TestCustomMessages(t *testing.T) {
	custom := &CustomPrompt{
		System:      "SYS",
		Critical:    "CRIT",
		UserMessage: "Expand {{STORY_PROMPT}} now. Again: {{STORY_PROMPT}}",
	}
	system, user := Messages("the tale", "CTX", custom)

	assert.Equal(t, "SYS\n\nCTX\n\nCRIT\n\n\n\n", system)
	assert.Equal(t, "Expand the tale now. Again: the tale", user)
}

func TestCustomMessages_EmptyUserMessageFallsBack(t *testing.T) {
	_, user := Messages("the tale", "CTX", &CustomPrompt{System: "SYS"})
	assert.Equal(t, UserMessage("the tale"), user)
}

func TestExpander_Expand(t *testing.T) {
	prompt := words(200, "opening")
	llm := NewMockLLM(prompt + " " + words(50, "more"))
	fixed := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	e := NewExpander(llm, staticSource("REFERENCE"), "test-model")
	e.timeNow = func() time.Time { return fixed }

	got, err := e.Expand(context.Background(), prompt, nil)
	require.NoError(t, err)

	assert.True(t, got.OpeningPreserved)
	assert.Equal(t, 250, got.WordCount)
	assert.Equal(t, "test-model", got.Model)
	assert.Equal(t, fixed, got.GeneratedAt)

	system, user := llm.Last()
	assert.Contains(t, system, "REFERENCE")
	assert.Contains(t, user, "<prompt>\n"+prompt+"\n</prompt>")
	assert.Equal(t, 1, llm.Calls())
}

func TestExpander_ChangedOpeningIsNotAnError(t *testing.T) {
	e := NewExpander(NewMockLLM("Something else entirely."), staticSource(""), "m")

	got, err := e.Expand(context.Background(), "My sister stole my wedding dress.", nil)
	require.NoError(t, err)
	assert.False(t, got.OpeningPreserved)
}

func TestExpander_EmptyPrompt(t *testing.T) {
	llm := NewMockLLM("x")
	e := NewExpander(llm, staticSource(""), "m")

	_, err := e.Expand(context.Background(), "  \n ", nil)
	assert.ErrorIs(t, err, ErrEmptyPrompt)
	assert.Zero(t, llm.Calls())
}

func TestExpander_LLMFailure(t *testing.T) {
	boom := errors.New("boom")
	e := NewExpander(NewMockLLMWithError(boom), staticSource(""), "m")

	_, err := e.Expand(context.Background(), "prompt", nil)
	assert.ErrorIs(t, err, ErrLLMFailed)
	assert.ErrorIs(t, err, boom)
}

func TestExpander_LLMFailureWrappedOnce(t *testing.T) {
	llm := NewMockLLMWithError(fmt.Errorf("%w: boom", ErrLLMFailed))
	e := NewExpander(llm, staticSource(""), "m")

	_, err := e.Expand(context.Background(), "prompt", nil)
	require.ErrorIs(t, err, ErrLLMFailed)
	assert.Equal(t, 1, strings.Count(err.Error(), ErrLLMFailed.Error()))
}

func TestExpander_NilLLM(t *testing.T) {
	e := NewExpander(nil, staticSource(""), "m")
	_, err := e.Expand(context.Background(), "prompt", nil)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestExpander_UsesKnowledgeProvider(t *testing.T) {
	stories, err := corpus.Parse("Story1: A sister stole a wedding dress and wore it.\nStory2: A coworker stole credit for a project.")
	require.NoError(t, err)
	provider := knowledge.Ready(knowledge.Build(stories, knowledge.DefaultOptions()))

	llm := NewMockLLM("")
	e := NewExpander(llm, provider, "mock")

	got, err := e.Expand(context.Background(), "sister wedding dress", nil)
	require.NoError(t, err)
	assert.Equal(t, "sister wedding dress", got.Story)
	assert.True(t, got.OpeningPreserved)

	system, _ := llm.Last()
	assert.Contains(t, system, "REFERENCE EXAMPLES FROM KNOWLEDGE BASE:")
	assert.Contains(t, system, "A sister stole a wedding dress and wore it.")
}

func TestExpander_UnavailableKnowledgeBase(t *testing.T) {
	provider := knowledge.NewProvider(func() (*knowledge.KnowledgeBase, error) {
		return nil, corpus.ErrCorpusUnavailable
	})
	llm := NewMockLLM("done")
	e := NewExpander(llm, provider, "mock")

	_, err := e.Expand(context.Background(), "prompt", nil)
	require.NoError(t, err)

	system, _ := llm.Last()
	assert.Contains(t, system, knowledge.UnavailableContext)
}

func TestNewOpenAILLM_Validation(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")

	_, err := NewOpenAILLM(LLMConfig{Model: "gpt-4o"})
	assert.ErrorIs(t, err, ErrInvalidConfig)

	_, err = NewOpenAILLM(LLMConfig{APIKey: "sk-test"})
	assert.ErrorIs(t, err, ErrInvalidConfig)

	llm, err := NewOpenAILLM(LLMConfig{APIKey: "sk-test", Model: "gpt-4o"})
	require.NoError(t, err)
	assert.Equal(t, "gpt-4o", llm.Model())

	_, err = llm.Generate(context.Background(), "sys", "")
	assert.ErrorIs(t, err, ErrInvalidConfig)
}
