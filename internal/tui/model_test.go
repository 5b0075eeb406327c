package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storyforge/internal/corpus"
	"storyforge/internal/knowledge"
)

const browseCorpus = `Story1: My sister stole my wedding dress. Then she wore it to church.
Story2: A coworker stole credit for my project. My boss believed him.`

func newModel(t *testing.T) Model {
	t.Helper()
	stories, err := corpus.Parse(browseCorpus)
	require.NoError(t, err)
	m := New(knowledge.Build(stories, knowledge.DefaultOptions()))
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return updated.(Model)
}

func typeQuery(t *testing.T, m Model, q string) Model {
	t.Helper()
	m.input.SetValue(q)
	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	return updated.(Model)
}

func TestNew_Summary(t *testing.T) {
	m := newModel(t)
	assert.Contains(t, m.summary, "2 stories, 2 chunks")
	assert.Contains(t, m.View(), "Storyforge Knowledge Base")
}

func TestView_BeforeResize(t *testing.T) {
	stories, err := corpus.Parse(browseCorpus)
	require.NoError(t, err)
	m := New(knowledge.Build(stories, knowledge.DefaultOptions()))
	assert.Equal(t, "Loading...", m.View())
}

func TestSearchAndCycle(t *testing.T) {
	m := typeQuery(t, newModel(t), "sister wedding dress church")

	require.NotEmpty(t, m.results)
	assert.Equal(t, "story_1", m.results[0].Chunk.StoryID)
	assert.Contains(t, m.status, "results for")

	rendered := m.renderCurrentResult()
	assert.Contains(t, rendered, "Result 1/")
	assert.Contains(t, rendered, "My sister stole my wedding dress")

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m = updated.(Model)
	assert.Equal(t, 1%len(m.results), m.cursor)
}

func TestNoResults(t *testing.T) {
	m := typeQuery(t, newModel(t), "zzz qqq")

	assert.Empty(t, m.results)
	assert.Contains(t, m.status, "No chunk above threshold")
	assert.Equal(t, "No results yet.", m.renderCurrentResult())
	assert.NotEmpty(t, m.context)
}

func TestContextToggle(t *testing.T) {
	m := newModel(t)
	assert.Equal(t, "Search first to preview the generation context.", m.renderContext())

	m = typeQuery(t, m, "coworker project")
	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = updated.(Model)

	assert.Equal(t, modeContext, m.mode)
	assert.True(t, strings.HasPrefix(m.renderContext(), "REFERENCE EXAMPLES FROM KNOWLEDGE BASE:"))

	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, modeResults, updated.(Model).mode)
}

func TestHighlightBestSentence(t *testing.T) {
	m := newModel(t)
	out := m.highlightBestSentence("The weather was fine. My sister stole the dress. We left.", "sister dress")
	assert.Contains(t, out, "My sister stole the dress.")
	assert.Contains(t, out, "The weather was fine.")

	assert.Equal(t, "  ", m.highlightBestSentence("  ", "x"))
}

func TestQuitKeys(t *testing.T) {
	m := newModel(t)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}
