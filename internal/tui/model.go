package tui

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"storyforge/internal/domain"
	"storyforge/internal/scoring"
)

const maxResults = 10

type mode int

const (
	modeResults mode = iota
	modeContext
)

// Model is the Bubble Tea model for the knowledge base browser.
type Model struct {
	kb        domain.KnowledgeBase
	stories   map[string]domain.StoryMeta
	scorer    *scoring.Scorer
	input     textinput.Model
	viewport  viewport.Model
	results   []domain.SearchResult
	context   string
	mode      mode
	summary   string
	status    string
	cursor    int
	ready     bool
	lastQuery string
}

// New creates a browser over kb.
func New(kb domain.KnowledgeBase) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "Type a story prompt and press Enter"
	ti.Focus()
	ti.CharLimit = 0
	vp := viewport.New(0, 0)

	stories := make(map[string]domain.StoryMeta)
	for _, s := range kb.Stories() {
		stories[s.ID] = s
	}
	st := kb.Stats()
	summary := fmt.Sprintf("%d stories, %d chunks, %d words, avg chunk %d words | themes: %s",
		st.TotalStories, st.TotalChunks, st.TotalWords, st.AverageChunkSize, strings.Join(st.AvailableThemes, ", "))

	return Model{
		kb:       kb,
		stories:  stories,
		scorer:   scoring.NewScorer(),
		input:    ti,
		viewport: vp,
		summary:  summary,
		status:   "Loaded. Enter searches, Tab toggles context preview.",
	}
}

// Init initializes the model (text input cursor blink).
func (m Model) Init() tea.Cmd { return textinput.Blink }

// Update handles key and window events and updates the view state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ready = true
		_, rh := resultBoxStyle.GetFrameSize()
		_, qh := queryBoxStyle.GetFrameSize()
		reserved := 2 + 1 + qh + 1 // header, summary, status, spacer
		vh := msg.Height - reserved
		if vh < 3 {
			vh = 3
		}
		m.viewport.Width = max(20, msg.Width)
		m.viewport.Height = max(3, vh-rh)
		m.refresh()
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || msg.Type == tea.KeyCtrlD || msg.Type == tea.KeyEsc {
			return m, tea.Quit
		}
		switch msg.String() {
		case "enter":
			q := strings.TrimSpace(m.input.Value())
			if q != "" {
				m.results = m.kb.Search(q, maxResults)
				m.context = m.kb.GenerateContextForPrompt(q)
				m.cursor = 0
				m.lastQuery = q
				if len(m.results) == 0 {
					m.status = fmt.Sprintf("No chunk above threshold for %q; Tab shows the fallback context", q)
				} else {
					m.status = fmt.Sprintf("%d results for %q", len(m.results), q)
				}
				m.refresh()
				return m, nil
			}
		case "tab":
			if m.mode == modeResults {
				m.mode = modeContext
			} else {
				m.mode = modeResults
			}
			m.refresh()
			return m, nil
		case "down":
			if m.mode == modeResults && len(m.results) > 0 {
				m.cursor = (m.cursor + 1) % len(m.results)
				m.refresh()
				return m, nil
			}
		case "up":
			if m.mode == modeResults && len(m.results) > 0 {
				m.cursor = (m.cursor - 1 + len(m.results)) % len(m.results)
				m.refresh()
				return m, nil
			}
		case "pgdown":
			m.viewport.HalfViewDown()
			return m, nil
		case "pgup":
			m.viewport.HalfViewUp()
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View renders the TUI layout and current result.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	header := lipgloss.NewStyle().Bold(true).Render("Storyforge Knowledge Base")
	summary := lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Render(m.summary)
	input := queryBoxStyle.Render(m.input.View())
	status := lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Render(m.status)
	results := resultBoxStyle.Render(m.viewport.View())
	return header + "\n" + summary + "\n" + results + "\n" + input + "\n" + status
}

func (m *Model) refresh() {
	if m.mode == modeContext {
		m.viewport.SetContent(m.renderContext())
	} else {
		m.viewport.SetContent(m.renderCurrentResult())
	}
	m.viewport.GotoTop()
}

func (m Model) renderContext() string {
	if m.context == "" {
		return "Search first to preview the generation context."
	}
	return m.context
}

func (m Model) renderCurrentResult() string {
	if len(m.results) == 0 {
		return "No results yet."
	}
	r := m.results[m.cursor]
	var b strings.Builder
	b.WriteString(fmt.Sprintf("Result %d/%d  score=%.3f  %s\n", m.cursor+1, len(m.results), r.Score, r.Chunk.ID))
	if meta, ok := m.stories[r.Chunk.StoryID]; ok {
		b.WriteString(titleStyle.Render(meta.Title))
		b.WriteString("\n")
		if meta.Synopsis != "" {
			b.WriteString(dimStyle.Render(meta.Synopsis))
			b.WriteString("\n")
		}
		b.WriteString(dimStyle.Render(fmt.Sprintf("plot: %s | style: %s",
			strings.Join(meta.PlotStructure, ", "), strings.Join(meta.WritingStyle, ", "))))
		b.WriteString("\n")
	}
	b.WriteString(fmt.Sprintf("themes: [%s]  words: %d\n\n", strings.Join(r.Chunk.Themes, ", "), r.Chunk.WordCount))
	b.WriteString(m.highlightBestSentence(r.Chunk.Content, m.lastQuery))
	return b.String()
}

var (
	resultBoxStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	queryBoxStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	highlightStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
	titleStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true)
	dimStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	sentenceRe     = regexp.MustCompile(`(?m)(?U)([^.!?]+[.!?])`)
)

// highlightBestSentence emphasizes the sentence sharing the most content words with query.
func (m Model) highlightBestSentence(text, query string) string {
	if strings.TrimSpace(text) == "" {
		return text
	}
	sentences := sentenceRe.FindAllString(text, -1)
	if len(sentences) == 0 {
		sentences = []string{strings.TrimSpace(text)}
	}
	qTokens := m.scorer.TokenSet(query)
	if len(qTokens) == 0 {
		return strings.Join(sentences, " ")
	}
	bestIdx := 0
	bestScore := -1
	for i, s := range sentences {
		score := 0
		for tok := range m.scorer.TokenSet(s) {
			if _, ok := qTokens[tok]; ok {
				score++
			}
		}
		if score > bestScore {
			bestScore = score
			bestIdx = i
		}
	}
	for i := range sentences {
		sent := strings.TrimSpace(sentences[i])
		if i == bestIdx {
			sentences[i] = highlightStyle.Render(sent)
		} else {
			sentences[i] = sent
		}
	}
	return strings.Join(sentences, " ")
}
