package generation

import (
	"context"
	"strings"
	"sync"
)

// MockLLM is a deterministic LLM implementation for tests and offline runs.
type MockLLM struct {
	// Response is the fixed text returned by Generate.
	// If empty, the story prompt inside the <prompt> tags is echoed back.
	Response string

	// Error, if set, is returned by Generate instead of a response.
	Error error

	mu         sync.Mutex
	lastSystem string
	lastUser   string
	calls      int
}

// NewMockLLM creates a mock LLM with the given fixed response.
func NewMockLLM(response string) *MockLLM {
	return &MockLLM{Response: response}
}

// NewMockLLMWithError creates a mock LLM that always returns an error.
func NewMockLLMWithError(err error) *MockLLM {
	return &MockLLM{Error: err}
}

// Model returns a fixed identifier.
func (m *MockLLM) Model() string { return "mock" }

// Generate returns the configured response or echoes the prompt.
func (m *MockLLM) Generate(ctx context.Context, system, user string) (string, error) {
	m.mu.Lock()
	m.lastSystem, m.lastUser = system, user
	m.calls++
	m.mu.Unlock()

	if m.Error != nil {
		return "", m.Error
	}
	if m.Response != "" {
		return m.Response, nil
	}
	return echoPrompt(user), nil
}

// Last returns the most recent system and user messages.
func (m *MockLLM) Last() (system, user string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastSystem, m.lastUser
}

// Calls reports how many times Generate ran.
func (m *MockLLM) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

func echoPrompt(user string) string {
	start := strings.Index(user, "<prompt>")
	end := strings.Index(user, "</prompt>")
	if start < 0 || end < start {
		return user
	}
	return strings.TrimSpace(user[start+len("<prompt>") : end])
}
