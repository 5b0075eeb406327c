package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storyforge/internal/config"
	"storyforge/internal/generation"
)

const cliCorpus = "Story1: A sister stole a wedding dress and wore it.\nStory2: A coworker stole credit for a project."

func writeConfig(t *testing.T, corpusPath string) string {
	t.Helper()
	dir := t.TempDir()
	cfg := &config.AppConfig{}
	cfg.Corpus.Path = corpusPath
	cfg.LLM.Type = "mock"
	cfg.Archive.DBPath = filepath.Join(dir, "archive.db")
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, config.Save(path, cfg))
	return path
}

func writeCorpus(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "Data.txt")
	require.NoError(t, os.WriteFile(path, []byte(cliCorpus), 0o644))
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("STORYFORGE_CORPUS", "")
	t.Setenv("STORYFORGE_DB", "")
	t.Setenv("STORYFORGE_LLM", "")
	t.Cleanup(func() {
		cfgPath, showScores, statsJSON = "", false, false
	})

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestKnowledgeOptions(t *testing.T) {
	cfg, err := config.Load(filepath.Join(t.TempDir(), "none.yaml"))
	require.NoError(t, err)

	opts := knowledgeOptions(cfg)
	assert.Equal(t, 800, opts.MaxChunkWords)
	assert.Equal(t, 100, opts.OverlapWords)
	assert.Equal(t, 2, opts.ContextResults)
	assert.Equal(t, 1000, opts.ExampleChars)
}

func TestNewLLM(t *testing.T) {
	cfg := &config.AppConfig{}

	cfg.LLM.Type = "mock"
	llm, err := newLLM(cfg)
	require.NoError(t, err)
	assert.Equal(t, "mock", llm.Model())

	cfg.LLM.Type = "carrier-pigeon"
	_, err = newLLM(cfg)
	assert.ErrorIs(t, err, generation.ErrInvalidConfig)

	t.Setenv("SF_TEST_KEY", "")
	cfg.LLM = config.LLMConfig{Type: "openai", APIKeyEnv: "SF_TEST_KEY", Model: "gpt-4o"}
	t.Setenv("OPENAI_API_KEY", "")
	_, err = newLLM(cfg)
	assert.ErrorIs(t, err, generation.ErrInvalidConfig)

	t.Setenv("SF_TEST_KEY", "sk-test")
	llm, err = newLLM(cfg)
	require.NoError(t, err)
	assert.Equal(t, "gpt-4o", llm.Model())
}

func TestLLMConfig(t *testing.T) {
	t.Setenv("SF_TEST_KEY", "sk-test")

	lc := llmConfig(&config.AppConfig{})
	assert.Equal(t, generation.DefaultLLMConfig(), lc)

	cfg := &config.AppConfig{}
	cfg.LLM = config.LLMConfig{
		APIKeyEnv:   "SF_TEST_KEY",
		Model:       "gpt-4o-mini",
		MaxTokens:   2000,
		Temperature: 0.5,
		TimeoutSecs: 30,
		BaseURL:     "http://localhost:8080/v1",
	}
	lc = llmConfig(cfg)
	assert.Equal(t, "gpt-4o-mini", lc.Model)
	assert.Equal(t, 2000, lc.MaxTokens)
	assert.InEpsilon(t, 0.5, lc.Temperature, 0.001)
	assert.Equal(t, 30*time.Second, lc.Timeout)
	assert.Equal(t, "sk-test", lc.APIKey)
	assert.Equal(t, "http://localhost:8080/v1", lc.BaseURL)
}

func TestStatsCommand(t *testing.T) {
	cfg := writeConfig(t, writeCorpus(t))

	out, err := run(t, "--config", cfg, "stats", "--json")
	require.NoError(t, err)

	var body struct {
		KnowledgeBase struct {
			TotalStories int `json:"totalStories"`
			TotalChunks  int `json:"totalChunks"`
		} `json:"knowledge_base"`
		Stories []struct {
			ID string `json:"id"`
		} `json:"stories"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &body))
	assert.Equal(t, 2, body.KnowledgeBase.TotalStories)
	assert.Equal(t, 2, body.KnowledgeBase.TotalChunks)
	require.Len(t, body.Stories, 2)
	assert.Equal(t, "story_1", body.Stories[0].ID)
}

func TestStatsCommand_MissingCorpus(t *testing.T) {
	cfg := writeConfig(t, filepath.Join(t.TempDir(), "missing.txt"))

	_, err := run(t, "--config", cfg, "stats")
	assert.Error(t, err)
}

func TestContextCommand(t *testing.T) {
	cfg := writeConfig(t, writeCorpus(t))

	out, err := run(t, "--config", cfg, "context", "sister", "wedding", "dress", "--scores")
	require.NoError(t, err)
	assert.Contains(t, out, "sister wedding dress")
	assert.Contains(t, out, "story_1_chunk_0")
	assert.Contains(t, out, "REFERENCE EXAMPLES FROM KNOWLEDGE BASE:")
}

func TestContextCommand_UnavailableCorpus(t *testing.T) {
	cfg := writeConfig(t, filepath.Join(t.TempDir(), "missing.txt"))

	out, err := run(t, "--config", cfg, "context", "anything")
	require.NoError(t, err)
	assert.Contains(t, out, "Knowledge base not available.")
}

func TestCleanupCommand(t *testing.T) {
	cfg := writeConfig(t, writeCorpus(t))

	out, err := run(t, "--config", cfg, "cleanup")
	require.NoError(t, err)
	assert.Contains(t, out, "Deleted 0 expired stories.")
}
