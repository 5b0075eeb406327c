package main

import (
	"fmt"
	"os"
	"time"

	"storyforge/internal/archive"
	"storyforge/internal/config"
	"storyforge/internal/generation"
	"storyforge/internal/knowledge"
)

// namedLLM is an LLM that reports its model identifier.
type namedLLM interface {
	generation.LLM
	Model() string
}

func knowledgeOptions(cfg *config.AppConfig) knowledge.Options {
	return knowledge.Options{
		MaxChunkWords:  cfg.Corpus.MaxChunkWords,
		OverlapWords:   cfg.Corpus.OverlapWords,
		MinScore:       cfg.Retrieval.MinScore,
		ContextResults: cfg.Retrieval.MaxResults,
		ExampleChars:   cfg.Retrieval.ExampleChars,
	}
}

func newProvider(cfg *config.AppConfig) *knowledge.Provider {
	return knowledge.NewFileProvider(cfg.Corpus.Path, knowledgeOptions(cfg))
}

func newLLM(cfg *config.AppConfig) (namedLLM, error) {
	switch cfg.LLM.Type {
	case "mock":
		return generation.NewMockLLM(""), nil
	case "openai", "":
		llm, err := generation.NewOpenAILLM(llmConfig(cfg))
		if err != nil {
			return nil, err
		}
		return llm, nil
	default:
		return nil, fmt.Errorf("%w: unknown llm type %q", generation.ErrInvalidConfig, cfg.LLM.Type)
	}
}

// llmConfig overlays the non-zero LLM settings from cfg on the generation defaults.
func llmConfig(cfg *config.AppConfig) generation.LLMConfig {
	lc := generation.DefaultLLMConfig()
	if cfg.LLM.Model != "" {
		lc.Model = cfg.LLM.Model
	}
	if cfg.LLM.Temperature != 0 {
		lc.Temperature = cfg.LLM.Temperature
	}
	if cfg.LLM.MaxTokens != 0 {
		lc.MaxTokens = cfg.LLM.MaxTokens
	}
	if cfg.LLM.TimeoutSecs != 0 {
		lc.Timeout = time.Duration(cfg.LLM.TimeoutSecs) * time.Second
	}
	if cfg.LLM.APIKeyEnv != "" {
		lc.APIKey = os.Getenv(cfg.LLM.APIKeyEnv)
	}
	lc.BaseURL = cfg.LLM.BaseURL
	return lc
}

func openArchive(cfg *config.AppConfig) (*archive.Store, error) {
	db, err := archive.Open(cfg.Archive.DBPath)
	if err != nil {
		return nil, err
	}
	return archive.New(db, time.Duration(cfg.Archive.TTLHours)*time.Hour), nil
}
