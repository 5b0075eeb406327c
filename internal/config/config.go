package config

import (
	"errors"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

// CorpusConfig locates the story corpus and sets the chunk window.
type CorpusConfig struct {
	Path          string `yaml:"path"`
	MaxChunkWords int    `yaml:"max_chunk_words"`
	OverlapWords  int    `yaml:"overlap_words"`
}

// RetrievalConfig tunes how reference examples are chosen and rendered.
type RetrievalConfig struct {
	MaxResults   int     `yaml:"max_results"`
	MinScore     float64 `yaml:"min_score"`
	ExampleChars int     `yaml:"example_chars"`
}

// LLMConfig selects and configures the language model client.
type LLMConfig struct {
	Type        string  `yaml:"type"`
	BaseURL     string  `yaml:"base_url"`
	APIKeyEnv   string  `yaml:"api_key_env"`
	Model       string  `yaml:"model"`
	MaxTokens   int     `yaml:"max_tokens"`
	Temperature float64 `yaml:"temperature"`
	TimeoutSecs int     `yaml:"timeout_secs"`
}

// ArchiveConfig configures the expiring story archive.
type ArchiveConfig struct {
	DBPath   string `yaml:"db_path"`
	TTLHours int    `yaml:"ttl_hours"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Addr      string `yaml:"addr"`
	PublicDir string `yaml:"public_dir"`
}

// AppConfig is the root application configuration structure.
type AppConfig struct {
	Corpus    CorpusConfig    `yaml:"corpus"`
	Retrieval RetrievalConfig `yaml:"retrieval"`
	LLM       LLMConfig       `yaml:"llm"`
	Archive   ArchiveConfig   `yaml:"archive"`
	Server    ServerConfig    `yaml:"server"`
}

// Load reads a config from a specified path. If the file does not exist, returns defaults.
// Environment overrides are applied in both cases.
func Load(path string) (*AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			cfg := defaultConfig()
			applyEnv(cfg)
			return cfg, nil
		}
		return nil, err
	}
	cfg := AppConfig{Corpus: CorpusConfig{OverlapWords: -1}}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	applyConfigDefaults(&cfg)
	applyEnv(&cfg)
	return &cfg, nil
}

// LoadDefault tries ./config.yaml first, then ~/.config/storyforge/config.yaml.
// If neither exists, it writes defaults to ~/.config/storyforge/config.yaml and returns them.
func LoadDefault() (*AppConfig, string, error) {
	cwdPath := "config.yaml"
	if _, err := os.Stat(cwdPath); err == nil {
		cfg, err := Load(cwdPath)
		return cfg, cwdPath, err
	}
	userPath, err := defaultUserConfigPath()
	if err != nil {
		return nil, "", err
	}
	if _, err := os.Stat(userPath); err == nil {
		cfg, err := Load(userPath)
		return cfg, userPath, err
	}
	cfg := defaultConfig()
	if err := Save(userPath, cfg); err != nil {
		return nil, "", err
	}
	applyEnv(cfg)
	return cfg, userPath, nil
}

// Save writes the config to the given path, creating directories as needed.
func Save(path string, cfg *AppConfig) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func defaultUserConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "storyforge", "config.yaml"), nil
}

func defaultConfig() *AppConfig {
	cfg := &AppConfig{Corpus: CorpusConfig{OverlapWords: -1}}
	applyConfigDefaults(cfg)
	return cfg
}

func applyConfigDefaults(cfg *AppConfig) {
	if cfg.Corpus.Path == "" {
		cfg.Corpus.Path = "Data.txt"
	}
	if cfg.Corpus.MaxChunkWords == 0 {
		cfg.Corpus.MaxChunkWords = 800
	}
	// An explicit 0 disables overlap; only an absent or negative value takes the default.
	if cfg.Corpus.OverlapWords < 0 {
		cfg.Corpus.OverlapWords = 100
	}
	if cfg.Retrieval.MaxResults == 0 {
		cfg.Retrieval.MaxResults = 2
	}
	if cfg.Retrieval.MinScore == 0 {
		cfg.Retrieval.MinScore = 0.05
	}
	if cfg.Retrieval.ExampleChars == 0 {
		cfg.Retrieval.ExampleChars = 1000
	}
	if cfg.LLM.Type == "" {
		cfg.LLM.Type = "openai"
	}
	if cfg.LLM.Type == "openai" {
		if cfg.LLM.APIKeyEnv == "" {
			cfg.LLM.APIKeyEnv = "OPENAI_API_KEY"
		}
		if cfg.LLM.Model == "" {
			cfg.LLM.Model = "gpt-4o"
		}
	}
	if cfg.LLM.MaxTokens == 0 {
		cfg.LLM.MaxTokens = 32000
	}
	if cfg.LLM.Temperature == 0 {
		cfg.LLM.Temperature = 1.0
	}
	if cfg.LLM.TimeoutSecs == 0 {
		cfg.LLM.TimeoutSecs = 300
	}
	if cfg.Archive.DBPath == "" {
		cfg.Archive.DBPath = "storyforge.db"
	}
	if cfg.Archive.TTLHours == 0 {
		cfg.Archive.TTLHours = 48
	}
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = ":3000"
	}
	if cfg.Server.PublicDir == "" {
		cfg.Server.PublicDir = "public"
	}
}

func applyEnv(cfg *AppConfig) {
	if v := os.Getenv("STORYFORGE_CORPUS"); v != "" {
		cfg.Corpus.Path = v
	}
	if v := os.Getenv("STORYFORGE_DB"); v != "" {
		cfg.Archive.DBPath = v
	}
	if v := os.Getenv("STORYFORGE_LLM"); v != "" {
		cfg.LLM.Type = v
	}
	if v := os.Getenv("PORT"); v != "" {
		if _, err := strconv.Atoi(v); err == nil {
			cfg.Server.Addr = ":" + v
		}
	}
}
