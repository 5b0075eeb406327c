package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"storyforge/internal/config"
)

var cfgPath string

var rootCmd = &cobra.Command{
	Use:   "storyforge",
	Short: "Storyforge - story knowledge base and long-form expansion service",
	Long: `Storyforge builds retrieval context from a corpus of example stories and uses it
to expand short story prompts into long-form scripts with a language model.

It serves an HTTP API, a terminal browser for the knowledge base, and a short-lived
story archive.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "Path to YAML config file (default ./config.yaml or ~/.config/storyforge/config.yaml)")
}

// Execute runs the root command
func Execute() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func loadConfig() (*config.AppConfig, error) {
	if cfgPath != "" {
		return config.Load(cfgPath)
	}
	cfg, _, err := config.LoadDefault()
	return cfg, err
}
