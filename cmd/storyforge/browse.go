package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"storyforge/internal/knowledge"
	"storyforge/internal/tui"
)

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Browse the knowledge base in the terminal",
	Args:  cobra.NoArgs,
	RunE:  runBrowse,
}

func init() {
	rootCmd.AddCommand(browseCmd)
}

func runBrowse(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	kb, err := knowledge.Initialize(cfg.Corpus.Path, knowledgeOptions(cfg))
	if err != nil {
		return fmt.Errorf("load knowledge base: %w", err)
	}
	_, err = tea.NewProgram(tui.New(kb), tea.WithAltScreen()).Run()
	return err
}
