package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"storyforge/internal/knowledge"
)

var showScores bool

var contextCmd = &cobra.Command{
	Use:   "context [prompt]",
	Short: "Print the reference context generated for a story prompt",
	Long: `Print the reference context that would be sent to the language model for a
story prompt. When the corpus cannot be loaded the fallback text is printed instead.

Examples:
  storyforge context "My sister stole my wedding dress"
  storyforge context "my coworker took credit for my project" --scores`,
	Args: cobra.MinimumNArgs(1),
	RunE: runContext,
}

func init() {
	rootCmd.AddCommand(contextCmd)
	contextCmd.Flags().BoolVar(&showScores, "scores", false, "Also list the scored chunks and prompt themes")
}

var (
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#F780FF")).Bold(true)
	promptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#8BE9FD")).Italic(true)
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#6272A4"))
)

func runContext(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	prompt := strings.Join(args, " ")
	provider := newProvider(cfg)
	out := cmd.OutOrStdout()

	fmt.Fprintln(out, headerStyle.Render("Prompt:"))
	fmt.Fprintln(out, promptStyle.Render(prompt))
	fmt.Fprintln(out)

	if showScores {
		if kb, ok := provider.Get(); ok {
			printScores(out, kb, prompt, cfg.Retrieval.MaxResults)
		}
	}

	fmt.Fprintln(out, headerStyle.Render("Context:"))
	fmt.Fprintln(out, provider.Context(prompt))
	return nil
}

func printScores(out io.Writer, kb *knowledge.KnowledgeBase, prompt string, n int) {
	fmt.Fprintln(out, headerStyle.Render("Matches:"))
	results := kb.Search(prompt, n)
	if len(results) == 0 {
		fmt.Fprintln(out, mutedStyle.Render("  none above threshold"))
	}
	for _, r := range results {
		fmt.Fprintf(out, "  %.3f  %s  [%s]\n", r.Score, r.Chunk.ID, strings.Join(r.Chunk.Themes, ", "))
	}
	themes := kb.PromptThemes(prompt)
	fmt.Fprintln(out, mutedStyle.Render(fmt.Sprintf("  prompt themes: [%s]", strings.Join(themes, ", "))))
	fmt.Fprintln(out)
}
