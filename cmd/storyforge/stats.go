package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"storyforge/internal/knowledge"
)

var statsJSON bool

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show knowledge base statistics and the analysed stories",
	Args:  cobra.NoArgs,
	RunE:  runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
	statsCmd.Flags().BoolVar(&statsJSON, "json", false, "Print statistics as JSON")
}

func runStats(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	kb, err := knowledge.Initialize(cfg.Corpus.Path, knowledgeOptions(cfg))
	if err != nil {
		return fmt.Errorf("load knowledge base: %w", err)
	}
	out := cmd.OutOrStdout()
	st := kb.Stats()

	if statsJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(map[string]any{"knowledge_base": st, "stories": kb.Stories()})
	}

	fmt.Fprintln(out, headerStyle.Render("Knowledge base"))
	fmt.Fprintf(out, "  stories:        %d\n", st.TotalStories)
	fmt.Fprintf(out, "  chunks:         %d\n", st.TotalChunks)
	fmt.Fprintf(out, "  words:          %d\n", st.TotalWords)
	fmt.Fprintf(out, "  avg chunk size: %d\n", st.AverageChunkSize)
	fmt.Fprintf(out, "  themes:         %s\n", strings.Join(st.AvailableThemes, ", "))
	fmt.Fprintln(out)

	for _, s := range kb.Stories() {
		fmt.Fprintf(out, "%s  %s\n", s.ID, promptStyle.Render(s.Title))
		fmt.Fprintln(out, mutedStyle.Render(fmt.Sprintf("    themes: [%s]  plot: [%s]  style: [%s]  chars: %d",
			strings.Join(s.MainThemes, ", "), strings.Join(s.PlotStructure, ", "),
			strings.Join(s.WritingStyle, ", "), s.CharacterCount)))
		if s.Synopsis != "" {
			fmt.Fprintf(out, "    %s\n", s.Synopsis)
		}
	}
	return nil
}
