package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"storyforge/internal/generation"
	"storyforge/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	Long: `Run the HTTP API: story expansion, knowledge base statistics, context preview
and the story archive. The knowledge base is built on the first request that needs it;
if the corpus cannot be loaded the server keeps running without retrieval.

Environment overrides:
  PORT               - listen port
  STORYFORGE_CORPUS  - corpus file
  STORYFORGE_DB      - archive database file
  OPENAI_API_KEY     - key for the openai llm type`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	provider := newProvider(cfg)

	var expander *generation.Expander
	llm, err := newLLM(cfg)
	if err != nil {
		log.Printf("[server] story generation disabled: %v", err)
	} else {
		expander = generation.NewExpander(llm, provider, llm.Model())
	}

	store, err := openArchive(cfg)
	if err != nil {
		return err
	}

	srv := server.New(server.Deps{
		Knowledge: provider,
		Expander:  expander,
		Archive:   store,
		PublicDir: cfg.Server.PublicDir,
	})

	// Warm the knowledge base without blocking startup.
	go provider.Get()

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Start(cfg.Server.Addr) }()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	select {
	case err := <-errCh:
		return err
	case <-sig:
	}

	log.Printf("[server] shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(ctx)
}
