// ABOUTME: Root Cobra command and global wiring for the newskitten CLI.
// ABOUTME: Sets up lifecycle hooks for config loading, logging, and the pipeline.
package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/CodeAKrome/NewsKitten/internal/categorize"
	"github.com/CodeAKrome/NewsKitten/internal/config"
	"github.com/CodeAKrome/NewsKitten/internal/embeddings"
	"github.com/CodeAKrome/NewsKitten/internal/logging"
)

var globalConfig *config.Config
var globalLogger *slog.Logger
var globalPipeline *categorize.Pipeline

var rootCmd = &cobra.Command{
	Use:   "newskitten",
	Short: "Categorize and search news article titles by semantic similarity",
	Long: `
ɴᴇᴡꜱᴋɪᴛᴛᴇɴ

Groups news article titles into automatically named categories using
vector embeddings and density-based clustering, and answers semantic
search queries against the stored corpus.

Each command prints exactly one JSON result object on stdout and exits
0 on success, 1 on failure. Logs go to stderr.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "help" || cmd.Name() == "version" || cmd.Name() == "setup" {
			return nil
		}

		cfg, err := config.Load()
		if err != nil {
			return emitError(fmt.Errorf("failed to load config: %w", err))
		}
		globalConfig = cfg
		globalLogger = logging.New(cfg.Logging.Level)

		embedder, err := embeddings.New(embeddings.Options{
			Backend:    cfg.Embedding.Backend,
			URL:        cfg.Embedding.URL,
			Model:      cfg.Embedding.Model,
			Dimensions: cfg.Embedding.Dimensions,
		})
		if err != nil {
			return emitError(err)
		}

		pipeline, err := categorize.NewPipeline(embedder, cfg.GetCollection(), globalLogger)
		if err != nil {
			return emitError(err)
		}
		globalPipeline = pipeline

		return nil
	},
}

// emitResult prints the structured result object on stdout.
func emitResult(v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return emitError(fmt.Errorf("failed to encode result: %w", err))
	}
	fmt.Println(string(data))
	return nil
}

// emitError prints an {"error": ...} object on stdout and returns the error
// so the process exits with status 1. Exactly one result object reaches
// stdout per invocation.
func emitError(err error) error {
	payload := map[string]string{"error": err.Error()}
	data, marshalErr := json.Marshal(payload)
	if marshalErr != nil {
		fmt.Fprintln(os.Stderr, err)
		return err
	}
	fmt.Println(string(data))
	return err
}
