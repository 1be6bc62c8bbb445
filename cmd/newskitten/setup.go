// ABOUTME: Cobra command for interactive embedding backend setup.
// ABOUTME: Launches a bubbletea TUI wizard to collect and validate backend settings.
package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/CodeAKrome/NewsKitten/internal/config"
	"github.com/CodeAKrome/NewsKitten/internal/embeddings"
	"github.com/CodeAKrome/NewsKitten/internal/tui"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Configure the embedding backend and vector store",
	Long:  "Interactive wizard to configure the embedding backend and vector store location.",
	RunE:  runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

func runSetup(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	model := tui.NewSetupModel(
		cfg.Embedding.URL,
		cfg.Embedding.Model,
		cfg.Storage.PersistDir,
	)

	p := tea.NewProgram(model)
	result, err := p.Run()
	if err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	final := result.(tui.SetupModel)
	if !final.ShouldSave() {
		fmt.Println("Setup cancelled.")
		return nil
	}

	backendURL, embedModel, persistDir := final.Result()
	if backendURL == "" {
		cfg.Embedding.Backend = embeddings.BackendLocal
		cfg.Embedding.URL = ""
		cfg.Embedding.Model = ""
	} else {
		cfg.Embedding.Backend = embeddings.BackendHTTP
		cfg.Embedding.URL = backendURL
		cfg.Embedding.Model = embedModel
	}
	cfg.Storage.PersistDir = persistDir

	if err := cfg.Save(); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	configPath, err := config.GetConfigPath()
	if err != nil {
		fmt.Println("Config saved successfully.")
	} else {
		fmt.Printf("Config saved to %s\n", configPath)
	}
	return nil
}
