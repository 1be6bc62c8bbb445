// ABOUTME: CLI command for the full categorization pipeline.
// ABOUTME: Loads, embeds, persists, clusters, names, and exports, then prints a summary.
package main

import (
	"github.com/spf13/cobra"

	"github.com/CodeAKrome/NewsKitten/internal/categorize"
	"github.com/CodeAKrome/NewsKitten/internal/config"
)

var categorizeCmd = &cobra.Command{
	Use:   "categorize",
	Short: "Categorize articles from a TSV file",
	Long: `Run the full categorization pipeline: load articles, generate embeddings,
persist vectors, cluster by similarity, derive category names, and write
the JSON report.`,
	RunE: runCategorize,
}

var (
	categorizeInput     string
	categorizeOutput    string
	minClusterSize      int
	similarityThreshold float64
	categorizePersist   string
)

func init() {
	rootCmd.AddCommand(categorizeCmd)

	categorizeCmd.Flags().StringVar(&categorizeInput, "input", "", "Input TSV file path")
	categorizeCmd.Flags().StringVar(&categorizeOutput, "output", config.DefaultOutputFile, "Output JSON file path")
	categorizeCmd.Flags().IntVar(&minClusterSize, "min-cluster-size", config.DefaultMinClusterSize, "Minimum cluster size")
	categorizeCmd.Flags().Float64Var(&similarityThreshold, "similarity-threshold", config.DefaultSimilarityThreshold, "Similarity threshold in (0, 1]")
	categorizeCmd.Flags().StringVar(&categorizePersist, "persist-dir", "", "Vector store persistence directory")
	_ = categorizeCmd.MarkFlagRequired("input")
}

func runCategorize(cmd *cobra.Command, args []string) error {
	opts := categorize.CategorizeOptions{
		InputPath:           categorizeInput,
		OutputPath:          categorizeOutput,
		MinClusterSize:      minClusterSize,
		SimilarityThreshold: similarityThreshold,
	}

	// Config supplies defaults for knobs the flags left untouched.
	if !cmd.Flags().Changed("min-cluster-size") {
		opts.MinClusterSize = globalConfig.GetMinClusterSize()
	}
	if !cmd.Flags().Changed("similarity-threshold") {
		opts.SimilarityThreshold = globalConfig.GetSimilarityThreshold()
	}

	persistDir, err := resolvePersistDir(categorizePersist)
	if err != nil {
		return emitError(err)
	}
	opts.PersistDir = persistDir

	summary, err := globalPipeline.Categorize(cmd.Context(), opts)
	if err != nil {
		return emitError(err)
	}
	return emitResult(summary)
}

// resolvePersistDir prefers the flag value, then the config, then the default.
func resolvePersistDir(flagValue string) (string, error) {
	if flagValue != "" {
		return config.ExpandPath(flagValue)
	}
	return globalConfig.GetPersistDir()
}
