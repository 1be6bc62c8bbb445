// ABOUTME: CLI command for nearest-neighbor search against the stored corpus.
// ABOUTME: Embeds the query and prints ranked matches as JSON.
package main

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/CodeAKrome/NewsKitten/internal/store"
)

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Search similar articles",
	Long:  "Search the stored article corpus by semantic similarity to a query.",
	RunE:  runSearch,
}

var (
	searchQuery   string
	searchPersist string
	searchResults int
)

func init() {
	rootCmd.AddCommand(searchCmd)

	searchCmd.Flags().StringVar(&searchQuery, "query", "", "Search query")
	searchCmd.Flags().StringVar(&searchPersist, "persist-dir", "", "Vector store persistence directory")
	searchCmd.Flags().IntVar(&searchResults, "n-results", 5, "Number of results")
	_ = searchCmd.MarkFlagRequired("query")
}

func runSearch(cmd *cobra.Command, args []string) error {
	persistDir, err := resolvePersistDir(searchPersist)
	if err != nil {
		return emitError(err)
	}

	result, err := globalPipeline.Search(cmd.Context(), searchQuery, persistDir, searchResults)
	if err != nil {
		if errors.Is(err, store.ErrCollectionNotFound) {
			return emitError(errors.New("Collection not found. Run categorization first."))
		}
		return emitError(err)
	}
	return emitResult(result)
}
