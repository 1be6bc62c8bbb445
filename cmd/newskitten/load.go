// ABOUTME: CLI command for previewing articles from a TSV file.
// ABOUTME: Prints the total row count and the first N articles as JSON.
package main

import (
	"github.com/spf13/cobra"
)

var loadCmd = &cobra.Command{
	Use:   "load",
	Short: "Load articles from a TSV file",
	Long:  "Parse the input file and print the total row count plus the first N articles.",
	RunE:  runLoad,
}

var (
	loadInput string
	loadLimit int
)

func init() {
	rootCmd.AddCommand(loadCmd)

	loadCmd.Flags().StringVar(&loadInput, "input", "", "Input TSV file path")
	loadCmd.Flags().IntVar(&loadLimit, "limit", 50, "Maximum articles to return")
	_ = loadCmd.MarkFlagRequired("input")
}

func runLoad(cmd *cobra.Command, args []string) error {
	result, err := globalPipeline.Load(cmd.Context(), loadInput, loadLimit)
	if err != nil {
		return emitError(err)
	}
	return emitResult(result)
}
