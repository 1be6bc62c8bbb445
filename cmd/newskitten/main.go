// ABOUTME: Entry point for the newskitten binary.
// ABOUTME: Executes the root Cobra command and maps errors to exit status 1.
package main

import (
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
