// ABOUTME: CLI entry point for nova-router
// ABOUTME: Builds the cobra command tree and maps errors to a non-zero exit

package main

import (
	"fmt"
	"os"

	// termfix must be imported before any package that imports bubbletea.
	_ "github.com/mauromedda/nova-router/internal/termfix"
)

var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
