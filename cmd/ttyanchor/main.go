package main

import (
	"fmt"
	"os"

	"github.com/Hara602/ttyAnchor/internal/cli"
)

// version is overridden at build time via -ldflags.
var version = "1.0.0"

func main() {
	rootCmd := cli.NewRootCmd(version)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
