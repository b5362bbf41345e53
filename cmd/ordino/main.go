// Package main implements the ordino CLI tool.
package main

import (
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:           "ordino",
	Short:         "Ordino - task tracking over a dependency graph",
	SilenceUsage:  true,
	SilenceErrors: false,
}

var (
	rootDir     string
	rootVerbose bool
)

func init() {
	rootCmd.PersistentFlags().StringVar(&rootDir, "dir", "", "Store directory (overrides ordino.toml)")
	rootCmd.PersistentFlags().BoolVarP(&rootVerbose, "verbose", "v", false, "Log status propagation and rejected dependencies to stderr")
}
