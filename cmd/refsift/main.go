// Package main provides the refsift CLI entry point.
package main

import (
	"os"

	"github.com/spf13/cobra"
)

// Version is set at build time via ldflags
var Version = "dev"

// humanOutput controls whether to use human-readable output
var humanOutput bool

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(ExitError)
	}
}

var rootCmd = &cobra.Command{
	Use:   "refsift",
	Short: "Deduplicate and split reference-manager CSV exports",
	Long: `refsift cleans bibliographic CSV exports for re-import.

It removes exact-duplicate titles, near-duplicate titles that differ by a
single word at a fixed position (first, last, second, or middle), and
exact-duplicate abstracts, then splits the surviving rows into
size-bounded part files. All commands output JSON by default for easy
integration with other tools.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&humanOutput, "human", false, "Use human-readable output instead of JSON")
	rootCmd.Version = Version
}
