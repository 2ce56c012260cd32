// Package cli provides the command-line interface for edimport.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/talotukku/edimport/internal/cli/commands"
)

// Version information (set at build time).
var (
	Version   = "0.1.0"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

// NewRootCmd creates and returns the root command.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "edimport",
		Short: "Fixed-width interchange file importer",
		Long: `edimport downloads, decodes and imports fixed-width product, price and
discount interchange files from configured sellers.

Decoded records are merged into category-partitioned SQLite databases and
JSON snapshots under the data directory, with optional full-text search
indexing on top. Re-delivered files are detected and skipped.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.SetVersionTemplate(`{{.Name}} {{.Version}}
`)

	rootCmd.PersistentFlags().StringP("dir", "d", "", "data directory (default: current directory)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output")

	rootCmd.AddCommand(commands.NewRunCommand())
	rootCmd.AddCommand(commands.NewSellersCommand())
	rootCmd.AddCommand(commands.NewVersionCommand(Version, BuildDate, GitCommit))

	return rootCmd
}

// Execute runs the root command.
func Execute() error {
	rootCmd := NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}
