package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "readstats",
	Short: "Reading-log pipeline: enrich a library export and build reading statistics",
}

func execute() error {
	// Attach subcommands
	rootCmd.AddCommand(newGenerateCmd())
	rootCmd.AddCommand(newSummaryCmd())
	rootCmd.AddCommand(newConfigCmd())
	return rootCmd.Execute()
}

func main() {
	if err := execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
