package main

import (
	"github.com/spf13/cobra"

	"readstats/src/cmd/readstats/summarycmd"
)

func newSummaryCmd() *cobra.Command { return summarycmd.New() }
