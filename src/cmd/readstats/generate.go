package main

import (
	"github.com/spf13/cobra"

	"readstats/src/cmd/readstats/generatecmd"
)

func newGenerateCmd() *cobra.Command { return generatecmd.New() }
