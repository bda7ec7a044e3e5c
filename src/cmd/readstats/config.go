package main

import (
	"github.com/spf13/cobra"

	"readstats/src/cmd/readstats/configcmd"
)

func newConfigCmd() *cobra.Command { return configcmd.New() }
