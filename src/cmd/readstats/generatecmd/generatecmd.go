// Package generatecmd runs the full pipeline: ingest the library export,
// enrich every record, and write the aggregate report.
package generatecmd

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"readstats/src/cmd/readstats/summarycmd"
	"readstats/src/internal/config"
	"readstats/src/internal/pipeline"
)

// New returns the generate command.
func New() *cobra.Command {
	var (
		configPath string
		offline    bool
		verbose    bool
	)
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Process the library export and write the reading-stats report",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			level := slog.LevelInfo
			if verbose {
				level = slog.LevelDebug
			}
			log := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
			report, err := pipeline.Run(cmd.Context(), cfg, pipeline.Options{Offline: offline, Log: log})
			if err != nil {
				return err
			}
			summarycmd.RenderSummary(cmd.OutOrStdout(), report)
			return nil
		},
	}
	cmd.Flags().StringVarP(&configPath, "config", "c", defaultConfigPath(), "path to the TOML config file")
	cmd.Flags().BoolVar(&offline, "offline", false, "skip external metadata lookups")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "log individual resolution attempts")
	return cmd
}

func defaultConfigPath() string {
	if p := os.Getenv("READSTATS_CONFIG"); p != "" {
		return p
	}
	return "readstats.toml"
}
