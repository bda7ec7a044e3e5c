// Package summarycmd renders the summary block of an existing report as a
// terminal table, so the artifact can be inspected without re-running the
// pipeline.
package summarycmd

import (
	"fmt"
	"io"
	"sort"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"readstats/src/internal/config"
	"readstats/src/internal/schema"
	"readstats/src/internal/stats"
)

// New returns the summary command.
func New() *cobra.Command {
	var configPath string
	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Show the summary table from an already generated report",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			report, err := stats.Load(cfg.Paths.OutputJSON)
			if err != nil {
				return err
			}
			RenderSummary(cmd.OutOrStdout(), report)
			return nil
		},
	}
	cmd.Flags().StringVarP(&configPath, "config", "c", "readstats.toml", "path to the TOML config file")
	return cmd
}

// RenderSummary writes the aggregate numbers and top series as a table.
func RenderSummary(w io.Writer, r *schema.Report) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{"Metric", "Value"})
	t.AppendRows([]table.Row{
		{"Books read", r.TotalBooks},
		{"Pages read", r.TotalPages},
		{"Avg pages", fmt.Sprintf("%.1f", r.AvgPages)},
		{"Avg rating", fmt.Sprintf("%.2f", r.AvgRating)},
		{"Longest", fmt.Sprintf("%s (%d p.)", r.LongestBook.Title, r.LongestBook.Pages)},
		{"Shortest", fmt.Sprintf("%s (%d p.)", r.ShortestBook.Title, r.ShortestBook.Pages)},
	})
	if len(r.Timeline) > 0 {
		first, last := r.Timeline[0], r.Timeline[len(r.Timeline)-1]
		t.AppendRow(table.Row{"Timeline", fmt.Sprintf("%s .. %s (%d months)", first.Date, last.Date, len(r.Timeline))})
	}
	t.Render()

	if len(r.SeriesCounts) > 0 {
		st := table.NewWriter()
		st.SetOutputMirror(w)
		st.AppendHeader(table.Row{"Series", "Books"})
		for _, s := range sortedSeries(r.SeriesCounts) {
			st.AppendRow(table.Row{s, r.SeriesCounts[s]})
		}
		st.Render()
	}
}

// sortedSeries orders series by descending count, name as tiebreaker.
func sortedSeries(counts map[string]int) []string {
	names := make([]string, 0, len(counts))
	for s := range counts {
		names = append(names, s)
	}
	sort.Slice(names, func(i, j int) bool {
		if counts[names[i]] != counts[names[j]] {
			return counts[names[i]] > counts[names[j]]
		}
		return names[i] < names[j]
	})
	return names
}
