// Package pipeline wires the stages together: read the export, normalize
// each row, apply manual corrections, resolve external metadata, aggregate,
// and write the report. One call, one artifact.
package pipeline

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"readstats/src/internal/config"
	"readstats/src/internal/export"
	"readstats/src/internal/goodreads"
	"readstats/src/internal/googlebooks"
	"readstats/src/internal/httpx"
	"readstats/src/internal/normalize"
	"readstats/src/internal/overrides"
	"readstats/src/internal/resolve"
	"readstats/src/internal/schema"
	"readstats/src/internal/stats"
)

// Options adjusts a single run.
type Options struct {
	// Offline skips every network-backed resolution stage; enrichment
	// fields stay at their null/empty defaults.
	Offline bool
	Log     *slog.Logger
}

// Run executes the whole pipeline. Setup failures (missing export, missing
// overrides) abort before any record is processed; everything later degrades
// per record and the run always produces one complete artifact.
func Run(ctx context.Context, cfg *config.Config, opts Options) (*schema.Report, error) {
	log := opts.Log
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	log = log.With("run_id", uuid.NewString())
	start := time.Now()

	tables, err := overrides.Load(cfg.Paths.Overrides)
	if err != nil {
		return nil, err
	}
	rows, err := export.Read(cfg.Paths.ExportCSV)
	if err != nil {
		return nil, err
	}
	log.Info("export loaded", "path", cfg.Paths.ExportCSV, "rows", len(rows))

	books := make([]*schema.Book, 0, len(rows))
	for _, row := range rows {
		b := normalize.Row(row)
		tables.Reconcile(b)
		books = append(books, b)
	}

	if opts.Offline {
		log.Info("offline run, skipping metadata resolution")
		for _, b := range books {
			if b.Genres == nil {
				b.Genres = []string{}
			}
		}
	} else {
		client := httpx.NewClient(cfg.RequestTimeout())
		googlebooks.SetHTTPClient(client)
		goodreads.SetHTTPClient(client)
		googlebooks.APIKey = cfg.APIKey()
		r := resolve.New(tables, resolve.AnnotationSource(cfg.Lookup.AnnotationSource), cfg.PhasePause(), log)
		r.EnrichAll(ctx, books)
	}

	report := stats.Build(books, cfg.Stats.Year)
	if err := stats.Write(report, cfg.Paths.OutputJSON); err != nil {
		return nil, err
	}
	log.Info("report written",
		"path", cfg.Paths.OutputJSON,
		"books", len(report.Books),
		"read", report.TotalBooks,
		"elapsed", time.Since(start).Round(time.Millisecond))
	return report, nil
}

// Describe returns a one-line human summary of a finished run.
func Describe(r *schema.Report) string {
	return fmt.Sprintf("%d books (%d read), %d pages read", len(r.Books), r.TotalBooks, r.TotalPages)
}
