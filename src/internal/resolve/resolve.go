// Package resolve enriches normalized book records with genres, an
// annotation, and a cover URL. Each field is resolved by an ordered chain of
// strategies where the first success wins; every external failure degrades
// to "no result" so a fully offline run still completes with empty
// enrichment fields.
package resolve

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"time"

	"readstats/src/internal/goodreads"
	"readstats/src/internal/googlebooks"
	"readstats/src/internal/overrides"
	"readstats/src/internal/schema"
	"readstats/src/internal/stringsx"
)

// MaxGenres caps the genre list on every record.
const MaxGenres = 3

// AnnotationSource selects which provider the annotation chain tries first.
// The catalog description and the page-scrape description are both
// serviceable; which one reads better is a matter of taste, so it is a
// configuration knob rather than a fixed order.
type AnnotationSource string

const (
	AnnotationCatalog AnnotationSource = "catalog"
	AnnotationScrape  AnnotationSource = "scrape"
)

// Resolver carries the correction tables and pacing policy for one run.
type Resolver struct {
	Tables     *overrides.Tables
	Annotation AnnotationSource
	PhasePause time.Duration
	Log        *slog.Logger

	// sleep is replaceable in tests
	sleep func(time.Duration)
}

// New builds a resolver. A nil logger disables strategy logging.
func New(tables *overrides.Tables, annotation AnnotationSource, pause time.Duration, log *slog.Logger) *Resolver {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if annotation != AnnotationScrape {
		annotation = AnnotationCatalog
	}
	return &Resolver{
		Tables:     tables,
		Annotation: annotation,
		PhasePause: pause,
		Log:        log,
		sleep:      time.Sleep,
	}
}

// EnrichAll resolves genres, annotations, and covers for every record, one
// bulk phase per field with a fixed pause between phases to stay inside
// external-service quotas. Records are independent; failures on one never
// affect another.
func (r *Resolver) EnrichAll(ctx context.Context, books []*schema.Book) {
	for _, b := range books {
		r.resolveGenres(ctx, b)
	}
	r.pause()
	for _, b := range books {
		r.resolveAnnotation(ctx, b)
	}
	r.pause()
	for _, b := range books {
		r.resolveCover(ctx, b)
	}
	// every record leaves with a non-nil genre list
	for _, b := range books {
		if b.Genres == nil {
			b.Genres = []string{}
		}
	}
}

func (r *Resolver) pause() {
	if r.PhasePause > 0 {
		r.sleep(r.PhasePause)
	}
}

// validISBN reports whether the identifier looks like a real ISBN: exactly
// 10 or 13 digits once hyphens are removed.
func validISBN(isbn string) bool {
	d := strings.ReplaceAll(strings.TrimSpace(isbn), "-", "")
	return (len(d) == 10 || len(d) == 13) && stringsx.DigitsOnly(d)
}

// catalogVolume is the shared catalog lookup used by the genre and
// annotation chains: ISBN first when one looks valid, title+author
// otherwise or as fallback.
func (r *Resolver) catalogVolume(ctx context.Context, b *schema.Book) (*googlebooks.Volume, bool, error) {
	if validISBN(b.ISBN) {
		if v, err := googlebooks.ByISBN(ctx, b.ISBN); err == nil {
			return v, true, nil
		}
	}
	if b.Title == "" || b.Author == "" {
		return nil, false, nil
	}
	v, err := googlebooks.ByTitleAuthor(ctx, b.Title, b.Author)
	if err != nil {
		return nil, false, err
	}
	return v, true, nil
}

func (r *Resolver) resolveGenres(ctx context.Context, b *schema.Book) {
	chain := []strategy[[]string]{
		{name: "manual", run: func(context.Context) ([]string, bool, error) {
			g, ok := r.Tables.GenresFor(b.Title)
			return g, ok, nil
		}},
		{name: "catalog", run: func(ctx context.Context) ([]string, bool, error) {
			v, ok, err := r.catalogVolume(ctx, b)
			if err != nil || !ok {
				return nil, false, err
			}
			// one catalog call serves both fields; keep the
			// description when the annotation is still open
			if b.Annotation == "" {
				b.Annotation = stringsx.CollapseSpace(v.Description)
			}
			g := r.Tables.FilterGenres(v.Categories, MaxGenres)
			return g, len(g) > 0, nil
		}},
		{name: "scrape", run: func(ctx context.Context) ([]string, bool, error) {
			raw, err := goodreads.Genres(ctx, b.BookID)
			if err != nil {
				return nil, false, err
			}
			g := r.Tables.FilterGenres(raw, MaxGenres)
			return g, len(g) > 0, nil
		}},
	}
	if g, src, ok := firstSuccess(ctx, r.Log, "genres", chain); ok {
		b.Genres = g
		r.Log.Debug("genres resolved", "title", b.Title, "source", src, "genres", g)
	}
}

func (r *Resolver) resolveAnnotation(ctx context.Context, b *schema.Book) {
	if b.Annotation != "" { // carried over from the genre phase
		return
	}
	catalog := strategy[string]{name: "catalog", run: func(ctx context.Context) (string, bool, error) {
		v, ok, err := r.catalogVolume(ctx, b)
		if err != nil || !ok {
			return "", false, err
		}
		d := stringsx.CollapseSpace(v.Description)
		return d, d != "", nil
	}}
	scrape := strategy[string]{name: "scrape", run: func(ctx context.Context) (string, bool, error) {
		d, err := goodreads.Description(ctx, b.BookID)
		if err != nil {
			return "", false, err
		}
		d = stringsx.CollapseSpace(d)
		return d, d != "", nil
	}}
	chain := []strategy[string]{catalog, scrape}
	if r.Annotation == AnnotationScrape {
		chain = []strategy[string]{scrape, catalog}
	}
	if a, src, ok := firstSuccess(ctx, r.Log, "annotation", chain); ok {
		b.Annotation = a
		r.Log.Debug("annotation resolved", "title", b.Title, "source", src)
	}
}

func (r *Resolver) resolveCover(ctx context.Context, b *schema.Book) {
	thumb := func(v *googlebooks.Volume, err error) (string, bool, error) {
		if err != nil {
			return "", false, err
		}
		t := v.Thumbnail()
		return t, t != "", nil
	}
	chain := []strategy[string]{
		{name: "manual", run: func(context.Context) (string, bool, error) {
			u, ok := r.Tables.CoverFor(b.Title)
			return u, ok, nil
		}},
		{name: "isbn13", run: func(ctx context.Context) (string, bool, error) {
			if b.ISBN13 == "" {
				return "", false, nil
			}
			return thumb(googlebooks.ByISBN(ctx, b.ISBN13))
		}},
		{name: "isbn", run: func(ctx context.Context) (string, bool, error) {
			if b.ISBN == "" {
				return "", false, nil
			}
			return thumb(googlebooks.ByISBN(ctx, b.ISBN))
		}},
		{name: "author", run: func(ctx context.Context) (string, bool, error) {
			if b.Title == "" || b.Author == "" {
				return "", false, nil
			}
			return thumb(googlebooks.ByTitleAuthor(ctx, b.Title, b.Author))
		}},
		{name: "additional-author", run: func(ctx context.Context) (string, bool, error) {
			add := firstAdditionalAuthor(b.AdditionalAuthors)
			if b.Title == "" || add == "" {
				return "", false, nil
			}
			if u, ok, err := thumb(googlebooks.ByTitleAuthor(ctx, b.Title, add)); err == nil && ok {
				return u, true, nil
			}
			// found a match without a thumbnail (or none at all):
			// cast the widest net before giving up
			return thumb(googlebooks.ByTitle(ctx, b.Title))
		}},
	}
	if u, src, ok := firstSuccess(ctx, r.Log, "cover", chain); ok {
		b.CoverURL = u
		r.Log.Debug("cover resolved", "title", b.Title, "source", src)
	}
}

func firstAdditionalAuthor(s string) string {
	first, _, _ := strings.Cut(s, ",")
	return strings.TrimSpace(first)
}
