// Package normalize turns one raw export row into a canonical schema.Book.
// Every field degrades independently: a bad page count becomes 0, a bad date
// becomes nil, and no malformed row ever aborts the run.
package normalize

import (
	"regexp"
	"strconv"
	"strings"

	"readstats/src/internal/dates"
	"readstats/src/internal/export"
	"readstats/src/internal/schema"
	"readstats/src/internal/stringsx"
)

// seriesRe matches the "(Series Name, #3)" suffix Goodreads appends to
// titles of books that belong to a series.
var seriesRe = regexp.MustCompile(`\(([^,]+),\s*#?\d+\)`)

// parenRe matches any parenthesized group; all of them are stripped from the
// cleaned title, series marker or not.
var parenRe = regexp.MustCompile(`\s*\([^)]*\)`)

// Row builds a Book from one export row with all derived scalar fields
// populated. Network-dependent fields (genres, annotation, cover) are left
// for the resolver.
func Row(r export.Row) *schema.Book {
	title := r.Get(export.ColTitle)
	pages := parseInt(r.Get(export.ColPages))
	b := &schema.Book{
		Title:             CleanTitle(title),
		Series:            ExtractSeries(title),
		Author:            stringsx.CollapseSpace(r.Get(export.ColAuthor)),
		AdditionalAuthors: r.Get(export.ColAdditionalAuthors),
		ISBN:              CleanISBN(r.Get(export.ColISBN)),
		ISBN13:            CleanISBN(r.Get(export.ColISBN13)),
		Pages:             pages,
		EstimatedWords:    pages * schema.WordsPerPage,
		Rating:            parseInt(r.Get(export.ColRating)),
		Bookshelves:       r.Get(export.ColBookshelves),
		Shelf:             r.Get(export.ColExclusiveShelf),
		DateAdded:         dates.ParseLenient(r.Get(export.ColDateAdded)),
		DateRead:          dates.ParseLenient(r.Get(export.ColDateRead)),
		BookID:            r.Get(export.ColBookID),
		AuthorID:          r.Get(export.ColAuthorID),
	}
	return b
}

// ExtractSeries pulls the series name out of a raw title, or returns "" when
// the title carries no series marker.
func ExtractSeries(title string) string {
	m := seriesRe.FindStringSubmatch(title)
	if len(m) != 2 {
		return ""
	}
	return strings.TrimSpace(m[1])
}

// CleanTitle strips parenthesized groups (series markers, edition notes)
// from the raw title.
func CleanTitle(title string) string {
	return strings.TrimSpace(parenRe.ReplaceAllString(title, ""))
}

// CleanISBN removes the ="..." wrapper some spreadsheet tools leave around
// identifier columns.
func CleanISBN(s string) string {
	return strings.Trim(strings.TrimSpace(s), `="`)
}

// parseInt is the forgiving integer coercion used for pages and ratings:
// non-numeric or blank input yields 0.
func parseInt(s string) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0
	}
	return n
}
