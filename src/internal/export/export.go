// Package export reads a Goodreads-style library export: a CSV file with a
// header row and one record per shelved book. Rows are exposed through
// header-keyed access so the rest of the pipeline never depends on column
// positions, and optional columns may be missing entirely.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
)

// Canonical column names used by the pipeline.
const (
	ColTitle             = "Title"
	ColAuthor            = "Author"
	ColAdditionalAuthors = "Additional Authors"
	ColPages             = "Number of Pages"
	ColDateRead          = "Date Read"
	ColDateAdded         = "Date Added"
	ColRating            = "My Rating"
	ColBookshelves       = "Bookshelves"
	ColExclusiveShelf    = "Exclusive Shelf"
	ColISBN              = "ISBN"
	ColISBN13            = "ISBN13"
	ColBookID            = "Book Id"
	ColAuthorID          = "Author Id"
)

// Row is one raw export record keyed by header name.
type Row struct {
	fields map[string]string
}

// Get returns the trimmed value of the named column, or "" when the column
// is absent from the export.
func (r Row) Get(name string) string {
	return strings.TrimSpace(r.fields[normalizeHeader(name)])
}

// Has reports whether the column was present (even if blank) in the export.
func (r Row) Has(name string) bool {
	_, ok := r.fields[normalizeHeader(name)]
	return ok
}

// normalizeHeader resolves header names case-insensitively with surrounding
// whitespace ignored, so "ISBN13 " and "isbn13" address the same column.
func normalizeHeader(h string) string {
	return strings.ToLower(strings.TrimSpace(h))
}

// Read loads all rows from the CSV export at path. A missing or unreadable
// file is a fatal setup error; per-row oddities (short rows, extra fields)
// are tolerated.
func Read(path string) ([]Row, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open export: %w", err)
	}
	defer f.Close()
	return Parse(f)
}

// Parse reads rows from an already-open export stream.
func Parse(r io.Reader) ([]Row, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1 // exports in the wild have ragged rows
	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read export header: %w", err)
	}
	cols := make([]string, len(header))
	for i, h := range header {
		cols[i] = normalizeHeader(h)
	}
	var rows []Row
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read export row: %w", err)
		}
		fields := make(map[string]string, len(cols))
		for i, c := range cols {
			if i < len(rec) {
				fields[c] = rec[i]
			}
		}
		rows = append(rows, Row{fields: fields})
	}
	return rows, nil
}
