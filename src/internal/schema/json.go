package schema

import (
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"readstats/src/internal/dates"
)

// bookJSON is the wire shape of a Book. Every optional field is a pointer so
// absence encodes as an explicit null, never as "" or an omitted key.
type bookJSON struct {
	Title             string   `json:"title"`
	Series            *string  `json:"series"`
	Author            string   `json:"author"`
	AdditionalAuthors *string  `json:"additional_authors"`
	ISBN              *string  `json:"isbn"`
	ISBN13            *string  `json:"isbn13"`
	Pages             int      `json:"pages"`
	EstimatedWords    int      `json:"estimated_words"`
	Rating            int      `json:"rating"`
	Bookshelves       *string  `json:"bookshelves"`
	Shelf             *string  `json:"shelf"`
	DateAdded         *string  `json:"date_added"`
	DateRead          *string  `json:"date_read"`
	DaysSpent         *int     `json:"days_spent"`
	Genres            []string `json:"genres"`
	Annotation        *string  `json:"annotation"`
	CoverURL          *string  `json:"cover_url"`
	BookID            *string  `json:"book_id"`
	AuthorID          *string  `json:"author_id"`
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func nullableDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := dates.FormatISO(t)
	return &s
}

// MarshalJSON encodes the record null-safe: blank strings and missing dates
// become null, genres is always a sequence (possibly empty), and days_spent
// is derived on the way out.
func (b *Book) MarshalJSON() ([]byte, error) {
	genres := b.Genres
	if genres == nil {
		genres = []string{}
	}
	return json.Marshal(bookJSON{
		Title:             b.Title,
		Series:            nullable(b.Series),
		Author:            b.Author,
		AdditionalAuthors: nullable(b.AdditionalAuthors),
		ISBN:              nullable(b.ISBN),
		ISBN13:            nullable(b.ISBN13),
		Pages:             b.Pages,
		EstimatedWords:    b.EstimatedWords,
		Rating:            b.Rating,
		Bookshelves:       nullable(b.Bookshelves),
		Shelf:             nullable(b.Shelf),
		DateAdded:         nullableDate(b.DateAdded),
		DateRead:          nullableDate(b.DateRead),
		DaysSpent:         b.DaysSpent(),
		Genres:            genres,
		Annotation:        nullable(b.Annotation),
		CoverURL:          nullable(b.CoverURL),
		BookID:            nullable(b.BookID),
		AuthorID:          nullable(b.AuthorID),
	})
}

// UnmarshalJSON is the inverse of MarshalJSON: nulls come back as blank
// strings or nil dates so a round-tripped record compares equal field by
// field to the in-memory original.
func (b *Book) UnmarshalJSON(data []byte) error {
	var w bookJSON
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	str := func(p *string) string {
		if p == nil {
			return ""
		}
		return *p
	}
	date := func(p *string) (*time.Time, error) {
		if p == nil {
			return nil, nil
		}
		t, err := time.Parse("2006-01-02", *p)
		if err != nil {
			return nil, fmt.Errorf("bad date %q: %w", *p, err)
		}
		return &t, nil
	}
	added, err := date(w.DateAdded)
	if err != nil {
		return err
	}
	read, err := date(w.DateRead)
	if err != nil {
		return err
	}
	genres := w.Genres
	if genres == nil {
		genres = []string{}
	}
	*b = Book{
		Title:             w.Title,
		Series:            str(w.Series),
		Author:            w.Author,
		AdditionalAuthors: str(w.AdditionalAuthors),
		ISBN:              str(w.ISBN),
		ISBN13:            str(w.ISBN13),
		Pages:             w.Pages,
		EstimatedWords:    w.EstimatedWords,
		Rating:            w.Rating,
		Bookshelves:       str(w.Bookshelves),
		Shelf:             str(w.Shelf),
		DateAdded:         added,
		DateRead:          read,
		Genres:            genres,
		Annotation:        str(w.Annotation),
		CoverURL:          str(w.CoverURL),
		BookID:            str(w.BookID),
		AuthorID:          str(w.AuthorID),
	}
	return nil
}

// MarshalJSON emits the report with the optional books_in_<year> counter
// spliced in under its year-specific key.
func (r *Report) MarshalJSON() ([]byte, error) {
	type alias Report
	base, err := json.Marshal((*alias)(r))
	if err != nil {
		return nil, err
	}
	if r.Year <= 0 {
		return base, nil
	}
	var m map[string]json.RawMessage
	if err := json.Unmarshal(base, &m); err != nil {
		return nil, err
	}
	count, err := json.Marshal(r.BooksInYear)
	if err != nil {
		return nil, err
	}
	m[fmt.Sprintf("books_in_%d", r.Year)] = count
	return marshalOrdered(m)
}

// marshalOrdered renders the map with sorted keys so output is deterministic.
func marshalOrdered(m map[string]json.RawMessage) ([]byte, error) {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	buf := []byte{'{'}
	for i, k := range keys {
		if i > 0 {
			buf = append(buf, ',')
		}
		kb, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf = append(buf, kb...)
		buf = append(buf, ':')
		buf = append(buf, m[k]...)
	}
	buf = append(buf, '}')
	return buf, nil
}
