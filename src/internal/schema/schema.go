package schema

import (
	"time"
)

// WordsPerPage is the fixed heuristic used to estimate a book's word count
// from its page count.
const WordsPerPage = 275

// ShelfRead is the exclusive-shelf value that marks a finished book.
// Only records on this shelf participate in aggregate statistics.
const ShelfRead = "read"

// Book is the canonical record flowing through the pipeline. It is created
// once per export row and mutated in place by each stage; string fields that
// mean "absent" when blank are held as empty strings internally and encoded
// as null in the output artifact.
type Book struct {
	Title             string
	Series            string
	Author            string
	AdditionalAuthors string
	ISBN              string
	ISBN13            string
	Pages             int
	EstimatedWords    int
	Rating            int
	Bookshelves       string
	Shelf             string
	DateAdded         *time.Time
	DateRead          *time.Time
	Genres            []string
	Annotation        string
	CoverURL          string
	BookID            string
	AuthorID          string
}

// Read reports whether the book counts toward aggregate statistics.
func (b *Book) Read() bool { return b.Shelf == ShelfRead }

// DaysSpent returns date_read minus date_added in whole days. The result may
// be negative and is passed through as-is; it is nil unless both dates are set.
func (b *Book) DaysSpent() *int {
	if b.DateAdded == nil || b.DateRead == nil {
		return nil
	}
	d := int(b.DateRead.Sub(*b.DateAdded).Hours() / 24)
	return &d
}

// TimelineEntry is one calendar month of finished books.
type TimelineEntry struct {
	Date  string `json:"date"` // YYYY-MM
	Count int    `json:"count"`
}

// BookExtreme identifies the longest or shortest finished book.
type BookExtreme struct {
	Title string `json:"title"`
	Pages int    `json:"pages"`
}

// Report is the single output artifact of a pipeline run: summary statistics
// plus the full, input-ordered book list and the monthly reading timeline.
type Report struct {
	TotalBooks   int             `json:"total_books"`
	TotalPages   int             `json:"total_pages"`
	AvgPages     float64         `json:"avg_pages"`  // 1 decimal place
	AvgRating    float64         `json:"avg_rating"` // 2 decimal places
	SeriesCounts map[string]int  `json:"series_counts"`
	Year         int             `json:"-"` // emitted as books_in_<year> when > 0
	BooksInYear  int             `json:"-"`
	Books        []*Book         `json:"book_list"`
	Timeline     []TimelineEntry `json:"timeline"`
	LongestBook  BookExtreme     `json:"longest_book"`
	ShortestBook BookExtreme     `json:"shortest_book"`
}
