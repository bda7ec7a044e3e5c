// Package stats turns the enriched book list into the aggregate report:
// summary statistics over finished books, a monthly reading timeline, and
// the full input-ordered book list.
package stats

import (
	"math"
	"sort"

	"readstats/src/internal/dates"
	"readstats/src/internal/schema"
)

// noData is the sentinel for longest/shortest when nothing has been read.
const noData = "no data"

// Build computes the aggregate report for the given records. Only records on
// the "read" shelf contribute to statistics; the book list keeps every
// record in input order. year > 0 adds the books_in_<year> counter.
func Build(books []*schema.Book, year int) *schema.Report {
	r := &schema.Report{
		SeriesCounts: map[string]int{},
		Year:         year,
		Books:        books,
		Timeline:     []schema.TimelineEntry{},
		LongestBook:  schema.BookExtreme{Title: noData},
		ShortestBook: schema.BookExtreme{Title: noData},
	}
	if books == nil {
		r.Books = []*schema.Book{}
	}

	var ratingSum, ratingCount int
	months := map[string]int{}
	var longest, shortest *schema.Book
	for _, b := range books {
		if !b.Read() {
			continue
		}
		r.TotalBooks++
		r.TotalPages += b.Pages
		if b.Rating > 0 {
			ratingSum += b.Rating
			ratingCount++
		}
		if b.Series != "" {
			r.SeriesCounts[b.Series]++
		}
		if b.DateRead != nil {
			months[dates.Month(*b.DateRead)]++
			if year > 0 && b.DateRead.Year() == year {
				r.BooksInYear++
			}
		}
		if longest == nil || b.Pages > longest.Pages {
			longest = b
		}
		if shortest == nil || b.Pages < shortest.Pages {
			shortest = b
		}
	}

	if r.TotalBooks > 0 {
		r.AvgPages = round1(float64(r.TotalPages) / float64(r.TotalBooks))
	}
	if ratingCount > 0 {
		r.AvgRating = round2(float64(ratingSum) / float64(ratingCount))
	}
	if longest != nil {
		r.LongestBook = schema.BookExtreme{Title: longest.Title, Pages: longest.Pages}
		r.ShortestBook = schema.BookExtreme{Title: shortest.Title, Pages: shortest.Pages}
	}

	keys := make([]string, 0, len(months))
	for m := range months {
		keys = append(keys, m)
	}
	sort.Strings(keys) // YYYY-MM sorts chronologically
	for _, m := range keys {
		r.Timeline = append(r.Timeline, schema.TimelineEntry{Date: m, Count: months[m]})
	}
	return r
}

func round1(f float64) float64 { return math.Round(f*10) / 10 }
func round2(f float64) float64 { return math.Round(f*100) / 100 }
