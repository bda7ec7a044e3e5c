package schema

import (
	"encoding/json"
	"reflect"
	"strings"
	"testing"
	"time"
)

func date(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func TestDaysSpent(t *testing.T) {
	b := Book{DateAdded: date(2024, 1, 10), DateRead: date(2024, 1, 3)}
	ds := b.DaysSpent()
	if ds == nil || *ds != -7 {
		t.Fatalf("DaysSpent: want -7, got %v", ds)
	}
	b = Book{DateAdded: date(2024, 1, 10)}
	if b.DaysSpent() != nil {
		t.Fatalf("DaysSpent with missing date_read: want nil")
	}
}

func TestBookMarshalNulls(t *testing.T) {
	b := Book{Title: "Dune", Author: "Frank Herbert", Pages: 412, EstimatedWords: 412 * WordsPerPage}
	out, err := json.Marshal(&b)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	s := string(out)
	for _, want := range []string{`"series":null`, `"isbn":null`, `"annotation":null`, `"cover_url":null`, `"genres":[]`, `"date_read":null`, `"days_spent":null`} {
		if !strings.Contains(s, want) {
			t.Fatalf("marshal missing %s in %s", want, s)
		}
	}
	if strings.Contains(s, `""`) && strings.Contains(s, `"series":""`) {
		t.Fatalf("empty-string sentinel leaked: %s", s)
	}
}

func TestBookRoundTrip(t *testing.T) {
	b := Book{
		Title:             "Night Watch",
		Series:            "Watch",
		Author:            "Sergei Lukyanenko",
		AdditionalAuthors: "Andrew Bromfield",
		ISBN:              "0434014125",
		ISBN13:            "9780434014125",
		Pages:             489,
		EstimatedWords:    489 * WordsPerPage,
		Rating:            5,
		Bookshelves:       "fantasy",
		Shelf:             ShelfRead,
		DateAdded:         date(2024, 2, 1),
		DateRead:          date(2024, 2, 20),
		Genres:            []string{"Fantasy", "Urban Fantasy"},
		Annotation:        "Others walk among us.",
		CoverURL:          "https://example.com/nw.jpg",
		BookID:            "123",
		AuthorID:          "456",
	}
	out, err := json.Marshal(&b)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var got Book
	if err := json.Unmarshal(out, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !got.DateAdded.Equal(*b.DateAdded) || !got.DateRead.Equal(*b.DateRead) {
		t.Fatalf("dates differ: %v %v", got.DateAdded, got.DateRead)
	}
	// normalize time values for the deep comparison
	got.DateAdded, got.DateRead = b.DateAdded, b.DateRead
	if !reflect.DeepEqual(got, b) {
		t.Fatalf("round trip mismatch:\n got %+v\nwant %+v", got, b)
	}
}

func TestBookRoundTripEmpty(t *testing.T) {
	b := Book{Title: "Untracked", Author: "Nobody", Genres: []string{}}
	out, err := json.Marshal(&b)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var got Book
	if err := json.Unmarshal(out, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !reflect.DeepEqual(got, b) {
		t.Fatalf("round trip mismatch:\n got %+v\nwant %+v", got, b)
	}
}

func TestReportMarshalYearKey(t *testing.T) {
	r := Report{
		SeriesCounts: map[string]int{},
		Books:        []*Book{},
		Timeline:     []TimelineEntry{},
		Year:         2025,
		BooksInYear:  7,
	}
	out, err := json.Marshal(&r)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	s := string(out)
	if !strings.Contains(s, `"books_in_2025":7`) {
		t.Fatalf("missing year counter: %s", s)
	}
	for _, want := range []string{`"total_books":0`, `"timeline":[]`, `"book_list":[]`} {
		if !strings.Contains(s, want) {
			t.Fatalf("missing %s: %s", want, s)
		}
	}
}

func TestReportMarshalNoYear(t *testing.T) {
	r := Report{}
	out, err := json.Marshal(&r)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if strings.Contains(string(out), "books_in_") {
		t.Fatalf("unexpected year counter: %s", out)
	}
}
