package normalize

import (
	"strings"
	"testing"

	"readstats/src/internal/export"
	"readstats/src/internal/schema"
)

func rowFromCSV(t *testing.T, header, record string) export.Row {
	t.Helper()
	rows, err := export.Parse(strings.NewReader(header + "\n" + record + "\n"))
	if err != nil {
		t.Fatalf("parse row: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("want 1 row, got %d", len(rows))
	}
	return rows[0]
}

func TestTitleSeriesSplit(t *testing.T) {
	if got := ExtractSeries("Dune (Dune, #1)"); got != "Dune" {
		t.Fatalf("series: got %q", got)
	}
	if got := CleanTitle("Dune (Dune, #1)"); got != "Dune" {
		t.Fatalf("title: got %q", got)
	}
	// the optional # prefix form
	if got := ExtractSeries("Catching Fire (The Hunger Games, 2)"); got != "The Hunger Games" {
		t.Fatalf("series no-hash: got %q", got)
	}
	// no parenthetical suffix: unchanged, no series
	if got := CleanTitle("Roadside Picnic"); got != "Roadside Picnic" {
		t.Fatalf("plain title: got %q", got)
	}
	if got := ExtractSeries("Roadside Picnic"); got != "" {
		t.Fatalf("plain series: got %q", got)
	}
	// non-series parenthetical is stripped from the title too
	if got := CleanTitle("Solaris (Special Edition)"); got != "Solaris" {
		t.Fatalf("edition note: got %q", got)
	}
	if got := ExtractSeries("Solaris (Special Edition)"); got != "" {
		t.Fatalf("edition note series: got %q", got)
	}
}

func TestCleanISBN(t *testing.T) {
	if got := CleanISBN(`="9780441013593"`); got != "9780441013593" {
		t.Fatalf("isbn artifact: got %q", got)
	}
	if got := CleanISBN("0441013597"); got != "0441013597" {
		t.Fatalf("plain isbn: got %q", got)
	}
	if got := CleanISBN(""); got != "" {
		t.Fatalf("empty isbn: got %q", got)
	}
}

func TestRowDefaults(t *testing.T) {
	r := rowFromCSV(t,
		"Title,Author,Number of Pages,My Rating,Date Read,Date Added",
		`Broken Row,Someone,not-a-number,,garbage date,`)
	b := Row(r)
	if b.Pages != 0 || b.EstimatedWords != 0 || b.Rating != 0 {
		t.Fatalf("numeric defaults: %+v", b)
	}
	if b.DateRead != nil || b.DateAdded != nil {
		t.Fatalf("date defaults: %+v", b)
	}
	if b.Shelf != "" || b.Bookshelves != "" {
		t.Fatalf("blank strings: %+v", b)
	}
}

func TestRowDerivedFields(t *testing.T) {
	r := rowFromCSV(t,
		"Title,Author,Number of Pages,My Rating,Date Read,Date Added,Exclusive Shelf,ISBN13",
		`"Dune (Dune, #1)",Frank Herbert,412,5,2024/03/10,2024/02/01,read,"=""9780441013593"""`)
	b := Row(r)
	if b.Title != "Dune" || b.Series != "Dune" {
		t.Fatalf("title/series: %+v", b)
	}
	if b.EstimatedWords != 412*schema.WordsPerPage {
		t.Fatalf("estimated words: got %d", b.EstimatedWords)
	}
	if b.ISBN13 != "9780441013593" {
		t.Fatalf("isbn13: got %q", b.ISBN13)
	}
	ds := b.DaysSpent()
	if ds == nil || *ds != 38 {
		t.Fatalf("days spent: got %v", ds)
	}
	if !b.Read() {
		t.Fatalf("shelf read: %+v", b)
	}
}
