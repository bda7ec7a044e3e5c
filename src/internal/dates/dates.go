package dates

import (
	"strings"
	"time"
)

// layouts covers the date shapes seen in Goodreads library exports.
// Ordered roughly by how often each shows up in practice.
var layouts = []string{
	"2006/01/02",
	"2006-01-02",
	"01/02/2006",
	"Jan 02, 2006",
	"Jan 2, 2006",
	"January 2, 2006",
	"2006/01",
	"2006-01",
	"2006",
}

// ParseLenient parses a date string against the known export layouts.
// Returns nil for blank or unparsable input; a bad date never errors.
func ParseLenient(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return &t
		}
	}
	return nil
}

// FormatISO renders a date as YYYY-MM-DD; nil becomes the empty string.
func FormatISO(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("2006-01-02")
}

// Month renders a date's calendar month as YYYY-MM.
func Month(t time.Time) string { return t.Format("2006-01") }

// DaysBetween returns whole days from a to b (negative when b precedes a).
func DaysBetween(a, b time.Time) int {
	return int(b.Sub(a).Hours() / 24)
}
