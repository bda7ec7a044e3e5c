// Package overrides holds the static correction tables: manual cover URLs,
// per-author series assignments, genre translation and exclusion, manual
// genre lists, and author display names. The tables are loaded once at
// process start from a single YAML file and passed explicitly to the stages
// that need them; a missing or unparsable file aborts the run.
package overrides

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"readstats/src/internal/schema"
)

// Series corrects automatic series detection for authors whose titles the
// regex handles badly. The overwrite is unconditional: a matched author's
// book gets the mapped series, or no series at all when the title is absent
// from the map.
type Series struct {
	Authors []string          `yaml:"authors"`
	Titles  map[string]string `yaml:"titles"`
}

// Tables is the full set of correction tables.
type Tables struct {
	Covers           map[string]string   `yaml:"covers"`
	Series           Series              `yaml:"series"`
	GenreTranslation map[string]string   `yaml:"genre_translation"`
	ExcludedGenres   []string            `yaml:"excluded_genres"`
	CustomGenres     map[string][]string `yaml:"custom_genres"`
	AuthorNames      map[string]string   `yaml:"author_names"`

	excluded map[string]bool
}

// Load reads the tables from a YAML file.
func Load(path string) (*Tables, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load overrides: %w", err)
	}
	var t Tables
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("parse overrides: %w", err)
	}
	t.index()
	return &t, nil
}

// Empty returns tables with no entries, for runs without local corrections.
func Empty() *Tables {
	t := &Tables{}
	t.index()
	return t
}

func (t *Tables) index() {
	t.excluded = make(map[string]bool, len(t.ExcludedGenres))
	for _, g := range t.ExcludedGenres {
		t.excluded[strings.TrimSpace(g)] = true
	}
}

// CoverFor returns the manually assigned cover URL for a cleaned title.
// Manual covers take precedence over every dynamic lookup.
func (t *Tables) CoverFor(title string) (string, bool) {
	u, ok := t.Covers[title]
	return u, ok
}

// GenresFor returns the manually assigned genre list for a cleaned title.
func (t *Tables) GenresFor(title string) ([]string, bool) {
	g, ok := t.CustomGenres[title]
	if !ok || len(g) == 0 {
		return nil, false
	}
	return append([]string(nil), g...), true
}

// Excluded reports whether a genre belongs to the excluded-topics set.
func (t *Tables) Excluded(genre string) bool {
	return t.excluded[strings.TrimSpace(genre)]
}

// Translate maps a source-language genre name to its display name, passing
// untranslated names through unchanged.
func (t *Tables) Translate(genre string) string {
	if v, ok := t.GenreTranslation[genre]; ok {
		return v
	}
	return genre
}

// FilterGenres applies the shared genre policy: drop excluded topics,
// translate what remains, and cap the list at max entries. The result is
// never nil.
func (t *Tables) FilterGenres(genres []string, max int) []string {
	out := []string{}
	for _, g := range genres {
		g = strings.TrimSpace(g)
		if g == "" || t.Excluded(g) {
			continue
		}
		out = append(out, t.Translate(g))
		if len(out) >= max {
			break
		}
	}
	return out
}

// Reconcile applies the manual corrections that need no network access:
// series overwrites for flagged authors and author display names.
func (t *Tables) Reconcile(b *schema.Book) {
	if name, ok := t.AuthorNames[b.Author]; ok {
		b.Author = name
	}
	for _, a := range t.Series.Authors {
		if a != b.Author && t.AuthorNames[a] != b.Author {
			continue
		}
		// unconditional overwrite, not a fallback: unmapped titles
		// lose their regex-derived series
		b.Series = t.Series.Titles[b.Title]
		return
	}
}
