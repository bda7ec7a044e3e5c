// Package goodreads scrapes a book's public Goodreads page for the two
// things the catalog API often lacks: the community genre tags and the
// description block. A page without either region is a valid "no data"
// outcome, not an error.
package goodreads

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"readstats/src/internal/httpx"
	"readstats/src/internal/stringsx"
)

// client is the HTTP client used by this package; replaceable in tests.
var client httpx.Doer = &http.Client{Timeout: 10 * time.Second}

// SetHTTPClient allows tests (and the pipeline) to inject an HTTP client.
func SetHTTPClient(c httpx.Doer) { client = c }

const baseURL = "https://www.goodreads.com/book/show/"

var (
	genresListRe = regexp.MustCompile(`(?is)<div[^>]*data-testid="genresList"[^>]*>(.*?)</div>`)
	labelItemRe  = regexp.MustCompile(`(?is)<span[^>]*class="[^"]*Button__labelItem[^"]*"[^>]*>(.*?)</span>`)
	tagButtonRe  = regexp.MustCompile(`(?is)<a[^>]*class="[^"]*BookPageTagButton[^"]*"[^>]*>(.*?)</a>`)
	descRe       = regexp.MustCompile(`(?is)<div[^>]*data-testid="description"[^>]*>(.*?)</div>`)
	tagRe        = regexp.MustCompile(`(?s)<[^>]*>`)
)

// Genres extracts the genre-tag list from the book page. The primary parse
// targets the genresList region; older page layouts fall back to tag
// buttons. Returns an error only for transport or status failures.
func Genres(ctx context.Context, bookID string) ([]string, error) {
	body, err := fetch(ctx, bookID)
	if err != nil {
		return nil, err
	}
	if m := genresListRe.FindStringSubmatch(body); len(m) == 2 {
		if genres := spanTexts(labelItemRe, m[1]); len(genres) > 0 {
			return genres, nil
		}
	}
	if genres := spanTexts(tagButtonRe, body); len(genres) > 0 {
		return genres, nil
	}
	return nil, nil
}

// Description extracts the free-text description block, collapsed to single
// spaces. An absent block yields "".
func Description(ctx context.Context, bookID string) (string, error) {
	body, err := fetch(ctx, bookID)
	if err != nil {
		return "", err
	}
	m := descRe.FindStringSubmatch(body)
	if len(m) != 2 {
		return "", nil
	}
	return stripTags(m[1]), nil
}

func fetch(ctx context.Context, bookID string) (string, error) {
	if strings.TrimSpace(bookID) == "" {
		return "", fmt.Errorf("goodreads: empty book id")
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, baseURL+bookID, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("Accept", "text/html")
	httpx.SetUA(req)
	resp, err := client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("goodreads: http %d for book %s", resp.StatusCode, bookID)
	}
	b, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func spanTexts(re *regexp.Regexp, region string) []string {
	var out []string
	for _, m := range re.FindAllStringSubmatch(region, -1) {
		if t := stripTags(m[1]); t != "" {
			out = append(out, t)
		}
	}
	return out
}

func stripTags(s string) string {
	s = tagRe.ReplaceAllString(s, " ")
	s = htmlUnescape(s)
	return stringsx.CollapseSpace(s)
}

func htmlUnescape(s string) string {
	r := strings.NewReplacer("&amp;", "&", "&lt;", "<", "&gt;", ">", "&quot;", `"`, "&#39;", "'", "&nbsp;", " ")
	return r.Replace(s)
}
