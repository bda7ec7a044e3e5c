// Package googlebooks is a thin client for the Google Books volumes API,
// the catalog-search service behind genre, annotation, and cover resolution.
package googlebooks

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"readstats/src/internal/httpx"
)

// client is the HTTP client used by this package; replaceable in tests.
var client httpx.Doer = &http.Client{Timeout: 10 * time.Second}

// SetHTTPClient allows tests (and the pipeline) to inject an HTTP client.
func SetHTTPClient(c httpx.Doer) { client = c }

const endpoint = "https://www.googleapis.com/books/v1/volumes"

// APIKey, when set, is appended to every request. The service answers
// anonymous requests too, just with tighter quotas.
var APIKey string

// Volume is the subset of volumeInfo the pipeline cares about.
type Volume struct {
	Title       string   `json:"title"`
	Authors     []string `json:"authors"`
	Categories  []string `json:"categories"`
	Description string   `json:"description"`
	ImageLinks  struct {
		Thumbnail string `json:"thumbnail"`
	} `json:"imageLinks"`
}

// Thumbnail returns the volume's cover image reference, or "".
func (v *Volume) Thumbnail() string { return strings.TrimSpace(v.ImageLinks.Thumbnail) }

// ByISBN fetches the best match for an ISBN digit string.
func ByISBN(ctx context.Context, isbn string) (*Volume, error) {
	digits := strings.ReplaceAll(strings.TrimSpace(isbn), "-", "")
	return query(ctx, "isbn:"+digits)
}

// ByTitleAuthor runs a full-text search constrained to an author.
func ByTitleAuthor(ctx context.Context, title, author string) (*Volume, error) {
	return query(ctx, title+"+inauthor:"+strings.TrimSpace(author))
}

// ByTitle runs a broad title-only search, the widest net in the cover chain.
func ByTitle(ctx context.Context, title string) (*Volume, error) {
	return query(ctx, title)
}

func query(ctx context.Context, q string) (*Volume, error) {
	v := url.Values{}
	v.Set("q", q)
	v.Set("maxResults", "1")
	if APIKey != "" {
		v.Set("key", APIKey)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?"+v.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	httpx.SetUA(req)
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("googlebooks: http %d: %s", resp.StatusCode, string(b))
	}
	var r struct {
		TotalItems int `json:"totalItems"`
		Items      []struct {
			VolumeInfo Volume `json:"volumeInfo"`
		} `json:"items"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&r); err != nil {
		return nil, err
	}
	if len(r.Items) == 0 {
		return nil, fmt.Errorf("googlebooks: no results for %q", q)
	}
	vol := r.Items[0].VolumeInfo
	return &vol, nil
}
