package goodreads

import (
	"context"
	"io"
	"net/http"
	"strings"
	"testing"
)

type fakeHTTP struct {
	status int
	body   string
}

func (f fakeHTTP) Do(req *http.Request) (*http.Response, error) {
	return &http.Response{
		StatusCode: f.status,
		Body:       io.NopCloser(strings.NewReader(f.body)),
		Header:     make(http.Header),
	}, nil
}

const pageWithGenres = `<html><body>
<div data-testid="genresList">
  <a class="Button--tag"><span class="Button__labelItem">Fantasy</span></a>
  <a class="Button--tag"><span class="Button__labelItem">Urban Fantasy</span></a>
  <a class="Button--tag"><span class="Button__labelItem">Fiction</span></a>
</div>
<div data-testid="description">Others walk
  among <b>us</b>.</div>
</body></html>`

const pageLegacyTags = `<html><body>
<a class="BookPageTagButton">Science Fiction</a>
<a class="BookPageTagButton">Classics</a>
</body></html>`

func withClient(t *testing.T, c fakeHTTP) {
	t.Helper()
	old := client
	client = c
	t.Cleanup(func() { client = old })
}

func TestGenres(t *testing.T) {
	withClient(t, fakeHTTP{status: 200, body: pageWithGenres})
	got, err := Genres(context.Background(), "123")
	if err != nil {
		t.Fatalf("Genres: %v", err)
	}
	want := []string{"Fantasy", "Urban Fantasy", "Fiction"}
	if len(got) != len(want) {
		t.Fatalf("Genres: %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Genres[%d]: got %q want %q", i, got[i], want[i])
		}
	}
}

func TestGenresLegacyLayout(t *testing.T) {
	withClient(t, fakeHTTP{status: 200, body: pageLegacyTags})
	got, err := Genres(context.Background(), "123")
	if err != nil {
		t.Fatalf("Genres legacy: %v", err)
	}
	if len(got) != 2 || got[0] != "Science Fiction" {
		t.Fatalf("Genres legacy: %v", got)
	}
}

func TestGenresNoRegion(t *testing.T) {
	withClient(t, fakeHTTP{status: 200, body: "<html><body>nothing here</body></html>"})
	got, err := Genres(context.Background(), "123")
	if err != nil {
		t.Fatalf("no region should not error: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("Genres: %v", got)
	}
}

func TestDescription(t *testing.T) {
	withClient(t, fakeHTTP{status: 200, body: pageWithGenres})
	got, err := Description(context.Background(), "123")
	if err != nil {
		t.Fatalf("Description: %v", err)
	}
	if got != "Others walk among us ." {
		t.Fatalf("Description: %q", got)
	}
}

func TestDescriptionMissing(t *testing.T) {
	withClient(t, fakeHTTP{status: 200, body: pageLegacyTags})
	got, err := Description(context.Background(), "123")
	if err != nil || got != "" {
		t.Fatalf("missing description: %q %v", got, err)
	}
}

func TestEmptyBookID(t *testing.T) {
	withClient(t, fakeHTTP{status: 200, body: pageWithGenres})
	if _, err := Genres(context.Background(), " "); err == nil {
		t.Fatalf("expected error for empty book id")
	}
}

func TestStatusError(t *testing.T) {
	withClient(t, fakeHTTP{status: 404, body: "gone"})
	if _, err := Genres(context.Background(), "123"); err == nil {
		t.Fatalf("expected http error")
	}
}
