package web

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

const resultPage = `<html><body><div id="links" class="results">
<div class="result results_links web-result">
  <h2 class="result__title">
    <a rel="nofollow" class="result__a" href="//duckduckgo.com/l/?uddg=https%3A%2F%2Fgo.dev%2Fblog%2F&amp;rut=abc">The <b>Go</b> Blog</a>
  </h2>
  <a class="result__snippet" href="//duckduckgo.com/l/?uddg=https%3A%2F%2Fgo.dev%2Fblog%2F">News from the Go project.</a>
</div>
<div class="result results_links web-result">
  <h2 class="result__title">
    <a rel="nofollow" class="result__a" href="https://pkg.go.dev/">Go Packages</a>
  </h2>
  <a class="result__snippet" href="https://pkg.go.dev/">Documentation for Go packages.</a>
</div>
<div class="result results_links web-result">
  <h2 class="result__title">
    <a rel="nofollow" class="result__a" href="//duckduckgo.com/l/?uddg=https%3A%2F%2Fgo.dev%2Fdoc%2F">Go Documentation</a>
  </h2>
  <a class="result__snippet" href="//duckduckgo.com/l/?uddg=https%3A%2F%2Fgo.dev%2Fdoc%2F">Official docs and tutorials.</a>
</div>
</div></body></html>`

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return &Client{httpClient: srv.Client(), endpoint: srv.URL}
}

func TestSearch_ParsesResults(t *testing.T) {
	var gotQuery string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			t.Errorf("parsing form: %v", err)
		}
		gotQuery = r.FormValue("q")
		w.Write([]byte(resultPage))
	})

	results, err := client.Search(context.Background(), "golang blog", 5)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if gotQuery != "golang blog" {
		t.Errorf("query sent = %q, want %q", gotQuery, "golang blog")
	}
	if len(results) != 3 {
		t.Fatalf("got %d results, want 3", len(results))
	}

	first := results[0]
	if first.Title != "The Go Blog" {
		t.Errorf("Title = %q, want %q", first.Title, "The Go Blog")
	}
	if first.URL != "https://go.dev/blog/" {
		t.Errorf("URL = %q, want redirect unwrapped to %q", first.URL, "https://go.dev/blog/")
	}
	if first.Snippet != "News from the Go project." {
		t.Errorf("Snippet = %q", first.Snippet)
	}
	if results[1].URL != "https://pkg.go.dev/" {
		t.Errorf("direct URL mangled: %q", results[1].URL)
	}
}

func TestSearch_LimitsResults(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(resultPage))
	})

	results, err := client.Search(context.Background(), "golang", 2)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("got %d results, want 2", len(results))
	}
	if results[1].Snippet != "Documentation for Go packages." {
		t.Errorf("second snippet = %q, want its own block's text", results[1].Snippet)
	}
}

func TestSearch_ServerError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "ratelimited", http.StatusForbidden)
	})

	if _, err := client.Search(context.Background(), "golang", 5); err == nil {
		t.Fatal("expected error for non-200 response")
	}
}

func TestCleanResultURL(t *testing.T) {
	cases := []struct {
		href string
		want string
	}{
		{"//duckduckgo.com/l/?uddg=https%3A%2F%2Fgo.dev%2F&rut=xyz", "https://go.dev/"},
		{"https://example.com/page", "https://example.com/page"},
		{"//example.com/page", "https://example.com/page"},
		{"", ""},
	}
	for _, tc := range cases {
		if got := cleanResultURL(tc.href); got != tc.want {
			t.Errorf("cleanResultURL(%q) = %q, want %q", tc.href, got, tc.want)
		}
	}
}

func TestDomain(t *testing.T) {
	cases := []struct {
		url  string
		want string
	}{
		{"https://www.example.com/path/page", "example.com"},
		{"http://go.dev/blog/", "go.dev"},
		{"https://pkg.go.dev", "pkg.go.dev"},
	}
	for _, tc := range cases {
		if got := Domain(tc.url); got != tc.want {
			t.Errorf("Domain(%q) = %q, want %q", tc.url, got, tc.want)
		}
	}
}

func TestBuildContext(t *testing.T) {
	results := []Result{
		{Title: "A", URL: "https://a.test", Snippet: "first"},
		{Title: "B", URL: "https://b.test", Snippet: "second"},
	}
	block := BuildContext("test query", results)

	if !strings.HasPrefix(block, "[Web search results for: test query]\n\n") {
		t.Errorf("missing header: %q", block)
	}
	if !strings.Contains(block, "Title: A\nURL: https://a.test\nSnippet: first") {
		t.Errorf("missing first stanza: %q", block)
	}
	if !strings.Contains(block, "\n\n---\n\n") {
		t.Error("stanzas not separated")
	}
	if !strings.HasSuffix(block, "Cite sources when relevant.") {
		t.Errorf("missing closing instruction: %q", block)
	}
}
