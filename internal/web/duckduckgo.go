package web

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/net/html"
)

const (
	searchEndpoint    = "https://html.duckduckgo.com/html/"
	searchTimeout     = 30 * time.Second
	searchUserAgent   = "Mozilla/5.0 (compatible; claude-chat/1.0; terminal client)"
	defaultMaxResults = 5
)

// Result is a single search hit.
type Result struct {
	Title   string
	URL     string
	Snippet string
}

// Client queries DuckDuckGo's HTML endpoint, which needs no API key.
type Client struct {
	httpClient *http.Client
	endpoint   string
}

// NewClient returns a search client with the default endpoint and timeout.
func NewClient() *Client {
	return &Client{
		httpClient: &http.Client{Timeout: searchTimeout},
		endpoint:   searchEndpoint,
	}
}

// Search fetches up to maxResults hits for query. A non-positive
// maxResults uses the default of 5.
func (c *Client) Search(ctx context.Context, query string, maxResults int) ([]Result, error) {
	if maxResults <= 0 {
		maxResults = defaultMaxResults
	}

	form := url.Values{"q": {query}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("building search request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("User-Agent", searchUserAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("searching for %q: %w", query, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("search returned status %d", resp.StatusCode)
	}

	results, err := parseResults(resp.Body, maxResults)
	if err != nil {
		return nil, fmt.Errorf("parsing search results: %w", err)
	}
	return results, nil
}

// parseResults walks the result page. Each hit is an anchor with class
// result__a (title and wrapped link) followed by a result__snippet anchor
// in the same block.
func parseResults(r io.Reader, maxResults int) ([]Result, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, err
	}

	var results []Result
	awaitingSnippet := false
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "a" {
			switch {
			case hasClass(n, "result__a"):
				awaitingSnippet = false
				if len(results) < maxResults {
					results = append(results, Result{
						Title: nodeText(n),
						URL:   cleanResultURL(attrValue(n, "href")),
					})
					awaitingSnippet = true
				}
			case hasClass(n, "result__snippet"):
				if awaitingSnippet && len(results) > 0 {
					results[len(results)-1].Snippet = nodeText(n)
					awaitingSnippet = false
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return results, nil
}

// cleanResultURL unwraps DuckDuckGo's redirect links, which carry the real
// target URL-encoded in the uddg parameter.
func cleanResultURL(href string) string {
	if href == "" {
		return ""
	}
	u, err := url.Parse(href)
	if err != nil {
		return href
	}
	if target := u.Query().Get("uddg"); target != "" {
		return target
	}
	if u.Scheme == "" && u.Host != "" {
		u.Scheme = "https"
		return u.String()
	}
	return href
}

// Domain reduces a URL to its host for compact display, dropping the
// scheme and any www prefix.
func Domain(rawURL string) string {
	trimmed := strings.TrimPrefix(rawURL, "https://")
	trimmed = strings.TrimPrefix(trimmed, "http://")
	trimmed = strings.TrimPrefix(trimmed, "www.")
	if i := strings.IndexByte(trimmed, '/'); i >= 0 {
		trimmed = trimmed[:i]
	}
	return trimmed
}

// BuildContext formats results as the context block fed to the model: a
// header naming the query, a stanza per result, and an instruction to use
// and cite them.
func BuildContext(query string, results []Result) string {
	stanzas := make([]string, 0, len(results))
	for _, r := range results {
		stanzas = append(stanzas, fmt.Sprintf("Title: %s\nURL: %s\nSnippet: %s", r.Title, r.URL, r.Snippet))
	}
	return fmt.Sprintf("[Web search results for: %s]\n\n%s\n\nUse the above web search results to help answer my question. Cite sources when relevant.",
		query, strings.Join(stanzas, "\n\n---\n\n"))
}

func hasClass(n *html.Node, class string) bool {
	for _, a := range n.Attr {
		if a.Key != "class" {
			continue
		}
		for _, c := range strings.Fields(a.Val) {
			if c == class {
				return true
			}
		}
	}
	return false
}

func attrValue(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func nodeText(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.TrimSpace(sb.String())
}
