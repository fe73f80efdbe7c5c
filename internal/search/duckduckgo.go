package search

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/net/html"
)

// DuckDuckGoClient implements Client against the DuckDuckGo HTML endpoint.
// It needs no API key, which makes it a useful fallback provider, but result
// quality and stability are below a real search API.
type DuckDuckGoClient struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client
}

// DuckDuckGoConfig holds configuration for the DuckDuckGo client.
type DuckDuckGoConfig struct {
	BaseURL   string
	UserAgent string
	Timeout   time.Duration
}

// DefaultDuckDuckGoConfig returns sensible defaults.
func DefaultDuckDuckGoConfig() DuckDuckGoConfig {
	return DuckDuckGoConfig{
		BaseURL:   "https://html.duckduckgo.com/html/",
		UserAgent: "Mozilla/5.0 (compatible; stratagem/1.0)",
		Timeout:   30 * time.Second,
	}
}

// NewDuckDuckGoClient creates a DuckDuckGo client with default config.
func NewDuckDuckGoClient() *DuckDuckGoClient {
	return NewDuckDuckGoClientWithConfig(DefaultDuckDuckGoConfig())
}

// NewDuckDuckGoClientWithConfig creates a DuckDuckGo client with custom config.
func NewDuckDuckGoClientWithConfig(config DuckDuckGoConfig) *DuckDuckGoClient {
	return &DuckDuckGoClient{
		baseURL:   config.BaseURL,
		userAgent: config.UserAgent,
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
	}
}

// Search fetches and parses one page of DuckDuckGo HTML results.
func (c *DuckDuckGoClient) Search(ctx context.Context, query string, maxResults int) ([]Result, error) {
	endpoint := c.baseURL + "?q=" + url.QueryEscape(query)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, &Error{Provider: "duckduckgo", Err: fmt.Errorf("failed to create request: %w", err)}
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &Error{Provider: "duckduckgo", Err: fmt.Errorf("request failed: %w", err)}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &Error{Provider: "duckduckgo", Err: fmt.Errorf("request failed with status %d", resp.StatusCode)}
	}

	doc, err := html.Parse(resp.Body)
	if err != nil {
		return nil, &Error{Provider: "duckduckgo", Err: fmt.Errorf("failed to parse HTML: %w", err)}
	}

	results := parseResults(doc)
	if maxResults > 0 && len(results) > maxResults {
		results = results[:maxResults]
	}
	return results, nil
}

// parseResults walks the document collecting result blocks in page order.
func parseResults(doc *html.Node) []Result {
	var results []Result
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "div" && hasClass(n, "result") {
			if r, ok := parseResultNode(n); ok {
				results = append(results, r)
			}
			return
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(doc)
	return results
}

func parseResultNode(n *html.Node) (Result, bool) {
	var r Result
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "a" {
			switch {
			case hasClass(n, "result__a"):
				r.Title = textContent(n)
				r.URL = resolveRedirect(attr(n, "href"))
			case hasClass(n, "result__snippet"):
				r.Content = textContent(n)
			}
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(n)
	if r.Title == "" || r.URL == "" {
		return Result{}, false
	}
	return r, true
}

// resolveRedirect unwraps DuckDuckGo's /l/?uddg= redirect links.
func resolveRedirect(href string) string {
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
	if u.Scheme == "" {
		return "https:" + href
	}
	return href
}

func hasClass(n *html.Node, class string) bool {
	for _, c := range strings.Fields(attr(n, "class")) {
		if c == class {
			return true
		}
	}
	return false
}

func attr(n *html.Node, name string) string {
	for _, a := range n.Attr {
		if a.Key == name {
			return a.Val
		}
	}
	return ""
}

func textContent(n *html.Node) string {
	var sb strings.Builder
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(n)
	return strings.TrimSpace(strings.Join(strings.Fields(sb.String()), " "))
}
