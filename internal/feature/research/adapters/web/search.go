package web

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"golang.org/x/net/html"

	"advisor_backend/internal/feature/research/domain/entity"
	"advisor_backend/internal/shared/ratelimiter"
)

const (
	ddgRedirectPrefix = "//duckduckgo.com/l/?uddg="
	maxSearchBody     = 1 << 20
)

// Searcher は DuckDuckGo の HTML 検索結果を取得します。
type Searcher struct {
	client   *http.Client
	endpoint string
	limiter  ratelimiter.RateLimiterInterface
}

// NewSearcher creates a Searcher. limiter may be nil.
func NewSearcher(client *http.Client, endpoint string, limiter ratelimiter.RateLimiterInterface) *Searcher {
	if endpoint == "" {
		endpoint = DefaultSearchEndpoint
	}
	return &Searcher{client: client, endpoint: endpoint, limiter: limiter}
}

// Search runs query and returns at most maxResults results.
func (s *Searcher) Search(ctx context.Context, query string, maxResults int) ([]entity.SearchResult, error) {
	if s.limiter != nil {
		if err := s.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("search rate limiter: %w", err)
		}
	}

	reqURL := s.endpoint + "?q=" + url.QueryEscape(query)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create search request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("search request failed: %w", err)
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			slog.Warn("failed to close search response body", "error", cerr)
		}
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("search returned HTTP %d", resp.StatusCode)
	}

	doc, err := html.Parse(io.LimitReader(resp.Body, maxSearchBody))
	if err != nil {
		return nil, fmt.Errorf("failed to parse search results: %w", err)
	}
	return parseResults(doc, maxResults), nil
}

// parseResults walks the result blocks of a DuckDuckGo HTML page.
func parseResults(doc *html.Node, maxResults int) []entity.SearchResult {
	var results []entity.SearchResult
	seen := map[string]bool{}

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if len(results) >= maxResults {
			return
		}
		if n.Type == html.ElementNode && n.Data == "a" && hasClass(attr(n, "class"), "result__a") {
			r := entity.SearchResult{
				Title: collapse(textOf(n)),
				URL:   resolveRedirect(attr(n, "href")),
			}
			if block := n.Parent; block != nil {
				if sn := findSnippet(block); sn != nil {
					r.Snippet = collapse(textOf(sn))
				}
			}
			if r.URL != "" && r.Title != "" && !seen[r.URL] {
				seen[r.URL] = true
				results = append(results, r)
			}
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return results
}

// findSnippet looks for the snippet element that belongs to the same result block.
func findSnippet(n *html.Node) *html.Node {
	for p := n; p != nil; p = p.Parent {
		if p.Type == html.ElementNode && hasClass(attr(p, "class"), "result") {
			return findFirst(p, func(c *html.Node) bool {
				return c.Type == html.ElementNode && hasClass(attr(c, "class"), "result__snippet")
			})
		}
	}
	return nil
}

// resolveRedirect unwraps DuckDuckGo redirect links to the target URL.
func resolveRedirect(href string) string {
	if !strings.HasPrefix(href, ddgRedirectPrefix) && !strings.Contains(href, "duckduckgo.com/l/?") {
		return href
	}
	u, err := url.Parse(href)
	if err != nil {
		return ""
	}
	if target := u.Query().Get("uddg"); target != "" {
		return target
	}
	return ""
}
