// Package web は検索エンジンと公開 Web ページから企業情報を収集します。
package web

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/net/html"
	"golang.org/x/sync/errgroup"

	"advisor_backend/internal/feature/research/domain/entity"
	"advisor_backend/internal/feature/research/usecase"
	"advisor_backend/internal/platform/metrics"
)

const maxPageBody = 5 << 20

// SearchEngine はクエリから候補 URL を返します。
type SearchEngine interface {
	Search(ctx context.Context, query string, maxResults int) ([]entity.SearchResult, error)
}

// Scraper implements usecase.WebResearcher on top of a SearchEngine and plain HTTP fetches.
type Scraper struct {
	client   *http.Client
	searcher SearchEngine
	cfg      Config
	cache    *expirable.LRU[string, entity.ScrapeResult]
}

var _ usecase.WebResearcher = (*Scraper)(nil)

// NewScraper は新しい Scraper を生成します。成功したページは cfg.CacheTTL の間キャッシュされます。
func NewScraper(client *http.Client, searcher SearchEngine, cfg Config) *Scraper {
	if cfg.Workers <= 0 {
		cfg.Workers = 3
	}
	if cfg.MaxURLs <= 0 {
		cfg.MaxURLs = defaultMaxURLs
	}
	if cfg.CacheSize <= 0 {
		cfg.CacheSize = 256
	}
	return &Scraper{
		client:   client,
		searcher: searcher,
		cfg:      cfg,
		cache:    expirable.NewLRU[string, entity.ScrapeResult](cfg.CacheSize, nil, cfg.CacheTTL),
	}
}

// Research searches for the company, scrapes the candidate pages and combines the text.
func (s *Scraper) Research(ctx context.Context, companyName, companyURL string, focusAreas []string) (*entity.WebResearch, error) {
	queries := usecase.BuildSearchQueries(companyName, focusAreas)
	searched := queries
	if len(searched) > s.cfg.SearchQueries && s.cfg.SearchQueries > 0 {
		searched = searched[:s.cfg.SearchQueries]
	}

	urls := s.collectURLs(ctx, companyURL, searched)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	slog.Info("scraping urls", "company", companyName, "count", len(urls))

	results := s.ScrapeAll(ctx, urls)

	var blocks []string
	scraped := []string{}
	for _, r := range results {
		if r.Success && r.Content != "" {
			blocks = append(blocks, fmt.Sprintf("=== %s (%s) ===\n%s\n", r.Title, r.URL, r.Content))
			scraped = append(scraped, r.URL)
		}
	}
	slog.Info("web research finished", "company", companyName, "successful", len(scraped), "attempted", len(urls))

	return &entity.WebResearch{
		Content:            strings.Join(blocks, "\n"),
		URLsScraped:        scraped,
		TotalURLsAttempted: len(urls),
		SuccessfulScrapes:  len(scraped),
		Results:            results,
		QueriesUsed:        queries,
	}, nil
}

// collectURLs returns the company URL followed by unique search hits, capped at MaxURLs.
func (s *Scraper) collectURLs(ctx context.Context, companyURL string, queries []string) []string {
	seen := map[string]bool{}
	var urls []string
	add := func(u string) {
		if u == "" || seen[u] || len(urls) >= s.cfg.MaxURLs {
			return
		}
		seen[u] = true
		urls = append(urls, u)
	}
	add(companyURL)

	if s.searcher == nil {
		return urls
	}
	for _, q := range queries {
		hits, err := s.searcher.Search(ctx, q, s.cfg.ResultsPerQuery)
		if err != nil {
			if ctx.Err() != nil {
				return urls
			}
			slog.Warn("search failed", "query", q, "error", err)
			continue
		}
		for _, h := range hits {
			add(h.URL)
		}
	}
	return urls
}

// ScrapeAll fetches urls with a bounded worker pool. The result order matches urls.
func (s *Scraper) ScrapeAll(ctx context.Context, urls []string) []entity.ScrapeResult {
	results := make([]entity.ScrapeResult, len(urls))
	var g errgroup.Group
	g.SetLimit(s.cfg.Workers)
	for i, u := range urls {
		g.Go(func() error {
			results[i] = s.Scrape(ctx, u)
			return nil
		})
	}
	_ = g.Wait()
	return results
}

// Scrape fetches one page. Failures are reported in the result, never as an error.
func (s *Scraper) Scrape(ctx context.Context, pageURL string) entity.ScrapeResult {
	if r, ok := s.cache.Get(pageURL); ok {
		return r
	}

	title, content, err := s.fetch(ctx, pageURL)
	metrics.ScrapedPages.WithLabelValues(metrics.Outcome(err)).Inc()
	if err != nil {
		slog.Warn("scrape failed", "url", pageURL, "error", err)
		return entity.ScrapeResult{
			URL:     pageURL,
			Title:   hostOf(pageURL),
			Content: fmt.Sprintf("Content not accessible due to: %v", err),
			Error:   fmt.Sprintf("Request failed: %v", err),
		}
	}

	r := entity.ScrapeResult{
		URL:     pageURL,
		Title:   title,
		Content: content,
		Length:  len(content),
		Success: true,
	}
	s.cache.Add(pageURL, r)
	return r
}

func (s *Scraper) fetch(ctx context.Context, pageURL string) (string, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return "", "", fmt.Errorf("invalid url: %w", err)
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return "", "", err
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			slog.Warn("failed to close page body", "url", pageURL, "error", cerr)
		}
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", "", fmt.Errorf("HTTP %d", resp.StatusCode)
	}

	doc, err := html.Parse(io.LimitReader(resp.Body, maxPageBody))
	if err != nil {
		return "", "", fmt.Errorf("failed to parse html: %w", err)
	}
	title, content := ExtractPage(doc, pageURL, s.cfg.MaxContentChars)
	return title, content, nil
}

func hostOf(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	return u.Host
}
