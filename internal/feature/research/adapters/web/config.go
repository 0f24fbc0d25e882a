package web

import (
	"os"
	"strconv"
	"time"
)

const (
	// DefaultSearchEndpoint は DuckDuckGo の HTML 検索エンドポイントです。
	DefaultSearchEndpoint = "https://html.duckduckgo.com/html/"
	defaultTimeout        = 15 * time.Second
	defaultMaxURLs        = 15
)

// Config holds the search and scraping settings.
type Config struct {
	SearchEndpoint  string
	Timeout         time.Duration
	MaxURLs         int
	Workers         int
	SearchQueries   int
	ResultsPerQuery int
	MaxContentChars int
	// CacheSize and CacheTTL bound the in-process page cache.
	CacheSize int
	CacheTTL  time.Duration
	// SearchesPerMinute throttles calls to the search endpoint.
	SearchesPerMinute int
}

// LoadConfig は環境変数からスクレイパー設定を読み込みます。
func LoadConfig() Config {
	cfg := Config{
		SearchEndpoint:    os.Getenv("SEARCH_ENDPOINT"),
		Timeout:           defaultTimeout,
		MaxURLs:           defaultMaxURLs,
		Workers:           3,
		SearchQueries:     3,
		ResultsPerQuery:   5,
		MaxContentChars:   5000,
		CacheSize:         256,
		CacheTTL:          time.Hour,
		SearchesPerMinute: 20,
	}
	if cfg.SearchEndpoint == "" {
		cfg.SearchEndpoint = DefaultSearchEndpoint
	}
	if d, err := time.ParseDuration(os.Getenv("SCRAPER_TIMEOUT")); err == nil && d > 0 {
		cfg.Timeout = d
	}
	if n, err := strconv.Atoi(os.Getenv("SCRAPER_MAX_URLS")); err == nil && n > 0 {
		cfg.MaxURLs = n
	}
	return cfg
}
