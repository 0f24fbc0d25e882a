package web

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const ddgPage = `<html><body>
<div class="result results_links results_links_deep web-result">
  <h2 class="result__title"><a class="result__a" href="//duckduckgo.com/l/?uddg=https%3A%2F%2Fwww.acme.com%2Fabout&amp;rut=abc">Acme <b>About</b></a></h2>
  <a class="result__snippet" href="#">Acme builds rockets.</a>
</div>
<div class="result results_links">
  <h2 class="result__title"><a class="result__a" href="https://news.example.com/acme">Acme in the news</a></h2>
  <a class="result__snippet" href="#">Launch coverage</a>
</div>
<div class="result results_links">
  <h2 class="result__title"><a class="result__a" href="https://news.example.com/acme">Duplicate</a></h2>
</div>
<div class="result results_links">
  <h2 class="result__title"><a class="result__a" href="https://third.example.com">Third</a></h2>
</div>
</body></html>`

func TestSearcher_Search(t *testing.T) {
	t.Parallel()

	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("q")
		_, _ = w.Write([]byte(ddgPage))
	}))
	defer srv.Close()

	s := NewSearcher(srv.Client(), srv.URL+"/html/", nil)
	results, err := s.Search(context.Background(), "Acme company business model", 2)
	require.NoError(t, err)

	assert.Equal(t, "Acme company business model", gotQuery)
	require.Len(t, results, 2)
	assert.Equal(t, "https://www.acme.com/about", results[0].URL)
	assert.Equal(t, "Acme About", results[0].Title)
	assert.Equal(t, "Acme builds rockets.", results[0].Snippet)
	assert.Equal(t, "https://news.example.com/acme", results[1].URL)
}

func TestSearcher_Search_Dedupes(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(ddgPage))
	}))
	defer srv.Close()

	results, err := NewSearcher(srv.Client(), srv.URL, nil).Search(context.Background(), "q", 10)
	require.NoError(t, err)
	require.Len(t, results, 3)
	assert.Equal(t, "https://third.example.com", results[2].URL)
}

func TestSearcher_Search_HTTPError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	_, err := NewSearcher(srv.Client(), srv.URL, nil).Search(context.Background(), "q", 5)
	assert.ErrorContains(t, err, "HTTP 429")
}
