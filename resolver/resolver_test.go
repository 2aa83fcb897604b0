package resolver

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/marknest/api/internal/cache"
	platformconfig "github.com/marknest/api/internal/platform/config"
	"github.com/stretchr/testify/require"
)

const pageHTML = `<!doctype html>
<html>
<head>
  <title>Example Domain</title>
  <link rel="icon" href="/favicon.ico">
</head>
<body>
  <article><p>This domain is for use in illustrative examples in documents.</p></article>
</body>
</html>`

func testConfig(readerEndpoint string) platformconfig.BookmarksConfig {
	return platformconfig.BookmarksConfig{
		ResolverTimeout: 2 * time.Second,
		ReaderEndpoint:  readerEndpoint,
		SummaryMaxChars: 600,
	}
}

func TestResolve_TitleFaviconAndSummary(t *testing.T) {
	page := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(pageHTML))
	}))
	defer page.Close()

	reader := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("A readable rendition of the page."))
	}))
	defer reader.Close()

	r := New(testConfig(reader.URL), nil, 0)
	meta, err := r.Resolve(context.Background(), page.URL)

	require.NoError(t, err)
	require.Equal(t, "Example Domain", meta.Title)
	require.Equal(t, page.URL+"/favicon.ico", meta.Favicon)
	require.Equal(t, "A readable rendition of the page.", meta.Summary)
}

func TestResolve_ReaderFailureFallsBack(t *testing.T) {
	page := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(pageHTML))
	}))
	defer page.Close()

	reader := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer reader.Close()

	r := New(testConfig(reader.URL), nil, 0)
	meta, err := r.Resolve(context.Background(), page.URL)

	require.NoError(t, err)
	require.Equal(t, "Example Domain", meta.Title)
	require.NotEmpty(t, meta.Summary)
}

func TestResolve_UnreachablePageDegrades(t *testing.T) {
	r := New(testConfig("http://127.0.0.1:1"), nil, 0)
	meta, err := r.Resolve(context.Background(), "http://127.0.0.1:1/missing")

	require.Error(t, err)
	require.Equal(t, UnknownTitle, meta.Title)
	require.Empty(t, meta.Favicon)
	require.Equal(t, PlaceholderSummary, meta.Summary)
}

func TestResolve_SummaryTruncated(t *testing.T) {
	page := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(pageHTML))
	}))
	defer page.Close()

	long := make([]byte, 0, 2000)
	for i := 0; i < 2000; i++ {
		long = append(long, 'x')
	}
	reader := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(long)
	}))
	defer reader.Close()

	cfg := testConfig(reader.URL)
	cfg.SummaryMaxChars = 100

	r := New(cfg, nil, 0)
	meta, err := r.Resolve(context.Background(), page.URL)

	require.NoError(t, err)
	require.Len(t, meta.Summary, 100)
}

func TestResolve_CachesByURL(t *testing.T) {
	var pageHits int32
	page := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&pageHits, 1)
		_, _ = w.Write([]byte(pageHTML))
	}))
	defer page.Close()

	reader := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("summary text"))
	}))
	defer reader.Close()

	r := New(testConfig(reader.URL), cache.NewMemoryCache("test:"), time.Minute)

	first, err := r.Resolve(context.Background(), page.URL)
	require.NoError(t, err)
	second, err := r.Resolve(context.Background(), page.URL)
	require.NoError(t, err)

	require.Equal(t, first, second)
	require.Equal(t, int32(1), atomic.LoadInt32(&pageHits))
}
