// Package resolver fetches page metadata and a text summary for a URL.
// Failures never propagate to the caller as hard errors: the returned
// Metadata is always usable, degraded to placeholders when the target is
// unreachable or unparseable.
package resolver

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	readability "github.com/go-shiori/go-readability"
	"github.com/marknest/api/internal/cache"
	"github.com/marknest/api/internal/pkg/log"
	platformconfig "github.com/marknest/api/internal/platform/config"
)

// Placeholder values used when resolution fails.
const (
	PlaceholderTitle   = "No Title"
	UnknownTitle       = "Unknown"
	PlaceholderSummary = "Summary not available."
)

// maxBodyBytes bounds how much of a page is read for parsing.
const maxBodyBytes = 2 << 20

// Metadata is the resolved page information attached to a bookmark.
type Metadata struct {
	Title   string `json:"title"`
	Favicon string `json:"favicon"`
	Summary string `json:"summary"`
}

// Resolver produces metadata for a page URL.
type Resolver interface {
	// Resolve returns metadata for pageURL. The Metadata is always populated;
	// the error reports why degradation happened, for logging only.
	Resolve(ctx context.Context, pageURL string) (Metadata, error)
}

type httpResolver struct {
	client         *http.Client
	readerEndpoint string
	maxChars       int
	cache          cache.Service
	cacheTTL       time.Duration
}

// New creates an HTTP resolver. Every outbound request is bounded by the
// configured timeout so an unresponsive site cannot stall a create request
// indefinitely.
func New(cfg platformconfig.BookmarksConfig, cacheSvc cache.Service, cacheTTL time.Duration) Resolver {
	return &httpResolver{
		client:         &http.Client{Timeout: cfg.ResolverTimeout},
		readerEndpoint: strings.TrimRight(cfg.ReaderEndpoint, "/"),
		maxChars:       cfg.SummaryMaxChars,
		cache:          cacheSvc,
		cacheTTL:       cacheTTL,
	}
}

func (r *httpResolver) Resolve(ctx context.Context, pageURL string) (Metadata, error) {
	if cached, ok := r.cachedMetadata(ctx, pageURL); ok {
		return cached, nil
	}

	body, fetchErr := r.fetchPage(ctx, pageURL)
	if fetchErr != nil {
		return Metadata{Title: UnknownTitle, Favicon: "", Summary: PlaceholderSummary}, fetchErr
	}

	meta := Metadata{Title: PlaceholderTitle}
	if doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body)); err == nil {
		if title := strings.TrimSpace(doc.Find("title").First().Text()); title != "" {
			meta.Title = title
		}
		meta.Favicon = findFavicon(doc, pageURL)
	}

	summary, sumErr := r.fetchSummary(ctx, pageURL)
	if sumErr != nil {
		summary, sumErr = r.extractSummary(body, pageURL)
	}
	if sumErr != nil {
		summary = PlaceholderSummary
	}
	meta.Summary = truncate(summary, r.maxChars)

	r.storeMetadata(ctx, pageURL, meta)

	return meta, nil
}

// fetchPage downloads the target page with the client timeout applied.
func (r *httpResolver) fetchPage(ctx context.Context, pageURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build page request: %w", err)
	}

	res, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch page: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return nil, fmt.Errorf("fetch page: unexpected status %d", res.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(res.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("read page body: %w", err)
	}

	return body, nil
}

// fetchSummary asks the reader endpoint for a text rendition of the page.
// The actual target URL is encoded and forwarded.
func (r *httpResolver) fetchSummary(ctx context.Context, pageURL string) (string, error) {
	readerURL := fmt.Sprintf("%s/%s", r.readerEndpoint, url.QueryEscape(pageURL))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, readerURL, nil)
	if err != nil {
		return "", fmt.Errorf("build reader request: %w", err)
	}

	res, err := r.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch summary: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return "", fmt.Errorf("fetch summary: unexpected status %d", res.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(res.Body, maxBodyBytes))
	if err != nil {
		return "", fmt.Errorf("read summary body: %w", err)
	}

	summary := strings.TrimSpace(string(body))
	if summary == "" {
		return "", fmt.Errorf("fetch summary: empty response")
	}

	return summary, nil
}

// extractSummary falls back to readability extraction of the already-fetched
// page when the reader endpoint is unavailable.
func (r *httpResolver) extractSummary(body []byte, pageURL string) (string, error) {
	parsed, err := url.Parse(pageURL)
	if err != nil {
		return "", fmt.Errorf("parse page url: %w", err)
	}

	article, err := readability.FromReader(bytes.NewReader(body), parsed)
	if err != nil {
		return "", fmt.Errorf("extract readable text: %w", err)
	}

	text := strings.TrimSpace(article.TextContent)
	if text == "" {
		return "", fmt.Errorf("extract readable text: empty content")
	}

	return text, nil
}

// findFavicon resolves the icon link against the page URL so relative hrefs
// come back absolute.
func findFavicon(doc *goquery.Document, pageURL string) string {
	href, ok := doc.Find("link[rel='icon']").First().Attr("href")
	if !ok {
		href, ok = doc.Find("link[rel='shortcut icon']").First().Attr("href")
	}
	if !ok || href == "" {
		return ""
	}

	base, err := url.Parse(pageURL)
	if err != nil {
		return href
	}
	ref, err := url.Parse(href)
	if err != nil {
		return href
	}
	return base.ResolveReference(ref).String()
}

func (r *httpResolver) cachedMetadata(ctx context.Context, pageURL string) (Metadata, bool) {
	if r.cache == nil {
		return Metadata{}, false
	}
	raw, ok, err := r.cache.Get(ctx, "resolver:"+pageURL)
	if err != nil || !ok {
		return Metadata{}, false
	}
	var meta Metadata
	if err := json.Unmarshal([]byte(raw), &meta); err != nil {
		return Metadata{}, false
	}
	return meta, true
}

func (r *httpResolver) storeMetadata(ctx context.Context, pageURL string, meta Metadata) {
	if r.cache == nil {
		return
	}
	raw, err := json.Marshal(meta)
	if err != nil {
		return
	}
	if err := r.cache.Set(ctx, "resolver:"+pageURL, string(raw), r.cacheTTL); err != nil {
		log.Warn("resolver cache store failed for %s: %v", pageURL, err)
	}
}

func truncate(s string, maxChars int) string {
	if maxChars <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= maxChars {
		return s
	}
	return string(runes[:maxChars])
}
