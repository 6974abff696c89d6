package fetcher

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"
	"golang.org/x/net/html/charset"

	"leadengine/internal/pkg/circuitbreaker"
	"leadengine/internal/pkg/logger"
	"leadengine/internal/pkg/metrics"
	"leadengine/internal/pkg/pagecache"
)

// Some sites answer bots with empty 200s unless the request looks like a
// browser, hence the desktop Chrome headers.
const defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"

const maxBodyBytes = 2 << 20 // 2 MiB per page

// Retrieves single pages over HTTP. Every failure is returned as an error for
// the caller to absorb; the fetcher itself never retries.
type Fetcher struct {
	client    *http.Client
	userAgent string
	cache     pagecache.Cache // nil disables caching
	breakers  *circuitbreaker.Registry
}

// Creates a fetcher with the given per-request timeout. cache may be nil.
func New(timeout time.Duration, cache pagecache.Cache) *Fetcher {
	return &Fetcher{
		client: &http.Client{
			Timeout: timeout,
		},
		userAgent: defaultUserAgent,
		cache:     cache,
		breakers:  circuitbreaker.NewRegistry(3, 2*time.Minute),
	}
}

// Prefixes bare domains with https://.
func NormalizeURL(rawURL string) string {
	rawURL = strings.TrimSpace(rawURL)
	if rawURL == "" {
		return ""
	}
	if !strings.HasPrefix(rawURL, "http://") && !strings.HasPrefix(rawURL, "https://") {
		return "https://" + rawURL
	}
	return rawURL
}

// Retrieves one page as UTF-8 HTML, following redirects. Returns the body and
// the final URL after redirects.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (string, string, error) {
	pageURL := NormalizeURL(rawURL)
	if pageURL == "" {
		return "", "", fmt.Errorf("empty URL")
	}

	parsed, err := url.Parse(pageURL)
	if err != nil || parsed.Host == "" {
		metrics.FetchFailures.Inc()
		return "", "", fmt.Errorf("invalid URL %q", rawURL)
	}

	if f.cache != nil {
		if html, ok := f.cache.Get(pageURL); ok {
			logger.Log.Debug("Page served from cache", zap.String("url", pageURL))
			return html, pageURL, nil
		}
	}

	var html, finalURL string
	err = f.breakers.ForHost(parsed.Host).Execute(func() error {
		var fetchErr error
		html, finalURL, fetchErr = f.doFetch(ctx, pageURL)
		return fetchErr
	})
	if err != nil {
		metrics.FetchFailures.Inc()
		return "", "", err
	}

	if f.cache != nil {
		f.cache.Put(pageURL, html)
	}

	metrics.PagesFetched.Inc()
	return html, finalURL, nil
}

func (f *Fetcher) doFetch(ctx context.Context, pageURL string) (string, string, error) {
	start := time.Now()

	request, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return "", "", err
	}
	request.Header.Set("User-Agent", f.userAgent)
	request.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	request.Header.Set("Accept-Language", "en-US,en;q=0.5")

	response, err := f.client.Do(request)
	if err != nil {
		return "", "", err
	}
	defer response.Body.Close()

	if response.StatusCode < 200 || response.StatusCode >= 300 {
		return "", "", fmt.Errorf("http status %d for %s", response.StatusCode, pageURL)
	}

	body, err := io.ReadAll(io.LimitReader(response.Body, maxBodyBytes))
	if err != nil {
		return "", "", err
	}

	metrics.FetchLatency.Observe(time.Since(start).Seconds())

	html, err := decodeToUTF8(body, response.Header.Get("Content-Type"))
	if err != nil {
		return "", "", err
	}
	return html, response.Request.URL.String(), nil
}

// Decodes a response body to UTF-8 using the declared or sniffed charset.
func decodeToUTF8(body []byte, contentType string) (string, error) {
	enc, _, _ := charset.DetermineEncoding(body, contentType)
	decoded, err := enc.NewDecoder().Bytes(body)
	if err != nil {
		// fallback: if already utf-8, continue
		if !utf8.Valid(body) {
			return "", err
		}
		decoded = body
	}
	return string(decoded), nil
}
