package fetcher

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"

	"leadengine/internal/pkg/logger"
)

func init() {
	// Ensure that the logger is not nil during tests.
	logger.Log = zap.NewNop()
}

// In-memory Cache implementation for tests.
type memoryCache struct {
	mu    sync.Mutex
	pages map[string]string
	puts  int
}

func newMemoryCache() *memoryCache {
	return &memoryCache{pages: map[string]string{}}
}

func (c *memoryCache) Get(url string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	html, ok := c.pages[url]
	return html, ok
}

func (c *memoryCache) Put(url string, html string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pages[url] = html
	c.puts++
}

func TestNormalizeURL(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"acme.example", "https://acme.example"},
		{"  acme.example  ", "https://acme.example"},
		{"http://acme.example", "http://acme.example"},
		{"https://acme.example", "https://acme.example"},
		{"", ""},
	}
	for _, tc := range cases {
		if got := NormalizeURL(tc.in); got != tc.want {
			t.Errorf("NormalizeURL(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestFetchSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if ua := r.Header.Get("User-Agent"); ua == "" || ua == "Go-http-client/1.1" {
			t.Errorf("Expected a browser user agent, got %q", ua)
		}
		fmt.Fprint(w, "<html><body>hello</body></html>")
	}))
	defer server.Close()

	f := New(5*time.Second, nil)
	html, finalURL, err := f.Fetch(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Fetch returned error: %v", err)
	}
	if html == "" || finalURL != server.URL {
		t.Errorf("html=%q finalURL=%q", html, finalURL)
	}
}

func TestFetchNon2xxIsError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	f := New(5*time.Second, nil)
	if _, _, err := f.Fetch(context.Background(), server.URL); err == nil {
		t.Fatal("Expected error for 404 response")
	}
}

func TestFetchFollowsRedirects(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/final", http.StatusMovedPermanently)
	})
	mux.HandleFunc("/final", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "<html><body>landed</body></html>")
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	f := New(5*time.Second, nil)
	_, finalURL, err := f.Fetch(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Fetch returned error: %v", err)
	}
	if finalURL != server.URL+"/final" {
		t.Errorf("finalURL = %q", finalURL)
	}
}

func TestFetchUsesCache(t *testing.T) {
	var hits int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		fmt.Fprint(w, "<html><body>origin</body></html>")
	}))
	defer server.Close()

	cache := newMemoryCache()
	f := New(5*time.Second, cache)

	if _, _, err := f.Fetch(context.Background(), server.URL); err != nil {
		t.Fatal(err)
	}
	if cache.puts != 1 {
		t.Errorf("Expected one cache write, got %d", cache.puts)
	}

	// Second fetch must come from the cache.
	if _, _, err := f.Fetch(context.Background(), server.URL); err != nil {
		t.Fatal(err)
	}
	if hits != 1 {
		t.Errorf("Expected one origin request, got %d", hits)
	}
}

func TestFetchInvalidURL(t *testing.T) {
	f := New(time.Second, nil)
	if _, _, err := f.Fetch(context.Background(), "   "); err == nil {
		t.Error("Expected error for blank URL")
	}
	if _, _, err := f.Fetch(context.Background(), "https://"); err == nil {
		t.Error("Expected error for hostless URL")
	}
}

func TestDecodeToUTF8Latin1(t *testing.T) {
	// "café" in ISO-8859-1.
	body := []byte{'c', 'a', 'f', 0xe9}
	decoded, err := decodeToUTF8(body, "text/html; charset=iso-8859-1")
	if err != nil {
		t.Fatalf("decodeToUTF8 returned error: %v", err)
	}
	if decoded != "café" {
		t.Errorf("decoded = %q, want café", decoded)
	}
}
