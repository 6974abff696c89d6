package crawler

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"go.uber.org/zap"

	"leadengine/internal/pkg/fetcher"
	"leadengine/internal/pkg/logger"
	"leadengine/internal/pkg/models"
	"leadengine/internal/pkg/parser"
)

func init() {
	// Ensure that the logger is not nil during tests.
	logger.Log = zap.NewNop()
}

func newTestCrawler(maxPages int) *Crawler {
	f := fetcher.New(5*time.Second, nil)
	return New(f, parser.New(), maxPages, 0)
}

func TestCrawlRespectsMaxPages(t *testing.T) {
	var requests int32

	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&requests, 1)
		if r.URL.Path == "/" {
			var links strings.Builder
			for i := 0; i < 10; i++ {
				fmt.Fprintf(&links, `<a href="/about-%d">About page %d</a>`, i, i)
			}
			fmt.Fprintf(w, `<html><head><title>Home</title></head><body>
                <h1>Welcome to the homepage</h1>
                <p>This paragraph is long enough to be collected by the parser.</p>
                %s</body></html>`, links.String())
			return
		}
		fmt.Fprintf(w, `<html><head><title>Sub</title></head><body>
            <h1>Heading from %s</h1>
            <p>Another sufficiently long paragraph from a subpage.</p>
            </body></html>`, r.URL.Path)
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	c := newTestCrawler(3)
	content, err := c.Crawl(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Crawl returned error: %v", err)
	}

	// Root page plus at most maxPages-1 follow-ups.
	if got := atomic.LoadInt32(&requests); got != 3 {
		t.Errorf("Expected 3 requests, got %d", got)
	}

	if content.Title != "Home" {
		t.Errorf("Expected root page title, got %q", content.Title)
	}
	// One heading from home plus one per fetched subpage.
	if len(content.Headings) != 3 {
		t.Errorf("Expected 3 merged headings, got %d: %v", len(content.Headings), content.Headings)
	}
	if content.Language == "" {
		t.Error("Expected a language value, even if unknown")
	}
}

func TestCrawlRootFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	c := newTestCrawler(3)
	if _, err := c.Crawl(context.Background(), server.URL); err == nil {
		t.Fatal("Expected error when the root fetch fails")
	}
}

func TestCrawlSkipsFailedSubpages(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/" {
			fmt.Fprint(w, `<html><head><title>Home</title></head><body>
                <h1>Homepage heading</h1>
                <a href="/about">About us</a>
                <a href="/pricing">Pricing</a>
                </body></html>`)
			return
		}
		if r.URL.Path == "/about" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		fmt.Fprint(w, `<html><head><title>Pricing</title></head><body>
            <h1>Pricing heading</h1></body></html>`)
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	c := newTestCrawler(3)
	content, err := c.Crawl(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Crawl returned error: %v", err)
	}

	joined := strings.Join(content.Headings, "|")
	if !strings.Contains(joined, "Pricing heading") {
		t.Errorf("Reachable subpage content missing: %v", content.Headings)
	}
}

func TestCrawlFailedSubpageConsumesSlot(t *testing.T) {
	var subRequests int32

	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/" {
			fmt.Fprint(w, `<html><head><title>Home</title></head><body>
                <a href="/about">About</a>
                <a href="/pricing">Pricing</a>
                <a href="/features">Features</a>
                <a href="/contact">Contact</a>
                </body></html>`)
			return
		}
		atomic.AddInt32(&subRequests, 1)
		w.WriteHeader(http.StatusNotFound)
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	c := newTestCrawler(3)
	if _, err := c.Crawl(context.Background(), server.URL); err != nil {
		t.Fatalf("Crawl returned error: %v", err)
	}

	// A failed candidate is not replaced by the next one in line.
	if got := atomic.LoadInt32(&subRequests); got != 2 {
		t.Errorf("Expected 2 follow-up fetches, got %d", got)
	}
}

func TestMergeDeduplicatesAndCaps(t *testing.T) {
	main := models.WebsiteContent{
		Headings:    []string{"Shared", "Main only"},
		Paragraphs:  []string{"A paragraph both pages have."},
		Links:       []models.Link{{URL: "https://a.example/x", Text: "x"}},
		TextContent: "main text",
	}
	additional := models.WebsiteContent{
		Headings:    []string{"Shared", "Extra"},
		Paragraphs:  []string{"A paragraph both pages have.", "A new one."},
		Links:       []models.Link{{URL: "https://a.example/x", Text: "dup"}, {URL: "https://a.example/y", Text: "y"}},
		TextContent: "extra text",
	}

	Merge(&main, additional)

	wantHeadings := []string{"Shared", "Main only", "Extra"}
	if !reflect.DeepEqual(main.Headings, wantHeadings) {
		t.Errorf("Headings = %v, want %v", main.Headings, wantHeadings)
	}
	if len(main.Paragraphs) != 2 {
		t.Errorf("Expected 2 paragraphs, got %v", main.Paragraphs)
	}
	if len(main.Links) != 2 {
		t.Errorf("Expected 2 links, got %v", main.Links)
	}
	if main.TextContent != "main text extra text" {
		t.Errorf("Unexpected text content: %q", main.TextContent)
	}

	// Merging a page into itself adds nothing new.
	before := len(main.Headings)
	Merge(&main, additional)
	if len(main.Headings) != before {
		t.Errorf("Re-merge grew headings from %d to %d", before, len(main.Headings))
	}
}

func TestMergeCapsOversizedInput(t *testing.T) {
	var main models.WebsiteContent
	var additional models.WebsiteContent
	for i := 0; i < maxHeadings+20; i++ {
		additional.Headings = append(additional.Headings, fmt.Sprintf("Heading %d", i))
	}
	additional.TextContent = strings.Repeat("x", maxTextContent+100)

	Merge(&main, additional)

	if len(main.Headings) != maxHeadings {
		t.Errorf("Headings not capped: %d", len(main.Headings))
	}
	if len(main.TextContent) != maxTextContent {
		t.Errorf("Text not capped: %d", len(main.TextContent))
	}
}

func TestDetectLanguage(t *testing.T) {
	if got := detectLanguage("short"); got != "unknown" {
		t.Errorf("Short text should be unknown, got %q", got)
	}
	english := "This website offers analytics software for product teams around the world."
	if got := detectLanguage(english); got != "en" {
		t.Errorf("Expected en, got %q", got)
	}
}
