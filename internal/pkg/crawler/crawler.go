package crawler

import (
	"context"
	"net/url"
	"strings"
	"time"

	"github.com/pemistahl/lingua-go"
	"go.uber.org/zap"

	"leadengine/internal/pkg/fetcher"
	"leadengine/internal/pkg/logger"
	"leadengine/internal/pkg/metrics"
	"leadengine/internal/pkg/models"
	"leadengine/internal/pkg/parser"
)

// Caps applied after each page merge to keep consolidated records bounded.
const (
	maxHeadings    = 50
	maxParagraphs  = 100
	maxLinks       = 200
	maxTextContent = 50000
)

// Links matching any of these in their href or visible text are worth a
// follow-up fetch.
var importantKeywords = []string{
	"about", "product", "service", "solution", "pricing",
	"contact", "features", "benefits", "how-it-works",
}

const maxCandidatePages = 5

// Global language detector singleton to avoid repeated initialization
var languageDetector lingua.LanguageDetector

func init() {
	languageDetector = lingua.NewLanguageDetectorBuilder().
		FromAllLanguages().
		Build()
}

// Fetches a site's homepage plus a bounded set of important pages and merges
// them into one consolidated WebsiteContent.
type Crawler struct {
	fetcher  *fetcher.Fetcher
	parser   *parser.Parser
	maxPages int
	delay    time.Duration
}

func New(f *fetcher.Fetcher, p *parser.Parser, maxPages int, delay time.Duration) *Crawler {
	if maxPages <= 0 {
		maxPages = 3
	}
	return &Crawler{
		fetcher:  f,
		parser:   p,
		maxPages: maxPages,
		delay:    delay,
	}
}

// Crawls a site starting at rawURL. A failed root fetch fails the whole
// crawl; a failed follow-up page is skipped. The returned content carries
// everything merged under the caps above.
func (c *Crawler) Crawl(ctx context.Context, rawURL string) (*models.WebsiteContent, error) {
	html, finalURL, err := c.fetcher.Fetch(ctx, rawURL)
	if err != nil {
		metrics.CrawlsFailed.Inc()
		logger.Log.Warn("Root fetch failed", zap.String("url", rawURL), zap.Error(err))
		return nil, err
	}

	content, err := c.parser.Parse(html, finalURL)
	if err != nil {
		metrics.CrawlsFailed.Inc()
		return nil, err
	}

	visited := map[string]bool{finalURL: true}

	// The attempt budget is maxPages-1 regardless of outcome: a candidate
	// that fails to fetch consumes its slot, it is not replaced.
	candidates := importantPages(&content, finalURL)
	if len(candidates) > c.maxPages-1 {
		candidates = candidates[:c.maxPages-1]
	}

	merged := 0
	for _, pageURL := range candidates {
		if visited[pageURL] {
			continue
		}
		visited[pageURL] = true

		time.Sleep(c.delay) // be respectful to the target site

		pageHTML, pageFinal, err := c.fetcher.Fetch(ctx, pageURL)
		if err != nil {
			logger.Log.Warn("Skipping unreachable page", zap.String("url", pageURL), zap.Error(err))
			continue
		}
		page, err := c.parser.Parse(pageHTML, pageFinal)
		if err != nil {
			logger.Log.Warn("Skipping unparseable page", zap.String("url", pageURL), zap.Error(err))
			continue
		}
		Merge(&content, page)
		merged++
	}

	content.Language = detectLanguage(content.TextContent)

	metrics.CrawlsCompleted.Inc()
	logger.Log.Debug("Crawl complete",
		zap.String("url", finalURL),
		zap.Int("pages", merged+1),
		zap.Int("headings", len(content.Headings)),
		zap.Int("links", len(content.Links)))

	return &content, nil
}

// Picks same-origin links whose href or text matches an important keyword,
// deduplicated in first-seen order.
func importantPages(content *models.WebsiteContent, baseURL string) []string {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil
	}

	var pages []string
	seen := map[string]bool{}
	for _, link := range content.Links {
		href := strings.ToLower(link.URL)
		text := strings.ToLower(link.Text)

		matched := false
		for _, keyword := range importantKeywords {
			if strings.Contains(href, keyword) || strings.Contains(text, keyword) {
				matched = true
				break
			}
		}
		if !matched {
			continue
		}

		resolved, err := url.Parse(link.URL)
		if err != nil || resolved.Host != base.Host {
			continue
		}
		if seen[link.URL] {
			continue
		}
		seen[link.URL] = true
		pages = append(pages, link.URL)
		if len(pages) >= maxCandidatePages {
			break
		}
	}
	return pages
}

// Merges an additional page into main: headings, paragraphs and links are
// appended without duplicating existing entries, text is concatenated, and
// everything is re-capped. Merging a page into itself is a no-op apart from
// the text cap.
func Merge(main *models.WebsiteContent, additional models.WebsiteContent) {
	existingHeadings := map[string]bool{}
	for _, h := range main.Headings {
		existingHeadings[h] = true
	}
	for _, h := range additional.Headings {
		if !existingHeadings[h] {
			main.Headings = append(main.Headings, h)
			existingHeadings[h] = true
		}
	}

	existingParagraphs := map[string]bool{}
	for _, p := range main.Paragraphs {
		existingParagraphs[p] = true
	}
	for _, p := range additional.Paragraphs {
		if !existingParagraphs[p] {
			main.Paragraphs = append(main.Paragraphs, p)
			existingParagraphs[p] = true
		}
	}

	existingLinks := map[string]bool{}
	for _, l := range main.Links {
		existingLinks[l.URL] = true
	}
	for _, l := range additional.Links {
		if !existingLinks[l.URL] {
			main.Links = append(main.Links, l)
			existingLinks[l.URL] = true
		}
	}

	main.TextContent = main.TextContent + " " + additional.TextContent

	if len(main.Headings) > maxHeadings {
		main.Headings = main.Headings[:maxHeadings]
	}
	if len(main.Paragraphs) > maxParagraphs {
		main.Paragraphs = main.Paragraphs[:maxParagraphs]
	}
	if len(main.Links) > maxLinks {
		main.Links = main.Links[:maxLinks]
	}
	if len(main.TextContent) > maxTextContent {
		main.TextContent = main.TextContent[:maxTextContent]
	}
}

// Detects the dominant language of the merged text, ISO 639-1 lowercased.
func detectLanguage(text string) string {
	const minTextLength = 20
	if len(text) < minTextLength {
		return "unknown"
	}
	lang, exists := languageDetector.DetectLanguageOf(text)
	if !exists {
		return "unknown"
	}
	return strings.ToLower(lang.IsoCode639_1().String())
}
