package contacts

import (
	"context"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"leadengine/internal/pkg/fetcher"
	"leadengine/internal/pkg/logger"
	"leadengine/internal/pkg/metrics"
	"leadengine/internal/pkg/models"
)

var (
	emailRe  = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)
	mailtoRe = regexp.MustCompile(`(?i)mailto:([^\?"'>\s]+)`)
)

// Domains that show up in templates and code samples, never in real contact
// details.
var placeholderDomains = []string{
	"example.com", "domain.com", "email.com", "yourcompany.com",
	"company.com", "test.com", "sample.com", "placeholder",
}

// Asset filenames like icon@2x.png match the email pattern.
var imageExtensions = []string{".png", ".jpg", ".gif", ".svg"}

// Keywords marking an address as a likely primary contact, in priority order.
var priorityKeywords = []string{"contact", "info", "hello", "support", "sales", "business"}

// Pages worth visiting when hunting for contact details.
var contactPageKeywords = []string{
	"contact", "contact-us", "contactus", "about", "about-us",
	"support", "help", "get-in-touch", "reach-us", "connect",
}

// Extracts candidate email addresses from raw page text in first-seen order,
// dropping placeholder domains and asset-name false positives.
func ExtractEmails(text string) []string {
	var emails []string
	seen := map[string]bool{}
	for _, email := range emailRe.FindAllString(text, -1) {
		lower := strings.ToLower(email)
		if seen[lower] {
			continue
		}
		seen[lower] = true
		if acceptEmail(lower) {
			emails = append(emails, email)
		}
	}
	return emails
}

func acceptEmail(lower string) bool {
	for _, domain := range placeholderDomains {
		if strings.Contains(lower, domain) {
			return false
		}
	}
	for _, ext := range imageExtensions {
		if strings.HasSuffix(lower, ext) {
			return false
		}
	}
	return true
}

// Picks the best primary address: the first email containing a priority
// keyword, keywords checked in order; otherwise the first email found.
func PrimaryEmail(emails []string) string {
	if len(emails) == 0 {
		return ""
	}
	for _, keyword := range priorityKeywords {
		for _, email := range emails {
			if strings.Contains(strings.ToLower(email), keyword) {
				return email
			}
		}
	}
	return emails[0]
}

// Classifies every anchor on the page into a social platform by href
// substring. The first link found per platform wins.
func ExtractSocialMedia(doc *goquery.Document, baseURL string) map[string]string {
	social := map[string]string{}

	doc.Find("a[href]").Each(func(i int, s *goquery.Selection) {
		original := s.AttrOr("href", "")
		href := strings.ToLower(original)

		var platform string
		switch {
		case strings.Contains(href, "linkedin.com/company") || strings.Contains(href, "linkedin.com/in"):
			platform = "linkedin"
		case strings.Contains(href, "twitter.com") || strings.Contains(href, "x.com"):
			if strings.Contains(href, "/intent/") {
				return
			}
			platform = "twitter"
		case strings.Contains(href, "facebook.com"):
			if strings.Contains(href, "/sharer") {
				return
			}
			platform = "facebook"
		case strings.Contains(href, "instagram.com"):
			platform = "instagram"
		case strings.Contains(href, "youtube.com") || strings.Contains(href, "youtu.be"):
			if strings.Contains(href, "/embed/") || strings.Contains(href, "/watch?") {
				return
			}
			platform = "youtube"
		default:
			return
		}

		if social[platform] != "" {
			return
		}
		if strings.HasPrefix(original, "http") {
			social[platform] = original
		} else {
			social[platform] = resolveAgainst(baseURL, original)
		}
	})

	return social
}

// Finds same-origin pages likely to carry contact details, capped at limit.
func findContactPages(doc *goquery.Document, baseURL string, limit int, visited map[string]bool) []string {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil
	}

	var pages []string
	seen := map[string]bool{}
	doc.Find("a[href]").EachWithBreak(func(i int, s *goquery.Selection) bool {
		href := strings.ToLower(s.AttrOr("href", ""))
		text := strings.ToLower(s.Text())

		matched := false
		for _, keyword := range contactPageKeywords {
			if strings.Contains(href, keyword) || strings.Contains(text, keyword) {
				matched = true
				break
			}
		}
		if !matched {
			return true
		}

		full := resolveAgainst(baseURL, s.AttrOr("href", ""))
		resolved, err := url.Parse(full)
		if err != nil || resolved.Host != base.Host {
			return true
		}
		if seen[full] || visited[full] {
			return true
		}
		seen[full] = true
		pages = append(pages, full)
		return len(pages) < limit
	})

	return pages
}

// Scrapes a company website for emails and social links: the homepage plus a
// bounded set of contact-like pages.
type Scraper struct {
	fetcher   *fetcher.Fetcher
	pageLimit int
	delay     time.Duration
}

func NewScraper(f *fetcher.Fetcher, pageLimit int, delay time.Duration) *Scraper {
	if pageLimit <= 0 {
		pageLimit = 5
	}
	return &Scraper{
		fetcher:   f,
		pageLimit: pageLimit,
		delay:     delay,
	}
}

// Scrapes baseURL and its contact pages. Emails accumulate across pages;
// social links keep first-found-wins across the whole visit. Unreachable
// pages are skipped; an unreachable homepage yields an empty result.
func (s *Scraper) ScrapeWebsite(ctx context.Context, baseURL string) models.ScrapedContact {
	contact := models.ScrapedContact{SocialMedia: map[string]string{}}
	visited := map[string]bool{}
	var allEmails []string
	seenEmails := map[string]bool{}

	collect := func(emails []string, social map[string]string) {
		for _, email := range emails {
			lower := strings.ToLower(email)
			if !seenEmails[lower] {
				seenEmails[lower] = true
				allEmails = append(allEmails, email)
			}
		}
		for _, platform := range models.SocialPlatforms {
			if social[platform] != "" && contact.SocialMedia[platform] == "" {
				contact.SocialMedia[platform] = social[platform]
			}
		}
	}

	visited[baseURL] = true
	homeDoc, emails, social, err := s.scrapePage(ctx, baseURL)
	if err != nil {
		logger.Log.Warn("Contact scrape failed for homepage",
			zap.String("url", baseURL), zap.Error(err))
		return contact
	}
	collect(emails, social)

	for _, pageURL := range findContactPages(homeDoc, baseURL, s.pageLimit, visited) {
		time.Sleep(s.delay)
		visited[pageURL] = true

		_, emails, social, err := s.scrapePage(ctx, pageURL)
		if err != nil {
			logger.Log.Debug("Skipping contact page",
				zap.String("url", pageURL), zap.Error(err))
			continue
		}
		collect(emails, social)
	}

	contact.AllEmails = allEmails
	contact.ContactEmail = PrimaryEmail(allEmails)
	metrics.EmailsFound.Add(float64(len(allEmails)))

	logger.Log.Debug("Contact scrape complete",
		zap.String("url", baseURL),
		zap.Int("emails", len(allEmails)),
		zap.Int("social_accounts", len(contact.SocialMedia)))

	return contact
}

// Scrapes one page for emails (text plus mailto hrefs) and social links.
func (s *Scraper) scrapePage(ctx context.Context, pageURL string) (*goquery.Document, []string, map[string]string, error) {
	html, finalURL, err := s.fetcher.Fetch(ctx, pageURL)
	if err != nil {
		return nil, nil, nil, err
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, nil, nil, err
	}

	emails := ExtractEmails(doc.Text())
	seen := map[string]bool{}
	for _, email := range emails {
		seen[strings.ToLower(email)] = true
	}

	doc.Find("a[href]").Each(func(i int, sel *goquery.Selection) {
		match := mailtoRe.FindStringSubmatch(sel.AttrOr("href", ""))
		if match == nil {
			return
		}
		email := match[1]
		lower := strings.ToLower(email)
		if !seen[lower] && acceptEmail(lower) {
			seen[lower] = true
			emails = append(emails, email)
		}
	})

	return doc, emails, ExtractSocialMedia(doc, finalURL), nil
}

func resolveAgainst(baseURL, href string) string {
	base, err := url.Parse(baseURL)
	if err != nil {
		return href
	}
	ref, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return href
	}
	return base.ResolveReference(ref).String()
}
