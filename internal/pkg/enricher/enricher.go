package enricher

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"leadengine/internal/pkg/contacts"
	"leadengine/internal/pkg/logger"
	"leadengine/internal/pkg/metrics"
	"leadengine/internal/pkg/models"
)

// Enriches batches of company records with contact data scraped from their
// websites, fanning the work out over a bounded pool of workers.
type Enricher struct {
	scraper    *contacts.Scraper
	numWorkers int
}

// Creates a new enricher backed by the given contact scraper
func New(scraper *contacts.Scraper, numWorkers int) *Enricher {
	if numWorkers <= 0 {
		numWorkers = 3
	}
	return &Enricher{scraper: scraper, numWorkers: numWorkers}
}

// Enriches every company in the batch that has a website URL. Output order
// matches input order regardless of which worker finished first, and a
// company whose scrape yields nothing is returned unchanged so one bad
// website never fails the batch.
func (e *Enricher) EnrichCompanies(ctx context.Context, companies []models.CompanyRecord) []models.CompanyRecord {
	results := make([]models.CompanyRecord, len(companies))
	jobs := make(chan int, len(companies))

	workers := e.numWorkers
	if workers > len(companies) {
		workers = len(companies)
	}

	logger.Log.Info("Starting contact enrichment",
		zap.Int("companies", len(companies)), zap.Int("workers", workers))

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			for {
				select {
				case <-ctx.Done():
					return
				case idx, ok := <-jobs:
					if !ok {
						return
					}
					results[idx] = e.enrichOne(ctx, id, companies[idx])
				}
			}
		}(i)
	}

	for i := range companies {
		results[i] = companies[i]
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	return results
}

func (e *Enricher) enrichOne(ctx context.Context, workerID int, company models.CompanyRecord) models.CompanyRecord {
	if company.WebsiteURL == "" {
		return company
	}

	scraped := e.scraper.ScrapeWebsite(ctx, company.WebsiteURL)
	if scraped.ContactEmail == "" && len(scraped.AllEmails) == 0 && len(scraped.SocialMedia) == 0 {
		logger.Log.Warn("Enrichment found no contact data",
			zap.Int("worker_id", workerID),
			zap.String("company", company.CompanyName),
			zap.String("url", company.WebsiteURL))
		metrics.EnrichmentFailures.Inc()
		return company
	}

	// The upstream-generated email is kept in its own field; the scraped one
	// wins because it was observed on the live site.
	if scraped.ContactEmail != "" {
		if company.ContactEmail != "" {
			company.ContactEmailGenerated = company.ContactEmail
		}
		company.ContactEmail = scraped.ContactEmail
	}
	company.AdditionalEmails = scraped.AllEmails

	if len(scraped.SocialMedia) > 0 {
		company.SocialMediaScraped = map[string]string{}
		for platform, link := range scraped.SocialMedia {
			if link != "" {
				company.SocialMediaScraped[platform] = link
			}
		}
	}
	for platform, link := range scraped.SocialMedia {
		if link == "" || company.SocialMedia[platform] != "" {
			continue
		}
		if company.SocialMedia == nil {
			company.SocialMedia = map[string]string{}
		}
		company.SocialMedia[platform] = link
	}

	logger.Log.Debug("Enriched company",
		zap.Int("worker_id", workerID),
		zap.String("company", company.CompanyName),
		zap.Int("emails", len(scraped.AllEmails)))
	metrics.CompaniesEnriched.Inc()
	return company
}
