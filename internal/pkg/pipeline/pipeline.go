package pipeline

import (
	"context"
	"math"
	"sort"
	"time"

	"go.uber.org/zap"

	"leadengine/internal/pkg/config"
	"leadengine/internal/pkg/contacts"
	"leadengine/internal/pkg/crawler"
	"leadengine/internal/pkg/enricher"
	"leadengine/internal/pkg/exporter"
	"leadengine/internal/pkg/fetcher"
	"leadengine/internal/pkg/insights"
	"leadengine/internal/pkg/intelligence"
	"leadengine/internal/pkg/logger"
	"leadengine/internal/pkg/models"
	"leadengine/internal/pkg/pagecache"
	"leadengine/internal/pkg/parser"
	"leadengine/internal/pkg/queue"
	"leadengine/internal/pkg/relevance"
)

// Batch-level statistics returned alongside analyzed companies.
type AnalysisStats struct {
	PremiumLeads int     `json:"premium_leads"`
	HighLeads    int     `json:"high_leads"`
	AverageScore float64 `json:"average_score"`
}

// Pipeline interface
type Pipeline interface {
	CrawlWebsite(ctx context.Context, url string) (*models.WebsiteContent, error)
	ExtractInsights(content *models.WebsiteContent) models.BusinessInsights
	ExtractContacts(ctx context.Context, url string) models.ScrapedContact
	EnrichCompanies(ctx context.Context, companies []models.CompanyRecord) []models.CompanyRecord
	AnalyzeCompanies(ctx context.Context, companies []models.CompanyRecord, icp *models.IdealCustomerProfile) ([]models.CompanyRecord, AnalysisStats)
	RankByRelevance(leads []models.CompanyRecord, userInsights models.BusinessInsights) []models.CompanyRecord
	EnqueueEnrichment(companies []models.CompanyRecord) (string, error)
	JobStatus(id string) (queue.Job, bool)
	ProcessJobs(ctx context.Context)
	StartService(port string)
	Stop()
	QueueDepth() int
	WorkerCount() int
	StartTime() time.Time
}

// Implementation of the Pipeline interface
type pipeline struct {
	crawler    *crawler.Crawler
	analyzer   *intelligence.Analyzer
	extractor  *insights.Extractor
	scraper    *contacts.Scraper
	enricher   *enricher.Enricher
	exporter   *exporter.BulkExporter
	jobs       *queue.JobQueue
	startTime  time.Time
	numWorkers int
}

// Creates a new instance of a Pipeline with a config
func New(cfg *config.Config) Pipeline {
	var cache pagecache.Cache
	if cfg.CacheEnabled {
		redisCache, err := pagecache.NewRedisCache(cfg)
		if err != nil {
			logger.Log.Warn("Page cache unavailable, continuing without it", zap.Error(err))
		} else {
			cache = redisCache
		}
	}

	f := fetcher.New(time.Duration(cfg.FetchTimeoutSec)*time.Second, cache)
	p := crawler.New(f, parser.New(), cfg.MaxPagesPerSite, time.Duration(cfg.CrawlDelayMS)*time.Millisecond)
	scraper := contacts.NewScraper(f, cfg.ContactPageLimit, time.Duration(cfg.ContactDelayMS)*time.Millisecond)

	jobQueue, err := queue.NewJobQueue(cfg.JobQueueSize)
	if err != nil {
		logger.Log.Fatal("Failed to create job queue", zap.Error(err))
	}

	var bulkExporter *exporter.BulkExporter
	if cfg.ExportEnabled {
		bulkExporter = exporter.NewBulkExporter(cfg.ExportThreshold, cfg.ExportBulkURL, cfg.ExportIndexName)
	}

	numWorkers := cfg.EnrichWorkers
	if numWorkers <= 0 {
		numWorkers = 1
	}

	return &pipeline{
		crawler:    p,
		analyzer:   intelligence.NewAnalyzer(f),
		extractor:  insights.NewExtractor(),
		scraper:    scraper,
		enricher:   enricher.New(scraper, numWorkers),
		exporter:   bulkExporter,
		jobs:       jobQueue,
		startTime:  time.Now(),
		numWorkers: numWorkers,
	}
}

// Crawls a website and returns its merged multi-page content
func (pl *pipeline) CrawlWebsite(ctx context.Context, url string) (*models.WebsiteContent, error) {
	return pl.crawler.Crawl(ctx, url)
}

// Extracts business insights from crawled website content
func (pl *pipeline) ExtractInsights(content *models.WebsiteContent) models.BusinessInsights {
	return pl.extractor.ExtractInsights(content)
}

// Scrapes a website for contact emails and social links
func (pl *pipeline) ExtractContacts(ctx context.Context, url string) models.ScrapedContact {
	return pl.scraper.ScrapeWebsite(ctx, url)
}

// Enriches a batch of companies with scraped contact data
func (pl *pipeline) EnrichCompanies(ctx context.Context, companies []models.CompanyRecord) []models.CompanyRecord {
	return pl.enricher.EnrichCompanies(ctx, companies)
}

// Analyzes and scores every company in the batch, returning them sorted by
// score descending along with batch statistics. Companies without a website
// or whose analysis fails get a zero score instead of failing the batch.
func (pl *pipeline) AnalyzeCompanies(ctx context.Context, companies []models.CompanyRecord, icp *models.IdealCustomerProfile) ([]models.CompanyRecord, AnalysisStats) {
	logger.Log.Info("Analyzing business intelligence", zap.Int("companies", len(companies)))

	analyzed := make([]models.CompanyRecord, len(companies))
	for i, company := range companies {
		if company.WebsiteURL == "" {
			company.LeadScore = 0
			company.QualityTier = models.TierUnknown
			company.Recommendation = "No website URL available"
			analyzed[i] = company
			continue
		}

		info := pl.analyzer.ExtractBusinessInfo(ctx, company.WebsiteURL)
		scoring := intelligence.ScoreLead(company, info, icp)
		if info.Error != "" {
			scoring.Recommendation = "Analysis unavailable"
		}

		company.BusinessIntelligence = &info
		company.LeadScore = scoring.LeadScore
		company.QualityTier = scoring.QualityTier
		company.Recommendation = scoring.Recommendation
		company.ScoringBreakdown = scoring.ScoringBreakdown
		analyzed[i] = company

		if pl.exporter != nil {
			pl.exporter.Add(company)
		}
	}

	sort.SliceStable(analyzed, func(a, b int) bool {
		return analyzed[a].LeadScore > analyzed[b].LeadScore
	})

	stats := AnalysisStats{}
	total := 0
	for _, company := range analyzed {
		total += company.LeadScore
		switch company.QualityTier {
		case models.TierPremium:
			stats.PremiumLeads++
		case models.TierHigh:
			stats.HighLeads++
		}
	}
	if len(analyzed) > 0 {
		stats.AverageScore = round1(float64(total) / float64(len(analyzed)))
	}

	logger.Log.Info("Analysis complete",
		zap.Int("premium", stats.PremiumLeads),
		zap.Int("high", stats.HighLeads),
		zap.Float64("average_score", stats.AverageScore))

	return analyzed, stats
}

// Annotates leads with relevance against the caller's own business insights
// and returns them sorted by relevance descending
func (pl *pipeline) RankByRelevance(leads []models.CompanyRecord, userInsights models.BusinessInsights) []models.CompanyRecord {
	return relevance.EnhanceLeads(leads, userInsights)
}

// Queues a batch of companies for background enrichment
func (pl *pipeline) EnqueueEnrichment(companies []models.CompanyRecord) (string, error) {
	return pl.jobs.Enqueue(companies)
}

// Looks up the status of a previously enqueued job
func (pl *pipeline) JobStatus(id string) (queue.Job, bool) {
	return pl.jobs.Status(id)
}

// Runs the background job consumer until the context is cancelled
func (pl *pipeline) ProcessJobs(ctx context.Context) {
	go func() {
		logger.Log.Info("Job worker started")
		for {
			select {
			case <-ctx.Done():
				logger.Log.Info("Job worker received stop signal")
				return
			default:
				job, err := pl.jobs.Dequeue()
				if err != nil {
					time.Sleep(200 * time.Millisecond)
					continue
				}
				logger.Log.Info("Processing enrichment job",
					zap.String("job_id", job.ID),
					zap.Int("companies", len(job.Companies)))
				results := pl.enricher.EnrichCompanies(ctx, job.Companies)
				pl.jobs.Complete(job.ID, results, ctx.Err())
			}
		}
	}()
}

// Stops the pipeline gracefully, flushing any buffered exports
func (pl *pipeline) Stop() {
	logger.Log.Info("Beginning shutdown sequence")
	if pl.exporter != nil {
		pl.exporter.Flush()
	}
	logger.Log.Info("Pipeline stopped gracefully")
}

// Returns the number of queued jobs for health checks
func (pl *pipeline) QueueDepth() int {
	return pl.jobs.Length()
}

// Returns the number of enrichment workers for health checks
func (pl *pipeline) WorkerCount() int {
	return pl.numWorkers
}

// Returns when the service was started for health checks
func (pl *pipeline) StartTime() time.Time {
	return pl.startTime
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
