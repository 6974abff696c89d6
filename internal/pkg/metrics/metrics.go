package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Counts pages fetched successfully across all crawls.
var PagesFetched = promauto.NewCounter(prometheus.CounterOpts{
	Name: "leadengine_pages_fetched_total",
	Help: "Total number of pages fetched successfully",
})

// Counts fetches that failed (network error, non-2xx, open breaker).
var FetchFailures = promauto.NewCounter(prometheus.CounterOpts{
	Name: "leadengine_fetch_failures_total",
	Help: "Total number of page fetches that failed",
})

// Measures wall time of individual page fetches.
var FetchLatency = promauto.NewHistogram(prometheus.HistogramOpts{
	Name:    "leadengine_fetch_latency_seconds",
	Help:    "Time taken to fetch a single page",
	Buckets: prometheus.ExponentialBuckets(0.05, 2, 10), // From 50ms to ~25s
})

// Counts completed site crawls (root page reachable).
var CrawlsCompleted = promauto.NewCounter(prometheus.CounterOpts{
	Name: "leadengine_crawls_completed_total",
	Help: "Total number of site crawls that produced content",
})

// Counts crawls abandoned because the root fetch failed.
var CrawlsFailed = promauto.NewCounter(prometheus.CounterOpts{
	Name: "leadengine_crawls_failed_total",
	Help: "Total number of site crawls that yielded no content",
})

// Counts contact emails discovered by the contact extractor.
var EmailsFound = promauto.NewCounter(prometheus.CounterOpts{
	Name: "leadengine_emails_found_total",
	Help: "Total number of contact emails discovered",
})

// Enrichment metrics
var (
	CompaniesEnriched = promauto.NewCounter(prometheus.CounterOpts{
		Name: "leadengine_companies_enriched_total",
		Help: "Total number of companies enriched with scraped data",
	})

	EnrichmentFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "leadengine_enrichment_failures_total",
		Help: "Total number of companies whose enrichment failed",
	})

	LeadScoreHistogram = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "leadengine_lead_score",
		Help:    "Distribution of computed lead scores",
		Buckets: []float64{0, 20, 40, 60, 80, 90, 100},
	})

	CacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "leadengine_page_cache_hits_total",
		Help: "Total number of page fetches served from the Redis cache",
	})

	ExportFlushes = promauto.NewCounter(prometheus.CounterOpts{
		Name: "leadengine_export_flushes_total",
		Help: "Total number of bulk flushes to the lead export sink",
	})

	ExportFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "leadengine_export_failures_total",
		Help: "Total number of bulk export requests that failed",
	})

	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "leadengine_circuit_breaker_state",
			Help: "Current state of per-host circuit breakers (0=closed, 1=half-open, 2=open)",
		},
		[]string{"host"},
	)
)
