package pipeline

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/zap"

	"leadengine/internal/pkg/config"
	"leadengine/internal/pkg/logger"
	"leadengine/internal/pkg/models"
	"leadengine/internal/pkg/queue"
)

func init() {
	// Ensure that the logger is not nil during tests.
	logger.Log = zap.NewNop()
}

func testConfig() *config.Config {
	return &config.Config{
		ServerPort:       "0",
		FetchTimeoutSec:  5,
		MaxPagesPerSite:  1,
		CrawlDelayMS:     0,
		ContactPageLimit: 2,
		ContactDelayMS:   0,
		EnrichWorkers:    2,
		JobQueueSize:     10,
	}
}

const leadSiteHTML = `<html>
<head>
    <title>Acme</title>
    <meta name="description" content="Acme builds SaaS tools for teams.">
    <meta property="og:title" content="Acme">
    <meta name="viewport" content="width=device-width">
</head>
<body>
    <a href="/about">About</a>
    <a href="/blog">Blog</a>
    <a href="/contact">Contact</a>
    <p>Email hello@acme.example or call +1 (555) 000-1111.</p>
</body>
</html>`

func TestAnalyzeCompaniesSortsAndScores(t *testing.T) {
	site := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, leadSiteHTML)
	}))
	defer site.Close()

	down := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer down.Close()

	pl := New(testConfig())

	companies := []models.CompanyRecord{
		{CompanyName: "NoSite"},
		{CompanyName: "Down", WebsiteURL: down.URL},
		{CompanyName: "Live", WebsiteURL: site.URL, CompanySize: "100+ employees"},
	}

	analyzed, stats := pl.AnalyzeCompanies(context.Background(), companies, nil)

	if len(analyzed) != 3 {
		t.Fatalf("Expected 3 companies, got %d", len(analyzed))
	}
	if analyzed[0].CompanyName != "Live" {
		t.Errorf("Highest scored company should sort first, got %q", analyzed[0].CompanyName)
	}
	if analyzed[0].LeadScore == 0 {
		t.Error("Live company should have a positive score")
	}
	if analyzed[0].BusinessIntelligence == nil {
		t.Error("Live company missing business intelligence")
	}

	for _, company := range analyzed[1:] {
		if company.LeadScore != 0 {
			t.Errorf("Company %q should score 0, got %d", company.CompanyName, company.LeadScore)
		}
		if company.QualityTier != models.TierUnknown {
			t.Errorf("Company %q tier = %q", company.CompanyName, company.QualityTier)
		}
	}

	for _, company := range analyzed {
		switch company.CompanyName {
		case "NoSite":
			if company.Recommendation != "No website URL available" {
				t.Errorf("NoSite recommendation = %q", company.Recommendation)
			}
		case "Down":
			if company.Recommendation != "Analysis unavailable" {
				t.Errorf("Down recommendation = %q", company.Recommendation)
			}
			if company.BusinessIntelligence == nil || company.BusinessIntelligence.Error == "" {
				t.Error("Down company should carry the analysis error")
			}
		}
	}

	wantAvg := float64(analyzed[0].LeadScore) / 3
	if diff := stats.AverageScore - wantAvg; diff > 0.1 || diff < -0.1 {
		t.Errorf("AverageScore = %v, want about %v", stats.AverageScore, wantAvg)
	}
}

func TestEnrichmentJobLifecycle(t *testing.T) {
	site := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html><body><p>Reach sales@acme.example anytime.</p></body></html>`)
	}))
	defer site.Close()

	pl := New(testConfig())

	id, err := pl.EnqueueEnrichment([]models.CompanyRecord{
		{CompanyName: "Acme", WebsiteURL: site.URL},
	})
	if err != nil {
		t.Fatal(err)
	}

	job, ok := pl.JobStatus(id)
	if !ok || job.Status != queue.StatusQueued {
		t.Fatalf("Job after enqueue = %+v, ok=%v", job, ok)
	}
	if pl.QueueDepth() != 1 {
		t.Errorf("QueueDepth = %d, want 1", pl.QueueDepth())
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	pl.ProcessJobs(ctx)

	deadline := time.After(5 * time.Second)
	for {
		job, _ = pl.JobStatus(id)
		if job.Status == queue.StatusDone {
			break
		}
		select {
		case <-deadline:
			t.Fatalf("Job never completed: %+v", job)
		case <-time.After(50 * time.Millisecond):
		}
	}

	if len(job.Results) != 1 || job.Results[0].ContactEmail != "sales@acme.example" {
		t.Errorf("Job results = %+v", job.Results)
	}
}

func TestRankByRelevancePassThrough(t *testing.T) {
	pl := New(testConfig())
	insights := models.BusinessInsights{
		Industry:      models.IndustryClassification{Primary: "technology"},
		BusinessModel: "SaaS",
	}
	leads := []models.CompanyRecord{
		{CompanyName: "Other", KeyProductsServices: "Catering"},
		{CompanyName: "Tech", KeyProductsServices: "Technology platform"},
	}

	ranked := pl.RankByRelevance(leads, insights)
	if ranked[0].CompanyName != "Tech" {
		t.Errorf("Expected Tech first, got %q", ranked[0].CompanyName)
	}
	if ranked[0].ContextRelevanceScore <= ranked[1].ContextRelevanceScore {
		t.Error("Ranking not descending")
	}
}
