package intelligence

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"

	"leadengine/internal/pkg/fetcher"
)

const analyzerSampleHTML = `<!DOCTYPE html>
<html>
<head>
    <title>Acme</title>
    <meta name="description" content="Acme builds SaaS tools.">
    <meta property="og:title" content="Acme">
    <meta name="viewport" content="width=device-width">
    <link rel="shortcut icon" href="/favicon.ico">
    <link rel="sitemap" type="application/xml" href="/sitemap.xml">
    <script type="application/ld+json">{"@type": "Organization"}</script>
</head>
<body>
    <div class="hero-banner">Acme helps enterprise teams ship faster with cloud tooling trusted by B2B companies worldwide since 2015.</div>
    <section class="services-grid">
        <h2>Cloud Migration</h2>
        <h3>API Integration</h3>
    </section>
    <section class="pricing-table">Plans from $99 and $299 per seat</section>
    <section class="testimonials"><p>They are great.</p></section>
    <section class="client-reviews"><p>Five stars.</p></section>
    <section class="our-team">
        <div class="member">Jane</div>
        <div class="member">Omar</div>
        <article class="staff">Lee</article>
    </section>
    <section class="partners"><img alt="Partner logo"></section>
    <section class="awards">ISO certified</section>
    <a href="/case-study-retail">Case study</a>
    <a href="/blog">Blog</a>
    <a href="/careers">Careers</a>
    <a href="/about">About</a>
    <a href="/contact">Contact</a>
    <p>Call +1 (555) 123-4567 or email hello@acme.example</p>
    <form class="contact-form"><input type="email"></form>
</body>
</html>`

func TestAnalyzeDocumentSignals(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(analyzerSampleHTML))
	if err != nil {
		t.Fatal(err)
	}

	info := AnalyzeDocument(doc)

	// Meta description wins over the hero text.
	if info.CompanyDescription != "Acme builds SaaS tools." {
		t.Errorf("CompanyDescription = %q", info.CompanyDescription)
	}

	if len(info.ServicesProducts) != 2 {
		t.Errorf("ServicesProducts = %v", info.ServicesProducts)
	}

	if info.Pricing == nil || !info.Pricing.HasPricingPage {
		t.Fatal("Expected pricing info")
	}
	if len(info.Pricing.PriceIndicators) != 2 {
		t.Errorf("PriceIndicators = %v", info.Pricing.PriceIndicators)
	}

	if info.Testimonials != 2 {
		t.Errorf("Testimonials = %d, want 2", info.Testimonials)
	}
	if info.CaseStudies != 1 {
		t.Errorf("CaseStudies = %d, want 1", info.CaseStudies)
	}

	if info.TeamInfo == nil || info.TeamInfo.TeamMemberCount != 3 {
		t.Errorf("TeamInfo = %+v", info.TeamInfo)
	}

	if !info.Blog.HasBlog || !info.HasCareersPage || !info.About.HasAboutPage {
		t.Errorf("Activity flags wrong: blog=%v careers=%v about=%v",
			info.Blog.HasBlog, info.HasCareersPage, info.About.HasAboutPage)
	}

	if info.Contact.Score != 4 || info.Contact.Level != "high" {
		t.Errorf("Contact = %+v", info.Contact)
	}

	if info.Quality.Score != 6 || info.Quality.Level != "high" {
		t.Errorf("Quality = %+v", info.Quality)
	}

	if !info.SocialProof.HasClientLogos {
		t.Error("Expected client logos from partner image alt text")
	}
}

func TestAnalyzeDocumentAudienceAndTech(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(analyzerSampleHTML))
	if err != nil {
		t.Fatal(err)
	}

	info := AnalyzeDocument(doc)

	joined := strings.Join(info.TargetAudience, ",")
	if !strings.Contains(joined, "enterprise") || !strings.Contains(joined, "b2b") {
		t.Errorf("TargetAudience = %v", info.TargetAudience)
	}

	tech := strings.Join(info.TechStack, ",")
	if !strings.Contains(tech, "cloud") || !strings.Contains(tech, "saas") {
		t.Errorf("TechStack = %v", info.TechStack)
	}
}

func TestExtractBusinessInfoFetchError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	a := NewAnalyzer(fetcher.New(2*time.Second, nil))
	info := a.ExtractBusinessInfo(context.Background(), server.URL)

	if info.Error == "" {
		t.Fatal("Expected error sentinel for unreachable site")
	}
}

func TestExtractBusinessInfoFetchSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(analyzerSampleHTML))
	}))
	defer server.Close()

	a := NewAnalyzer(fetcher.New(5*time.Second, nil))
	info := a.ExtractBusinessInfo(context.Background(), server.URL)

	if info.Error != "" {
		t.Fatalf("Unexpected error: %v", info.Error)
	}
	if info.Testimonials != 2 {
		t.Errorf("Testimonials = %d", info.Testimonials)
	}
}
