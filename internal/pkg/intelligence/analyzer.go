package intelligence

import (
	"context"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"leadengine/internal/pkg/fetcher"
	"leadengine/internal/pkg/logger"
	"leadengine/internal/pkg/models"
)

// Sections are classified by CSS-class pattern rather than by content; class
// names are the strongest cheap signal for what a block of markup is for.
var (
	heroClassRe        = regexp.MustCompile(`(?i)hero|banner|intro`)
	serviceClassRe     = regexp.MustCompile(`(?i)service|product|offering|solution`)
	pricingClassRe     = regexp.MustCompile(`(?i)pricing|price|plan`)
	testimonialClassRe = regexp.MustCompile(`(?i)testimonial|review|client`)
	teamClassRe        = regexp.MustCompile(`(?i)team|about.team|our.team`)
	memberClassRe      = regexp.MustCompile(`(?i)member|employee|staff`)
	partnerClassRe     = regexp.MustCompile(`(?i)partner|integration`)
	awardClassRe       = regexp.MustCompile(`(?i)award|certification|recognition`)
	contactClassRe     = regexp.MustCompile(`(?i)contact`)

	caseStudyHrefRe = regexp.MustCompile(`(?i)case.study|success.story|case-study`)
	blogHrefRe      = regexp.MustCompile(`(?i)blog|news|article`)
	careersHrefRe   = regexp.MustCompile(`(?i)career|job|hiring`)
	aboutHrefRe     = regexp.MustCompile(`(?i)about`)
	contactHrefRe   = regexp.MustCompile(`(?i)contact`)
	clientLogoAltRe = regexp.MustCompile(`(?i)client|customer|partner`)

	phoneRe     = regexp.MustCompile(`\+?[\d\s\-()]{10,}`)
	emailTextRe = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)
	priceTextRe = regexp.MustCompile(`\$[\d,]+|€[\d,]+|£[\d,]+|KES\s?[\d,]+|USD\s?[\d,]+`)
)

var audienceIndicators = []string{
	"enterprise", "sme", "startup", "small business",
	"b2b", "b2c", "non-profit", "government", "ngo",
}

var techIndicators = []string{
	"api", "cloud", "saas", "ai", "machine learning",
	"blockchain", "mobile app", "web app", "api integration",
}

// Extracts lead-scoring signals from a single fetched page. Unlike the site
// crawler this looks at the homepage only; the signals here are structural
// (section classes, link patterns) rather than textual.
type Analyzer struct {
	fetcher *fetcher.Fetcher
}

func NewAnalyzer(f *fetcher.Fetcher) *Analyzer {
	return &Analyzer{fetcher: f}
}

// Fetches and analyzes websiteURL. Fetch or parse failures come back as a
// BusinessInfo carrying an Error sentinel, never as a Go error: downstream
// scoring treats "analysis unavailable" as a normal outcome.
func (a *Analyzer) ExtractBusinessInfo(ctx context.Context, websiteURL string) models.BusinessInfo {
	html, _, err := a.fetcher.Fetch(ctx, websiteURL)
	if err != nil {
		logger.Log.Warn("Business info fetch failed",
			zap.String("url", websiteURL), zap.Error(err))
		return models.BusinessInfo{Error: err.Error()}
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		logger.Log.Warn("Business info parse failed",
			zap.String("url", websiteURL), zap.Error(err))
		return models.BusinessInfo{Error: err.Error()}
	}

	return AnalyzeDocument(doc)
}

// Extracts every signal from an already-parsed page.
func AnalyzeDocument(doc *goquery.Document) models.BusinessInfo {
	pageText := doc.Text()
	pageTextLower := strings.ToLower(pageText)

	info := models.BusinessInfo{
		CompanyDescription: extractDescription(doc),
		ServicesProducts:   extractServicesProducts(doc),
		TargetAudience:     matchIndicators(pageTextLower, audienceIndicators),
		Pricing:            extractPricing(doc),
		Testimonials:       countSectionsByClass(doc, testimonialClassRe),
		CaseStudies:        countLinksByHref(doc, caseStudyHrefRe),
		TeamInfo:           extractTeamInfo(doc),
		TechStack:          matchIndicators(pageTextLower, techIndicators),
		Partnerships:       countSectionsByClass(doc, partnerClassRe),
		Awards:             countSectionsByClass(doc, awardClassRe),
		HasCareersPage:     countLinksByHref(doc, careersHrefRe) > 0,
	}

	if blogLinks := countLinksByHref(doc, blogHrefRe); blogLinks > 0 {
		info.Blog = models.BlogActivity{HasBlog: true, BlogLinksFound: blogLinks}
	}

	if countLinksByHref(doc, aboutHrefRe) > 0 {
		info.About = models.AboutPage{HasAboutPage: true, Quality: "high"}
	}

	info.Contact = analyzeContactAccessibility(doc, pageText)
	info.SocialProof = analyzeSocialProof(doc, info)
	info.Quality = analyzeWebsiteQuality(doc)

	return info
}

// Meta description, then Open Graph, then the hero section text.
func extractDescription(doc *goquery.Document) string {
	if desc := strings.TrimSpace(doc.Find(`meta[name="description"]`).AttrOr("content", "")); desc != "" {
		return desc
	}
	if desc := strings.TrimSpace(doc.Find(`meta[property="og:description"]`).AttrOr("content", "")); desc != "" {
		return desc
	}

	var hero string
	doc.Find("section,div").EachWithBreak(func(i int, s *goquery.Selection) bool {
		if !heroClassRe.MatchString(s.AttrOr("class", "")) {
			return true
		}
		text := strings.TrimSpace(s.Text())
		if len(text) > 50 {
			if len(text) > 500 {
				text = text[:500]
			}
			hero = text
			return false
		}
		return true
	})
	return hero
}

// Sub-headings inside service-class sections, deduplicated, capped at 10.
func extractServicesProducts(doc *goquery.Document) []string {
	var services []string
	seen := map[string]bool{}
	doc.Find("section,div").Each(func(i int, section *goquery.Selection) {
		if !serviceClassRe.MatchString(section.AttrOr("class", "")) {
			return
		}
		section.Find("h2,h3,h4").Each(func(j int, heading *goquery.Selection) {
			text := strings.TrimSpace(heading.Text())
			if text != "" && len(text) < 100 && !seen[text] && len(services) < 10 {
				seen[text] = true
				services = append(services, text)
			}
		})
	})
	return services
}

func extractPricing(doc *goquery.Document) *models.PricingInfo {
	var pricing *models.PricingInfo
	doc.Find("section,div").EachWithBreak(func(i int, s *goquery.Selection) bool {
		if !pricingClassRe.MatchString(s.AttrOr("class", "")) {
			return true
		}
		prices := priceTextRe.FindAllString(s.Text(), -1)
		if len(prices) == 0 {
			return true
		}
		if len(prices) > 5 {
			prices = prices[:5]
		}
		pricing = &models.PricingInfo{HasPricingPage: true, PriceIndicators: prices}
		return false
	})
	return pricing
}

func extractTeamInfo(doc *goquery.Document) *models.TeamInfo {
	var team *models.TeamInfo
	doc.Find("section,div").EachWithBreak(func(i int, s *goquery.Selection) bool {
		if !teamClassRe.MatchString(s.AttrOr("class", "")) {
			return true
		}
		members := 0
		s.Find("div,article").Each(func(j int, member *goquery.Selection) {
			if memberClassRe.MatchString(member.AttrOr("class", "")) {
				members++
			}
		})
		team = &models.TeamInfo{HasTeamPage: true, TeamMemberCount: members}
		return false
	})
	return team
}

func analyzeContactAccessibility(doc *goquery.Document, pageText string) models.ContactAccessibility {
	contact := models.ContactAccessibility{
		HasContactPage: countLinksByHref(doc, contactHrefRe) > 0,
		HasPhone:       phoneRe.MatchString(pageText),
		HasEmail:       emailTextRe.MatchString(pageText),
	}
	doc.Find("form").EachWithBreak(func(i int, s *goquery.Selection) bool {
		if contactClassRe.MatchString(s.AttrOr("class", "")) {
			contact.HasContactForm = true
			return false
		}
		return true
	})

	for _, present := range []bool{contact.HasContactPage, contact.HasPhone, contact.HasEmail, contact.HasContactForm} {
		if present {
			contact.Score++
		}
	}
	switch {
	case contact.Score >= 3:
		contact.Level = "high"
	case contact.Score == 2:
		contact.Level = "medium"
	default:
		contact.Level = "low"
	}
	return contact
}

func analyzeSocialProof(doc *goquery.Document, info models.BusinessInfo) models.SocialProof {
	proof := models.SocialProof{
		TestimonialsCount: info.Testimonials,
		CaseStudiesCount:  info.CaseStudies,
		AwardsCount:       info.Awards,
		PartnershipsCount: info.Partnerships,
	}
	doc.Find("img[alt]").EachWithBreak(func(i int, s *goquery.Selection) bool {
		if clientLogoAltRe.MatchString(s.AttrOr("alt", "")) {
			proof.HasClientLogos = true
			return false
		}
		return true
	})

	proof.Score = proof.TestimonialsCount*2 +
		proof.CaseStudiesCount*3 +
		proof.AwardsCount*2 +
		proof.PartnershipsCount*2
	if proof.HasClientLogos {
		proof.Score += 5
	}

	switch {
	case proof.Score >= 15:
		proof.Level = "high"
	case proof.Score >= 8:
		proof.Level = "medium"
	default:
		proof.Level = "low"
	}
	return proof
}

func analyzeWebsiteQuality(doc *goquery.Document) models.WebsiteQuality {
	quality := models.WebsiteQuality{
		HasMetaDescription: doc.Find(`meta[name="description"]`).Length() > 0,
		HasOGTags:          doc.Find(`meta[property="og:title"]`).Length() > 0,
		HasFavicon:         doc.Find(`link[rel~="icon"]`).Length() > 0,
		HasStructuredData:  doc.Find(`script[type="application/ld+json"]`).Length() > 0,
		MobileResponsive:   doc.Find(`meta[name="viewport"]`).Length() > 0,
		HasSitemap:         doc.Find(`link[rel~="sitemap"]`).Length() > 0,
	}

	for _, present := range []bool{
		quality.HasMetaDescription, quality.HasOGTags, quality.HasFavicon,
		quality.HasStructuredData, quality.MobileResponsive, quality.HasSitemap,
	} {
		if present {
			quality.Score++
		}
	}

	switch {
	case quality.Score >= 5:
		quality.Level = "high"
	case quality.Score >= 3:
		quality.Level = "medium"
	default:
		quality.Level = "low"
	}
	return quality
}

func countSectionsByClass(doc *goquery.Document, re *regexp.Regexp) int {
	count := 0
	doc.Find("section,div").Each(func(i int, s *goquery.Selection) {
		if re.MatchString(s.AttrOr("class", "")) {
			count++
		}
	})
	return count
}

func countLinksByHref(doc *goquery.Document, re *regexp.Regexp) int {
	count := 0
	doc.Find("a[href]").Each(func(i int, s *goquery.Selection) {
		if re.MatchString(s.AttrOr("href", "")) {
			count++
		}
	})
	return count
}

func matchIndicators(textLower string, indicators []string) []string {
	var found []string
	for _, indicator := range indicators {
		if strings.Contains(textLower, indicator) {
			found = append(found, indicator)
		}
	}
	return found
}
