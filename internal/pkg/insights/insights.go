package insights

import (
	"net/url"
	"regexp"
	"sort"
	"strings"

	"github.com/cloudflare/ahocorasick"

	"leadengine/internal/pkg/models"
)

var (
	offeringPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)we (?:offer|provide|deliver|supply) ([^.]{10,100})`),
		regexp.MustCompile(`(?i)our (?:services|products|solutions|offerings) (?:include|are) ([^.]{10,200})`),
		regexp.MustCompile(`(?i)(?:service|product|solution|offering):\s*([^.\n]{10,100})`),
	}
	priceRe = regexp.MustCompile(`\$[\d,]+|€[\d,]+|£[\d,]+|USD\s?[\d,]+|KES\s?[\d,]+`)
)

// A compiled keyword table: one Aho-Corasick matcher over the distinct
// keywords, with a parallel slice mapping pattern index back to every bucket
// listing that keyword. The matcher collapses duplicate patterns to one
// index, so a keyword shared by two buckets ("buy" is both ecommerce and
// real_estate) must credit each of them. A matcher hit list contains each
// pattern at most once, so hits count distinct keywords present, not
// occurrences.
type keywordMatcher struct {
	matcher *ahocorasick.Matcher
	buckets [][]string // bucket names per pattern index
	order   []string   // bucket names in table order
}

func compileTable(table []keywordGroup) *keywordMatcher {
	var patterns [][]byte
	index := map[string]int{}
	km := &keywordMatcher{}
	for _, group := range table {
		km.order = append(km.order, group.name)
		for _, keyword := range group.keywords {
			if i, ok := index[keyword]; ok {
				km.buckets[i] = append(km.buckets[i], group.name)
				continue
			}
			index[keyword] = len(patterns)
			patterns = append(patterns, []byte(keyword))
			km.buckets = append(km.buckets, []string{group.name})
		}
	}
	km.matcher = ahocorasick.NewMatcher(patterns)
	return km
}

// Returns distinct-keyword hit counts per bucket for lowercased text.
func (km *keywordMatcher) scores(text string) map[string]int {
	counts := map[string]int{}
	for _, hit := range km.matcher.Match([]byte(text)) {
		for _, bucket := range km.buckets[hit] {
			counts[bucket]++
		}
	}
	return counts
}

// Derives business attributes from consolidated website content using
// keyword tables and regex scans. No network I/O.
type Extractor struct {
	industries *keywordMatcher
	audiences  *keywordMatcher
	tones      *keywordMatcher
}

func NewExtractor() *Extractor {
	return &Extractor{
		industries: compileTable(industryTable),
		audiences:  compileTable(audienceTable),
		tones:      compileTable(toneTable),
	}
}

// Extracts the full insight bundle. Matching runs over the title,
// description, headings and the first 20 paragraphs, lowercased.
func (e *Extractor) ExtractInsights(content *models.WebsiteContent) models.BusinessInsights {
	if content == nil {
		return models.BusinessInsights{}
	}

	fullText := combineText(content)
	textLower := strings.ToLower(fullText)

	return models.BusinessInsights{
		Industry:         e.extractIndustry(textLower, content),
		ProductTypes:     extractProductTypes(content),
		Offerings:        extractOfferings(textLower, content),
		ValueProposition: extractValueProposition(content),
		Pricing:          extractPricingModel(textLower, content),
		TargetAudience:   e.extractTargetAudience(textLower),
		Tone:             e.extractTone(textLower),
		KeyBenefits:      extractBenefits(content),
		Differentiators:  extractDifferentiators(content),
		BusinessModel:    extractBusinessModel(textLower),
		GeographicFocus:  extractGeographicFocus(textLower),
		CompanyStage:     extractCompanyStage(textLower),
	}
}

func combineText(content *models.WebsiteContent) string {
	paragraphs := content.Paragraphs
	if len(paragraphs) > 20 {
		paragraphs = paragraphs[:20]
	}
	parts := []string{
		content.Title,
		content.Description,
		strings.Join(content.Headings, " "),
		strings.Join(paragraphs, " "),
	}
	return strings.Join(parts, " ")
}

func (e *Extractor) extractIndustry(text string, content *models.WebsiteContent) models.IndustryClassification {
	// Keyword scores in table order, so equal scores resolve to the earlier
	// industry.
	counts := e.industries.scores(text)
	var scored []models.IndustryScore
	index := map[string]int{}
	for _, name := range e.industries.order {
		if counts[name] > 0 {
			index[name] = len(scored)
			scored = append(scored, models.IndustryScore{Industry: name, Score: counts[name]})
		}
	}

	// Structured data gets a flat bonus; an unknown @type competes as its own
	// candidate.
	for _, sd := range content.StructuredData {
		if sd.Type != "json-ld" {
			continue
		}
		data, ok := sd.Data.(map[string]interface{})
		if !ok {
			continue
		}
		field, _ := data["industry"].(string)
		if field == "" {
			field, _ = data["@type"].(string)
		}
		if field == "" {
			continue
		}
		name := strings.ToLower(field)
		if i, ok := index[name]; ok {
			scored[i].Score += 2
		} else {
			index[name] = len(scored)
			scored = append(scored, models.IndustryScore{Industry: name, Score: 2})
		}
	}

	if len(scored) == 0 {
		return models.IndustryClassification{Primary: "general", Confidence: 0}
	}

	best := scored[0]
	for _, candidate := range scored[1:] {
		if candidate.Score > best.Score {
			best = candidate
		}
	}

	alternatives := make([]models.IndustryScore, len(scored))
	copy(alternatives, scored)
	sort.SliceStable(alternatives, func(i, j int) bool {
		return alternatives[i].Score > alternatives[j].Score
	})
	if len(alternatives) > 3 {
		alternatives = alternatives[:3]
	}

	return models.IndustryClassification{
		Primary:      best.Industry,
		Confidence:   min(100, best.Score*15),
		Alternatives: alternatives,
	}
}

func extractProductTypes(content *models.WebsiteContent) []string {
	var types []string
	seen := map[string]bool{}
	add := func(s string) {
		s = strings.TrimSpace(s)
		if s != "" && !seen[s] {
			seen[s] = true
			types = append(types, s)
		}
	}

	headings := content.Headings
	if len(headings) > 10 {
		headings = headings[:10]
	}
	for _, heading := range headings {
		lower := strings.ToLower(heading)
		for _, indicator := range productIndicators {
			if strings.Contains(lower, indicator) {
				if len(strings.Fields(heading)) > 1 {
					add(heading)
				}
				break
			}
		}
	}

	paragraphs := content.Paragraphs
	if len(paragraphs) > 10 {
		paragraphs = paragraphs[:10]
	}
	for _, para := range paragraphs {
		if !containsAny(strings.ToLower(para), productIndicators) {
			continue
		}
		sentences := strings.Split(para, ".")
		if len(sentences) > 2 {
			sentences = sentences[:2]
		}
		for _, sentence := range sentences {
			trimmed := strings.TrimSpace(sentence)
			if len(trimmed) > 20 && len(trimmed) < 200 && containsAny(strings.ToLower(trimmed), productIndicators) {
				add(trimmed)
			}
		}
	}

	if len(types) > 5 {
		types = types[:5]
	}
	return types
}

func extractOfferings(text string, content *models.WebsiteContent) []string {
	var raw []string
	for _, pattern := range offeringPatterns {
		for _, match := range pattern.FindAllStringSubmatch(text, -1) {
			raw = append(raw, match[1])
		}
	}
	for _, heading := range content.Headings {
		if containsAny(strings.ToLower(heading), offeringHeadingKeywords) {
			raw = append(raw, heading)
		}
	}

	var cleaned []string
	seen := map[string]bool{}
	for _, offering := range raw {
		offering = strings.TrimSpace(offering)
		if len(offering) > 10 && len(offering) < 200 && !seen[offering] {
			seen[offering] = true
			cleaned = append(cleaned, offering)
		}
	}
	if len(cleaned) > 10 {
		cleaned = cleaned[:10]
	}
	return cleaned
}

// The meta description usually is the value proposition; fall back to the
// first sizeable heading, then the first substantial paragraph.
func extractValueProposition(content *models.WebsiteContent) string {
	if len(content.Description) > 30 {
		return content.Description
	}

	headings := content.Headings
	if len(headings) > 3 {
		headings = headings[:3]
	}
	for _, heading := range headings {
		if len(heading) > 20 && len(heading) < 200 {
			return heading
		}
	}

	paragraphs := content.Paragraphs
	if len(paragraphs) > 3 {
		paragraphs = paragraphs[:3]
	}
	for _, para := range paragraphs {
		if len(para) > 50 && len(para) < 300 {
			return para
		}
	}

	return ""
}

func extractPricingModel(text string, content *models.WebsiteContent) models.PricingModel {
	pricing := models.PricingModel{}

	if !containsAny(text, pricingKeywords) {
		return pricing
	}

	if strings.Contains(text, "subscription") || strings.Contains(text, "monthly") || strings.Contains(text, "annual") {
		pricing.Subscription = true
		pricing.Model = "subscription"
	}
	if strings.Contains(text, "free") || strings.Contains(text, "trial") {
		pricing.FreeTier = true
	}

	seen := map[string]bool{}
	for _, price := range priceRe.FindAllString(text, -1) {
		if !seen[price] {
			seen[price] = true
			pricing.PriceIndicators = append(pricing.PriceIndicators, price)
			if len(pricing.PriceIndicators) >= 5 {
				break
			}
		}
	}

	baseHost := hostOf(content.URL)
	for _, link := range content.Links {
		lower := strings.ToLower(link.URL)
		if strings.Contains(lower, "pricing") || strings.Contains(lower, "price") {
			if baseHost == "" || hostOf(link.URL) == baseHost {
				pricing.HasPricingPage = true
				break
			}
		}
	}

	return pricing
}

func (e *Extractor) extractTargetAudience(text string) models.TargetAudience {
	counts := e.audiences.scores(text)

	audience := models.TargetAudience{Primary: "general"}
	best := 0
	for _, name := range e.audiences.order {
		if counts[name] > 0 {
			audience.AllMatches = append(audience.AllMatches, name)
			if counts[name] > best {
				best = counts[name]
				audience.Primary = name
			}
		}
	}
	if best > 0 {
		audience.Confidence = min(100, best*25)
	}
	return audience
}

func (e *Extractor) extractTone(text string) string {
	counts := e.tones.scores(text)

	tone := "professional" // default
	best := 0
	for _, name := range e.tones.order {
		if counts[name] > best {
			best = counts[name]
			tone = name
		}
	}
	return tone
}

func extractBenefits(content *models.WebsiteContent) []string {
	var benefits []string

	for _, heading := range content.Headings {
		if containsAny(strings.ToLower(heading), benefitHeadingKeywords) {
			benefits = append(benefits, heading)
		}
	}

	paragraphs := content.Paragraphs
	if len(paragraphs) > 10 {
		paragraphs = paragraphs[:10]
	}
	for _, para := range paragraphs {
		if containsAny(strings.ToLower(para), benefitParagraphKeywords) && len(para) > 30 && len(para) < 200 {
			benefits = append(benefits, para)
		}
	}

	if len(benefits) > 5 {
		benefits = benefits[:5]
	}
	return benefits
}

func extractDifferentiators(content *models.WebsiteContent) []string {
	var differentiators []string

	paragraphs := content.Paragraphs
	if len(paragraphs) > 15 {
		paragraphs = paragraphs[:15]
	}
	for _, para := range paragraphs {
		if containsAny(strings.ToLower(para), differentiatorKeywords) && len(para) > 40 && len(para) < 250 {
			differentiators = append(differentiators, para)
			if len(differentiators) >= 3 {
				break
			}
		}
	}
	return differentiators
}

// Priority-ordered: the first matching model wins.
func extractBusinessModel(text string) string {
	switch {
	case strings.Contains(text, "saas") || strings.Contains(text, "software as a service"):
		return "SaaS"
	case strings.Contains(text, "marketplace") || strings.Contains(text, "platform"):
		return "Marketplace"
	case strings.Contains(text, "ecommerce") || strings.Contains(text, "online store"):
		return "E-commerce"
	case strings.Contains(text, "consulting") || strings.Contains(text, "advisory"):
		return "Consulting"
	case strings.Contains(text, "subscription"):
		return "Subscription"
	case strings.Contains(text, "freemium"):
		return "Freemium"
	default:
		return "Service-based"
	}
}

func extractGeographicFocus(text string) []string {
	var found []string
	for _, country := range countryNames {
		if strings.Contains(text, country) {
			found = append(found, titleCase(country))
			if len(found) >= 5 {
				break
			}
		}
	}
	return found
}

func extractCompanyStage(text string) string {
	switch {
	case containsAny(text, startupWords):
		return "Startup"
	case containsAny(text, enterpriseWords):
		return "Enterprise"
	case containsAny(text, growthWords):
		return "Growth"
	default:
		return "Established"
	}
}

func containsAny(text string, keywords []string) bool {
	for _, keyword := range keywords {
		if strings.Contains(text, keyword) {
			return true
		}
	}
	return false
}

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, word := range words {
		words[i] = strings.ToUpper(word[:1]) + word[1:]
	}
	return strings.Join(words, " ")
}

func hostOf(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return u.Host
}
