package intelligence

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"leadengine/internal/pkg/metrics"
	"leadengine/internal/pkg/models"
)

var (
	revenueNumberRe = regexp.MustCompile(`[\d.]+`)
	employeeCountRe = regexp.MustCompile(`\d+`)
)

// Component weights. The six components sum to 100.
const (
	weightQuality  = 20.0
	weightContact  = 15.0
	weightSocial   = 20.0
	weightActivity = 15.0
	weightSize     = 15.0
	weightRevenue  = 15.0
)

// Combines website analysis signals with known company attributes into a
// 0-100 lead score. A BusinessInfo carrying an Error yields the zero score
// with an Unknown tier rather than failing the batch.
func ScoreLead(company models.CompanyRecord, info models.BusinessInfo, icp *models.IdealCustomerProfile) models.LeadScore {
	if info.Error != "" {
		return models.LeadScore{
			LeadScore:        0,
			QualityTier:      models.TierUnknown,
			Recommendation:   "Unable to analyze - website error",
			ScoringBreakdown: map[string]float64{},
			MaxPossibleScore: 100,
		}
	}

	// Every component is written to the breakdown, zero or not, so a
	// caller auditing a low score sees which signals were absent.
	breakdown := map[string]float64{}
	score := 0.0

	component := round1(math.Min(weightQuality, float64(info.Quality.Score)/6.0*weightQuality))
	breakdown["website_quality"] = component
	score += component

	component = round1(math.Min(weightContact, float64(info.Contact.Score)/4.0*weightContact))
	breakdown["contact_accessibility"] = component
	score += component

	component = round1(math.Min(weightSocial, float64(info.SocialProof.Score)/30.0*weightSocial))
	breakdown["social_proof"] = component
	score += component

	activity := 0.0
	if info.Blog.HasBlog {
		activity += 5
	}
	if info.HasCareersPage {
		activity += 5
	}
	if info.About.HasAboutPage {
		activity += 5
	}
	breakdown["business_activity"] = activity
	score += activity

	component = scoreCompanySize(company.CompanySize)
	breakdown["company_size"] = component
	score += component

	component = scoreRevenue(company.RevenueMarketCap)
	breakdown["revenue"] = component
	score += component

	if icp != nil {
		component = scoreICPMatch(company, icp)
		breakdown["icp_match"] = component
		score += component
	}

	final := int(math.Min(100, math.Round(score)))
	metrics.LeadScoreHistogram.Observe(float64(final))

	tier, recommendation := classify(final)
	return models.LeadScore{
		LeadScore:            final,
		QualityTier:          tier,
		Recommendation:       recommendation,
		ScoringBreakdown:     breakdown,
		MaxPossibleScore:     100,
		BusinessIntelligence: &info,
	}
}

func classify(score int) (string, string) {
	switch {
	case score >= 80:
		return models.TierPremium, "High Priority - Excellent match"
	case score >= 60:
		return models.TierHigh, "Good match - Worth pursuing"
	case score >= 40:
		return models.TierMedium, "Moderate match - Consider if aligned"
	default:
		return models.TierLow, "Low priority - May not be ideal"
	}
}

func scoreCompanySize(size string) float64 {
	if size == "" {
		return 0
	}
	switch {
	case strings.Contains(size, "1000+"), strings.Contains(size, "10,000+"), strings.Contains(size, "10000+"):
		return weightSize
	case strings.Contains(size, "100+"), strings.Contains(size, "500+"):
		return 10
	case strings.Contains(size, "50+"):
		return 7
	default:
		return 3
	}
}

// Revenue strings arrive in free text ("$2.5 billion", "500 million USD").
// Anything unparseable still earns a baseline: having any revenue figure at
// all is a positive signal.
func scoreRevenue(revenue string) float64 {
	if revenue == "" {
		return 0
	}
	cleaned := strings.ReplaceAll(strings.ToLower(revenue), ",", "")
	token := revenueNumberRe.FindString(cleaned)
	if token == "" {
		return 5
	}
	value, err := strconv.ParseFloat(token, 64)
	if err != nil {
		return 5
	}
	switch {
	case strings.Contains(cleaned, "billion") || value >= 1000:
		return 15
	case strings.Contains(cleaned, "million") || value >= 10:
		return 10
	default:
		return 5
	}
}

// Bonus points for matching the user's ideal customer profile, capped at 10.
func scoreICPMatch(company models.CompanyRecord, icp *models.IdealCustomerProfile) float64 {
	bonus := 0.0

	products := strings.ToLower(company.KeyProductsServices)
	for _, industry := range icp.TargetIndustries {
		if industry != "" && strings.Contains(products, strings.ToLower(industry)) {
			bonus += 5
			break
		}
	}

	if icp.MinEmployees > 0 {
		digits := employeeCountRe.FindString(strings.ReplaceAll(company.CompanySize, ",", ""))
		if digits != "" {
			if employees, err := strconv.Atoi(digits); err == nil && employees >= icp.MinEmployees {
				bonus += 5
			}
		}
	}

	return math.Min(10, bonus)
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
