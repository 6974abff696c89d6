// Package relevance ranks generated leads against the caller's own business
// profile. The profile is the BusinessInsights extracted from the caller's
// website, so relevance is always relative: the same lead scores differently
// for different callers.
package relevance

import (
	"fmt"
	"sort"
	"strings"

	"leadengine/internal/pkg/models"
)

// Scores how relevant a single lead is to the caller's business, 50-100.
// The base score assumes any generated lead is at least plausibly relevant;
// matches on industry, audience, geography and size add on top.
func Score(lead models.CompanyRecord, insights models.BusinessInsights) int {
	score := 50

	userIndustry := strings.ToLower(insights.Industry.Primary)
	leadIndustry := strings.ToLower(lead.KeyProductsServices)
	if userIndustry != "" && leadIndustry != "" &&
		(strings.Contains(leadIndustry, userIndustry) || strings.Contains(userIndustry, leadIndustry)) {
		score += 20
	}

	userAudience := strings.ToLower(insights.TargetAudience.Primary)
	switch userAudience {
	case "b2b", "enterprise":
		size := strings.ToLower(lead.CompanySize)
		if strings.Contains(size, "100+") || strings.Contains(size, "1000+") {
			score += 15
		}
	case "b2c", "individual":
		market := strings.ToLower(lead.TargetMarket)
		if strings.Contains(market, "consumer") || strings.Contains(market, "individual") {
			score += 15
		}
	}

	if len(insights.GeographicFocus) > 0 {
		location := strings.ToLower(lead.HeadquartersLocation)
		for _, country := range insights.GeographicFocus {
			if strings.Contains(location, strings.ToLower(country)) {
				score += 10
				break
			}
		}
	}

	if strings.Contains(lead.CompanySize, "100+") || strings.Contains(lead.CompanySize, "500+") {
		score += 5
	}

	if score > 100 {
		score = 100
	}
	return score
}

// Tags naming the caller-profile dimensions the lead was matched against.
func ContextTags(insights models.BusinessInsights) []string {
	var tags []string
	if insights.Industry.Primary != "" {
		tags = append(tags, "Industry: "+insights.Industry.Primary)
	}
	if insights.TargetAudience.Primary != "" {
		tags = append(tags, "Audience: "+insights.TargetAudience.Primary)
	}
	if insights.BusinessModel != "" {
		tags = append(tags, "Model: "+insights.BusinessModel)
	}
	return tags
}

// A human-readable explanation of the match for display alongside the lead.
func MatchReasoning(lead models.CompanyRecord, insights models.BusinessInsights) string {
	var reasons []string
	if insights.Industry.Primary != "" {
		reasons = append(reasons, fmt.Sprintf("Operates in %s sector", insights.Industry.Primary))
	}
	if insights.TargetAudience.Primary != "" {
		reasons = append(reasons, fmt.Sprintf("Serves %s market", insights.TargetAudience.Primary))
	}
	if lead.CompanySize != "" {
		reasons = append(reasons, "Company size: "+lead.CompanySize)
	}
	if lead.RevenueMarketCap != "" {
		reasons = append(reasons, "Revenue: "+lead.RevenueMarketCap)
	}
	if len(reasons) == 0 {
		return "Potential match based on business profile"
	}
	return strings.Join(reasons, "; ")
}

// Whether the lead fits the caller's primary target audience bucket. An
// empty or "general" audience matches everything.
func AudienceMatch(lead models.CompanyRecord, targetAudience string) bool {
	if targetAudience == "" || targetAudience == "general" {
		return true
	}

	market := strings.ToLower(lead.TargetMarket)
	size := strings.ToLower(lead.CompanySize)

	switch targetAudience {
	case "enterprise":
		return strings.Contains(size, "1000+") || strings.Contains(market, "enterprise")
	case "sme":
		return strings.Contains(market, "small") || strings.Contains(size, "50+")
	case "b2b":
		return strings.Contains(market, "b2b") || strings.Contains(market, "business")
	case "b2c":
		return strings.Contains(market, "consumer") || strings.Contains(market, "individual")
	}
	return true
}

// Annotates every lead with relevance fields and returns them sorted by
// relevance descending. Input order breaks ties.
func EnhanceLeads(leads []models.CompanyRecord, insights models.BusinessInsights) []models.CompanyRecord {
	enhanced := make([]models.CompanyRecord, len(leads))
	audience := strings.ToLower(insights.TargetAudience.Primary)
	for i, lead := range leads {
		lead.ContextRelevanceScore = Score(lead, insights)
		lead.ContextTags = ContextTags(insights)
		lead.MatchReasoning = MatchReasoning(lead, insights)
		lead.TargetAudienceMatch = AudienceMatch(lead, audience)
		enhanced[i] = lead
	}
	sort.SliceStable(enhanced, func(a, b int) bool {
		return enhanced[a].ContextRelevanceScore > enhanced[b].ContextRelevanceScore
	})
	return enhanced
}
