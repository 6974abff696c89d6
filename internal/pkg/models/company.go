package models

// A lead record as supplied by the upstream generation service, augmented in
// place by enrichment and scoring. The pipeline never persists these; it
// returns augmented copies to the caller.
type CompanyRecord struct {
	CompanyName          string            `json:"company_name"`
	WebsiteURL           string            `json:"website_url,omitempty"`
	CompanySize          string            `json:"company_size,omitempty"`
	RevenueMarketCap     string            `json:"revenue_market_cap,omitempty"`
	KeyProductsServices  string            `json:"key_products_services,omitempty"`
	TargetMarket         string            `json:"target_market,omitempty"`
	HeadquartersLocation string            `json:"headquarters_location,omitempty"`
	ContactEmail         string            `json:"contact_email,omitempty"`
	SocialMedia          map[string]string `json:"social_media,omitempty"`

	// Enrichment output. The generated contact email is preserved before the
	// scraped one overwrites ContactEmail.
	ContactEmailGenerated string            `json:"contact_email_generated,omitempty"`
	AdditionalEmails      []string          `json:"additional_emails,omitempty"`
	SocialMediaScraped    map[string]string `json:"social_media_scraped,omitempty"`

	// Scoring output.
	LeadScore            int                `json:"lead_score"`
	QualityTier          string             `json:"quality_tier,omitempty"`
	Recommendation       string             `json:"recommendation,omitempty"`
	ScoringBreakdown     map[string]float64 `json:"scoring_breakdown,omitempty"`
	BusinessIntelligence *BusinessInfo      `json:"business_intelligence,omitempty"`

	// Context relevance against the caller's own business profile.
	ContextRelevanceScore int      `json:"context_relevance_score,omitempty"`
	ContextTags           []string `json:"context_tags,omitempty"`
	MatchReasoning        string   `json:"match_reasoning,omitempty"`
	TargetAudienceMatch   bool     `json:"target_audience_match,omitempty"`
}

// Caller-supplied ideal customer profile used to bias lead scoring.
type IdealCustomerProfile struct {
	TargetIndustries []string `json:"target_industries,omitempty"`
	MinEmployees     int      `json:"min_employees,omitempty"`
}
