package models

// Blog presence signals.
type BlogActivity struct {
	HasBlog        bool `json:"has_blog"`
	BlogLinksFound int  `json:"blog_links_found,omitempty"`
}

// About page presence and a coarse quality label.
type AboutPage struct {
	HasAboutPage bool   `json:"has_about_page"`
	Quality      string `json:"about_page_quality,omitempty"`
}

// Team page signals.
type TeamInfo struct {
	HasTeamPage     bool `json:"has_team_page"`
	TeamMemberCount int  `json:"team_member_count"`
}

// Pricing signals from a single analyzed page.
type PricingInfo struct {
	HasPricingPage  bool     `json:"has_pricing_page"`
	PriceIndicators []string `json:"price_indicators,omitempty"`
}

// How reachable the company is: four boolean indicators summed into a
// 0-4 score mapped to low/medium/high.
type ContactAccessibility struct {
	HasContactPage bool   `json:"has_contact_page"`
	HasPhone       bool   `json:"has_phone"`
	HasEmail       bool   `json:"has_email"`
	HasContactForm bool   `json:"has_contact_form"`
	Score          int    `json:"accessibility_score"`
	Level          string `json:"accessibility_level"`
}

// Aggregate credibility signals weighted into a composite score.
type SocialProof struct {
	TestimonialsCount int    `json:"testimonials_count"`
	CaseStudiesCount  int    `json:"case_studies_count"`
	AwardsCount       int    `json:"awards_count"`
	PartnershipsCount int    `json:"partnerships_count"`
	HasClientLogos    bool   `json:"has_client_logos"`
	Score             int    `json:"social_proof_score"`
	Level             string `json:"social_proof_level"`
}

// Six boolean quality indicators summed into a 0-6 score.
type WebsiteQuality struct {
	HasMetaDescription bool   `json:"has_meta_description"`
	HasOGTags          bool   `json:"has_og_tags"`
	HasFavicon         bool   `json:"has_favicon"`
	HasStructuredData  bool   `json:"has_structured_data"`
	MobileResponsive   bool   `json:"mobile_responsive"`
	HasSitemap         bool   `json:"has_sitemap"`
	Score              int    `json:"quality_score"`
	Level              string `json:"quality_level"`
}

// Signals extracted from a single fetched page for lead scoring.
// A non-empty Error marks the whole analysis as unavailable; the scorer
// turns that into a zero score instead of propagating a failure.
type BusinessInfo struct {
	Error string `json:"error,omitempty"`

	CompanyDescription string               `json:"company_description,omitempty"`
	ServicesProducts   []string             `json:"services_products,omitempty"`
	TargetAudience     []string             `json:"target_audience,omitempty"`
	Pricing            *PricingInfo         `json:"pricing_info,omitempty"`
	Testimonials       int                  `json:"testimonials"`
	CaseStudies        int                  `json:"case_studies"`
	TeamInfo           *TeamInfo            `json:"team_size_indicators,omitempty"`
	TechStack          []string             `json:"technology_stack,omitempty"`
	Partnerships       int                  `json:"partnerships"`
	Awards             int                  `json:"awards_certifications"`
	Blog               BlogActivity         `json:"blog_activity"`
	HasCareersPage     bool                 `json:"careers_page"`
	About              AboutPage            `json:"about_page_quality"`
	Contact            ContactAccessibility `json:"contact_accessibility"`
	SocialProof        SocialProof          `json:"social_proof"`
	Quality            WebsiteQuality       `json:"website_quality_score"`
}

// Quality tiers in descending order.
const (
	TierPremium = "Premium"
	TierHigh    = "High"
	TierMedium  = "Medium"
	TierLow     = "Low"
	TierUnknown = "Unknown"
)

// A scored lead with the full component breakdown for auditability.
type LeadScore struct {
	LeadScore            int                `json:"lead_score"`
	QualityTier          string             `json:"quality_tier"`
	Recommendation       string             `json:"recommendation"`
	ScoringBreakdown     map[string]float64 `json:"scoring_breakdown"`
	MaxPossibleScore     int                `json:"max_possible_score"`
	BusinessIntelligence *BusinessInfo      `json:"business_intelligence,omitempty"`
}
