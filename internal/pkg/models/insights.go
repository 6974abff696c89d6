package models

// One industry candidate with its keyword hit count.
type IndustryScore struct {
	Industry string `json:"industry"`
	Score    int    `json:"score"`
}

// Industry classification with alternatives ranked by score.
type IndustryClassification struct {
	Primary      string          `json:"primary"`
	Confidence   int             `json:"confidence"`
	Alternatives []IndustryScore `json:"alternatives,omitempty"`
}

// Pricing signals found in page text and links.
type PricingModel struct {
	HasPricingPage  bool     `json:"has_pricing_page"`
	Model           string   `json:"pricing_model,omitempty"`
	PriceIndicators []string `json:"price_indicators,omitempty"`
	FreeTier        bool     `json:"free_tier"`
	Subscription    bool     `json:"subscription"`
}

// Primary audience bucket plus every bucket that matched at all.
type TargetAudience struct {
	Primary    string   `json:"primary"`
	AllMatches []string `json:"all_matches,omitempty"`
	Confidence int      `json:"confidence"`
}

// Business attributes derived from consolidated website content.
// Every field is best-effort; an empty value means no signal was found.
type BusinessInsights struct {
	Industry         IndustryClassification `json:"industry"`
	ProductTypes     []string               `json:"product_type,omitempty"`
	Offerings        []string               `json:"offerings,omitempty"`
	ValueProposition string                 `json:"value_proposition,omitempty"`
	Pricing          PricingModel           `json:"pricing_model"`
	TargetAudience   TargetAudience         `json:"target_audience"`
	Tone             string                 `json:"tone"`
	KeyBenefits      []string               `json:"key_benefits,omitempty"`
	Differentiators  []string               `json:"differentiators,omitempty"`
	BusinessModel    string                 `json:"business_model"`
	GeographicFocus  []string               `json:"geographic_focus,omitempty"`
	CompanyStage     string                 `json:"company_stage"`
}
