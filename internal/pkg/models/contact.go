package models

// The social platforms the extractor recognizes, in classification order.
var SocialPlatforms = []string{"linkedin", "twitter", "facebook", "instagram", "youtube"}

// Contact data scraped from a company website. ContactEmail is the
// best-guess primary address; SocialMedia holds the first link found per
// platform across every page visited.
type ScrapedContact struct {
	ContactEmail string            `json:"contact_email,omitempty"`
	AllEmails    []string          `json:"all_emails,omitempty"`
	SocialMedia  map[string]string `json:"social_media,omitempty"`
}
