package models

// A hyperlink extracted from a page, href resolved to an absolute URL.
type Link struct {
	URL  string `json:"url"`
	Text string `json:"text"`
}

// An image reference with its resolved source and alt text.
type Image struct {
	Src string `json:"src"`
	Alt string `json:"alt"`
}

// Meta tag content keyed by name/property/itemprop, with the Open Graph
// and Twitter card namespaces split out.
type Metadata struct {
	Tags      map[string]string `json:"tags,omitempty"`
	OpenGraph map[string]string `json:"open_graph,omitempty"`
	Twitter   map[string]string `json:"twitter,omitempty"`
}

// A machine-readable data block embedded in the page.
// Type is "json-ld" or "microdata".
type StructuredData struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

// Structural flags used as business-intelligence signals.
type HTMLStructure struct {
	HasNavbar    bool     `json:"has_navbar"`
	HasFooter    bool     `json:"has_footer"`
	HasForms     bool     `json:"has_forms"`
	HasVideos    bool     `json:"has_videos"`
	SectionCount int      `json:"section_count"`
	ArticleCount int      `json:"article_count"`
	ButtonCount  int      `json:"button_count"`
	InputCount   int      `json:"input_count"`
	ClassNames   []string `json:"class_names,omitempty"`
}

// Normalized content of a website, merged from the homepage plus a bounded
// set of important pages. Headings, paragraphs and links keep document order
// and never contain duplicates after a merge.
type WebsiteContent struct {
	URL            string           `json:"url"`
	Title          string           `json:"title,omitempty"`
	Description    string           `json:"description,omitempty"`
	Headings       []string         `json:"headings,omitempty"`
	Paragraphs     []string         `json:"paragraphs,omitempty"`
	Links          []Link           `json:"links,omitempty"`
	Images         []Image          `json:"images,omitempty"`
	Metadata       Metadata         `json:"metadata"`
	StructuredData []StructuredData `json:"structured_data,omitempty"`
	TextContent    string           `json:"text_content,omitempty"`
	HTMLStructure  HTMLStructure    `json:"html_structure"`
	Language       string           `json:"language,omitempty"`
}
