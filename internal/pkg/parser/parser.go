package parser

import (
	"encoding/json"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"leadengine/internal/pkg/models"
)

const (
	minHeadingLen   = 4
	minParagraphLen = 21
)

// Turns raw HTML plus its source URL into a normalized WebsiteContent.
// Parsing is a pure function of its inputs: identical (html, url) pairs
// always produce identical output, including slice ordering.
type Parser struct{}

func New() *Parser { return &Parser{} }

func (p *Parser) Parse(html string, sourceURL string) (models.WebsiteContent, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return models.WebsiteContent{}, err
	}

	base, err := url.Parse(sourceURL)
	if err != nil {
		return models.WebsiteContent{}, err
	}

	content := models.WebsiteContent{
		URL:   sourceURL,
		Title: strings.TrimSpace(doc.Find("title").First().Text()),
	}

	// Meta description, preferring the Open Graph variant when present.
	content.Description = strings.TrimSpace(doc.Find(`meta[name="description"]`).AttrOr("content", ""))
	if og := strings.TrimSpace(doc.Find(`meta[property="og:description"]`).AttrOr("content", "")); og != "" {
		content.Description = og
	}

	doc.Find("h1,h2,h3,h4,h5,h6").Each(func(i int, s *goquery.Selection) {
		text := strings.TrimSpace(s.Text())
		if len(text) >= minHeadingLen {
			content.Headings = append(content.Headings, text)
		}
	})

	doc.Find("p").Each(func(i int, s *goquery.Selection) {
		text := strings.TrimSpace(s.Text())
		if len(text) >= minParagraphLen {
			content.Paragraphs = append(content.Paragraphs, text)
		}
	})

	doc.Find("a[href]").Each(func(i int, s *goquery.Selection) {
		href := s.AttrOr("href", "")
		if !strings.HasPrefix(href, "http") && !strings.HasPrefix(href, "/") {
			return
		}
		if resolved := resolveURL(base, href); resolved != "" {
			content.Links = append(content.Links, models.Link{
				URL:  resolved,
				Text: strings.TrimSpace(s.Text()),
			})
		}
	})

	doc.Find("img[src]").Each(func(i int, s *goquery.Selection) {
		src := s.AttrOr("src", "")
		alt := s.AttrOr("alt", "")
		if src == "" && alt == "" {
			return
		}
		content.Images = append(content.Images, models.Image{
			Src: resolveURL(base, src),
			Alt: alt,
		})
	})

	content.Metadata = extractMetadata(doc)
	content.StructuredData = extractStructuredData(doc)
	content.HTMLStructure = analyzeStructure(doc)

	// Visible text last: stripping script/style mutates the document, and the
	// JSON-LD blocks above live inside script tags.
	doc.Find("script,noscript,style").Remove()
	content.TextContent = strings.Join(strings.Fields(doc.Text()), " ")

	return content, nil
}

// Flattens every meta tag into a single map keyed by name/property/itemprop,
// with the og: and twitter: namespaces additionally split out.
func extractMetadata(doc *goquery.Document) models.Metadata {
	meta := models.Metadata{Tags: map[string]string{}}

	doc.Find("meta").Each(func(i int, s *goquery.Selection) {
		name := s.AttrOr("name", "")
		if name == "" {
			name = s.AttrOr("property", "")
		}
		if name == "" {
			name = s.AttrOr("itemprop", "")
		}
		value := s.AttrOr("content", "")
		if name == "" || value == "" {
			return
		}
		meta.Tags[name] = value

		if strings.HasPrefix(name, "og:") {
			if meta.OpenGraph == nil {
				meta.OpenGraph = map[string]string{}
			}
			meta.OpenGraph[strings.TrimPrefix(name, "og:")] = value
		}
		if strings.HasPrefix(name, "twitter:") {
			if meta.Twitter == nil {
				meta.Twitter = map[string]string{}
			}
			meta.Twitter[strings.TrimPrefix(name, "twitter:")] = value
		}
	})

	return meta
}

// Collects JSON-LD blocks (parse-or-skip) and microdata items.
func extractStructuredData(doc *goquery.Document) []models.StructuredData {
	var blocks []models.StructuredData

	doc.Find(`script[type="application/ld+json"]`).Each(func(i int, s *goquery.Selection) {
		var data interface{}
		if err := json.Unmarshal([]byte(s.Text()), &data); err != nil {
			return // malformed blocks are skipped silently
		}
		blocks = append(blocks, models.StructuredData{Type: "json-ld", Data: data})
	})

	var microdata []map[string]string
	doc.Find("[itemscope]").Each(func(i int, item *goquery.Selection) {
		itemData := map[string]string{}
		if itemType := item.AttrOr("itemtype", ""); itemType != "" {
			itemData["type"] = itemType
		}
		item.Find("[itemprop]").Each(func(j int, prop *goquery.Selection) {
			name := prop.AttrOr("itemprop", "")
			value := prop.AttrOr("content", "")
			if value == "" {
				value = strings.TrimSpace(prop.Text())
			}
			if name != "" && value != "" {
				itemData[name] = value
			}
		})
		if len(itemData) > 0 {
			microdata = append(microdata, itemData)
		}
	})
	if len(microdata) > 0 {
		blocks = append(blocks, models.StructuredData{Type: "microdata", Data: microdata})
	}

	return blocks
}

func analyzeStructure(doc *goquery.Document) models.HTMLStructure {
	structure := models.HTMLStructure{
		HasNavbar:    doc.Find("nav,header").Length() > 0,
		HasFooter:    doc.Find("footer").Length() > 0,
		HasForms:     doc.Find("form").Length() > 0,
		HasVideos:    doc.Find("video,iframe").Length() > 0,
		SectionCount: doc.Find("section").Length(),
		ArticleCount: doc.Find("article").Length(),
		ButtonCount:  doc.Find("button").Length(),
		InputCount:   doc.Find("input").Length(),
	}

	// Distinct class names in first-seen order, capped at 20.
	seen := map[string]bool{}
	doc.Find("[class]").EachWithBreak(func(i int, s *goquery.Selection) bool {
		for _, class := range strings.Fields(s.AttrOr("class", "")) {
			if seen[class] {
				continue
			}
			seen[class] = true
			structure.ClassNames = append(structure.ClassNames, class)
			if len(structure.ClassNames) >= 20 {
				return false
			}
		}
		return true
	})

	return structure
}

func resolveURL(base *url.URL, href string) string {
	ref, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return ""
	}
	return base.ResolveReference(ref).String()
}
