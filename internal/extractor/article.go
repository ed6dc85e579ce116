package extractor

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/jonesrussell/secnews/internal/domain"
)

// Extracted holds the title and lead text pulled from an article page.
// An empty Title means extraction failed and the candidate must be skipped.
type Extracted struct {
	Title string
	Lead  string
}

// contentContainers lists selectors for the main article body across the
// supported sites, tried in order when meta description tags are absent.
var contentContainers = []string{
	"div.view_txt", "div#view_txt", "div.article", "div#article",
	"div.article_view", "div.news_view", "div.content", "article",
	".article_con", ".view_content", ".article-body",
}

// ExtractArticle extracts the title and lead text from an article page.
//
// Title priority: og:title, first h1, document title. Lead priority:
// og:description, meta description, the source's summary selector, the
// first paragraph of a known content container, the first paragraph
// anywhere. The title is empty when no strategy yields a trimmed string of
// at least 5 characters.
func ExtractArticle(articleHTML string, sel domain.SelectorConfig) (Extracted, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(articleHTML))
	if err != nil {
		return Extracted{}, fmt.Errorf("parse article html: %w", err)
	}

	title := extractTitle(doc, sel)
	if !domain.ValidTitle(title) {
		return Extracted{}, nil
	}

	return Extracted{
		Title: domain.NormalizeTitle(title),
		Lead:  extractLead(doc, sel),
	}, nil
}

// extractTitle resolves the article title through the priority chain.
func extractTitle(doc *goquery.Document, sel domain.SelectorConfig) string {
	if og, ok := doc.Find("meta[property='og:title']").Attr("content"); ok {
		if og = strings.TrimSpace(og); og != "" {
			return og
		}
	}

	if sel.Title != "" {
		if t := strings.TrimSpace(doc.Find(sel.Title).First().Text()); t != "" {
			return t
		}
	}

	if h1 := strings.TrimSpace(doc.Find("h1").First().Text()); h1 != "" {
		return h1
	}

	return strings.TrimSpace(doc.Find("title").First().Text())
}

// extractLead resolves the lead text through the priority chain.
func extractLead(doc *goquery.Document, sel domain.SelectorConfig) string {
	if og, ok := doc.Find("meta[property='og:description']").Attr("content"); ok {
		if og = strings.TrimSpace(og); og != "" {
			return og
		}
	}

	if desc, ok := doc.Find("meta[name='description']").Attr("content"); ok {
		if desc = strings.TrimSpace(desc); desc != "" {
			return desc
		}
	}

	if sel.Summary != "" {
		if lead := strings.TrimSpace(doc.Find(sel.Summary).First().Text()); lead != "" {
			return lead
		}
	}

	for _, container := range contentContainers {
		node := doc.Find(container).First()
		if node.Length() == 0 {
			continue
		}
		if p := strings.TrimSpace(node.Find("p").First().Text()); p != "" {
			return p
		}
	}

	return strings.TrimSpace(doc.Find("p").First().Text())
}
