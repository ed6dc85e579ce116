// Package extractor parses listing and article pages with goquery.
package extractor

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/jonesrussell/secnews/internal/domain"
)

// ListStrategy selects candidate article links from a parsed listing page.
// The strategy for a source is fixed at configuration time: selector-driven
// when the source configures a list selector, heuristic otherwise.
type ListStrategy interface {
	CandidateLinks(doc *goquery.Document, base *url.URL, limit int) []string
}

// StrategyFor returns the list strategy for a source definition.
func StrategyFor(src *domain.SourceDefinition) ListStrategy {
	if src.SelectorConfig.ListItem != "" {
		return &SelectorStrategy{ListItem: src.SelectorConfig.ListItem}
	}
	return &HeuristicStrategy{Domain: src.Domain}
}

// ExtractCandidateLinks parses the listing page and returns up to limit
// unique candidate URLs in document order.
func ExtractCandidateLinks(listingHTML string, baseURL string, strategy ListStrategy, limit int) ([]string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(listingHTML))
	if err != nil {
		return nil, fmt.Errorf("parse listing html: %w", err)
	}

	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}

	return strategy.CandidateLinks(doc, base, limit), nil
}

// SelectorStrategy reads anchors out of elements matched by a configured
// CSS selector. Selector-matched links are trusted and skip the denylist.
type SelectorStrategy struct {
	ListItem string
}

// CandidateLinks implements ListStrategy.
func (s *SelectorStrategy) CandidateLinks(doc *goquery.Document, base *url.URL, limit int) []string {
	links := make([]string, 0, limit)
	seen := make(map[string]bool)

	doc.Find(s.ListItem).EachWithBreak(func(_ int, item *goquery.Selection) bool {
		href := itemHref(item)
		if href == "" {
			return true
		}

		resolved := resolveLink(base, href)
		if resolved == "" || seen[resolved] {
			return true
		}

		seen[resolved] = true
		links = append(links, resolved)
		return len(links) < limit
	})

	return links
}

// itemHref returns the href of the matched element itself when it is an
// anchor, or of the first anchor inside it.
func itemHref(item *goquery.Selection) string {
	if href, ok := item.Attr("href"); ok {
		return strings.TrimSpace(href)
	}
	if href, ok := item.Find("a[href]").First().Attr("href"); ok {
		return strings.TrimSpace(href)
	}
	return ""
}

// deniedPathFragments marks URLs that are listing chrome rather than
// articles.
var deniedPathFragments = []string{"/tag/", "/category/", "/comments", "/page/"}

// HeuristicStrategy harvests same-domain links when no selector is
// configured for a source.
type HeuristicStrategy struct {
	Domain string
}

// CandidateLinks implements ListStrategy. Every anchor whose resolved URL
// contains the domain substring is tested against the denylist in document
// order; the first limit unique survivors are kept. Denied links do not
// count toward the limit, so article links are found no matter how much
// navigation chrome precedes them.
func (h *HeuristicStrategy) CandidateLinks(doc *goquery.Document, base *url.URL, limit int) []string {
	links := make([]string, 0, limit)
	seen := make(map[string]bool)

	doc.Find("a[href]").EachWithBreak(func(_ int, anchor *goquery.Selection) bool {
		href, _ := anchor.Attr("href")

		resolved := resolveLink(base, strings.TrimSpace(href))
		if resolved == "" || !strings.Contains(resolved, h.Domain) || seen[resolved] {
			return true
		}

		seen[resolved] = true
		if deniedLink(resolved) {
			return true
		}

		links = append(links, resolved)
		return len(links) < limit
	})

	return links
}

// deniedLink reports whether the URL matches the non-article denylist:
// known path fragments, query strings, and fragments.
func deniedLink(link string) bool {
	if strings.ContainsAny(link, "?#") {
		return true
	}
	for _, fragment := range deniedPathFragments {
		if strings.Contains(link, fragment) {
			return true
		}
	}
	return false
}

// resolveLink resolves href against the listing page URL and returns an
// absolute http(s) URL, or empty when the href is unusable.
func resolveLink(base *url.URL, href string) string {
	if href == "" {
		return ""
	}

	ref, err := url.Parse(href)
	if err != nil {
		return ""
	}

	resolved := base.ResolveReference(ref)
	if resolved.Scheme != "http" && resolved.Scheme != "https" {
		return ""
	}

	return resolved.String()
}
