package domain

import "time"

// SelectorConfig defines optional per-source CSS selectors. When ListItem is
// set the list extractor runs in selector mode; otherwise it falls back to
// the same-domain link harvesting heuristic.
type SelectorConfig struct {
	// ListItem selects candidate elements on the listing page; the first
	// anchor inside each match supplies the article URL.
	ListItem string `json:"list_item" mapstructure:"list_item"`
	// Title selects the article title inside a list item or article page.
	Title string `json:"title_selector" mapstructure:"title_selector"`
	// Summary selects the lead text on the article page.
	Summary string `json:"summary_selector" mapstructure:"summary_selector"`
}

// Empty reports whether no selectors are configured.
func (s SelectorConfig) Empty() bool {
	return s.ListItem == "" && s.Title == "" && s.Summary == ""
}

// SourceDefinition describes one crawl source. Definitions are read-only
// input to the pipeline; their lifecycle is managed externally.
type SourceDefinition struct {
	ID string `json:"id" db:"id"`
	// Display name, also recorded on ingested articles
	Name string `json:"name" db:"name"`
	// Listing page URL
	URL string `json:"url" db:"url"`
	// Domain substring candidate links must contain
	Domain string `json:"domain" db:"domain"`
	// Country code of the source ("kr" or "en")
	Country string `json:"country" db:"country"`
	// Page character encoding when not UTF-8 (e.g. "euc-kr")
	Encoding string `json:"encoding" db:"encoding"`
	// Upper bound on candidate links taken from one listing page
	MaxItems int `json:"max_items" db:"max_items"`
	// Optional selector rules, stored as JSON
	SelectorConfig SelectorConfig `json:"selector_config" db:"-"`
	// Whether the source participates in crawl runs
	Active    bool      `json:"is_active" db:"is_active"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// DefaultMaxItems bounds candidate links when a source does not configure
// its own limit.
const DefaultMaxItems = 8

// CandidateLimit returns the source's candidate link bound.
func (s *SourceDefinition) CandidateLimit() int {
	if s.MaxItems > 0 {
		return s.MaxItems
	}
	return DefaultMaxItems
}
