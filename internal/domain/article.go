// Package domain provides domain models used across the application.
package domain

import (
	"strings"
	"time"
)

// Article represents one ingested news item. Identity is the canonical URL,
// which is unique across all articles.
type Article struct {
	// Unique identifier for the article
	ID string `json:"id" db:"id"`
	// Title of the article, non-empty and at least 5 characters after trimming
	Title string `json:"title" db:"title"`
	// Name of the source the article was ingested from
	Source string `json:"source" db:"source"`
	// Publication date (YYYY-MM-DD); defaults to the ingestion date
	Date string `json:"date" db:"date"`
	// Short summary text, possibly empty
	Summary string `json:"summary" db:"summary"`
	// Assigned category
	Category Category `json:"category" db:"category"`
	// Canonical article URL
	URL string `json:"url" db:"url"`
	// Record creation timestamp
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// minTitleLen is the minimum trimmed title length for a valid article.
const minTitleLen = 5

// ValidTitle reports whether the given title survives trimming with at least
// the minimum length. Length is counted in runes so Korean titles are not
// penalized.
func ValidTitle(title string) bool {
	return len([]rune(strings.TrimSpace(title))) >= minTitleLen
}

// NormalizeTitle trims surrounding whitespace. Knowledge entry matching uses
// the normalized form, so titles differing only in surrounding whitespace
// resolve to the same entry.
func NormalizeTitle(title string) string {
	return strings.TrimSpace(title)
}
