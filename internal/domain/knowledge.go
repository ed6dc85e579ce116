package domain

import (
	"strings"
	"time"
)

// Provenance marks how a knowledge entry came to exist.
type Provenance string

const (
	// ProvenanceAuto marks entries generated by the pipeline. Only auto
	// entries are eligible for automatic regeneration.
	ProvenanceAuto Provenance = "auto"
	// ProvenanceManual marks entries created or overwritten by an
	// administrative edit.
	ProvenanceManual Provenance = "manual"
)

// KnowledgeEntry is a synthesized reference document derived from an article.
// Identity is the exact (trimmed) title; at most one entry exists per title.
type KnowledgeEntry struct {
	// Unique identifier for the entry
	ID string `json:"id" db:"id"`
	// Entry title, matching the originating article's trimmed title
	Title string `json:"title" db:"title"`
	// Display label derived from the article category
	Category string `json:"category" db:"category"`
	// Comma-joined keyword tags
	Tags string `json:"tags" db:"tags"`
	// Short derived preview text, at most ~200 characters
	Preview string `json:"preview" db:"preview"`
	// Structured long-form body
	Content string `json:"content" db:"content"`
	// Provenance of the entry (auto or manual)
	Type Provenance `json:"type" db:"type"`
	// Record creation timestamp
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// TagList splits the comma-joined tags back into a slice, dropping empties.
func (k *KnowledgeEntry) TagList() []string {
	if k.Tags == "" {
		return nil
	}

	parts := strings.Split(k.Tags, ",")
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			tags = append(tags, p)
		}
	}
	return tags
}

// previewMaxLen caps knowledge entry previews.
const previewMaxLen = 200

// BuildPreview clips the summary for display on entry listings.
func BuildPreview(summary string) string {
	runes := []rune(summary)
	if len(runes) > previewMaxLen {
		return string(runes[:previewMaxLen]) + "..."
	}
	return summary
}
