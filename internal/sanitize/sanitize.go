// Package sanitize strips disallowed markup from externally and
// model-sourced text before persistence.
package sanitize

import (
	"strings"
	"unicode"

	"github.com/microcosm-cc/bluemonday"
)

// textPolicy strips all markup. Used for titles, previews, and summaries.
var textPolicy = bluemonday.StrictPolicy()

// bodyPolicy allows a small inline and structural set for long-form
// knowledge entry bodies.
var bodyPolicy = newBodyPolicy()

func newBodyPolicy() *bluemonday.Policy {
	p := bluemonday.NewPolicy()
	p.AllowElements(
		"p", "br", "strong", "em", "b", "i",
		"ul", "ol", "li", "h2", "h3",
		"blockquote", "code", "pre",
	)
	p.AllowAttrs("href").OnElements("a")
	p.RequireNoFollowOnLinks(true)
	return p
}

// Text removes all markup from the input. Idempotent.
func Text(s string) string {
	return strings.TrimSpace(textPolicy.Sanitize(s))
}

// Body removes markup outside the long-form allowlist. Idempotent.
func Body(s string) string {
	return strings.TrimSpace(bodyPolicy.Sanitize(s))
}

// RemoveIdeographs drops Han ideographs that local models occasionally leak
// into Korean output.
func RemoveIdeographs(s string) string {
	if !strings.ContainsFunc(s, isHan) {
		return s
	}

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if !isHan(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func isHan(r rune) bool {
	return unicode.Is(unicode.Han, r)
}
