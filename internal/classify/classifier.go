// Package classify assigns categories and extracts keywords using ordered
// keyword groups over an Aho-Corasick automaton.
package classify

import (
	"strings"

	ahocorasick "github.com/cloudflare/ahocorasick"

	"github.com/jonesrussell/secnews/internal/domain"
)

// Classifier assigns one of the six fixed categories by substring
// containment. It is a pure function of its input: same text, same category.
type Classifier struct {
	matcher  *ahocorasick.Matcher
	keywords []string
	// groupOf maps automaton keyword index to group index (priority).
	groupOf []int
	groups  []Group
}

// NewClassifier builds the matching automaton from the given ordered groups.
// The taxonomy is immutable after construction.
func NewClassifier(groups []Group) *Classifier {
	c := &Classifier{groups: groups}

	for gi, group := range groups {
		for _, kw := range group.Keywords {
			kw = strings.ToLower(strings.TrimSpace(kw))
			if kw == "" {
				continue
			}
			c.keywords = append(c.keywords, kw)
			c.groupOf = append(c.groupOf, gi)
		}
	}

	if len(c.keywords) > 0 {
		c.matcher = ahocorasick.NewStringMatcher(c.keywords)
	}

	return c
}

// Classify returns the category of the highest-priority group with any
// keyword contained in the lower-cased text. No match means trend.
func (c *Classifier) Classify(text string) domain.Category {
	if text == "" || c.matcher == nil {
		return domain.CategoryTrend
	}

	hits := c.matcher.Match([]byte(strings.ToLower(text)))

	best := -1
	for _, hit := range hits {
		if hit >= len(c.groupOf) {
			continue
		}
		if gi := c.groupOf[hit]; best == -1 || gi < best {
			best = gi
		}
	}

	if best == -1 {
		return domain.CategoryTrend
	}

	return c.groups[best].Category
}
