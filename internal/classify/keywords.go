package classify

import (
	"sort"
	"strings"

	ahocorasick "github.com/cloudflare/ahocorasick"
)

// DefaultTopKeywords is the ranked keyword count returned for article
// keyword extraction. Wiki tags use WikiTagCount.
const (
	DefaultTopKeywords = 5
	WikiTagCount       = 6
)

// KeywordExtractor finds curated security keywords in free text and ranks
// them by occurrence count.
type KeywordExtractor struct {
	matcher  *ahocorasick.Matcher
	keywords []string
}

// NewKeywordExtractor builds the extractor from the given dictionary groups.
// Keywords are deduplicated; the first occurrence keeps its rank position.
func NewKeywordExtractor(groups []Group) *KeywordExtractor {
	e := &KeywordExtractor{}
	seen := make(map[string]bool)

	for _, group := range groups {
		for _, kw := range group.Keywords {
			kw = strings.ToLower(strings.TrimSpace(kw))
			if kw == "" || seen[kw] {
				continue
			}
			seen[kw] = true
			e.keywords = append(e.keywords, kw)
		}
	}

	if len(e.keywords) > 0 {
		e.matcher = ahocorasick.NewStringMatcher(e.keywords)
	}

	return e
}

// Extract returns up to topN distinct keywords found as substrings in text,
// sorted by descending occurrence count. Ties keep dictionary order. Empty
// input or no matches yields an empty result.
func (e *KeywordExtractor) Extract(text string, topN int) []string {
	if text == "" || topN <= 0 || e.matcher == nil {
		return nil
	}

	lowered := strings.ToLower(text)
	hits := e.matcher.Match([]byte(lowered))
	if len(hits) == 0 {
		return nil
	}

	// The automaton reports which keywords occur; count occurrences per
	// distinct keyword for ranking.
	type ranked struct {
		keyword string
		count   int
		order   int
	}

	found := make([]ranked, 0, len(hits))
	for _, hit := range hits {
		if hit >= len(e.keywords) {
			continue
		}
		kw := e.keywords[hit]
		found = append(found, ranked{
			keyword: kw,
			count:   strings.Count(lowered, kw),
			order:   hit,
		})
	}

	sort.SliceStable(found, func(i, j int) bool {
		if found[i].count != found[j].count {
			return found[i].count > found[j].count
		}
		return found[i].order < found[j].order
	})

	if len(found) > topN {
		found = found[:topN]
	}

	result := make([]string, len(found))
	for i, r := range found {
		result[i] = r.keyword
	}

	return result
}
