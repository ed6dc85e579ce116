package summarize

import (
	"strings"
	"unicode"
)

const (
	// minSummarizeLen is the length below which text is returned unchanged.
	minSummarizeLen = 50
	// DefaultTargetLength is the character budget for greedy accumulation.
	DefaultTargetLength = 100
	// minSentences is always kept even past the character budget.
	minSentences = 3
	// maxSentences caps the extractive result.
	maxSentences = 5
)

// SplitSentences splits text on sentence-final punctuation (., !, ?)
// followed by whitespace, keeping the punctuation with its sentence.
func SplitSentences(text string) []string {
	var sentences []string
	var current strings.Builder

	runes := []rune(text)
	for i := 0; i < len(runes); i++ {
		current.WriteRune(runes[i])

		if !isSentenceEnd(runes[i]) {
			continue
		}
		if i+1 < len(runes) && !unicode.IsSpace(runes[i+1]) {
			continue
		}

		if s := strings.TrimSpace(current.String()); s != "" {
			sentences = append(sentences, s)
		}
		current.Reset()
	}

	if s := strings.TrimSpace(current.String()); s != "" {
		sentences = append(sentences, s)
	}

	return sentences
}

func isSentenceEnd(r rune) bool {
	return r == '.' || r == '!' || r == '?'
}

// ExtractiveSummary produces a deterministic 3-5 sentence summary. Short
// inputs pass through unchanged; long inputs are greedily clipped to
// roughly targetLength characters while keeping at least three sentences.
// It never fails: the worst case is the input returned as-is.
func ExtractiveSummary(text string, targetLength int) string {
	if text == "" || len([]rune(text)) < minSummarizeLen {
		return text
	}
	if targetLength <= 0 {
		targetLength = DefaultTargetLength
	}

	sentences := SplitSentences(text)

	switch {
	case len(sentences) >= minSentences && len(sentences) <= maxSentences:
		return strings.Join(sentences, " ")
	case len(sentences) > maxSentences:
		return joinWithinBudget(sentences, targetLength)
	default:
		return strings.Join(sentences, " ")
	}
}

// joinWithinBudget accumulates sentences until the character budget is
// spent, keeping at least minSentences and at most maxSentences.
func joinWithinBudget(sentences []string, targetLength int) string {
	var selected []string
	total := 0

	for _, sentence := range sentences {
		length := len([]rune(sentence))
		if total+length > targetLength && len(selected) >= minSentences {
			break
		}
		selected = append(selected, sentence)
		total += length
		if len(selected) >= maxSentences {
			break
		}
	}

	return strings.Join(selected, " ")
}
