// Package summarize produces 1-2 sentence article summaries with a
// language-model primary tier and a deterministic extractive fallback.
package summarize

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/jonesrussell/secnews/internal/lmclient"
	"github.com/jonesrussell/secnews/internal/logger"
	"github.com/jonesrussell/secnews/internal/sanitize"
)

// Completer is the language-model call used by the primary tier.
type Completer interface {
	Complete(ctx context.Context, system, user string, opts lmclient.Options) (string, error)
}

const (
	summarySystemPrompt = "당신은 보안 뉴스를 분석하고 핵심을 요약하는 전문가입니다."
	summaryMaxTokens    = 200
	summaryTemperature  = 0.3
	// promptSourceLimit clips the source text placed into the prompt.
	promptSourceLimit = 1500
)

// Summarizer produces article summaries.
type Summarizer struct {
	lm      Completer
	log     logger.Interface
	timeout time.Duration
}

// New creates a summarizer. A nil Completer disables the model tier and the
// extractive fallback handles everything.
func New(lm Completer, log logger.Interface, timeout time.Duration) *Summarizer {
	return &Summarizer{lm: lm, log: log, timeout: timeout}
}

// Summarize returns a summary of the article. The model tier is tried
// first; any failure falls through to the extractive fallback on the
// content, which never fails.
func (s *Summarizer) Summarize(ctx context.Context, title, content string) string {
	if summary := s.modelSummary(ctx, title, content); summary != "" {
		return summary
	}
	return ExtractiveSummary(content, DefaultTargetLength)
}

// modelSummary runs the language-model tier. Empty means the tier failed.
func (s *Summarizer) modelSummary(ctx context.Context, title, content string) string {
	if s.lm == nil {
		return ""
	}

	sourceText := content
	if sourceText == "" {
		sourceText = title
	}

	result, err := s.lm.Complete(ctx, summarySystemPrompt, summaryPrompt(sourceText), lmclient.Options{
		MaxTokens:   summaryMaxTokens,
		Temperature: summaryTemperature,
		Timeout:     s.timeout,
	})
	if err != nil {
		s.log.Warn("model summary failed, using extractive fallback",
			"title", title, "error", err.Error())
		return ""
	}

	return sanitize.RemoveIdeographs(CleanSummary(result))
}

// summaryPrompt builds the fixed instruction prompt around the source text.
func summaryPrompt(sourceText string) string {
	if runes := []rune(sourceText); len(runes) > promptSourceLimit {
		sourceText = string(runes[:promptSourceLimit])
	}

	return fmt.Sprintf(`아래의 보안 뉴스 내용을 지식 사전에 등록할 수 있도록 핵심만 요약해줘.

내용: %s

작성 규칙:
1. 반드시 한국어로 작성할 것. 한자 등 표의문자는 사용하지 말 것.
2. '누가, 어떤 취약점으로, 어떤 피해를 입었는지'를 포함할 것.
3. 전문 용어는 가급적 유지하되 문장은 매끄럽게 '~함', '~임' 체로 끝낼 것.
4. 최대 2문장으로 압축할 것.`, sourceText)
}

var summaryPrefixPattern = regexp.MustCompile(`^(요약:|Summary:)\s*`)

// CleanSummary strips boilerplate prefixes and surrounding quotes from
// model output.
func CleanSummary(summary string) string {
	summary = summaryPrefixPattern.ReplaceAllString(strings.TrimSpace(summary), "")
	summary = strings.Trim(summary, `"'`)
	return strings.TrimSpace(summary)
}
