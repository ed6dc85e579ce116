// Package wiki synthesizes knowledge entries from ingested articles.
package wiki

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jonesrussell/secnews/internal/classify"
	"github.com/jonesrussell/secnews/internal/domain"
	"github.com/jonesrussell/secnews/internal/lmclient"
	"github.com/jonesrussell/secnews/internal/logger"
	"github.com/jonesrussell/secnews/internal/sanitize"
)

// Completer is the language-model call used for entry generation.
type Completer interface {
	Complete(ctx context.Context, system, user string, opts lmclient.Options) (string, error)
}

const (
	wikiSystemPrompt = "당신은 보안 지식 사전을 집필하는 전문가입니다."
	wikiMaxTokens    = 800
	wikiTemperature  = 0.5
)

// noSummaryPlaceholder fills the fallback body when an article has no
// summary.
const noSummaryPlaceholder = "요약이 없습니다."

// Synthesizer builds knowledge entries, preferring model-generated bodies
// and falling back to a template referencing the source article.
type Synthesizer struct {
	lm       Completer
	keywords *classify.KeywordExtractor
	log      logger.Interface
	timeout  time.Duration
}

// New creates a synthesizer. A nil Completer always produces templated
// fallback bodies.
func New(lm Completer, keywords *classify.KeywordExtractor, log logger.Interface, timeout time.Duration) *Synthesizer {
	return &Synthesizer{lm: lm, keywords: keywords, log: log, timeout: timeout}
}

// BuildEntry assembles the knowledge entry derived from a newly persisted
// article. It never fails: model failures produce the templated body.
func (s *Synthesizer) BuildEntry(ctx context.Context, article *domain.Article) *domain.KnowledgeEntry {
	body := s.GenerateBody(ctx, article.Title, article.Category.Label())
	if body == "" {
		body = FallbackBody(article.Source, article.URL, article.Summary)
	}

	preview := domain.BuildPreview(article.Summary)

	return &domain.KnowledgeEntry{
		Title:    domain.NormalizeTitle(article.Title),
		Category: article.Category.Label(),
		Tags:     strings.Join(s.keywords.Extract(preview+" "+body, classify.WikiTagCount), ","),
		Preview:  preview,
		Content:  body,
		Type:     domain.ProvenanceAuto,
	}
}

// GenerateBody asks the model for the three-section entry body. Empty means
// the call failed and the caller must substitute the fallback template.
func (s *Synthesizer) GenerateBody(ctx context.Context, title, categoryLabel string) string {
	if s.lm == nil {
		return ""
	}

	result, err := s.lm.Complete(ctx, wikiSystemPrompt, entryPrompt(title, categoryLabel), lmclient.Options{
		MaxTokens:   wikiMaxTokens,
		Temperature: wikiTemperature,
		Timeout:     s.timeout,
	})
	if err != nil {
		s.log.Warn("model entry generation failed, using template",
			"title", title, "error", err.Error())
		return ""
	}

	return sanitize.RemoveIdeographs(result)
}

// entryPrompt builds the fixed generation prompt for a topic.
func entryPrompt(title, categoryLabel string) string {
	return fmt.Sprintf(`보안 주제 '%s'에 대해 지식 사전용 콘텐츠를 작성해줘.
카테고리: %s

다음 형식에 맞춰 전문적으로 작성해줘:
1. 개념 설명: 이 기술이나 위협의 핵심 정의
2. 위험성: 보안 측면에서 발생하는 주요 문제점
3. 대응 방법: 실무자가 적용할 수 있는 방어 대책

각 섹션은 2문장 내외로 명확하게 작성하고, 반드시 한국어로만 쓸 것.
한자 등 표의문자는 사용하지 말 것.`, title, categoryLabel)
}

// FallbackBody is the templated entry body referencing the source article.
func FallbackBody(source, articleURL, summary string) string {
	if summary == "" {
		summary = noSummaryPlaceholder
	}

	return fmt.Sprintf(
		"출처: %s\n원문: %s\n\n요약:\n%s\n\n설명: 이 항목은 자동으로 생성된 위키입니다. 필요하면 편집해 주세요.",
		source, articleURL, summary,
	)
}
