package pipeline

import (
	"context"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/jonesrussell/secnews/internal/domain"
	"github.com/jonesrussell/secnews/internal/extractor"
	"github.com/jonesrussell/secnews/internal/sanitize"
)

// dateFormat is the article date recorded at ingestion time.
const dateFormat = "2006-01-02"

// RunAll executes one ingestion run over every active source. Failures are
// absorbed into the summary; the only fatal condition is being unable to
// load the source registry. Cancelling the context ends the run early with
// partial results.
func (p *Pipeline) RunAll(ctx context.Context) (*domain.RunSummary, error) {
	summary := &domain.RunSummary{StartedAt: time.Now()}

	active, err := p.registry.Active(ctx)
	if err != nil {
		return nil, err
	}

	logID := p.startRunLog(ctx)
	p.log.Info("Ingestion run started", "sources", len(active))

	summary.Sources = make([]domain.SourceResult, len(active))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.concurrency)
	for i, src := range active {
		i, src := i, src
		if i > 0 {
			sleepCtx(ctx, p.sourceDelay)
		}
		g.Go(func() error {
			summary.Sources[i] = p.runSource(gctx, src)
			return nil
		})
	}
	// Workers never return errors; outcomes land in the summary.
	_ = g.Wait()

	for i := range summary.Sources {
		summary.TotalAdded += summary.Sources[i].Added
	}
	summary.CompletedAt = time.Now()

	p.finishRunLog(ctx, logID, summary)
	p.log.Info("Ingestion run finished",
		"added", summary.TotalAdded,
		"failed_sources", len(summary.FailedSources()),
		"duration", summary.CompletedAt.Sub(summary.StartedAt).String())

	return summary, nil
}

// runSource processes one source's listing page and candidates.
func (p *Pipeline) runSource(ctx context.Context, src *domain.SourceDefinition) domain.SourceResult {
	result := domain.SourceResult{Source: src.Name}

	if ctx.Err() != nil {
		result.Failed = true
		result.Error = "run cancelled"
		return result
	}

	listingHTML, err := p.fetcher.Fetch(ctx, src.URL, src.Encoding)
	if err != nil {
		p.log.Warn("Listing fetch failed", "source", src.Name, "error", err.Error())
		result.Failed = true
		result.Error = err.Error()
		return result
	}

	links, err := extractor.ExtractCandidateLinks(listingHTML, src.URL, extractor.StrategyFor(src), src.CandidateLimit())
	if err != nil {
		p.log.Warn("Listing parse failed", "source", src.Name, "error", err.Error())
		result.Failed = true
		result.Error = err.Error()
		return result
	}

	p.log.Debug("Candidates extracted", "source", src.Name, "count", len(links))

	for i, link := range links {
		if i > 0 {
			sleepCtx(ctx, p.requestDelay)
		}
		if ctx.Err() != nil {
			result.Candidates = append(result.Candidates, domain.CandidateResult{
				URL: link, Skip: domain.SkipRunCancelled,
			})
			continue
		}

		candidate := p.processCandidate(ctx, src, link)
		if !candidate.Skipped() {
			result.Added++
		}
		result.Candidates = append(result.Candidates, candidate)
	}

	return result
}

// processCandidate runs one candidate URL through dedup, fetch, extraction,
// enrichment, persistence, and knowledge synthesis.
func (p *Pipeline) processCandidate(ctx context.Context, src *domain.SourceDefinition, link string) domain.CandidateResult {
	// Pre-check is an optimization; the unique constraint on url is the
	// authoritative guard under concurrency.
	existing, err := p.news.FindByURL(ctx, link)
	if err != nil {
		return skip(link, domain.SkipPersistFailed, err.Error())
	}
	if existing != nil {
		return skip(link, domain.SkipDuplicateURL, "")
	}

	articleHTML, err := p.fetcher.Fetch(ctx, link, src.Encoding)
	if err != nil {
		p.log.Debug("Article fetch failed", "url", link, "error", err.Error())
		return skip(link, domain.SkipFetchFailed, err.Error())
	}

	extracted, err := extractor.ExtractArticle(articleHTML, src.SelectorConfig)
	if err != nil {
		return skip(link, domain.SkipParseFailed, err.Error())
	}
	if extracted.Title == "" {
		return skip(link, domain.SkipNoTitle, "")
	}

	title := sanitize.Text(extracted.Title)
	lead := sanitize.Text(extracted.Lead)
	if !domain.ValidTitle(title) {
		return skip(link, domain.SkipNoTitle, "")
	}

	article := &domain.Article{
		Title:    title,
		Source:   src.Name,
		Date:     time.Now().Format(dateFormat),
		Summary:  sanitize.Text(p.summarizer.Summarize(ctx, title, lead)),
		Category: p.classifier.Classify(title + " " + lead),
		URL:      link,
	}

	inserted, err := p.news.Insert(ctx, article)
	if err != nil {
		p.log.Warn("Article insert failed", "url", link, "error", err.Error())
		return skip(link, domain.SkipPersistFailed, err.Error())
	}
	if !inserted {
		return skip(link, domain.SkipDuplicateURL, "")
	}

	p.log.Info("Article added",
		"source", src.Name,
		"title", clipForLog(article.Title),
		"category", string(article.Category))

	p.indexArticle(ctx, article)
	p.synthesizeKnowledge(ctx, article)

	return domain.CandidateResult{URL: link, Article: article}
}

func (p *Pipeline) indexArticle(ctx context.Context, article *domain.Article) {
	if err := p.index.IndexArticle(ctx, article); err != nil {
		// Indexing is best-effort; the database row is already committed.
		p.log.Warn("Article indexing failed", "id", article.ID, "error", err.Error())
	}
}

func (p *Pipeline) startRunLog(ctx context.Context) string {
	if p.runLog == nil {
		return ""
	}
	id, err := p.runLog.Start(ctx)
	if err != nil {
		p.log.Warn("Failed to record run start", "error", err.Error())
		return ""
	}
	return id
}

func (p *Pipeline) finishRunLog(ctx context.Context, id string, summary *domain.RunSummary) {
	if p.runLog == nil || id == "" {
		return
	}

	message := ""
	if failed := summary.FailedSources(); len(failed) > 0 {
		message = "failed sources: " + strings.Join(failed, ", ")
	}

	if err := p.runLog.Complete(ctx, id, summary.TotalAdded, message); err != nil {
		p.log.Warn("Failed to record run completion", "error", err.Error())
	}
}

func skip(link string, reason domain.SkipReason, detail string) domain.CandidateResult {
	return domain.CandidateResult{URL: link, Skip: reason, Detail: detail}
}

// sleepCtx waits for the politeness delay, returning early on cancellation.
func sleepCtx(ctx context.Context, d time.Duration) {
	if d <= 0 {
		return
	}
	select {
	case <-ctx.Done():
	case <-time.After(d):
	}
}

const logTitleLimit = 50

func clipForLog(title string) string {
	runes := []rune(title)
	if len(runes) > logTitleLimit {
		return string(runes[:logTitleLimit]) + "..."
	}
	return title
}
