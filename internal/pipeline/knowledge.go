package pipeline

import (
	"context"

	"github.com/jonesrussell/secnews/internal/domain"
	"github.com/jonesrussell/secnews/internal/sanitize"
)

// synthesizeKnowledge creates the knowledge entry for a newly persisted
// article when no entry with the same trimmed title exists yet. Knowledge
// failures never affect the article outcome.
func (p *Pipeline) synthesizeKnowledge(ctx context.Context, article *domain.Article) {
	title := domain.NormalizeTitle(article.Title)

	existing, err := p.wiki.FindByTitle(ctx, title)
	if err != nil {
		p.log.Warn("Knowledge lookup failed", "title", title, "error", err.Error())
		return
	}
	if existing != nil {
		return
	}

	entry := p.synth.BuildEntry(ctx, article)
	entry.Content = sanitize.Body(entry.Content)
	entry.Preview = sanitize.Text(entry.Preview)

	inserted, err := p.wiki.Insert(ctx, entry)
	if err != nil {
		p.log.Warn("Knowledge insert failed", "title", title, "error", err.Error())
		return
	}
	if !inserted {
		// Lost the race against a concurrent insert with the same title.
		return
	}

	p.log.Info("Knowledge entry added", "title", clipForLog(entry.Title))

	if indexErr := p.index.IndexEntry(ctx, entry); indexErr != nil {
		p.log.Warn("Knowledge indexing failed", "id", entry.ID, "error", indexErr.Error())
	}
}
