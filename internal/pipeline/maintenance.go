package pipeline

import (
	"context"
	"fmt"
	"strings"

	"github.com/jonesrussell/secnews/internal/classify"
	"github.com/jonesrussell/secnews/internal/domain"
	"github.com/jonesrussell/secnews/internal/logger"
	"github.com/jonesrussell/secnews/internal/sanitize"
	"github.com/jonesrussell/secnews/internal/storage"
	"github.com/jonesrussell/secnews/internal/wiki"
)

// NewsMaintenanceStore is the article surface for maintenance passes.
type NewsMaintenanceStore interface {
	ListAll(ctx context.Context) ([]*domain.Article, error)
	UpdateCategory(ctx context.Context, id string, category domain.Category) error
}

// WikiMaintenanceStore is the entry surface for maintenance passes.
type WikiMaintenanceStore interface {
	ListAuto(ctx context.Context) ([]*domain.KnowledgeEntry, error)
	FindByTitle(ctx context.Context, title string) (*domain.KnowledgeEntry, error)
	UpdateContent(ctx context.Context, id, content, tags, preview string) error
	UpdateCategory(ctx context.Context, id, category string) error
}

// Maintainer runs batch passes over already ingested data.
type Maintainer struct {
	classifier *classify.Classifier
	keywords   *classify.KeywordExtractor
	synth      *wiki.Synthesizer
	news       NewsMaintenanceStore
	wiki       WikiMaintenanceStore
	index      storage.Interface
	log        logger.Interface
}

// NewMaintainer creates a maintainer.
func NewMaintainer(
	classifier *classify.Classifier,
	keywords *classify.KeywordExtractor,
	synth *wiki.Synthesizer,
	news NewsMaintenanceStore,
	wikiStore WikiMaintenanceStore,
	index storage.Interface,
	log logger.Interface,
) *Maintainer {
	return &Maintainer{
		classifier: classifier,
		keywords:   keywords,
		synth:      synth,
		news:       news,
		wiki:       wikiStore,
		index:      index,
		log:        log,
	}
}

// Reclassify reruns the classifier over every article and rewrites rows
// whose category changed. Matching knowledge entries get the new label.
// Returns the number of updated articles.
func (m *Maintainer) Reclassify(ctx context.Context) (int, error) {
	articles, err := m.news.ListAll(ctx)
	if err != nil {
		return 0, err
	}

	updated := 0
	for _, article := range articles {
		if ctx.Err() != nil {
			return updated, ctx.Err()
		}

		category := m.classifier.Classify(article.Title + " " + article.Summary)
		if category == article.Category {
			continue
		}

		if updateErr := m.news.UpdateCategory(ctx, article.ID, category); updateErr != nil {
			return updated, fmt.Errorf("failed to reclassify article %s: %w", article.ID, updateErr)
		}
		article.Category = category
		updated++

		m.log.Info("Article reclassified",
			"title", clipForLog(article.Title), "category", string(category))

		if indexErr := m.index.IndexArticle(ctx, article); indexErr != nil {
			m.log.Warn("Reindex after reclassify failed", "id", article.ID, "error", indexErr.Error())
		}

		m.relabelEntry(ctx, article)
	}

	return updated, nil
}

// relabelEntry propagates a changed category to the article's entry.
func (m *Maintainer) relabelEntry(ctx context.Context, article *domain.Article) {
	entry, err := m.wiki.FindByTitle(ctx, article.Title)
	if err != nil || entry == nil {
		return
	}
	// Manual entries are never touched by maintenance.
	if entry.Type != domain.ProvenanceAuto {
		return
	}

	label := article.Category.Label()
	if entry.Category == label {
		return
	}
	if updateErr := m.wiki.UpdateCategory(ctx, entry.ID, label); updateErr != nil {
		m.log.Warn("Entry relabel failed", "id", entry.ID, "error", updateErr.Error())
	}
}

// RegenerateWiki rebuilds the body, tags, and preview of every
// auto-generated entry. Manual entries are skipped entirely. Returns the
// number of regenerated entries.
func (m *Maintainer) RegenerateWiki(ctx context.Context) (int, error) {
	entries, err := m.wiki.ListAuto(ctx)
	if err != nil {
		return 0, err
	}

	regenerated := 0
	for _, entry := range entries {
		if ctx.Err() != nil {
			return regenerated, ctx.Err()
		}

		body := m.synth.GenerateBody(ctx, entry.Title, entry.Category)
		if body == "" {
			// Keep the existing body rather than overwrite it with the
			// fallback template.
			continue
		}
		body = sanitize.Body(body)

		tags := strings.Join(m.keywords.Extract(entry.Preview+" "+body, classify.WikiTagCount), ",")

		if updateErr := m.wiki.UpdateContent(ctx, entry.ID, body, tags, entry.Preview); updateErr != nil {
			return regenerated, fmt.Errorf("failed to regenerate entry %s: %w", entry.ID, updateErr)
		}
		entry.Content = body
		entry.Tags = tags
		regenerated++

		m.log.Info("Knowledge entry regenerated", "title", clipForLog(entry.Title))

		if indexErr := m.index.IndexEntry(ctx, entry); indexErr != nil {
			m.log.Warn("Reindex after regenerate failed", "id", entry.ID, "error", indexErr.Error())
		}
	}

	return regenerated, nil
}
