package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/jonesrussell/secnews/internal/domain"
	"github.com/jonesrussell/secnews/internal/logger"
	"github.com/jonesrussell/secnews/internal/storage"
)

// NewsSearcher is the database fallback search over articles.
type NewsSearcher interface {
	Search(ctx context.Context, q string, limit int) ([]*domain.Article, error)
	Count(ctx context.Context) (int, error)
}

// WikiSearcher is the database fallback search over entries.
type WikiSearcher interface {
	Search(ctx context.Context, q string, limit int) ([]*domain.KnowledgeEntry, error)
	Count(ctx context.Context) (int, error)
}

// SearchHandler answers combined search and stats requests. It prefers the
// search index and falls back to database LIKE matching when the index is
// disabled or erroring.
type SearchHandler struct {
	index storage.Interface
	news  NewsSearcher
	wiki  WikiSearcher
	log   logger.Interface
}

// NewSearchHandler creates a search handler.
func NewSearchHandler(index storage.Interface, news NewsSearcher, wiki WikiSearcher, log logger.Interface) *SearchHandler {
	return &SearchHandler{index: index, news: news, wiki: wiki, log: log}
}

// Search handles GET /api/search.
func (h *SearchHandler) Search(c *gin.Context) {
	q := strings.TrimSpace(c.Query("q"))
	if q == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "query parameter q is required"})
		return
	}
	limit := limitQuery(c, defaultSearchLimit)

	ctx := c.Request.Context()
	articles, entries, err := h.search(ctx, q, limit)
	if err != nil {
		h.log.Error("Search failed", "query", q, "error", err.Error())
		c.JSON(http.StatusInternalServerError, gin.H{"error": "search failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"query":    q,
		"articles": articles,
		"entries":  entries,
	})
}

func (h *SearchHandler) search(ctx context.Context, q string, limit int) ([]*domain.Article, []*domain.KnowledgeEntry, error) {
	if h.index.Enabled() {
		articles, err := h.index.SearchNews(ctx, q, limit)
		if err == nil {
			entries, wikiErr := h.index.SearchWiki(ctx, q, limit)
			if wikiErr == nil {
				return articles, entries, nil
			}
			err = wikiErr
		}
		h.log.Warn("Index search failed, falling back to database", "error", err.Error())
	}

	articles, err := h.news.Search(ctx, q, limit)
	if err != nil {
		return nil, nil, err
	}
	entries, err := h.wiki.Search(ctx, q, limit)
	if err != nil {
		return nil, nil, err
	}
	return articles, entries, nil
}

// Stats handles GET /api/stats.
func (h *SearchHandler) Stats(c *gin.Context) {
	ctx := c.Request.Context()

	newsCount, err := h.news.Count(ctx)
	if err != nil {
		h.log.Error("Failed to count articles", "error", err.Error())
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to compute stats"})
		return
	}
	wikiCount, err := h.wiki.Count(ctx)
	if err != nil {
		h.log.Error("Failed to count entries", "error", err.Error())
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to compute stats"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"articles":      newsCount,
		"entries":       wikiCount,
		"index_enabled": h.index.Enabled(),
	})
}
