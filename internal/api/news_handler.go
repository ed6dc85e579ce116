package api

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jonesrussell/secnews/internal/domain"
	"github.com/jonesrussell/secnews/internal/logger"
	"github.com/jonesrussell/secnews/internal/storage"
)

// NewsReader is the article persistence surface the handler needs.
type NewsReader interface {
	List(ctx context.Context, limit int) ([]*domain.Article, error)
	FindByID(ctx context.Context, id string) (*domain.Article, error)
	UpdateSummary(ctx context.Context, id, summary string) error
}

// Resummarizer regenerates an article summary on demand.
type Resummarizer interface {
	Summarize(ctx context.Context, title, content string) string
}

// NewsHandler handles article HTTP requests.
type NewsHandler struct {
	repo       NewsReader
	summarizer Resummarizer
	index      storage.Interface
	log        logger.Interface
}

// NewNewsHandler creates a news handler.
func NewNewsHandler(repo NewsReader, summarizer Resummarizer, index storage.Interface, log logger.Interface) *NewsHandler {
	return &NewsHandler{repo: repo, summarizer: summarizer, index: index, log: log}
}

// List handles GET /api/news.
func (h *NewsHandler) List(c *gin.Context) {
	limit := limitQuery(c, defaultListLimit)

	articles, err := h.repo.List(c.Request.Context(), limit)
	if err != nil {
		h.log.Error("Failed to list articles", "error", err.Error())
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to retrieve articles"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"articles": articles, "count": len(articles)})
}

// Get handles GET /api/news/:id.
func (h *NewsHandler) Get(c *gin.Context) {
	article, ok := h.load(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, article)
}

// Summarize handles POST /api/news/:id/summarize. The summary is rebuilt
// from the stored article text, persisted, and reindexed.
func (h *NewsHandler) Summarize(c *gin.Context) {
	article, ok := h.load(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	summary := h.summarizer.Summarize(ctx, article.Title, article.Summary)

	if err := h.repo.UpdateSummary(ctx, article.ID, summary); err != nil {
		h.log.Error("Failed to update summary", "id", article.ID, "error", err.Error())
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update summary"})
		return
	}
	article.Summary = summary

	if err := h.index.IndexArticle(ctx, article); err != nil {
		h.log.Warn("Reindex after summarize failed", "id", article.ID, "error", err.Error())
	}

	c.JSON(http.StatusOK, article)
}

func (h *NewsHandler) load(c *gin.Context) (*domain.Article, bool) {
	article, err := h.repo.FindByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.log.Error("Failed to load article", "id", c.Param("id"), "error", err.Error())
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to retrieve article"})
		return nil, false
	}
	if article == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "article not found"})
		return nil, false
	}
	return article, true
}
