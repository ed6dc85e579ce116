package api

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jonesrussell/secnews/internal/domain"
	"github.com/jonesrussell/secnews/internal/logger"
	"github.com/jonesrussell/secnews/internal/sanitize"
	"github.com/jonesrussell/secnews/internal/storage"
)

// WikiStore is the knowledge entry surface the handler needs.
type WikiStore interface {
	List(ctx context.Context, limit int) ([]*domain.KnowledgeEntry, error)
	FindByID(ctx context.Context, id string) (*domain.KnowledgeEntry, error)
	Insert(ctx context.Context, entry *domain.KnowledgeEntry) (bool, error)
	Delete(ctx context.Context, id string) error
}

// WikiHandler handles knowledge entry HTTP requests.
type WikiHandler struct {
	repo  WikiStore
	index storage.Interface
	log   logger.Interface
}

// NewWikiHandler creates a wiki handler.
func NewWikiHandler(repo WikiStore, index storage.Interface, log logger.Interface) *WikiHandler {
	return &WikiHandler{repo: repo, index: index, log: log}
}

// entryView adds the split tag list to the JSON shape.
type entryView struct {
	*domain.KnowledgeEntry
	Tags []string `json:"tags"`
}

// List handles GET /api/wiki.
func (h *WikiHandler) List(c *gin.Context) {
	limit := limitQuery(c, defaultListLimit)

	entries, err := h.repo.List(c.Request.Context(), limit)
	if err != nil {
		h.log.Error("Failed to list entries", "error", err.Error())
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to retrieve entries"})
		return
	}

	views := make([]entryView, 0, len(entries))
	for _, entry := range entries {
		views = append(views, entryView{KnowledgeEntry: entry, Tags: entry.TagList()})
	}

	c.JSON(http.StatusOK, gin.H{"entries": views, "count": len(views)})
}

// Get handles GET /api/wiki/:id.
func (h *WikiHandler) Get(c *gin.Context) {
	entry, err := h.repo.FindByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.log.Error("Failed to load entry", "id", c.Param("id"), "error", err.Error())
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to retrieve entry"})
		return
	}
	if entry == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "entry not found"})
		return
	}

	c.JSON(http.StatusOK, entryView{KnowledgeEntry: entry, Tags: entry.TagList()})
}

// createEntryRequest is the POST /api/wiki payload.
type createEntryRequest struct {
	Title    string `json:"title" binding:"required"`
	Category string `json:"category"`
	Tags     string `json:"tags"`
	Preview  string `json:"preview"`
	Content  string `json:"content"`
}

// Create handles POST /api/wiki. Entries created here are marked manual so
// automatic regeneration never touches them.
func (h *WikiHandler) Create(c *gin.Context) {
	var req createEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "title is required"})
		return
	}

	title := domain.NormalizeTitle(sanitize.Text(req.Title))
	if !domain.ValidTitle(title) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "title too short"})
		return
	}

	entry := &domain.KnowledgeEntry{
		Title:    title,
		Category: sanitize.Text(req.Category),
		Tags:     sanitize.Text(req.Tags),
		Preview:  sanitize.Text(req.Preview),
		Content:  sanitize.Body(req.Content),
		Type:     domain.ProvenanceManual,
	}

	inserted, err := h.repo.Insert(c.Request.Context(), entry)
	if err != nil {
		h.log.Error("Failed to create entry", "title", title, "error", err.Error())
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create entry"})
		return
	}
	if !inserted {
		c.JSON(http.StatusConflict, gin.H{"error": "an entry with this title already exists"})
		return
	}

	if err := h.index.IndexEntry(c.Request.Context(), entry); err != nil {
		h.log.Warn("Failed to index entry", "id", entry.ID, "error", err.Error())
	}

	c.JSON(http.StatusCreated, entryView{KnowledgeEntry: entry, Tags: entry.TagList()})
}

// Delete handles DELETE /api/wiki/:id.
func (h *WikiHandler) Delete(c *gin.Context) {
	id := c.Param("id")

	entry, err := h.repo.FindByID(c.Request.Context(), id)
	if err != nil {
		h.log.Error("Failed to load entry", "id", id, "error", err.Error())
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to retrieve entry"})
		return
	}
	if entry == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "entry not found"})
		return
	}

	if err := h.repo.Delete(c.Request.Context(), id); err != nil {
		h.log.Error("Failed to delete entry", "id", id, "error", err.Error())
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete entry"})
		return
	}

	if err := h.index.RemoveEntry(c.Request.Context(), id); err != nil {
		h.log.Warn("Failed to remove entry from index", "id", id, "error", err.Error())
	}

	c.JSON(http.StatusOK, gin.H{"deleted": id})
}
