package api

import (
	"context"
	"net/http"
	"sync/atomic"

	"github.com/gin-gonic/gin"

	"github.com/jonesrussell/secnews/internal/domain"
	"github.com/jonesrussell/secnews/internal/logger"
)

// Runner executes one ingestion run.
type Runner interface {
	RunAll(ctx context.Context) (*domain.RunSummary, error)
}

// RunLogReader lists recent run records.
type RunLogReader interface {
	Recent(ctx context.Context, limit int) ([]*domain.CrawlLog, error)
}

// CrawlHandler triggers ingestion runs over HTTP.
type CrawlHandler struct {
	runner  Runner
	runLogs RunLogReader
	log     logger.Interface

	// running guards against overlapping runs.
	running atomic.Bool
}

// NewCrawlHandler creates a crawl handler.
func NewCrawlHandler(runner Runner, runLogs RunLogReader, log logger.Interface) *CrawlHandler {
	return &CrawlHandler{runner: runner, runLogs: runLogs, log: log}
}

// Trigger handles POST /api/crawl. The run executes in the background; a
// second trigger while one is active is rejected.
func (h *CrawlHandler) Trigger(c *gin.Context) {
	if !h.running.CompareAndSwap(false, true) {
		c.JSON(http.StatusConflict, gin.H{"error": "a crawl run is already in progress"})
		return
	}

	go func() {
		defer h.running.Store(false)

		// Detached from the request: the run outlives the HTTP response.
		summary, err := h.runner.RunAll(context.Background())
		if err != nil {
			h.log.Error("Triggered run failed", "error", err.Error())
			return
		}
		h.log.Info("Triggered run finished", "added", summary.TotalAdded)
	}()

	c.JSON(http.StatusAccepted, gin.H{"status": "started"})
}

// Logs handles GET /api/crawl/logs.
func (h *CrawlHandler) Logs(c *gin.Context) {
	limit := limitQuery(c, defaultListLimit)

	logs, err := h.runLogs.Recent(c.Request.Context(), limit)
	if err != nil {
		h.log.Error("Failed to list crawl logs", "error", err.Error())
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to retrieve crawl logs"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"logs": logs, "count": len(logs)})
}
