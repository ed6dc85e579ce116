// Package api implements the HTTP API over the ingested news and knowledge
// data.
package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jonesrussell/secnews/internal/logger"
)

const (
	defaultListLimit   = 50
	defaultSearchLimit = 20
	maxListLimit       = 200
)

// Handlers bundles the route handlers mounted on the router.
type Handlers struct {
	News   *NewsHandler
	Wiki   *WikiHandler
	Crawl  *CrawlHandler
	Search *SearchHandler
}

// SetupRouter creates and configures the Gin router with all routes.
func SetupRouter(log logger.Interface, h Handlers) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(loggingMiddleware(log))
	router.Use(corsMiddleware())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	apiGroup := router.Group("/api")
	apiGroup.GET("/news", h.News.List)
	apiGroup.GET("/news/:id", h.News.Get)
	apiGroup.POST("/news/:id/summarize", h.News.Summarize)
	apiGroup.GET("/wiki", h.Wiki.List)
	apiGroup.GET("/wiki/:id", h.Wiki.Get)
	apiGroup.POST("/wiki", h.Wiki.Create)
	apiGroup.DELETE("/wiki/:id", h.Wiki.Delete)
	apiGroup.POST("/crawl", h.Crawl.Trigger)
	apiGroup.GET("/crawl/logs", h.Crawl.Logs)
	apiGroup.GET("/search", h.Search.Search)
	apiGroup.GET("/stats", h.Search.Stats)

	return router
}

// loggingMiddleware logs HTTP requests through the application logger.
func loggingMiddleware(log logger.Interface) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		log.Info("HTTP request",
			"method", c.Request.Method,
			"path", path,
			"status", c.Writer.Status(),
			"latency", time.Since(start).String())
	}
}

// corsMiddleware allows browser clients on other origins.
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// limitQuery parses the limit query parameter with bounds.
func limitQuery(c *gin.Context, fallback int) int {
	limit := fallback
	if raw, ok := c.GetQuery("limit"); ok {
		if parsed, err := parsePositiveInt(raw); err == nil {
			limit = parsed
		}
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}
	return limit
}
