package domain

import (
	"database/sql"
	"time"
)

// Crawl run statuses recorded in the run log.
const (
	CrawlStatusRunning   = "running"
	CrawlStatusCompleted = "completed"
	CrawlStatusFailed    = "failed"
)

// CrawlLog records one ingestion run.
type CrawlLog struct {
	ID     string `json:"id" db:"id"`
	Status string `json:"status" db:"status"`
	// Count is the number of new articles the run added
	Count int `json:"count" db:"count"`
	// Message carries failure detail or a completion note
	Message     string       `json:"message" db:"message"`
	StartedAt   time.Time    `json:"started_at" db:"started_at"`
	CompletedAt sql.NullTime `json:"completed_at" db:"completed_at"`
}
