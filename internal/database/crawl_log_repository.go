package database

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/jonesrussell/secnews/internal/domain"
)

// CrawlLogRepository handles database operations for ingestion run records.
type CrawlLogRepository struct {
	db *sqlx.DB
}

// NewCrawlLogRepository creates a new crawl log repository.
func NewCrawlLogRepository(db *sqlx.DB) *CrawlLogRepository {
	return &CrawlLogRepository{db: db}
}

// Start records the beginning of a run and returns its log ID.
func (r *CrawlLogRepository) Start(ctx context.Context) (string, error) {
	id := uuid.NewString()
	query := r.db.Rebind(`
		INSERT INTO crawl_log (id, status, count, message, started_at)
		VALUES (?, ?, 0, '', ?)
	`)

	if _, err := r.db.ExecContext(ctx, query, id, domain.CrawlStatusRunning, time.Now()); err != nil {
		return "", fmt.Errorf("failed to record run start: %w", err)
	}

	return id, nil
}

// Complete marks a run as finished with its article count.
func (r *CrawlLogRepository) Complete(ctx context.Context, id string, count int, message string) error {
	return r.finish(ctx, id, domain.CrawlStatusCompleted, count, message)
}

// Fail marks a run as failed.
func (r *CrawlLogRepository) Fail(ctx context.Context, id, message string) error {
	return r.finish(ctx, id, domain.CrawlStatusFailed, 0, message)
}

func (r *CrawlLogRepository) finish(ctx context.Context, id, status string, count int, message string) error {
	query := r.db.Rebind(`
		UPDATE crawl_log SET status = ?, count = ?, message = ?, completed_at = ?
		WHERE id = ?
	`)

	result, err := r.db.ExecContext(ctx, query, status, count, message, time.Now(), id)
	return execRequireRows(result, err, fmt.Errorf("crawl log not found: %s", id))
}

// Recent returns the latest run records, newest first.
func (r *CrawlLogRepository) Recent(ctx context.Context, limit int) ([]*domain.CrawlLog, error) {
	query := r.db.Rebind(`
		SELECT id, status, count, message, started_at, completed_at
		FROM crawl_log ORDER BY started_at DESC LIMIT ?
	`)

	logs := []*domain.CrawlLog{}
	if err := r.db.SelectContext(ctx, &logs, query, limit); err != nil {
		return nil, fmt.Errorf("failed to list crawl logs: %w", err)
	}

	return logs, nil
}
