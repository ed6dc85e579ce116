package database

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/mitchellh/mapstructure"

	"github.com/jonesrussell/secnews/internal/domain"
)

// sourceSelectColumns lists columns for SELECT queries on crawl_source.
const sourceSelectColumns = `id, name, url, domain, country, encoding, max_items, selector_config, is_active, created_at`

// sourceRow is the raw database shape; selector_config is stored as a JSON
// text column and decoded into the domain type on read.
type sourceRow struct {
	ID             string    `db:"id"`
	Name           string    `db:"name"`
	URL            string    `db:"url"`
	Domain         string    `db:"domain"`
	Country        string    `db:"country"`
	Encoding       string    `db:"encoding"`
	MaxItems       int       `db:"max_items"`
	SelectorConfig string    `db:"selector_config"`
	Active         bool      `db:"is_active"`
	CreatedAt      time.Time `db:"created_at"`
}

func (row *sourceRow) toDomain() (*domain.SourceDefinition, error) {
	src := &domain.SourceDefinition{
		ID:        row.ID,
		Name:      row.Name,
		URL:       row.URL,
		Domain:    row.Domain,
		Country:   row.Country,
		Encoding:  row.Encoding,
		MaxItems:  row.MaxItems,
		Active:    row.Active,
		CreatedAt: row.CreatedAt,
	}

	if row.SelectorConfig != "" {
		var raw map[string]any
		if err := json.Unmarshal([]byte(row.SelectorConfig), &raw); err != nil {
			return nil, fmt.Errorf("failed to parse selector config for %s: %w", row.Name, err)
		}
		if err := mapstructure.Decode(raw, &src.SelectorConfig); err != nil {
			return nil, fmt.Errorf("failed to decode selector config for %s: %w", row.Name, err)
		}
	}

	return src, nil
}

// SourceRepository handles database operations for crawl sources.
type SourceRepository struct {
	db *sqlx.DB
}

// NewSourceRepository creates a new crawl source repository.
func NewSourceRepository(db *sqlx.DB) *SourceRepository {
	return &SourceRepository{db: db}
}

// ListActive returns active sources in creation order.
func (r *SourceRepository) ListActive(ctx context.Context) ([]*domain.SourceDefinition, error) {
	query := `SELECT ` + sourceSelectColumns + ` FROM crawl_source WHERE is_active = TRUE ORDER BY created_at ASC`

	return r.selectSources(ctx, query)
}

// ListAll returns every source in creation order.
func (r *SourceRepository) ListAll(ctx context.Context) ([]*domain.SourceDefinition, error) {
	query := `SELECT ` + sourceSelectColumns + ` FROM crawl_source ORDER BY created_at ASC`

	return r.selectSources(ctx, query)
}

func (r *SourceRepository) selectSources(ctx context.Context, query string, args ...any) ([]*domain.SourceDefinition, error) {
	rows := []sourceRow{}
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list sources: %w", err)
	}

	sources := make([]*domain.SourceDefinition, 0, len(rows))
	for i := range rows {
		src, err := rows[i].toDomain()
		if err != nil {
			return nil, err
		}
		sources = append(sources, src)
	}
	return sources, nil
}

// Seed inserts the source if its URL is not already present. Existing rows
// are left untouched so operator edits survive restarts.
func (r *SourceRepository) Seed(ctx context.Context, src *domain.SourceDefinition) (bool, error) {
	if src.ID == "" {
		src.ID = uuid.NewString()
	}
	if src.CreatedAt.IsZero() {
		src.CreatedAt = time.Now()
	}

	selectors := ""
	if !src.SelectorConfig.Empty() {
		encoded, err := json.Marshal(src.SelectorConfig)
		if err != nil {
			return false, fmt.Errorf("failed to encode selector config for %s: %w", src.Name, err)
		}
		selectors = string(encoded)
	}

	query := r.db.Rebind(`
		INSERT INTO crawl_source (id, name, url, domain, country, encoding, max_items, selector_config, is_active, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (url) DO NOTHING
	`)

	result, err := r.db.ExecContext(ctx, query,
		src.ID, src.Name, src.URL, src.Domain, src.Country,
		src.Encoding, src.MaxItems, selectors, src.Active, src.CreatedAt,
	)
	if err != nil {
		return false, fmt.Errorf("failed to seed source: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read seed result: %w", err)
	}

	return rows > 0, nil
}

// SetActive toggles whether a source participates in crawl runs.
func (r *SourceRepository) SetActive(ctx context.Context, id string, active bool) error {
	query := r.db.Rebind(`UPDATE crawl_source SET is_active = ? WHERE id = ?`)

	result, err := r.db.ExecContext(ctx, query, active, id)
	return execRequireRows(result, err, fmt.Errorf("source not found: %s", id))
}
