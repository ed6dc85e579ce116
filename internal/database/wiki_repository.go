package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/jonesrussell/secnews/internal/domain"
)

// wikiSelectColumns lists columns for SELECT queries on wiki.
const wikiSelectColumns = `id, title, category, tags, preview, content, type, created_at`

// WikiRepository handles database operations for knowledge entries.
type WikiRepository struct {
	db *sqlx.DB
}

// NewWikiRepository creates a new knowledge entry repository.
func NewWikiRepository(db *sqlx.DB) *WikiRepository {
	return &WikiRepository{db: db}
}

// FindByTitle returns the entry with the given trimmed title, or nil.
func (r *WikiRepository) FindByTitle(ctx context.Context, title string) (*domain.KnowledgeEntry, error) {
	query := r.db.Rebind(`SELECT ` + wikiSelectColumns + ` FROM wiki WHERE title = ?`)

	var entry domain.KnowledgeEntry
	if err := r.db.GetContext(ctx, &entry, query, domain.NormalizeTitle(title)); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to select entry by title: %w", err)
	}

	return &entry, nil
}

// FindByID returns the entry with the given ID, or nil.
func (r *WikiRepository) FindByID(ctx context.Context, id string) (*domain.KnowledgeEntry, error) {
	query := r.db.Rebind(`SELECT ` + wikiSelectColumns + ` FROM wiki WHERE id = ?`)

	var entry domain.KnowledgeEntry
	if err := r.db.GetContext(ctx, &entry, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to select entry by id: %w", err)
	}

	return &entry, nil
}

// Insert persists the entry if its title is not already present. The unique
// constraint on title is the authoritative guard against duplicate entries.
func (r *WikiRepository) Insert(ctx context.Context, entry *domain.KnowledgeEntry) (bool, error) {
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}
	entry.Title = domain.NormalizeTitle(entry.Title)

	query := r.db.Rebind(`
		INSERT INTO wiki (id, title, category, tags, preview, content, type, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (title) DO NOTHING
	`)

	result, err := r.db.ExecContext(ctx, query,
		entry.ID, entry.Title, entry.Category, entry.Tags,
		entry.Preview, entry.Content, entry.Type, entry.CreatedAt,
	)
	if err != nil {
		return false, fmt.Errorf("failed to insert entry: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read insert result: %w", err)
	}

	return rows > 0, nil
}

// List returns the most recently created entries.
func (r *WikiRepository) List(ctx context.Context, limit int) ([]*domain.KnowledgeEntry, error) {
	query := r.db.Rebind(`
		SELECT ` + wikiSelectColumns + ` FROM wiki
		ORDER BY created_at DESC LIMIT ?
	`)

	entries := []*domain.KnowledgeEntry{}
	if err := r.db.SelectContext(ctx, &entries, query, limit); err != nil {
		return nil, fmt.Errorf("failed to list entries: %w", err)
	}

	return entries, nil
}

// ListAuto returns every auto-generated entry, oldest first. Manually edited
// entries are excluded so regeneration never overwrites human work.
func (r *WikiRepository) ListAuto(ctx context.Context) ([]*domain.KnowledgeEntry, error) {
	query := r.db.Rebind(`
		SELECT ` + wikiSelectColumns + ` FROM wiki
		WHERE type = ? ORDER BY created_at ASC
	`)

	entries := []*domain.KnowledgeEntry{}
	if err := r.db.SelectContext(ctx, &entries, query, domain.ProvenanceAuto); err != nil {
		return nil, fmt.Errorf("failed to list auto entries: %w", err)
	}

	return entries, nil
}

// UpdateContent replaces the body, tags, and preview of an existing entry.
func (r *WikiRepository) UpdateContent(ctx context.Context, id, content, tags, preview string) error {
	query := r.db.Rebind(`UPDATE wiki SET content = ?, tags = ?, preview = ? WHERE id = ?`)

	result, err := r.db.ExecContext(ctx, query, content, tags, preview, id)
	return execRequireRows(result, err, fmt.Errorf("entry not found: %s", id))
}

// UpdateCategory replaces the category label of an existing entry.
func (r *WikiRepository) UpdateCategory(ctx context.Context, id, category string) error {
	query := r.db.Rebind(`UPDATE wiki SET category = ? WHERE id = ?`)

	result, err := r.db.ExecContext(ctx, query, category, id)
	return execRequireRows(result, err, fmt.Errorf("entry not found: %s", id))
}

// Delete removes an entry by ID.
func (r *WikiRepository) Delete(ctx context.Context, id string) error {
	query := r.db.Rebind(`DELETE FROM wiki WHERE id = ?`)

	result, err := r.db.ExecContext(ctx, query, id)
	return execRequireRows(result, err, fmt.Errorf("entry not found: %s", id))
}

// Search performs a LIKE match over titles and previews. Fallback path when
// the search index is unavailable.
func (r *WikiRepository) Search(ctx context.Context, q string, limit int) ([]*domain.KnowledgeEntry, error) {
	query := r.db.Rebind(`
		SELECT ` + wikiSelectColumns + ` FROM wiki
		WHERE title LIKE ? OR preview LIKE ?
		ORDER BY created_at DESC LIMIT ?
	`)

	pattern := "%" + q + "%"

	entries := []*domain.KnowledgeEntry{}
	if err := r.db.SelectContext(ctx, &entries, query, pattern, pattern, limit); err != nil {
		return nil, fmt.Errorf("failed to search entries: %w", err)
	}

	return entries, nil
}

// Count returns the total number of entries.
func (r *WikiRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM wiki`); err != nil {
		return 0, fmt.Errorf("failed to count entries: %w", err)
	}
	return count, nil
}
