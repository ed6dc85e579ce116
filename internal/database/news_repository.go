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

// newsSelectColumns lists columns for SELECT queries on news.
const newsSelectColumns = `id, title, source, date, summary, category, url, created_at`

// NewsRepository handles database operations for articles.
type NewsRepository struct {
	db *sqlx.DB
}

// NewNewsRepository creates a new article repository.
func NewNewsRepository(db *sqlx.DB) *NewsRepository {
	return &NewsRepository{db: db}
}

// FindByURL returns the article with the given canonical URL, or nil.
func (r *NewsRepository) FindByURL(ctx context.Context, url string) (*domain.Article, error) {
	query := r.db.Rebind(`SELECT ` + newsSelectColumns + ` FROM news WHERE url = ?`)

	var article domain.Article
	if err := r.db.GetContext(ctx, &article, query, url); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to select article by url: %w", err)
	}

	return &article, nil
}

// FindByID returns the article with the given ID, or nil.
func (r *NewsRepository) FindByID(ctx context.Context, id string) (*domain.Article, error) {
	query := r.db.Rebind(`SELECT ` + newsSelectColumns + ` FROM news WHERE id = ?`)

	var article domain.Article
	if err := r.db.GetContext(ctx, &article, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to select article by id: %w", err)
	}

	return &article, nil
}

// Insert persists the article if its URL is not already present. The unique
// constraint is the authoritative guard: a conflicting insert affects zero
// rows and reports inserted=false rather than an error.
func (r *NewsRepository) Insert(ctx context.Context, article *domain.Article) (bool, error) {
	if article.ID == "" {
		article.ID = uuid.NewString()
	}
	if article.CreatedAt.IsZero() {
		article.CreatedAt = time.Now()
	}

	query := r.db.Rebind(`
		INSERT INTO news (id, title, source, date, summary, category, url, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (url) DO NOTHING
	`)

	result, err := r.db.ExecContext(ctx, query,
		article.ID, article.Title, article.Source, article.Date,
		article.Summary, article.Category, article.URL, article.CreatedAt,
	)
	if err != nil {
		return false, fmt.Errorf("failed to insert article: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read insert result: %w", err)
	}

	return rows > 0, nil
}

// UpdateSummary replaces the summary of an existing article.
func (r *NewsRepository) UpdateSummary(ctx context.Context, id, summary string) error {
	query := r.db.Rebind(`UPDATE news SET summary = ? WHERE id = ?`)

	result, err := r.db.ExecContext(ctx, query, summary, id)
	return execRequireRows(result, err, fmt.Errorf("article not found: %s", id))
}

// UpdateCategory replaces the category of an existing article.
func (r *NewsRepository) UpdateCategory(ctx context.Context, id string, category domain.Category) error {
	query := r.db.Rebind(`UPDATE news SET category = ? WHERE id = ?`)

	result, err := r.db.ExecContext(ctx, query, category, id)
	return execRequireRows(result, err, fmt.Errorf("article not found: %s", id))
}

// List returns the most recently created articles.
func (r *NewsRepository) List(ctx context.Context, limit int) ([]*domain.Article, error) {
	query := r.db.Rebind(`
		SELECT ` + newsSelectColumns + ` FROM news
		ORDER BY created_at DESC LIMIT ?
	`)

	articles := []*domain.Article{}
	if err := r.db.SelectContext(ctx, &articles, query, limit); err != nil {
		return nil, fmt.Errorf("failed to list articles: %w", err)
	}

	return articles, nil
}

// ListAll returns every article, oldest first. Used by the reclassify and
// reindex passes.
func (r *NewsRepository) ListAll(ctx context.Context) ([]*domain.Article, error) {
	query := `SELECT ` + newsSelectColumns + ` FROM news ORDER BY created_at ASC`

	articles := []*domain.Article{}
	if err := r.db.SelectContext(ctx, &articles, query); err != nil {
		return nil, fmt.Errorf("failed to list articles: %w", err)
	}

	return articles, nil
}

// Search performs a LIKE match over titles and summaries. This is the
// fallback path when the search index is unavailable.
func (r *NewsRepository) Search(ctx context.Context, q string, limit int) ([]*domain.Article, error) {
	query := r.db.Rebind(`
		SELECT ` + newsSelectColumns + ` FROM news
		WHERE title LIKE ? OR summary LIKE ?
		ORDER BY created_at DESC LIMIT ?
	`)

	pattern := "%" + q + "%"

	articles := []*domain.Article{}
	if err := r.db.SelectContext(ctx, &articles, query, pattern, pattern, limit); err != nil {
		return nil, fmt.Errorf("failed to search articles: %w", err)
	}

	return articles, nil
}

// Count returns the total number of articles.
func (r *NewsRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM news`); err != nil {
		return 0, fmt.Errorf("failed to count articles: %w", err)
	}
	return count, nil
}
