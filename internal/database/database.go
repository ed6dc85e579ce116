// Package database provides relational storage for articles, knowledge
// entries, crawl sources, and run logs.
package database

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"           // PostgreSQL driver
	_ "github.com/mattn/go-sqlite3" // SQLite driver

	"github.com/jonesrussell/secnews/internal/config"
)

const (
	// DefaultMaxOpenConns is the default maximum number of open connections.
	DefaultMaxOpenConns = 25
	// DefaultMaxIdleConns is the default maximum number of idle connections.
	DefaultMaxIdleConns = 5
	// DefaultConnMaxLifetime is the default maximum connection lifetime.
	DefaultConnMaxLifetime = 5 * time.Minute
	// DefaultPingTimeout is the default timeout for ping operations.
	DefaultPingTimeout = 5 * time.Second
)

// Connect opens a database connection for the configured driver.
func Connect(cfg config.DatabaseConfig) (*sqlx.DB, error) {
	var dsn string
	switch cfg.Driver {
	case "postgres":
		dsn = fmt.Sprintf(
			"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
			cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.DBName, cfg.SSLMode,
		)
	case "sqlite3":
		// Serialized writes and foreign keys on; the dedup guard relies
		// on unique constraints being enforced.
		dsn = cfg.Path + "?_busy_timeout=5000&_fk=1"
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", cfg.Driver)
	}

	db, err := sqlx.Connect(cfg.Driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	db.SetMaxOpenConns(DefaultMaxOpenConns)
	db.SetMaxIdleConns(DefaultMaxIdleConns)
	db.SetConnMaxLifetime(DefaultConnMaxLifetime)
	if cfg.Driver == "sqlite3" {
		// SQLite allows one writer at a time.
		db.SetMaxOpenConns(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), DefaultPingTimeout)
	defer cancel()

	if pingErr := db.PingContext(ctx); pingErr != nil {
		return nil, fmt.Errorf("failed to ping database: %w", pingErr)
	}

	return db, nil
}

// schema creates the tables on first use. The unique constraints on
// news.url and wiki.title are the authoritative deduplication guard; the
// repositories' pre-checks are only an optimization.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS news (
		id TEXT PRIMARY KEY,
		title TEXT NOT NULL,
		source TEXT NOT NULL,
		date TEXT NOT NULL,
		summary TEXT NOT NULL DEFAULT '',
		category TEXT NOT NULL DEFAULT 'trend',
		url TEXT NOT NULL UNIQUE,
		created_at TIMESTAMP NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS wiki (
		id TEXT PRIMARY KEY,
		title TEXT NOT NULL UNIQUE,
		category TEXT NOT NULL,
		tags TEXT NOT NULL DEFAULT '',
		preview TEXT NOT NULL DEFAULT '',
		content TEXT NOT NULL DEFAULT '',
		type TEXT NOT NULL DEFAULT 'auto',
		created_at TIMESTAMP NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS crawl_source (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		url TEXT NOT NULL UNIQUE,
		domain TEXT NOT NULL DEFAULT '',
		country TEXT NOT NULL DEFAULT '',
		encoding TEXT NOT NULL DEFAULT '',
		max_items INTEGER NOT NULL DEFAULT 0,
		selector_config TEXT NOT NULL DEFAULT '',
		is_active BOOLEAN NOT NULL DEFAULT TRUE,
		created_at TIMESTAMP NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS crawl_log (
		id TEXT PRIMARY KEY,
		status TEXT NOT NULL,
		count INTEGER NOT NULL DEFAULT 0,
		message TEXT NOT NULL DEFAULT '',
		started_at TIMESTAMP NOT NULL,
		completed_at TIMESTAMP
	)`,
}

// Migrate creates missing tables.
func Migrate(ctx context.Context, db *sqlx.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("create schema: %w", err)
		}
	}
	return nil
}
