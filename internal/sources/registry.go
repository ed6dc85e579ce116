// Package sources manages the set of crawl source definitions. Definitions
// live in the database; the built-in defaults are seeded once and operator
// edits take precedence afterwards.
package sources

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/jonesrussell/secnews/internal/domain"
	"github.com/jonesrussell/secnews/internal/logger"
)

// Store is the persistence surface the registry needs.
type Store interface {
	ListActive(ctx context.Context) ([]*domain.SourceDefinition, error)
	ListAll(ctx context.Context) ([]*domain.SourceDefinition, error)
	Seed(ctx context.Context, src *domain.SourceDefinition) (bool, error)
}

// Interface is the read-only view the pipeline consumes.
type Interface interface {
	Active(ctx context.Context) ([]*domain.SourceDefinition, error)
}

// Registry caches active source definitions with lazy loading.
type Registry struct {
	store Store
	log   logger.Interface

	mu     sync.RWMutex
	cached []*domain.SourceDefinition
}

var _ Interface = (*Registry)(nil)

// NewRegistry creates a source registry backed by the given store.
func NewRegistry(store Store, log logger.Interface) *Registry {
	return &Registry{store: store, log: log}
}

// SeedAll inserts the given definitions, skipping any already present.
func (r *Registry) SeedAll(ctx context.Context, defs []*domain.SourceDefinition) (int, error) {
	added := 0
	for _, src := range defs {
		inserted, err := r.store.Seed(ctx, src)
		if err != nil {
			return added, fmt.Errorf("failed to seed source %s: %w", src.Name, err)
		}
		if inserted {
			added++
		}
	}

	if added > 0 {
		r.log.Info("Seeded crawl sources", "added", added)
	}
	return added, nil
}

// Active returns the active sources in registry order. The first call loads
// from the store; Refresh invalidates the cache.
func (r *Registry) Active(ctx context.Context) ([]*domain.SourceDefinition, error) {
	r.mu.RLock()
	cached := r.cached
	r.mu.RUnlock()

	if cached != nil {
		return copyDefinitions(cached), nil
	}

	return r.loadActive(ctx)
}

func (r *Registry) loadActive(ctx context.Context) ([]*domain.SourceDefinition, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	// Another caller may have loaded while we waited for the lock.
	if r.cached != nil {
		return copyDefinitions(r.cached), nil
	}

	loaded, err := r.store.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load sources: %w", err)
	}
	if len(loaded) == 0 {
		return nil, errors.New("no active crawl sources configured")
	}

	r.cached = loaded
	r.log.Info("Crawl sources loaded", "count", len(loaded))
	return copyDefinitions(loaded), nil
}

// All returns every source, active or not. Not cached; used by the CLI.
func (r *Registry) All(ctx context.Context) ([]*domain.SourceDefinition, error) {
	return r.store.ListAll(ctx)
}

// Refresh drops the cache so the next Active call reloads from the store.
func (r *Registry) Refresh() {
	r.mu.Lock()
	r.cached = nil
	r.mu.Unlock()
}

func copyDefinitions(defs []*domain.SourceDefinition) []*domain.SourceDefinition {
	out := make([]*domain.SourceDefinition, len(defs))
	copy(out, defs)
	return out
}
