// Package pipeline orchestrates ingestion runs: listing extraction,
// per-candidate article processing, enrichment, and knowledge synthesis.
package pipeline

import (
	"context"
	"time"

	"github.com/jonesrussell/secnews/internal/classify"
	"github.com/jonesrussell/secnews/internal/config"
	"github.com/jonesrussell/secnews/internal/domain"
	"github.com/jonesrussell/secnews/internal/logger"
	"github.com/jonesrussell/secnews/internal/sources"
	"github.com/jonesrussell/secnews/internal/storage"
)

// Fetcher retrieves pages as decoded UTF-8 text.
type Fetcher interface {
	Fetch(ctx context.Context, pageURL, pageEncoding string) (string, error)
}

// Summarizer produces article summaries. It never fails; the extractive
// fallback always yields something.
type Summarizer interface {
	Summarize(ctx context.Context, title, content string) string
}

// Synthesizer builds knowledge entries from persisted articles.
type Synthesizer interface {
	BuildEntry(ctx context.Context, article *domain.Article) *domain.KnowledgeEntry
}

// NewsStore is the article persistence surface the pipeline needs.
type NewsStore interface {
	FindByURL(ctx context.Context, url string) (*domain.Article, error)
	Insert(ctx context.Context, article *domain.Article) (bool, error)
}

// WikiStore is the knowledge entry persistence surface the pipeline needs.
type WikiStore interface {
	FindByTitle(ctx context.Context, title string) (*domain.KnowledgeEntry, error)
	Insert(ctx context.Context, entry *domain.KnowledgeEntry) (bool, error)
}

// RunLog records run lifecycle rows.
type RunLog interface {
	Start(ctx context.Context) (string, error)
	Complete(ctx context.Context, id string, count int, message string) error
	Fail(ctx context.Context, id, message string) error
}

// Pipeline runs the full ingestion flow across all active sources.
type Pipeline struct {
	fetcher    Fetcher
	registry   sources.Interface
	classifier *classify.Classifier
	summarizer Summarizer
	synth      Synthesizer
	news       NewsStore
	wiki       WikiStore
	runLog     RunLog
	index      storage.Interface
	log        logger.Interface

	requestDelay time.Duration
	sourceDelay  time.Duration
	concurrency  int
}

// Params collects the pipeline's dependencies.
type Params struct {
	Fetcher    Fetcher
	Registry   sources.Interface
	Classifier *classify.Classifier
	Summarizer Summarizer
	Synth      Synthesizer
	News       NewsStore
	Wiki       WikiStore
	RunLog     RunLog
	Index      storage.Interface
	Logger     logger.Interface
	Crawl      config.CrawlConfig
}

// New creates a pipeline.
func New(p Params) *Pipeline {
	concurrency := p.Crawl.Concurrency
	if concurrency < 1 {
		concurrency = 1
	}

	return &Pipeline{
		fetcher:      p.Fetcher,
		registry:     p.Registry,
		classifier:   p.Classifier,
		summarizer:   p.Summarizer,
		synth:        p.Synth,
		news:         p.News,
		wiki:         p.Wiki,
		runLog:       p.RunLog,
		index:        p.Index,
		log:          p.Logger,
		requestDelay: p.Crawl.RequestDelay,
		sourceDelay:  p.Crawl.SourceDelay,
		concurrency:  concurrency,
	}
}
