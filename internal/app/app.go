// Package app wires configuration, storage, and pipeline components into a
// runnable application. Commands build an App and pick the pieces they need.
package app

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/jonesrussell/secnews/internal/api"
	"github.com/jonesrussell/secnews/internal/classify"
	"github.com/jonesrussell/secnews/internal/config"
	"github.com/jonesrussell/secnews/internal/database"
	"github.com/jonesrussell/secnews/internal/fetcher"
	"github.com/jonesrussell/secnews/internal/lmclient"
	"github.com/jonesrussell/secnews/internal/logger"
	"github.com/jonesrussell/secnews/internal/pipeline"
	"github.com/jonesrussell/secnews/internal/sources"
	"github.com/jonesrussell/secnews/internal/storage"
	"github.com/jonesrussell/secnews/internal/summarize"
	"github.com/jonesrussell/secnews/internal/wiki"
)

// App holds the application's constructed components.
type App struct {
	Config *config.Config
	Log    logger.Interface
	DB     *sqlx.DB

	News     *database.NewsRepository
	Wiki     *database.WikiRepository
	RunLogs  *database.CrawlLogRepository
	Registry *sources.Registry

	Index      storage.Interface
	Summarizer *summarize.Summarizer
	Synth      *wiki.Synthesizer
	Pipeline   *pipeline.Pipeline
	Maintainer *pipeline.Maintainer
}

// New loads configuration and constructs the full component graph. The
// database schema is migrated and default sources are seeded.
func New(ctx context.Context, cfgFile string) (*App, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	log, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	db, err := database.Connect(cfg.Database)
	if err != nil {
		return nil, err
	}
	if err := database.Migrate(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	newsRepo := database.NewNewsRepository(db)
	wikiRepo := database.NewWikiRepository(db)
	sourceRepo := database.NewSourceRepository(db)
	runLogRepo := database.NewCrawlLogRepository(db)

	registry := sources.NewRegistry(sourceRepo, log)
	seedDefs := sources.Defaults()
	if cfg.Crawl.SourcesFile != "" {
		seedDefs, err = sources.LoadFile(cfg.Crawl.SourcesFile)
		if err != nil {
			db.Close()
			return nil, err
		}
	}
	if _, err := registry.SeedAll(ctx, seedDefs); err != nil {
		db.Close()
		return nil, err
	}

	index, err := buildIndex(ctx, cfg.Elasticsearch, log)
	if err != nil {
		db.Close()
		return nil, err
	}

	lm := lmclient.New(cfg.LM.URL, cfg.LM.Model)
	classifier := classify.NewClassifier(classify.DefaultTaxonomy())
	keywords := classify.NewKeywordExtractor(classify.DefaultKeywordDictionary())
	summarizer := summarize.New(lm, log, cfg.LM.SummaryTimeout)
	synth := wiki.New(lm, keywords, log, cfg.LM.WikiTimeout)

	pipe := pipeline.New(pipeline.Params{
		Fetcher:    fetcher.New(cfg.Crawl.UserAgent, cfg.Crawl.FetchTimeout),
		Registry:   registry,
		Classifier: classifier,
		Summarizer: summarizer,
		Synth:      synth,
		News:       newsRepo,
		Wiki:       wikiRepo,
		RunLog:     runLogRepo,
		Index:      index,
		Logger:     log,
		Crawl:      cfg.Crawl,
	})

	maintainer := pipeline.NewMaintainer(classifier, keywords, synth, newsRepo, wikiRepo, index, log)

	return &App{
		Config:     cfg,
		Log:        log,
		DB:         db,
		News:       newsRepo,
		Wiki:       wikiRepo,
		RunLogs:    runLogRepo,
		Registry:   registry,
		Index:      index,
		Summarizer: summarizer,
		Synth:      synth,
		Pipeline:   pipe,
		Maintainer: maintainer,
	}, nil
}

// buildIndex constructs the search index component. A disabled or
// unreachable index degrades to no-op indexing; the database remains the
// source of truth.
func buildIndex(ctx context.Context, cfg config.ElasticsearchConfig, log logger.Interface) (storage.Interface, error) {
	if !cfg.Enabled {
		return storage.New(nil, log), nil
	}

	client, err := storage.NewClient(cfg, log)
	if err != nil {
		log.Warn("Search index unavailable, indexing disabled", "error", err.Error())
		return storage.New(nil, log), nil
	}

	index := storage.New(client, log)
	if err := index.EnsureIndices(ctx); err != nil {
		return nil, err
	}
	return index, nil
}

// Router builds the HTTP router over the app's components.
func (a *App) Router() *api.Server {
	handlers := api.Handlers{
		News:   api.NewNewsHandler(a.News, a.Summarizer, a.Index, a.Log),
		Wiki:   api.NewWikiHandler(a.Wiki, a.Index, a.Log),
		Crawl:  api.NewCrawlHandler(a.Pipeline, a.RunLogs, a.Log),
		Search: api.NewSearchHandler(a.Index, a.News, a.Wiki, a.Log),
	}

	router := api.SetupRouter(a.Log, handlers)
	return api.NewServer(a.Config.Server.Address, router, a.Log)
}

// Close releases held resources.
func (a *App) Close() {
	if a.DB != nil {
		a.DB.Close()
	}
}
