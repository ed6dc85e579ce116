// Package config loads and validates application configuration from a YAML
// file and environment variables.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/jonesrussell/secnews/internal/logger"
)

// Config is the unified application configuration.
type Config struct {
	App           AppConfig           `mapstructure:"app"`
	Log           logger.Config       `mapstructure:"log"`
	Crawl         CrawlConfig         `mapstructure:"crawl"`
	LM            LMConfig            `mapstructure:"lm"`
	Database      DatabaseConfig      `mapstructure:"database"`
	Elasticsearch ElasticsearchConfig `mapstructure:"elasticsearch"`
	Server        ServerConfig        `mapstructure:"server"`
	Scheduler     SchedulerConfig     `mapstructure:"scheduler"`
}

// AppConfig holds application-level settings.
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Environment string `mapstructure:"environment"`
	Debug       bool   `mapstructure:"debug"`
}

// CrawlConfig holds ingestion pipeline settings.
type CrawlConfig struct {
	// UserAgent sent on every outbound page fetch. Several sources block
	// default Go agents.
	UserAgent string `mapstructure:"user_agent"`
	// FetchTimeout bounds listing and article page fetches.
	FetchTimeout time.Duration `mapstructure:"fetch_timeout"`
	// RequestDelay is the politeness delay between outbound fetches.
	RequestDelay time.Duration `mapstructure:"request_delay"`
	// SourceDelay is the pause between sources in a sequential run.
	SourceDelay time.Duration `mapstructure:"source_delay"`
	// Concurrency bounds the optional worker pool across sources.
	// 1 means a fully sequential run.
	Concurrency int `mapstructure:"concurrency"`
	// SourcesFile seeds source definitions when the database has none.
	SourcesFile string `mapstructure:"sources_file"`
}

// LMConfig holds the local language-model endpoint settings.
type LMConfig struct {
	// URL of the OpenAI-compatible chat completions endpoint.
	URL string `mapstructure:"url"`
	// Model name passed through to the endpoint.
	Model string `mapstructure:"model"`
	// SummaryTimeout bounds summarization calls.
	SummaryTimeout time.Duration `mapstructure:"summary_timeout"`
	// WikiTimeout bounds knowledge entry generation calls.
	WikiTimeout time.Duration `mapstructure:"wiki_timeout"`
}

// DatabaseConfig holds relational storage settings.
type DatabaseConfig struct {
	// Driver is "postgres" or "sqlite3".
	Driver   string `mapstructure:"driver"`
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbname"`
	SSLMode  string `mapstructure:"sslmode"`
	// Path is the database file for the sqlite3 driver.
	Path string `mapstructure:"path"`
}

// ElasticsearchConfig holds search index settings.
type ElasticsearchConfig struct {
	Addresses []string `mapstructure:"addresses"`
	Username  string   `mapstructure:"username"`
	Password  string   `mapstructure:"password"`
	// Enabled toggles indexing; the pipeline degrades to no-op when false.
	Enabled bool `mapstructure:"enabled"`
}

// ServerConfig holds HTTP API settings.
type ServerConfig struct {
	Address string `mapstructure:"address"`
}

// SchedulerConfig holds the cron schedule for recurring crawl runs.
type SchedulerConfig struct {
	// CrawlSchedule is a cron expression; empty disables scheduling.
	CrawlSchedule string `mapstructure:"crawl_schedule"`
}

// Default values applied before reading configuration.
const (
	defaultUserAgent    = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"
	defaultFetchTimeout = 10 * time.Second
	defaultRequestDelay = 600 * time.Millisecond
	defaultSourceDelay  = 2 * time.Second
	defaultLMURL        = "http://localhost:12345/v1/chat/completions"
	defaultLMModel      = "local-model"
	defaultSummaryTO    = 30 * time.Second
	defaultWikiTO       = 60 * time.Second
	defaultServerAddr   = ":8000"
)

// Load reads configuration from the given file (or the default search path
// when empty), layering environment variables over file values.
func Load(cfgFile string) (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	v.SetEnvPrefix("SECNEWS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
		// No config file is fine; defaults and env vars apply.
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &cfg, nil
}

// setDefaults registers default values on the viper instance.
func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "secnews")
	v.SetDefault("app.environment", "development")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.encoding", "console")
	v.SetDefault("crawl.user_agent", defaultUserAgent)
	v.SetDefault("crawl.fetch_timeout", defaultFetchTimeout)
	v.SetDefault("crawl.request_delay", defaultRequestDelay)
	v.SetDefault("crawl.source_delay", defaultSourceDelay)
	v.SetDefault("crawl.concurrency", 1)
	v.SetDefault("lm.url", defaultLMURL)
	v.SetDefault("lm.model", defaultLMModel)
	v.SetDefault("lm.summary_timeout", defaultSummaryTO)
	v.SetDefault("lm.wiki_timeout", defaultWikiTO)
	v.SetDefault("database.driver", "sqlite3")
	v.SetDefault("database.path", "secnews.db")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("elasticsearch.addresses", []string{"http://localhost:9200"})
	v.SetDefault("elasticsearch.enabled", false)
	v.SetDefault("server.address", defaultServerAddr)
}

// maxConcurrency caps the crawl worker pool. The politeness model assumes a
// small fixed bound.
const maxConcurrency = 5

// Validate checks the configuration for invalid combinations.
func (c *Config) Validate() error {
	switch c.App.Environment {
	case "development", "staging", "production":
	default:
		return fmt.Errorf("invalid environment: %s", c.App.Environment)
	}

	switch c.Database.Driver {
	case "postgres":
		if c.Database.Host == "" || c.Database.DBName == "" {
			return errors.New("postgres driver requires host and dbname")
		}
	case "sqlite3":
		if c.Database.Path == "" {
			return errors.New("sqlite3 driver requires a database path")
		}
	default:
		return fmt.Errorf("unsupported database driver: %s", c.Database.Driver)
	}

	if c.Crawl.Concurrency < 1 || c.Crawl.Concurrency > maxConcurrency {
		return fmt.Errorf("crawl concurrency must be between 1 and %d", maxConcurrency)
	}

	if c.Crawl.FetchTimeout <= 0 {
		return errors.New("fetch timeout must be positive")
	}

	return nil
}
