// Package storage provides the Elasticsearch search index for articles and
// knowledge entries. Indexing is best-effort: the relational database is the
// source of truth and the pipeline keeps running when the index is down.
package storage

import (
	"errors"
	"fmt"

	es "github.com/elastic/go-elasticsearch/v8"

	"github.com/jonesrussell/secnews/internal/config"
	"github.com/jonesrussell/secnews/internal/logger"
)

// NewClient creates and pings an Elasticsearch client.
func NewClient(cfg config.ElasticsearchConfig, log logger.Interface) (*es.Client, error) {
	if len(cfg.Addresses) == 0 {
		return nil, errors.New("elasticsearch addresses are required")
	}

	log.Debug("Connecting to Elasticsearch", "addresses", cfg.Addresses)

	clientConfig := es.Config{
		Addresses: cfg.Addresses,
	}
	if cfg.Username != "" && cfg.Password != "" {
		clientConfig.Username = cfg.Username
		clientConfig.Password = cfg.Password
	}

	client, err := es.NewClient(clientConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create Elasticsearch client: %w", err)
	}

	res, err := client.Ping()
	if err != nil {
		return nil, fmt.Errorf("failed to ping Elasticsearch: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, fmt.Errorf("error pinging Elasticsearch: %s", res.String())
	}

	return client, nil
}
