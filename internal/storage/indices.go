package storage

import (
	"context"
	"fmt"
	"net/http"
	"strings"
)

// Index names for the two document types.
const (
	NewsIndex = "secnews-news"
	WikiIndex = "secnews-wiki"
)

// Mappings use the nori analyzer for Korean text. Index creation falls back
// to the standard analyzer when the nori plugin is not installed.
var indexMappings = map[string]string{
	NewsIndex: `{
		"settings": {
			"analysis": {
				"analyzer": {
					"korean": {"type": "custom", "tokenizer": "%s"}
				}
			}
		},
		"mappings": {
			"properties": {
				"title":      {"type": "text", "analyzer": "korean", "boost": 3.0},
				"summary":    {"type": "text", "analyzer": "korean"},
				"source":     {"type": "keyword"},
				"category":   {"type": "keyword"},
				"url":        {"type": "keyword"},
				"date":       {"type": "keyword"},
				"created_at": {"type": "date"}
			}
		}
	}`,
	WikiIndex: `{
		"settings": {
			"analysis": {
				"analyzer": {
					"korean": {"type": "custom", "tokenizer": "%s"}
				}
			}
		},
		"mappings": {
			"properties": {
				"title":      {"type": "text", "analyzer": "korean", "boost": 3.0},
				"preview":    {"type": "text", "analyzer": "korean"},
				"content":    {"type": "text", "analyzer": "korean"},
				"tags":       {"type": "keyword"},
				"category":   {"type": "keyword"},
				"type":       {"type": "keyword"},
				"created_at": {"type": "date"}
			}
		}
	}`,
}

// EnsureIndices creates the news and wiki indices when missing.
func (s *Storage) EnsureIndices(ctx context.Context) error {
	if s.client == nil {
		return nil
	}

	for _, index := range []string{NewsIndex, WikiIndex} {
		exists, err := s.indexExists(ctx, index)
		if err != nil {
			return err
		}
		if exists {
			continue
		}
		if err := s.createIndex(ctx, index); err != nil {
			return err
		}
	}
	return nil
}

func (s *Storage) indexExists(ctx context.Context, index string) (bool, error) {
	res, err := s.client.Indices.Exists([]string{index},
		s.client.Indices.Exists.WithContext(ctx))
	if err != nil {
		return false, fmt.Errorf("failed to check index %s: %w", index, err)
	}
	defer res.Body.Close()

	return res.StatusCode == http.StatusOK, nil
}

func (s *Storage) createIndex(ctx context.Context, index string) error {
	if err := s.createIndexWithTokenizer(ctx, index, "nori_tokenizer"); err != nil {
		s.log.Warn("Index creation with nori failed, retrying with standard tokenizer",
			"index", index, "error", err.Error())
		return s.createIndexWithTokenizer(ctx, index, "standard")
	}
	return nil
}

func (s *Storage) createIndexWithTokenizer(ctx context.Context, index, tokenizer string) error {
	body := fmt.Sprintf(indexMappings[index], tokenizer)

	res, err := s.client.Indices.Create(index,
		s.client.Indices.Create.WithContext(ctx),
		s.client.Indices.Create.WithBody(strings.NewReader(body)))
	if err != nil {
		return fmt.Errorf("failed to create index %s: %w", index, err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return fmt.Errorf("error creating index %s: %s", index, res.String())
	}

	s.log.Info("Created search index", "index", index, "tokenizer", tokenizer)
	return nil
}
