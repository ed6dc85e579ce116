package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	es "github.com/elastic/go-elasticsearch/v8"

	"github.com/jonesrussell/secnews/internal/domain"
	"github.com/jonesrussell/secnews/internal/logger"
)

// Default operation timeouts.
const (
	DefaultIndexTimeout  = 10 * time.Second
	DefaultSearchTimeout = 10 * time.Second
)

// Interface is the indexing surface the pipeline and API consume.
type Interface interface {
	IndexArticle(ctx context.Context, article *domain.Article) error
	IndexEntry(ctx context.Context, entry *domain.KnowledgeEntry) error
	RemoveEntry(ctx context.Context, id string) error
	SearchNews(ctx context.Context, q string, limit int) ([]*domain.Article, error)
	SearchWiki(ctx context.Context, q string, limit int) ([]*domain.KnowledgeEntry, error)
	Enabled() bool
}

// Storage indexes documents into Elasticsearch.
type Storage struct {
	client *es.Client
	log    logger.Interface
}

var _ Interface = (*Storage)(nil)

// New creates a Storage over an established client. A nil client yields a
// disabled storage whose operations are no-ops.
func New(client *es.Client, log logger.Interface) *Storage {
	return &Storage{client: client, log: log}
}

// Enabled reports whether a search backend is configured.
func (s *Storage) Enabled() bool {
	return s.client != nil
}

// IndexArticle indexes one article document.
func (s *Storage) IndexArticle(ctx context.Context, article *domain.Article) error {
	return s.indexDocument(ctx, NewsIndex, article.ID, article)
}

// IndexEntry indexes one knowledge entry document.
func (s *Storage) IndexEntry(ctx context.Context, entry *domain.KnowledgeEntry) error {
	return s.indexDocument(ctx, WikiIndex, entry.ID, entry)
}

func (s *Storage) indexDocument(ctx context.Context, index, id string, document any) error {
	if s.client == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, DefaultIndexTimeout)
	defer cancel()

	body, err := json.Marshal(document)
	if err != nil {
		return fmt.Errorf("failed to marshal document for indexing: %w", err)
	}

	res, err := s.client.Index(
		index,
		bytes.NewReader(body),
		s.client.Index.WithContext(ctx),
		s.client.Index.WithDocumentID(id),
	)
	if err != nil {
		return fmt.Errorf("failed to index document: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return fmt.Errorf("elasticsearch error: %s", res.String())
	}

	s.log.Debug("Document indexed", "index", index, "docID", id)
	return nil
}

// RemoveEntry deletes a knowledge entry document. Missing documents are not
// an error.
func (s *Storage) RemoveEntry(ctx context.Context, id string) error {
	if s.client == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, DefaultIndexTimeout)
	defer cancel()

	res, err := s.client.Delete(
		WikiIndex,
		id,
		s.client.Delete.WithContext(ctx),
	)
	if err != nil {
		return fmt.Errorf("failed to delete document: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() && res.StatusCode != 404 {
		return fmt.Errorf("elasticsearch error: %s", res.String())
	}

	return nil
}

// SearchNews runs a relevance search over article titles and summaries.
func (s *Storage) SearchNews(ctx context.Context, q string, limit int) ([]*domain.Article, error) {
	var articles []*domain.Article
	err := s.search(ctx, NewsIndex, q, []string{"title^3", "summary"}, limit, func(source json.RawMessage) error {
		var article domain.Article
		if err := json.Unmarshal(source, &article); err != nil {
			return err
		}
		articles = append(articles, &article)
		return nil
	})
	return articles, err
}

// SearchWiki runs a relevance search over entry titles, previews, and bodies.
func (s *Storage) SearchWiki(ctx context.Context, q string, limit int) ([]*domain.KnowledgeEntry, error) {
	var entries []*domain.KnowledgeEntry
	err := s.search(ctx, WikiIndex, q, []string{"title^3", "preview", "content"}, limit, func(source json.RawMessage) error {
		var entry domain.KnowledgeEntry
		if err := json.Unmarshal(source, &entry); err != nil {
			return err
		}
		entries = append(entries, &entry)
		return nil
	})
	return entries, err
}

// searchResponse is the subset of the search reply we decode.
type searchResponse struct {
	Hits struct {
		Hits []struct {
			Source json.RawMessage `json:"_source"`
		} `json:"hits"`
	} `json:"hits"`
}

func (s *Storage) search(ctx context.Context, index, q string, fields []string, limit int, collect func(json.RawMessage) error) error {
	if s.client == nil {
		return errors.New("search index is not configured")
	}

	ctx, cancel := context.WithTimeout(ctx, DefaultSearchTimeout)
	defer cancel()

	query := map[string]any{
		"size": limit,
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":  q,
				"fields": fields,
			},
		},
	}

	body, err := json.Marshal(query)
	if err != nil {
		return fmt.Errorf("error marshaling search query: %w", err)
	}

	res, err := s.client.Search(
		s.client.Search.WithContext(ctx),
		s.client.Search.WithIndex(index),
		s.client.Search.WithBody(bytes.NewReader(body)),
	)
	if err != nil {
		return fmt.Errorf("error executing search: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return fmt.Errorf("search error: %s", res.String())
	}

	var decoded searchResponse
	if decodeErr := json.NewDecoder(res.Body).Decode(&decoded); decodeErr != nil {
		return fmt.Errorf("error decoding search response: %w", decodeErr)
	}

	for _, hit := range decoded.Hits.Hits {
		if collectErr := collect(hit.Source); collectErr != nil {
			return fmt.Errorf("error decoding search hit: %w", collectErr)
		}
	}

	return nil
}
