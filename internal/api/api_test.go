package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonesrussell/secnews/internal/domain"
	"github.com/jonesrussell/secnews/internal/logger"
)

type fakeNewsRepo struct {
	articles map[string]*domain.Article
	updated  map[string]string
}

func newFakeNewsRepo(articles ...*domain.Article) *fakeNewsRepo {
	r := &fakeNewsRepo{articles: make(map[string]*domain.Article), updated: make(map[string]string)}
	for _, a := range articles {
		r.articles[a.ID] = a
	}
	return r
}

func (r *fakeNewsRepo) List(_ context.Context, limit int) ([]*domain.Article, error) {
	out := make([]*domain.Article, 0, len(r.articles))
	for _, a := range r.articles {
		if len(out) >= limit {
			break
		}
		out = append(out, a)
	}
	return out, nil
}

func (r *fakeNewsRepo) FindByID(_ context.Context, id string) (*domain.Article, error) {
	return r.articles[id], nil
}

func (r *fakeNewsRepo) UpdateSummary(_ context.Context, id, summary string) error {
	r.updated[id] = summary
	return nil
}

func (r *fakeNewsRepo) Search(_ context.Context, _ string, _ int) ([]*domain.Article, error) {
	return r.List(context.Background(), len(r.articles))
}

func (r *fakeNewsRepo) Count(context.Context) (int, error) { return len(r.articles), nil }

type fakeWikiRepo struct {
	entries map[string]*domain.KnowledgeEntry
}

func (r *fakeWikiRepo) Insert(_ context.Context, entry *domain.KnowledgeEntry) (bool, error) {
	if r.entries == nil {
		r.entries = make(map[string]*domain.KnowledgeEntry)
	}
	for _, existing := range r.entries {
		if existing.Title == entry.Title {
			return false, nil
		}
	}
	if entry.ID == "" {
		entry.ID = "generated"
	}
	r.entries[entry.ID] = entry
	return true, nil
}

func (r *fakeWikiRepo) Delete(_ context.Context, id string) error {
	delete(r.entries, id)
	return nil
}

func (r *fakeWikiRepo) List(_ context.Context, _ int) ([]*domain.KnowledgeEntry, error) {
	out := make([]*domain.KnowledgeEntry, 0, len(r.entries))
	for _, e := range r.entries {
		out = append(out, e)
	}
	return out, nil
}

func (r *fakeWikiRepo) FindByID(_ context.Context, id string) (*domain.KnowledgeEntry, error) {
	return r.entries[id], nil
}

func (r *fakeWikiRepo) Search(context.Context, string, int) ([]*domain.KnowledgeEntry, error) {
	return nil, nil
}

func (r *fakeWikiRepo) Count(context.Context) (int, error) { return len(r.entries), nil }

type disabledIndex struct{}

func (disabledIndex) IndexArticle(context.Context, *domain.Article) error        { return nil }
func (disabledIndex) IndexEntry(context.Context, *domain.KnowledgeEntry) error   { return nil }
func (disabledIndex) RemoveEntry(context.Context, string) error                  { return nil }
func (disabledIndex) SearchNews(context.Context, string, int) ([]*domain.Article, error) {
	return nil, nil
}
func (disabledIndex) SearchWiki(context.Context, string, int) ([]*domain.KnowledgeEntry, error) {
	return nil, nil
}
func (disabledIndex) Enabled() bool { return false }

type fixedSummarizer struct {
	summary string
}

func (f fixedSummarizer) Summarize(context.Context, string, string) string {
	return f.summary
}

func testRouter(news *fakeNewsRepo, wikiRepo *fakeWikiRepo, summarizer Resummarizer) *gin.Engine {
	log := logger.NewNoOp()
	return SetupRouter(log, Handlers{
		News:   NewNewsHandler(news, summarizer, disabledIndex{}, log),
		Wiki:   NewWikiHandler(wikiRepo, disabledIndex{}, log),
		Crawl:  NewCrawlHandler(nil, emptyRunLogs{}, log),
		Search: NewSearchHandler(disabledIndex{}, news, wikiRepo, log),
	})
}

type emptyRunLogs struct{}

func (emptyRunLogs) Recent(context.Context, int) ([]*domain.CrawlLog, error) {
	return nil, nil
}

func doRequest(router *gin.Engine, method, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, http.NoBody)
	router.ServeHTTP(w, req)
	return w
}

func TestHealthEndpoint(t *testing.T) {
	router := testRouter(newFakeNewsRepo(), &fakeWikiRepo{}, fixedSummarizer{})

	w := doRequest(router, http.MethodGet, "/health")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestListNews(t *testing.T) {
	news := newFakeNewsRepo(&domain.Article{ID: "n1", Title: "기사 제목입니다"})
	router := testRouter(news, &fakeWikiRepo{}, fixedSummarizer{})

	w := doRequest(router, http.MethodGet, "/api/news")
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Count int `json:"count"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, 1, body.Count)
}

func TestGetNewsNotFound(t *testing.T) {
	router := testRouter(newFakeNewsRepo(), &fakeWikiRepo{}, fixedSummarizer{})

	w := doRequest(router, http.MethodGet, "/api/news/missing")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSummarizeUpdatesArticle(t *testing.T) {
	news := newFakeNewsRepo(&domain.Article{ID: "n1", Title: "기사 제목입니다", Summary: "이전 요약"})
	router := testRouter(news, &fakeWikiRepo{}, fixedSummarizer{summary: "새 요약"})

	w := doRequest(router, http.MethodPost, "/api/news/n1/summarize")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "새 요약", news.updated["n1"])

	var got domain.Article
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, "새 요약", got.Summary)
}

func TestCreateWikiEntry(t *testing.T) {
	wikiRepo := &fakeWikiRepo{}
	router := testRouter(newFakeNewsRepo(), wikiRepo, fixedSummarizer{})

	w := httptest.NewRecorder()
	body := strings.NewReader(`{"title": "랜섬웨어 대응 절차", "category": "악성코드", "content": "<p>본문</p><script>alert(1)</script>"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/wiki", body)
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)
	require.Len(t, wikiRepo.entries, 1)
	for _, entry := range wikiRepo.entries {
		assert.Equal(t, domain.ProvenanceManual, entry.Type)
		assert.Contains(t, entry.Content, "<p>본문</p>")
		assert.NotContains(t, entry.Content, "script")
	}
}

func TestCreateWikiEntryDuplicateTitle(t *testing.T) {
	wikiRepo := &fakeWikiRepo{entries: map[string]*domain.KnowledgeEntry{
		"w1": {ID: "w1", Title: "랜섬웨어 대응 절차"},
	}}
	router := testRouter(newFakeNewsRepo(), wikiRepo, fixedSummarizer{})

	w := httptest.NewRecorder()
	body := strings.NewReader(`{"title": "랜섬웨어 대응 절차"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/wiki", body)
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Len(t, wikiRepo.entries, 1)
}

func TestDeleteWikiEntry(t *testing.T) {
	wikiRepo := &fakeWikiRepo{entries: map[string]*domain.KnowledgeEntry{
		"w1": {ID: "w1", Title: "삭제할 항목"},
	}}
	router := testRouter(newFakeNewsRepo(), wikiRepo, fixedSummarizer{})

	w := doRequest(router, http.MethodDelete, "/api/wiki/w1")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, wikiRepo.entries)

	w = doRequest(router, http.MethodDelete, "/api/wiki/w1")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSearchRequiresQuery(t *testing.T) {
	router := testRouter(newFakeNewsRepo(), &fakeWikiRepo{}, fixedSummarizer{})

	w := doRequest(router, http.MethodGet, "/api/search")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSearchFallsBackToDatabase(t *testing.T) {
	news := newFakeNewsRepo(&domain.Article{ID: "n1", Title: "랜섬웨어 분석 보고"})
	router := testRouter(news, &fakeWikiRepo{}, fixedSummarizer{})

	w := doRequest(router, http.MethodGet, "/api/search?q=%EB%9E%9C%EC%84%AC")
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Articles []domain.Article `json:"articles"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Len(t, body.Articles, 1)
}

func TestStats(t *testing.T) {
	news := newFakeNewsRepo(&domain.Article{ID: "n1", Title: "기사 제목입니다"})
	wikiRepo := &fakeWikiRepo{entries: map[string]*domain.KnowledgeEntry{
		"w1": {ID: "w1", Title: "항목"},
	}}
	router := testRouter(news, wikiRepo, fixedSummarizer{})

	w := doRequest(router, http.MethodGet, "/api/stats")
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Articles     int  `json:"articles"`
		Entries      int  `json:"entries"`
		IndexEnabled bool `json:"index_enabled"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, 1, body.Articles)
	assert.Equal(t, 1, body.Entries)
	assert.False(t, body.IndexEnabled)
}
