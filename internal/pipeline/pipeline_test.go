package pipeline

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonesrussell/secnews/internal/classify"
	"github.com/jonesrussell/secnews/internal/config"
	"github.com/jonesrussell/secnews/internal/domain"
	"github.com/jonesrussell/secnews/internal/logger"
)

type fakeFetcher struct {
	pages map[string]string
	errs  map[string]error
}

func (f *fakeFetcher) Fetch(_ context.Context, pageURL, _ string) (string, error) {
	if err, ok := f.errs[pageURL]; ok {
		return "", err
	}
	if page, ok := f.pages[pageURL]; ok {
		return page, nil
	}
	return "", fmt.Errorf("fetch %s: http status 404", pageURL)
}

type fakeRegistry struct {
	defs []*domain.SourceDefinition
	err  error
}

func (f *fakeRegistry) Active(context.Context) ([]*domain.SourceDefinition, error) {
	return f.defs, f.err
}

type fakeNewsStore struct {
	mu    sync.Mutex
	byURL map[string]*domain.Article
	seq   int
}

func newFakeNewsStore() *fakeNewsStore {
	return &fakeNewsStore{byURL: make(map[string]*domain.Article)}
}

func (s *fakeNewsStore) FindByURL(_ context.Context, url string) (*domain.Article, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.byURL[url], nil
}

func (s *fakeNewsStore) Insert(_ context.Context, article *domain.Article) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.byURL[article.URL]; ok {
		return false, nil
	}
	s.seq++
	article.ID = fmt.Sprintf("n%d", s.seq)
	s.byURL[article.URL] = article
	return true, nil
}

type fakeWikiStore struct {
	mu      sync.Mutex
	byTitle map[string]*domain.KnowledgeEntry
	seq     int
}

func newFakeWikiStore() *fakeWikiStore {
	return &fakeWikiStore{byTitle: make(map[string]*domain.KnowledgeEntry)}
}

func (s *fakeWikiStore) FindByTitle(_ context.Context, title string) (*domain.KnowledgeEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.byTitle[title], nil
}

func (s *fakeWikiStore) Insert(_ context.Context, entry *domain.KnowledgeEntry) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.byTitle[entry.Title]; ok {
		return false, nil
	}
	s.seq++
	entry.ID = fmt.Sprintf("w%d", s.seq)
	s.byTitle[entry.Title] = entry
	return true, nil
}

type fakeIndex struct {
	mu       sync.Mutex
	articles []string
	entries  []string
}

func (f *fakeIndex) IndexArticle(_ context.Context, article *domain.Article) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.articles = append(f.articles, article.ID)
	return nil
}

func (f *fakeIndex) IndexEntry(_ context.Context, entry *domain.KnowledgeEntry) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.entries = append(f.entries, entry.ID)
	return nil
}

func (f *fakeIndex) RemoveEntry(context.Context, string) error { return nil }
func (f *fakeIndex) SearchNews(context.Context, string, int) ([]*domain.Article, error) {
	return nil, nil
}
func (f *fakeIndex) SearchWiki(context.Context, string, int) ([]*domain.KnowledgeEntry, error) {
	return nil, nil
}
func (f *fakeIndex) Enabled() bool { return true }

type fakeSummarizer struct{}

func (fakeSummarizer) Summarize(_ context.Context, _, content string) string {
	return content
}

type fakeSynth struct{}

func (fakeSynth) BuildEntry(_ context.Context, article *domain.Article) *domain.KnowledgeEntry {
	return &domain.KnowledgeEntry{
		Title:    domain.NormalizeTitle(article.Title),
		Category: article.Category.Label(),
		Preview:  domain.BuildPreview(article.Summary),
		Content:  "본문",
		Type:     domain.ProvenanceAuto,
	}
}

func articlePage(title, lead string) string {
	return fmt.Sprintf(`<html><head>
		<meta property="og:title" content="%s">
		<meta property="og:description" content="%s">
	</head><body><h1>%s</h1></body></html>`, title, lead, title)
}

type testEnv struct {
	pipeline *Pipeline
	news     *fakeNewsStore
	wiki     *fakeWikiStore
	index    *fakeIndex
}

func newTestEnv(fetcher *fakeFetcher, defs ...*domain.SourceDefinition) *testEnv {
	env := &testEnv{
		news:  newFakeNewsStore(),
		wiki:  newFakeWikiStore(),
		index: &fakeIndex{},
	}

	env.pipeline = New(Params{
		Fetcher:    fetcher,
		Registry:   &fakeRegistry{defs: defs},
		Classifier: classify.NewClassifier(classify.DefaultTaxonomy()),
		Summarizer: fakeSummarizer{},
		Synth:      fakeSynth{},
		News:       env.news,
		Wiki:       env.wiki,
		Index:      env.index,
		Logger:     logger.NewNoOp(),
		Crawl:      config.CrawlConfig{Concurrency: 1},
	})

	return env
}

func testSource() *domain.SourceDefinition {
	return &domain.SourceDefinition{
		Name:     "테스트뉴스",
		URL:      "https://news.test/list",
		Domain:   "news.test",
		MaxItems: 8,
		Active:   true,
	}
}

func TestRunAllIngestsNewArticles(t *testing.T) {
	fetcher := &fakeFetcher{pages: map[string]string{
		"https://news.test/list": `<html><body>
			<a href="https://news.test/story/1">1</a>
			<a href="https://news.test/story/2">2</a>
		</body></html>`,
		"https://news.test/story/1": articlePage("랜섬웨어 공격 급증 경보", "병원들이 랜섬웨어 피해를 입음"),
		"https://news.test/story/2": articlePage("신규 취약점 패치 공개", "긴급 보안패치가 배포됨"),
	}}

	env := newTestEnv(fetcher, testSource())

	summary, err := env.pipeline.RunAll(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, summary.TotalAdded)
	require.Len(t, summary.Sources, 1)
	assert.False(t, summary.Sources[0].Failed)
	assert.Len(t, summary.Sources[0].Candidates, 2)

	first := env.news.byURL["https://news.test/story/1"]
	require.NotNil(t, first)
	assert.Equal(t, "랜섬웨어 공격 급증 경보", first.Title)
	assert.Equal(t, domain.CategoryMalware, first.Category)
	assert.Equal(t, "테스트뉴스", first.Source)
	assert.NotEmpty(t, first.Date)

	second := env.news.byURL["https://news.test/story/2"]
	require.NotNil(t, second)
	assert.Equal(t, domain.CategoryVulnerability, second.Category)

	// One knowledge entry per new article, and everything indexed.
	assert.Len(t, env.wiki.byTitle, 2)
	assert.Len(t, env.index.articles, 2)
	assert.Len(t, env.index.entries, 2)
}

func TestRunAllSkipsDuplicateURL(t *testing.T) {
	fetcher := &fakeFetcher{pages: map[string]string{
		"https://news.test/list": `<html><body>
			<a href="https://news.test/story/known">기존</a>
		</body></html>`,
		"https://news.test/story/known": articlePage("이미 수집된 기사 제목", "본문"),
	}}

	env := newTestEnv(fetcher, testSource())
	env.news.byURL["https://news.test/story/known"] = &domain.Article{URL: "https://news.test/story/known"}

	summary, err := env.pipeline.RunAll(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 0, summary.TotalAdded)
	require.Len(t, summary.Sources[0].Candidates, 1)
	assert.Equal(t, domain.SkipDuplicateURL, summary.Sources[0].Candidates[0].Skip)
}

func TestRunAllSkipsShortTitle(t *testing.T) {
	fetcher := &fakeFetcher{pages: map[string]string{
		"https://news.test/list": `<html><body>
			<a href="https://news.test/story/short">짧은 제목</a>
		</body></html>`,
		"https://news.test/story/short": articlePage("짧다", "본문"),
	}}

	env := newTestEnv(fetcher, testSource())

	summary, err := env.pipeline.RunAll(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 0, summary.TotalAdded)
	require.Len(t, summary.Sources[0].Candidates, 1)
	assert.Equal(t, domain.SkipNoTitle, summary.Sources[0].Candidates[0].Skip)
}

func TestRunAllRecordsListingFailure(t *testing.T) {
	fetcher := &fakeFetcher{
		errs: map[string]error{
			"https://news.test/list": errors.New("connection refused"),
		},
	}

	env := newTestEnv(fetcher, testSource())

	summary, err := env.pipeline.RunAll(context.Background())
	require.NoError(t, err)

	require.Len(t, summary.Sources, 1)
	assert.True(t, summary.Sources[0].Failed)
	assert.Equal(t, []string{"테스트뉴스"}, summary.FailedSources())
	assert.Equal(t, 0, summary.TotalAdded)
}

func TestRunAllSkipsFailedArticleFetch(t *testing.T) {
	fetcher := &fakeFetcher{
		pages: map[string]string{
			"https://news.test/list": `<html><body>
				<a href="https://news.test/story/broken">깨진 링크</a>
				<a href="https://news.test/story/ok">정상 링크</a>
			</body></html>`,
			"https://news.test/story/ok": articlePage("정상적으로 수집되는 기사", "본문 요약"),
		},
		errs: map[string]error{
			"https://news.test/story/broken": errors.New("timeout"),
		},
	}

	env := newTestEnv(fetcher, testSource())

	summary, err := env.pipeline.RunAll(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, summary.TotalAdded)
	counts := summary.Sources[0].SkipCounts()
	assert.Equal(t, 1, counts[domain.SkipFetchFailed])
}

func TestRunAllOneSourceFailureDoesNotAffectOthers(t *testing.T) {
	good := testSource()
	bad := &domain.SourceDefinition{
		Name:   "다운된소스",
		URL:    "https://down.test/list",
		Domain: "down.test",
		Active: true,
	}

	fetcher := &fakeFetcher{
		pages: map[string]string{
			"https://news.test/list": `<html><body>
				<a href="https://news.test/story/1">기사</a>
			</body></html>`,
			"https://news.test/story/1": articlePage("다른 소스와 무관한 기사", "본문"),
		},
		errs: map[string]error{
			"https://down.test/list": errors.New("unreachable"),
		},
	}

	env := newTestEnv(fetcher, good, bad)

	summary, err := env.pipeline.RunAll(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, summary.TotalAdded)
	assert.Equal(t, []string{"다운된소스"}, summary.FailedSources())
}

func TestRunAllSharedTitleCreatesOneEntry(t *testing.T) {
	title := "양쪽에서 같은 제목 기사"

	fetcher := &fakeFetcher{pages: map[string]string{
		"https://news.test/list": `<html><body>
			<a href="https://news.test/story/a">a</a>
			<a href="https://news.test/story/b">b</a>
		</body></html>`,
		"https://news.test/story/a": articlePage(title, "본문 하나"),
		"https://news.test/story/b": articlePage(title, "본문 둘"),
	}}

	env := newTestEnv(fetcher, testSource())

	summary, err := env.pipeline.RunAll(context.Background())
	require.NoError(t, err)

	// Both articles persist (distinct URLs) but only one entry exists.
	assert.Equal(t, 2, summary.TotalAdded)
	assert.Len(t, env.wiki.byTitle, 1)
	assert.Len(t, env.index.entries, 1)
}

func TestRunAllTrailingWhitespaceTitleCollides(t *testing.T) {
	title := "공백만 다른 같은 제목 기사"

	fetcher := &fakeFetcher{pages: map[string]string{
		"https://news.test/list": `<html><body>
			<a href="https://news.test/story/a">a</a>
			<a href="https://news.test/story/b">b</a>
		</body></html>`,
		"https://news.test/story/a": articlePage(title, "본문 하나"),
		"https://news.test/story/b": articlePage(title+"   ", "본문 둘"),
	}}

	env := newTestEnv(fetcher, testSource())

	summary, err := env.pipeline.RunAll(context.Background())
	require.NoError(t, err)

	// Distinct URLs, so both articles persist with the trimmed title.
	assert.Equal(t, 2, summary.TotalAdded)
	assert.Equal(t, title, env.news.byURL["https://news.test/story/b"].Title)

	// The trailing-whitespace variant resolves to the same entry title, so
	// only the first article produces one.
	require.Len(t, env.wiki.byTitle, 1)
	assert.Contains(t, env.wiki.byTitle, title)
	assert.Len(t, env.index.entries, 1)
}

func TestRunAllCancelledBeforeStart(t *testing.T) {
	fetcher := &fakeFetcher{pages: map[string]string{}}
	env := newTestEnv(fetcher, testSource())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	summary, err := env.pipeline.RunAll(ctx)
	require.NoError(t, err)

	require.Len(t, summary.Sources, 1)
	assert.True(t, summary.Sources[0].Failed)
	assert.Equal(t, 0, summary.TotalAdded)
}

func TestRunAllRegistryFailureIsFatal(t *testing.T) {
	env := &testEnv{news: newFakeNewsStore(), wiki: newFakeWikiStore(), index: &fakeIndex{}}
	p := New(Params{
		Fetcher:    &fakeFetcher{},
		Registry:   &fakeRegistry{err: errors.New("no sources")},
		Classifier: classify.NewClassifier(classify.DefaultTaxonomy()),
		Summarizer: fakeSummarizer{},
		Synth:      fakeSynth{},
		News:       env.news,
		Wiki:       env.wiki,
		Index:      env.index,
		Logger:     logger.NewNoOp(),
		Crawl:      config.CrawlConfig{Concurrency: 1},
	})

	_, err := p.RunAll(context.Background())
	assert.Error(t, err)
}
