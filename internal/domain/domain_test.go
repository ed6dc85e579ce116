package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidTitle(t *testing.T) {
	tests := []struct {
		name  string
		title string
		want  bool
	}{
		{"five hangul runes", "다섯글자제", true},
		{"four runes rejected", "네글자임", false},
		{"whitespace padding does not count", "  네글자임  ", false},
		{"empty rejected", "", false},
		{"whitespace only rejected", "   ", false},
		{"long english accepted", "security advisory released", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidTitle(tt.title))
		})
	}
}

func TestNormalizeTitle(t *testing.T) {
	assert.Equal(t, "제목입니다", NormalizeTitle("  제목입니다\n"))
	assert.Equal(t, "internal  spacing kept", NormalizeTitle("internal  spacing kept"))
}

func TestCategoryLabel(t *testing.T) {
	assert.Equal(t, "악성코드", CategoryMalware.Label())
	assert.Equal(t, "취약점", CategoryVulnerability.Label())
	assert.Equal(t, "네트워크", CategoryNetwork.Label())
	assert.Equal(t, "웹 보안", CategoryWeb.Label())
	assert.Equal(t, "암호학", CategoryCrypto.Label())
	assert.Equal(t, "기타", CategoryTrend.Label())
	assert.Equal(t, "bogus", Category("bogus").Label())
}

func TestCategoryValid(t *testing.T) {
	assert.True(t, CategoryTrend.Valid())
	assert.False(t, Category("bogus").Valid())
}

func TestBuildPreview(t *testing.T) {
	assert.Equal(t, "짧은 요약", BuildPreview("짧은 요약"))

	long := strings.Repeat("가", 250)
	got := BuildPreview(long)
	assert.Equal(t, strings.Repeat("가", 200)+"...", got)

	exact := strings.Repeat("나", 200)
	assert.Equal(t, exact, BuildPreview(exact))
}

func TestTagList(t *testing.T) {
	entry := &KnowledgeEntry{Tags: "랜섬,피싱, cve ,"}
	assert.Equal(t, []string{"랜섬", "피싱", "cve"}, entry.TagList())

	empty := &KnowledgeEntry{}
	assert.Nil(t, empty.TagList())
}

func TestSourceResultSkipCounts(t *testing.T) {
	result := SourceResult{
		Candidates: []CandidateResult{
			{URL: "a", Article: &Article{}},
			{URL: "b", Skip: SkipDuplicateURL},
			{URL: "c", Skip: SkipDuplicateURL},
			{URL: "d", Skip: SkipNoTitle},
			{URL: "e", Skip: SkipFetchFailed},
			{URL: "f", Skip: SkipParseFailed},
		},
	}

	counts := result.SkipCounts()
	assert.Equal(t, 2, counts[SkipDuplicateURL])
	assert.Equal(t, 1, counts[SkipNoTitle])
	// Fetch and parse failures are distinct reasons, not one bucket.
	assert.Equal(t, 1, counts[SkipFetchFailed])
	assert.Equal(t, 1, counts[SkipParseFailed])
	assert.Len(t, counts, 4)
}

func TestRunSummaryFailedSources(t *testing.T) {
	summary := RunSummary{
		Sources: []SourceResult{
			{Source: "a"},
			{Source: "b", Failed: true},
			{Source: "c", Failed: true},
		},
	}

	assert.Equal(t, []string{"b", "c"}, summary.FailedSources())
}

func TestCandidateLimit(t *testing.T) {
	assert.Equal(t, 15, (&SourceDefinition{MaxItems: 15}).CandidateLimit())
	assert.Equal(t, DefaultMaxItems, (&SourceDefinition{}).CandidateLimit())
}
