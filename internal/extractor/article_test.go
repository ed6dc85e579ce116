package extractor

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonesrussell/secnews/internal/domain"
)

func TestExtractArticleTitlePriority(t *testing.T) {
	tests := []struct {
		name string
		html string
		sel  domain.SelectorConfig
		want string
	}{
		{
			name: "og title wins over h1 and title",
			html: `<html><head>
				<meta property="og:title" content="OG 제목입니다">
				<title>문서 제목입니다</title>
			</head><body><h1>H1 제목입니다</h1></body></html>`,
			want: "OG 제목입니다",
		},
		{
			name: "configured selector beats h1",
			html: `<html><body>
				<div class="headline">선택자 제목입니다</div>
				<h1>H1 제목입니다</h1>
			</body></html>`,
			sel:  domain.SelectorConfig{Title: ".headline"},
			want: "선택자 제목입니다",
		},
		{
			name: "h1 beats document title",
			html: `<html><head><title>문서 제목입니다</title></head>
				<body><h1>H1 제목입니다</h1></body></html>`,
			want: "H1 제목입니다",
		},
		{
			name: "document title as last resort",
			html: `<html><head><title>문서 제목입니다</title></head><body></body></html>`,
			want: "문서 제목입니다",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractArticle(tt.html, tt.sel)
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got.Title)
		})
	}
}

func TestExtractArticleRejectsShortTitle(t *testing.T) {
	html := `<html><body><h1>짧다</h1></body></html>`

	got, err := ExtractArticle(html, domain.SelectorConfig{})
	assert.NoError(t, err)
	assert.Empty(t, got.Title)
}

func TestExtractArticleLeadPriority(t *testing.T) {
	tests := []struct {
		name string
		html string
		sel  domain.SelectorConfig
		want string
	}{
		{
			name: "og description first",
			html: `<html><head>
				<meta property="og:description" content="OG 설명">
				<meta name="description" content="메타 설명">
			</head><body><h1>기사 제목입니다</h1><p>첫 문단</p></body></html>`,
			want: "OG 설명",
		},
		{
			name: "meta description second",
			html: `<html><head>
				<meta name="description" content="메타 설명">
			</head><body><h1>기사 제목입니다</h1><p>첫 문단</p></body></html>`,
			want: "메타 설명",
		},
		{
			name: "summary selector third",
			html: `<html><body><h1>기사 제목입니다</h1>
				<div class="desc">요약 블록</div><p>첫 문단</p></body></html>`,
			sel:  domain.SelectorConfig{Summary: ".desc"},
			want: "요약 블록",
		},
		{
			name: "content container paragraph fourth",
			html: `<html><body><h1>기사 제목입니다</h1>
				<p>본문 밖 문단</p>
				<div class="view_txt"><p>본문 첫 문단</p></div></body></html>`,
			want: "본문 첫 문단",
		},
		{
			name: "first paragraph as last resort",
			html: `<html><body><h1>기사 제목입니다</h1><p>유일한 문단</p></body></html>`,
			want: "유일한 문단",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractArticle(tt.html, tt.sel)
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got.Lead)
		})
	}
}
