package sources

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSourcesFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sources.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadFile(t *testing.T) {
	path := writeSourcesFile(t, `
sources:
  - name: 보안뉴스
    url: https://www.boannews.com/media/t_list.asp
    domain: boannews.com
    country: kr
    encoding: euc-kr
    max_items: 15
    selectors:
      list_item: div.news_list
      title_selector: .news_txt
  - name: The Hacker News
    url: https://thehackernews.com/
    domain: thehackernews.com
    country: en
    active: false
`)

	defs, err := LoadFile(path)
	require.NoError(t, err)
	require.Len(t, defs, 2)

	first := defs[0]
	assert.Equal(t, "보안뉴스", first.Name)
	assert.Equal(t, "euc-kr", first.Encoding)
	assert.Equal(t, 15, first.MaxItems)
	assert.Equal(t, "div.news_list", first.SelectorConfig.ListItem)
	assert.Equal(t, ".news_txt", first.SelectorConfig.Title)
	assert.True(t, first.Active)

	second := defs[1]
	assert.True(t, second.SelectorConfig.Empty())
	assert.False(t, second.Active)
}

func TestLoadFileRejectsIncompleteEntries(t *testing.T) {
	path := writeSourcesFile(t, `
sources:
  - name: missing url
`)

	_, err := LoadFile(path)
	assert.Error(t, err)
}

func TestLoadFileRejectsEmptyList(t *testing.T) {
	path := writeSourcesFile(t, "sources: []\n")

	_, err := LoadFile(path)
	assert.Error(t, err)
}

func TestLoadFileMissingFile(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}
