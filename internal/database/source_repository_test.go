package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSourceRowDecodesSelectorConfig(t *testing.T) {
	row := sourceRow{
		ID:             "s1",
		Name:           "ZDNet Korea",
		URL:            "https://www.zdnet.co.kr/news/security/",
		Domain:         "zdnet.co.kr",
		Country:        "kr",
		MaxItems:       8,
		SelectorConfig: `{"title_selector": ".card-item h2", "summary_selector": ".desc"}`,
		Active:         true,
	}

	src, err := row.toDomain()
	require.NoError(t, err)

	assert.Equal(t, ".card-item h2", src.SelectorConfig.Title)
	assert.Equal(t, ".desc", src.SelectorConfig.Summary)
	assert.Empty(t, src.SelectorConfig.ListItem)
	assert.Equal(t, 8, src.CandidateLimit())
}

func TestSourceRowEmptySelectorConfig(t *testing.T) {
	row := sourceRow{ID: "s1", Name: "보안뉴스", URL: "https://www.boannews.com/"}

	src, err := row.toDomain()
	require.NoError(t, err)
	assert.True(t, src.SelectorConfig.Empty())
}

func TestSourceRowInvalidSelectorConfig(t *testing.T) {
	row := sourceRow{ID: "s1", Name: "broken", SelectorConfig: `{not json`}

	_, err := row.toDomain()
	assert.Error(t, err)
}
