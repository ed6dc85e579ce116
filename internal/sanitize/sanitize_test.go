package sanitize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTextStripsAllMarkup(t *testing.T) {
	assert.Equal(t, "경고 제목", Text("<b>경고</b> <script>alert(1)</script>제목"))
	assert.Equal(t, "plain", Text("plain"))
	assert.Equal(t, "", Text("<img src=x onerror=alert(1)>"))
}

func TestTextIdempotent(t *testing.T) {
	in := "<div onclick='x'>본문 <em>강조</em></div>"

	once := Text(in)
	assert.Equal(t, once, Text(once))
}

func TestBodyKeepsAllowedElements(t *testing.T) {
	in := "<p>설명</p><script>bad()</script><h2>섹션</h2>"

	got := Body(in)
	assert.Contains(t, got, "<p>설명</p>")
	assert.Contains(t, got, "<h2>섹션</h2>")
	assert.NotContains(t, got, "script")
}

func TestBodyIdempotent(t *testing.T) {
	in := "<p>본문</p><iframe src='x'></iframe><ul><li>항목</li></ul>"

	once := Body(in)
	assert.Equal(t, once, Body(once))
}

func TestRemoveIdeographs(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"han characters removed", "공격者가 發견됨", "공격가 견됨"},
		{"hangul untouched", "한글만 있는 문장", "한글만 있는 문장"},
		{"ascii untouched", "plain ascii", "plain ascii"},
		{"empty input", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RemoveIdeographs(tt.in))
		})
	}
}
