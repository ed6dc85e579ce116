package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonesrussell/secnews/internal/domain"
)

func TestClassify(t *testing.T) {
	c := NewClassifier(DefaultTaxonomy())

	tests := []struct {
		name string
		text string
		want domain.Category
	}{
		{
			name: "korean vulnerability keyword",
			text: "아파치 서버에서 신규 취약점 발견",
			want: domain.CategoryVulnerability,
		},
		{
			name: "english cve keyword",
			text: "CVE-2024-12345 allows remote code execution",
			want: domain.CategoryVulnerability,
		},
		{
			name: "ransomware classifies as malware",
			text: "대형 병원 랜섬웨어 감염 사례 보고",
			want: domain.CategoryMalware,
		},
		{
			name: "ddos classifies as network",
			text: "금융권 대상 DDoS 공격 증가",
			want: domain.CategoryNetwork,
		},
		{
			name: "xss classifies as web",
			text: "쇼핑몰에서 XSS 결함 신고",
			want: domain.CategoryWeb,
		},
		{
			name: "encryption classifies as crypto",
			text: "RSA 키 관리 실수로 인한 사고",
			want: domain.CategoryCrypto,
		},
		{
			name: "leak keyword lands in trend",
			text: "고객 정보유출 정황 포착",
			want: domain.CategoryTrend,
		},
		{
			name: "no keyword falls back to trend",
			text: "컨퍼런스 개최 소식",
			want: domain.CategoryTrend,
		},
		{
			name: "empty text falls back to trend",
			text: "",
			want: domain.CategoryTrend,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, c.Classify(tt.text))
		})
	}
}

func TestClassifyPriorityOrder(t *testing.T) {
	c := NewClassifier(DefaultTaxonomy())

	// Both vulnerability and malware keywords present: the earlier group wins.
	got := c.Classify("피싱 메일로 유포되는 제로데이 exploit")
	assert.Equal(t, domain.CategoryVulnerability, got)

	// Malware beats network when both match.
	got = c.Classify("봇넷 기반 랜섬웨어가 네트워크를 마비시킴")
	assert.Equal(t, domain.CategoryMalware, got)
}

func TestClassifyDeterministic(t *testing.T) {
	c := NewClassifier(DefaultTaxonomy())
	text := "악성코드 유포지에서 발견된 SQL 인젝션 시도"

	first := c.Classify(text)
	for n := 0; n < 10; n++ {
		assert.Equal(t, first, c.Classify(text))
	}
}

func TestClassifyCaseInsensitive(t *testing.T) {
	c := NewClassifier(DefaultTaxonomy())

	assert.Equal(t, c.Classify("RANSOMWARE campaign"), c.Classify("ransomware campaign"))
}

func TestClassifyCustomTaxonomy(t *testing.T) {
	c := NewClassifier([]Group{
		{Category: domain.CategoryWeb, Keywords: []string{"brow"}},
	})

	assert.Equal(t, domain.CategoryWeb, c.Classify("browser flaw"))
	assert.Equal(t, domain.CategoryTrend, c.Classify("kernel flaw"))
}
