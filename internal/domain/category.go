package domain

// Category is the fixed six-way classification assigned to every article.
type Category string

const (
	CategoryVulnerability Category = "vulnerability"
	CategoryMalware       Category = "malware"
	CategoryNetwork       Category = "network"
	CategoryWeb           Category = "web"
	CategoryCrypto        Category = "crypto"
	// CategoryTrend is the default catch-all for anything the keyword
	// groups do not claim, including leak/breach coverage.
	CategoryTrend Category = "trend"
)

// categoryLabels maps categories to their Korean display labels used on
// knowledge entries.
var categoryLabels = map[Category]string{
	CategoryMalware:       "악성코드",
	CategoryVulnerability: "취약점",
	CategoryNetwork:       "네트워크",
	CategoryWeb:           "웹 보안",
	CategoryCrypto:        "암호학",
	CategoryTrend:         "기타",
}

// Label returns the display label for the category. Unknown categories fall
// back to their raw string value.
func (c Category) Label() string {
	if label, ok := categoryLabels[c]; ok {
		return label
	}
	return string(c)
}

// Valid reports whether c is one of the six fixed categories.
func (c Category) Valid() bool {
	_, ok := categoryLabels[c]
	return ok
}
