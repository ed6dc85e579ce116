package classify

import "github.com/jonesrussell/secnews/internal/domain"

// Group pairs a category with the keywords that trigger it. Group order is
// the classification priority: the first group with any match wins, so a
// text mentioning both a patch and a phishing campaign classifies as
// vulnerability.
type Group struct {
	Category domain.Category
	Keywords []string
}

// DefaultTaxonomy returns the built-in ordered keyword groups. Callers may
// supply their own taxonomy to NewClassifier instead.
func DefaultTaxonomy() []Group {
	return []Group{
		{domain.CategoryVulnerability, []string{
			"취약", "cve", "취약점", "취약성", "제로데이", "zero-day",
			"exploit", "익스플로잇", "보안패치", "패치",
		}},
		{domain.CategoryMalware, []string{
			"악성", "멀웨어", "malware", "랜섬", "ransom", "ransomware",
			"바이러스", "trojan", "악성코드", "피싱", "phishing",
			"스피어피싱", "해킹", "hacking",
		}},
		{domain.CategoryNetwork, []string{
			"네트워크", "방화벽", "라우터", "스위치", "패킷", "tcp", "udp",
			"ddos", "디도스", "디도스공격", "네트워크장애",
		}},
		{domain.CategoryWeb, []string{
			"웹", "사이트", "xss", "sql", "csrf", "injection",
			"sql-injection", "cross-site", "파일업로드", "경로탐색",
			"directory traversal",
		}},
		{domain.CategoryCrypto, []string{
			"암호", "crypto", "crypt", "암호학", "암호화", "rsa", "aes",
			"sha", "키노출", "키 탈취",
		}},
		// Leak and breach coverage lands in trend rather than a dedicated
		// incident category.
		{domain.CategoryTrend, []string{
			"유출", "데이터유출", "정보유출", "leak", "exposure", "breach",
		}},
	}
}

// DefaultKeywordDictionary returns the curated security keyword groups used
// for tag extraction. Group order supplies the tie-break for equal counts.
func DefaultKeywordDictionary() []Group {
	return []Group{
		{domain.CategoryMalware, []string{
			"악성", "멀웨어", "malware", "랜섬", "ransomware", "바이러스",
			"virus", "trojan", "트로이목마", "웜", "worm", "피싱",
			"phishing", "스피어", "spear", "해커", "hacker", "해킹",
			"hacking",
		}},
		{domain.CategoryVulnerability, []string{
			"취약", "cve", "취약점", "취약성", "vulnerability", "제로데이",
			"zero-day", "exploit", "익스플로잇", "보안패치", "패치",
			"patch", "버그", "bug",
		}},
		{domain.CategoryCrypto, []string{
			"암호", "crypto", "암호학", "암호화", "encryption", "rsa",
			"aes", "sha", "키노출", "해시", "hash", "인증서",
			"certificate",
		}},
		{domain.CategoryNetwork, []string{
			"네트워크", "network", "방화벽", "firewall", "ddos", "디도스",
			"botnet", "봇넷", "스캔", "scan", "포트", "port", "패킷",
			"packet",
		}},
		{domain.CategoryWeb, []string{
			"웹", "web", "xss", "sql", "sqlinjection", "csrf",
			"injection", "인젝션", "파일업로드", "경로탐색", "쿠키",
			"cookie", "세션", "session",
		}},
		{domain.CategoryTrend, []string{
			"정보보호", "security", "보안", "정보유출", "데이터유출",
			"leak", "breach", "노출", "exposure", "침해", "침입",
			"intrusion", "방어", "대응",
		}},
	}
}
