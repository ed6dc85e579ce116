package sources

import "github.com/jonesrussell/secnews/internal/domain"

// Defaults returns the built-in crawl sources. They are seeded into the
// database on startup; rows already present (matched by URL) are never
// overwritten, so operator edits persist.
func Defaults() []*domain.SourceDefinition {
	return []*domain.SourceDefinition{
		{
			Name:     "보안뉴스",
			URL:      "https://www.boannews.com/media/t_list.asp",
			Domain:   "boannews.com",
			Country:  "kr",
			Encoding: "euc-kr",
			MaxItems: 15,
			SelectorConfig: domain.SelectorConfig{
				ListItem: "div.news_list",
				Title:    ".news_txt",
			},
			Active: true,
		},
		{
			Name:     "ZDNet Korea",
			URL:      "https://www.zdnet.co.kr/news/security/",
			Domain:   "zdnet.co.kr",
			Country:  "kr",
			MaxItems: 8,
			SelectorConfig: domain.SelectorConfig{
				Title:   ".card-item h2",
				Summary: ".desc",
			},
			Active: true,
		},
		{
			Name:     "The Hacker News",
			URL:      "https://thehackernews.com/",
			Domain:   "thehackernews.com",
			Country:  "en",
			MaxItems: 6,
			Active:   true,
		},
		{
			Name:     "KrebsOnSecurity",
			URL:      "https://krebsonsecurity.com/",
			Domain:   "krebsonsecurity.com",
			Country:  "en",
			MaxItems: 6,
			Active:   true,
		},
		{
			Name:     "BleepingComputer",
			URL:      "https://www.bleepingcomputer.com/",
			Domain:   "bleepingcomputer.com",
			Country:  "en",
			MaxItems: 6,
			Active:   true,
		},
		{
			Name:     "SecurityWeek",
			URL:      "https://www.securityweek.com/",
			Domain:   "securityweek.com",
			Country:  "en",
			MaxItems: 6,
			Active:   true,
		},
		{
			Name:     "DarkReading",
			URL:      "https://www.darkreading.com/",
			Domain:   "darkreading.com",
			Country:  "en",
			MaxItems: 6,
			Active:   true,
		},
		{
			Name:     "CyberScoop",
			URL:      "https://cyberscoop.com/news/",
			Domain:   "cyberscoop.com",
			Country:  "en",
			MaxItems: 8,
			SelectorConfig: domain.SelectorConfig{
				Title:   ".post-item__title-link",
				Summary: ".post-item__excerpt",
			},
			Active: true,
		},
		{
			Name:     "HelpNetSecurity",
			URL:      "https://www.helpnetsecurity.com/view/news/",
			Domain:   "helpnetsecurity.com",
			Country:  "en",
			MaxItems: 8,
			SelectorConfig: domain.SelectorConfig{
				Title: ".card-title a",
			},
			Active: true,
		},
	}
}
