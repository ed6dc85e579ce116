package sources

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/jonesrussell/secnews/internal/domain"
)

// fileSource mirrors one entry of a sources YAML file.
type fileSource struct {
	Name     string `mapstructure:"name"`
	URL      string `mapstructure:"url"`
	Domain   string `mapstructure:"domain"`
	Country  string `mapstructure:"country"`
	Encoding string `mapstructure:"encoding"`
	MaxItems int    `mapstructure:"max_items"`
	Selector struct {
		ListItem string `mapstructure:"list_item"`
		Title    string `mapstructure:"title_selector"`
		Summary  string `mapstructure:"summary_selector"`
	} `mapstructure:"selectors"`
	Active *bool `mapstructure:"active"`
}

// LoadFile reads source definitions from a YAML file with a top-level
// "sources" list. Entries default to active unless the file says otherwise.
func LoadFile(path string) ([]*domain.SourceDefinition, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read sources file: %w", err)
	}

	var raw []fileSource
	if err := v.UnmarshalKey("sources", &raw); err != nil {
		return nil, fmt.Errorf("parse sources file: %w", err)
	}
	if len(raw) == 0 {
		return nil, fmt.Errorf("sources file %s defines no sources", path)
	}

	defs := make([]*domain.SourceDefinition, 0, len(raw))
	for i, fs := range raw {
		if fs.Name == "" || fs.URL == "" {
			return nil, fmt.Errorf("sources file entry %d is missing name or url", i)
		}
		def := &domain.SourceDefinition{
			Name:     fs.Name,
			URL:      fs.URL,
			Domain:   fs.Domain,
			Country:  fs.Country,
			Encoding: fs.Encoding,
			MaxItems: fs.MaxItems,
			SelectorConfig: domain.SelectorConfig{
				ListItem: fs.Selector.ListItem,
				Title:    fs.Selector.Title,
				Summary:  fs.Selector.Summary,
			},
			Active: fs.Active == nil || *fs.Active,
		}
		defs = append(defs, def)
	}
	return defs, nil
}
