// Package search implements the command-line search over ingested data.
package search

import (
	"os"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/jonesrussell/secnews/internal/app"
	"github.com/jonesrussell/secnews/internal/domain"
)

const defaultLimit = 10

// Command returns the search command.
func Command(cfgFile *string) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "search [query]",
		Short: "Search articles and knowledge entries",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			application, err := app.New(ctx, *cfgFile)
			if err != nil {
				return err
			}
			defer application.Close()

			q := strings.Join(args, " ")

			articles, entries, err := runSearch(cmd, application, q, limit)
			if err != nil {
				return err
			}

			renderArticles(articles)
			renderEntries(entries)
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", defaultLimit, "maximum results per section")
	return cmd
}

func runSearch(cmd *cobra.Command, application *app.App, q string, limit int) ([]*domain.Article, []*domain.KnowledgeEntry, error) {
	ctx := cmd.Context()

	if application.Index.Enabled() {
		articles, err := application.Index.SearchNews(ctx, q, limit)
		if err == nil {
			entries, wikiErr := application.Index.SearchWiki(ctx, q, limit)
			if wikiErr == nil {
				return articles, entries, nil
			}
		}
		application.Log.Warn("Index search failed, falling back to database")
	}

	articles, err := application.News.Search(ctx, q, limit)
	if err != nil {
		return nil, nil, err
	}
	entries, err := application.Wiki.Search(ctx, q, limit)
	if err != nil {
		return nil, nil, err
	}
	return articles, entries, nil
}

func renderArticles(articles []*domain.Article) {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetStyle(table.StyleLight)
	t.SetTitle("Articles")
	t.AppendHeader(table.Row{"Title", "Source", "Category", "Date"})

	for _, a := range articles {
		t.AppendRow(table.Row{a.Title, a.Source, a.Category.Label(), a.Date})
	}
	t.Render()
}

func renderEntries(entries []*domain.KnowledgeEntry) {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetStyle(table.StyleLight)
	t.SetTitle("Knowledge")
	t.AppendHeader(table.Row{"Title", "Category", "Tags"})

	for _, e := range entries {
		t.AppendRow(table.Row{e.Title, e.Category, strings.Join(e.TagList(), ", ")})
	}
	t.Render()
}
