// Package sources implements the crawl source management commands.
package sources

import (
	"fmt"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/jonesrussell/secnews/internal/app"
	"github.com/jonesrussell/secnews/internal/domain"
)

// Command returns the sources command with its subcommands.
func Command(cfgFile *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sources",
		Short: "Manage crawl sources",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	cmd.AddCommand(listCommand(cfgFile))
	cmd.AddCommand(seedCommand(cfgFile))
	return cmd
}

func listCommand(cfgFile *string) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List configured crawl sources",
		RunE: func(cmd *cobra.Command, _ []string) error {
			application, err := app.New(cmd.Context(), *cfgFile)
			if err != nil {
				return err
			}
			defer application.Close()

			defs, err := application.Registry.All(cmd.Context())
			if err != nil {
				return err
			}

			renderSources(defs)
			return nil
		},
	}
}

func seedCommand(cfgFile *string) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Insert missing built-in sources",
		RunE: func(cmd *cobra.Command, _ []string) error {
			application, err := app.New(cmd.Context(), *cfgFile)
			if err != nil {
				return err
			}
			defer application.Close()

			// App construction already seeds; report the current state.
			defs, err := application.Registry.All(cmd.Context())
			if err != nil {
				return err
			}

			fmt.Printf("%d sources configured\n", len(defs))
			return nil
		},
	}
}

func renderSources(defs []*domain.SourceDefinition) {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Name", "URL", "Country", "Encoding", "Max Items", "Mode", "Active"})

	for _, def := range defs {
		mode := "heuristic"
		if def.SelectorConfig.ListItem != "" {
			mode = "selector"
		}

		t.AppendRow(table.Row{
			def.Name,
			def.URL,
			def.Country,
			def.Encoding,
			def.CandidateLimit(),
			mode,
			def.Active,
		})
	}

	t.Render()
}
