// Package crawl implements the one-shot ingestion command.
package crawl

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/jonesrussell/secnews/internal/app"
	"github.com/jonesrussell/secnews/internal/domain"
)

// Command returns the crawl command.
func Command(cfgFile *string) *cobra.Command {
	return &cobra.Command{
		Use:   "crawl",
		Short: "Run one ingestion pass over all active sources",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			application, err := app.New(ctx, *cfgFile)
			if err != nil {
				return err
			}
			defer application.Close()

			summary, err := application.Pipeline.RunAll(ctx)
			if err != nil {
				return fmt.Errorf("ingestion run failed: %w", err)
			}

			renderSummary(summary)
			return nil
		},
	}
}

// renderSummary prints the per-source outcome table.
func renderSummary(summary *domain.RunSummary) {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Source", "Added", "Skipped", "Status"})

	for i := range summary.Sources {
		src := &summary.Sources[i]

		status := "ok"
		if src.Failed {
			status = "failed: " + src.Error
		}

		skipped := 0
		for _, count := range src.SkipCounts() {
			skipped += count
		}

		t.AppendRow(table.Row{src.Source, src.Added, skipped, status})
	}

	t.AppendFooter(table.Row{"Total", summary.TotalAdded, "", summary.CompletedAt.Sub(summary.StartedAt).Round(time.Millisecond).String()})
	t.Render()
}
