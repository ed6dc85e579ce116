// Package scheduler implements the recurring ingestion command.
package scheduler

import (
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/jonesrussell/secnews/internal/app"
	"github.com/jonesrussell/secnews/internal/scheduler"
)

// Command returns the scheduler command.
func Command(cfgFile *string) *cobra.Command {
	return &cobra.Command{
		Use:   "scheduler",
		Short: "Run ingestion on the configured cron schedule",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			application, err := app.New(ctx, *cfgFile)
			if err != nil {
				return err
			}
			defer application.Close()

			schedule := application.Config.Scheduler.CrawlSchedule
			if schedule == "" {
				return errors.New("scheduler.crawl_schedule is not configured")
			}

			sched, err := scheduler.New(schedule, application.Pipeline, application.Log)
			if err != nil {
				return err
			}

			sched.Start(ctx)
			return nil
		},
	}
}
