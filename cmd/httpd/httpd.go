// Package httpd implements the HTTP API server command.
package httpd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/jonesrussell/secnews/internal/app"
)

// Command returns the httpd command.
func Command(cfgFile *string) *cobra.Command {
	return &cobra.Command{
		Use:   "httpd",
		Short: "Serve the HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			application, err := app.New(ctx, *cfgFile)
			if err != nil {
				return err
			}
			defer application.Close()

			return application.Router().Start(ctx)
		},
	}
}
