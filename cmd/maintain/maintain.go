// Package maintain implements batch maintenance commands over ingested data.
package maintain

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/jonesrussell/secnews/internal/app"
)

// ReclassifyCommand returns the reclassify command.
func ReclassifyCommand(cfgFile *string) *cobra.Command {
	return &cobra.Command{
		Use:   "reclassify",
		Short: "Rerun the classifier over all stored articles",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			application, err := app.New(ctx, *cfgFile)
			if err != nil {
				return err
			}
			defer application.Close()

			updated, err := application.Maintainer.Reclassify(ctx)
			if err != nil {
				return err
			}

			fmt.Printf("%d articles reclassified\n", updated)
			return nil
		},
	}
}

// RegenerateCommand returns the wiki regeneration command.
func RegenerateCommand(cfgFile *string) *cobra.Command {
	return &cobra.Command{
		Use:   "wiki-regenerate",
		Short: "Regenerate auto-generated knowledge entry bodies",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			application, err := app.New(ctx, *cfgFile)
			if err != nil {
				return err
			}
			defer application.Close()

			regenerated, err := application.Maintainer.RegenerateWiki(ctx)
			if err != nil {
				return err
			}

			fmt.Printf("%d entries regenerated\n", regenerated)
			return nil
		},
	}
}
