// Package cmd implements the command-line interface for secnews.
package cmd

import (
	"context"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/jonesrussell/secnews/cmd/crawl"
	"github.com/jonesrussell/secnews/cmd/httpd"
	"github.com/jonesrussell/secnews/cmd/maintain"
	cmdscheduler "github.com/jonesrussell/secnews/cmd/scheduler"
	"github.com/jonesrussell/secnews/cmd/search"
	cmdsources "github.com/jonesrussell/secnews/cmd/sources"
)

var (
	// cfgFile holds the path to the configuration file.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   "secnews",
		Short: "Security news ingestion and knowledge base",
		Long: `secnews crawls security news sites, classifies and summarizes
articles, and synthesizes a searchable knowledge base from them.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}
)

// Execute runs the root command.
func Execute() error {
	// Load .env early so environment variables are available to Viper.
	_ = godotenv.Load()

	return rootCmd.ExecuteContext(context.Background())
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile,
		"config",
		"",
		"config file (default is ./config.yaml)",
	)

	rootCmd.AddCommand(crawl.Command(&cfgFile))
	rootCmd.AddCommand(httpd.Command(&cfgFile))
	rootCmd.AddCommand(cmdscheduler.Command(&cfgFile))
	rootCmd.AddCommand(search.Command(&cfgFile))
	rootCmd.AddCommand(cmdsources.Command(&cfgFile))
	rootCmd.AddCommand(maintain.ReclassifyCommand(&cfgFile))
	rootCmd.AddCommand(maintain.RegenerateCommand(&cfgFile))
}
