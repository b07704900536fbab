// Package cmd implements the westbourne command line: the web server and
// the maintenance tasks that share its configuration.
package cmd

import (
	"context"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/westbourne-advisory/website/config"
)

// appConfig is the environment map loaded before any subcommand runs.
var appConfig map[string]string

var rootCmd = &cobra.Command{
	Use:   "westbourne",
	Short: "Westbourne Advisory website server",
	Long:  `Serves the Westbourne Advisory website and runs its maintenance tasks. Without a subcommand it runs serve.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		config.LoadDotEnv()
		appConfig = config.New()
		setupLogging(appConfig)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context(), appConfig)
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.AddCommand(newServeCommand())
	rootCmd.AddCommand(newMigrateCommand())
	rootCmd.AddCommand(newSitemapCommand())
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.ExecuteContext(context.Background())
}

// setupLogging configures the global logger from LOG_LEVEL and LOG_FORMAT.
func setupLogging(c map[string]string) {
	zerolog.SetGlobalLevel(parseLevel(config.GetString(c, "LOG_LEVEL", "info")))
	zerolog.TimeFieldFormat = time.RFC3339

	if config.GetString(c, "LOG_FORMAT", "console") == "json" {
		log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
		return
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
}

func parseLevel(level string) zerolog.Level {
	parsed, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || parsed == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return parsed
}
