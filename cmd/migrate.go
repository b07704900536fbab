package cmd

import (
	"errors"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/westbourne-advisory/website/config"
	"github.com/westbourne-advisory/website/database"
	"github.com/westbourne-advisory/website/models"
)

func newMigrateCommand() *cobra.Command {
	var reportOnly bool

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the submission tables",
		RunE: func(cmd *cobra.Command, args []string) error {
			dsn := config.GetString(appConfig, "DATABASE_URL", "")
			if dsn == "" {
				return errors.New("DATABASE_URL is required")
			}

			gdb, err := database.Open(dsn, "")
			if err != nil {
				return err
			}
			db := database.New(gdb)
			defer db.Close()

			mismatches, err := models.ColumnMismatchReport(gdb)
			if err != nil {
				return err
			}
			for _, m := range mismatches {
				log.Warn().
					Str("table", m.Table).
					Str("columns", strings.Join(m.Columns, ", ")).
					Msg("Columns in database but not in model")
			}
			if reportOnly {
				log.Info().Int("tables", len(mismatches)).Msg("Column report complete")
				return nil
			}

			if err := db.Migrate(); err != nil {
				return err
			}
			log.Info().Msg("Migration complete")
			return nil
		},
	}

	cmd.Flags().BoolVar(&reportOnly, "report", false, "only report columns the models no longer have")
	return cmd
}
