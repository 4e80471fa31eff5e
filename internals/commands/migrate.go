package commands

import (
	"github.com/spf13/cobra"

	database "msns_backend/internals/databases"
)

func newMigrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, logger, db, err := bootstrap()
			if err != nil {
				return err
			}
			defer database.Close(db)

			if err := database.Migrate(db); err != nil {
				return err
			}
			logger.Info().Int("tables", len(database.Models())).Msg("migration complete")
			return nil
		},
	}
}
