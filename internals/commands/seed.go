package commands

import (
	"time"

	"github.com/spf13/cobra"

	database "msns_backend/internals/databases"
	"msns_backend/internals/seeds"
)

func newSeedCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Insert default tags and the current academic session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, logger, db, err := bootstrap()
			if err != nil {
				return err
			}
			defer database.Close(db)
			return seeds.RunAllSeeds(db.WithContext(cmd.Context()), logger, time.Now())
		},
	}
}
