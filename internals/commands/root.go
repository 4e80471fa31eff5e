package commands

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"msns_backend/internals/configs"
	database "msns_backend/internals/databases"
)

// NewRootCommand builds `msns`; running it bare is the same as `msns serve`.
func NewRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "msns",
		Short:         "School administration backend",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	serve := newServeCommand()
	root.RunE = serve.RunE
	root.AddCommand(serve, newMigrateCommand(), newSeedCommand())
	return root
}

// bootstrap loads config, installs the logger and connects the database.
func bootstrap() (configs.Config, zerolog.Logger, *gorm.DB, error) {
	configs.LoadEnv()
	cfg, err := configs.Load()
	logger := configs.NewLogger(cfg.Logging)
	if err != nil {
		return cfg, logger, nil, err
	}
	db, err := database.Connect(cfg.Database, logger)
	if err != nil {
		return cfg, logger, nil, err
	}
	return cfg, logger, db, nil
}
