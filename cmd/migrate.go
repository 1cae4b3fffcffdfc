package cmd

import (
	"storefront/pkg/database"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		config, logger, err := bootstrap()
		if err != nil {
			return err
		}
		defer logger.Sync()

		db, err := database.InitDB(cmd.Context(), config.Database)
		if err != nil {
			logger.Error("Failed to connect to database", zap.Error(err))
			return err
		}
		defer db.Close()

		if err := database.Migrate(cmd.Context(), db); err != nil {
			logger.Error("Migration failed", zap.Error(err))
			return err
		}

		logger.Info("Schema applied")
		return nil
	},
}
