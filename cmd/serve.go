package cmd

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"storefront/internal/data/repository"
	"storefront/internal/usecase"
	"storefront/internal/wire"
	"storefront/pkg/database"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var migrateOnStart bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		config, logger, err := bootstrap()
		if err != nil {
			return err
		}
		defer logger.Sync()

		logger.Info("Starting application",
			zap.String("app", config.App.Name),
			zap.String("port", config.App.Port),
			zap.Bool("debug", config.App.Debug),
		)

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		db, err := database.InitDB(ctx, config.Database)
		if err != nil {
			logger.Error("Failed to connect to database", zap.Error(err))
			return err
		}
		defer db.Close()

		logger.Info("Database connected successfully")

		if migrateOnStart {
			if err := database.Migrate(ctx, db); err != nil {
				logger.Error("Migration failed", zap.Error(err))
				return err
			}
		}

		repos := repository.NewRepository(db, logger)
		app := wire.Wiring(repos, config, logger)

		go purgeSessions(ctx, app.Service.Auth, time.Hour, logger)

		return APIServer(ctx, app.Router, config.App.Port, logger)
	},
}

func init() {
	serveCmd.Flags().BoolVar(&migrateOnStart, "migrate", false, "apply the schema before serving")
}

// purgeSessions deletes expired session rows until ctx is done.
func purgeSessions(ctx context.Context, auth usecase.AuthService, every time.Duration, logger *zap.Logger) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := auth.PurgeExpiredSessions(ctx); err != nil {
				logger.Warn("Failed to purge expired sessions", zap.Error(err))
			}
		}
	}
}
