package cmd

import (
	"context"
	"fmt"
	"os"

	"storefront/pkg/utils"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var envFile string

var rootCmd = &cobra.Command{
	Use:           "storefront",
	Short:         "Storefront API: catalog, cart, checkout and admin",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env", ".env", "path to the dotenv file")
	rootCmd.AddCommand(serveCmd, migrateCmd)
}

// Execute runs the command line. Without a subcommand it serves.
func Execute() {
	if len(os.Args) == 1 {
		rootCmd.SetArgs([]string{"serve"})
	}
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// bootstrap loads config and builds the logger shared by every command.
func bootstrap() (*utils.Config, *zap.Logger, error) {
	config, err := utils.LoadConfig(envFile)
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}

	logger, err := utils.InitLogger(config.App.LogPath, config.App.Name, config.App.Debug)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to init logger: %v. Using production logger.\n", err)
		logger, _ = zap.NewProduction()
	}

	return config, logger, nil
}
