// Command storefrontctl performs operator tasks against the storefront database.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"storefront-api/internal/config"
	"storefront-api/internal/database"
	"storefront-api/internal/logger"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var logLevel string

	cmd := &cobra.Command{
		Use:           "storefrontctl",
		Short:         "Operator commands for the storefront API",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			slog.SetDefault(logger.New(cmd.ErrOrStderr(), "development", logger.ParseLevel(logLevel)))
		},
	}

	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")

	cmd.AddCommand(userCmd(), sessionsCmd())
	return cmd
}

// openDatabase connects with the same environment the server reads.
func openDatabase(ctx context.Context) (*database.DB, error) {
	cfg := config.Read()
	if err := cfg.ValidateDatabase(); err != nil {
		return nil, err
	}

	db, err := database.New(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
	if err != nil {
		return nil, err
	}

	if err := db.EnsureSchema(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}
