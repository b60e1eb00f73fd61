package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"storefront-api/internal/metrics"
	"storefront-api/internal/repository"
)

func sessionsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sessions",
		Short: "Inspect and maintain server-side sessions",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "purge",
		Short: "Delete every expired session",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			db, err := openDatabase(ctx)
			if err != nil {
				return err
			}
			defer db.Close()

			removed, err := repository.NewSessionRepository(db.Pool).CleanExpired(ctx, time.Now().UTC())
			if err != nil {
				return err
			}
			metrics.RecordSessionsPurged(removed)

			fmt.Fprintf(cmd.OutOrStdout(), "purged %d expired sessions\n", removed)
			return nil
		},
	})

	return cmd
}
