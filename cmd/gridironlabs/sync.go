package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/zackmeach/gridironlabs/internal/db"
	"github.com/zackmeach/gridironlabs/internal/export"
)

func syncCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sync",
		Short: "Upsert the processed tables into Postgres (requires DATABASE_URL)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(true, func(a *app) error {
				ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
				defer cancel()

				a.logger.Info("Connecting to database...")
				pool, err := db.New(ctx, a.cfg)
				if err != nil {
					return err
				}
				defer pool.Close()
				a.logger.Info("Database connected",
					"min_conns", a.cfg.DBPoolMinConns,
					"max_conns", a.cfg.DBPoolMaxConns)

				start := time.Now()
				result, err := export.New(pool, a.repo, a.logger).Sync(ctx)
				if err != nil {
					return fmt.Errorf("sync: %w", err)
				}
				a.logger.Info("Sync finished", "duration", time.Since(start).Round(time.Millisecond), "summary", result.Summary())

				w := cmd.OutOrStdout()
				fmt.Fprintln(w, result.Summary())
				for _, e := range result.Errors {
					fmt.Fprintf(w, "  error: %s\n", e)
				}
				if len(result.Errors) > 0 && result.Total() == 0 {
					return fmt.Errorf("sync wrote no rows (%d errors)", len(result.Errors))
				}
				return nil
			})
		},
	}
}
