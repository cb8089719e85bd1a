package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/m04kA/SMC-SlotLedger/internal/config"
	"github.com/m04kA/SMC-SlotLedger/internal/infra/migrations"
)

func newMigrateCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply database migrations (postgres driver only)",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context(), opts.configPath, appOptions{})
			if err != nil {
				return err
			}
			defer a.Close()

			if a.cfg.Ledger.Driver != config.DriverPostgres {
				return fmt.Errorf("migrate: driver %q has no schema to migrate", a.cfg.Ledger.Driver)
			}

			applied, err := runMigrations(cmd.Context(), a)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "applied %d migration(s)\n", applied)
			return nil
		},
	}
}

func runMigrations(ctx context.Context, a *app) (int, error) {
	applied, err := migrations.Up(ctx, a.sqlDB, a.log)
	if err != nil {
		return applied, fmt.Errorf("migrations failed: %w", err)
	}
	a.log.Info("Migrations: %d applied", applied)
	return applied, nil
}
