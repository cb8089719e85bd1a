package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/m04kA/SMC-SlotLedger/internal/config"
)

func newServeCmd(opts *rootOptions) *cobra.Command {
	var migrateUp bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			a, err := newApp(ctx, opts.configPath, appOptions{withMetrics: true})
			if err != nil {
				return err
			}
			defer a.Close()

			a.log.Info("Starting slotledger %s (driver=%s)", Version, a.cfg.Ledger.Driver)

			if migrateUp {
				if a.cfg.Ledger.Driver != config.DriverPostgres {
					a.log.Info("Migrations skipped: driver %s has no schema", a.cfg.Ledger.Driver)
				} else if _, err := runMigrations(ctx, a); err != nil {
					return err
				}
			}

			router, err := newRouter(a)
			if err != nil {
				return err
			}

			addr := fmt.Sprintf(":%d", a.cfg.Server.HTTPPort)
			srv := &http.Server{
				Addr:         addr,
				Handler:      router,
				ReadTimeout:  time.Duration(a.cfg.Server.ReadTimeout) * time.Second,
				WriteTimeout: time.Duration(a.cfg.Server.WriteTimeout) * time.Second,
				IdleTimeout:  time.Duration(a.cfg.Server.IdleTimeout) * time.Second,
			}

			errCh := make(chan error, 1)
			go func() {
				a.log.Info("Starting server on %s", addr)
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					errCh <- err
				}
				close(errCh)
			}()

			// Ожидаем сигнал завершения или падение сервера
			select {
			case <-ctx.Done():
			case err, ok := <-errCh:
				if ok && err != nil {
					return fmt.Errorf("server failed: %w", err)
				}
			}

			a.log.Info("Shutting down server...")

			shutdownCtx, shutdownCancel := context.WithTimeout(
				context.Background(),
				time.Duration(a.cfg.Server.ShutdownTimeout)*time.Second,
			)
			defer shutdownCancel()

			if err := srv.Shutdown(shutdownCtx); err != nil {
				a.log.Error("Server forced to shutdown: %v", err)
				return err
			}

			a.log.Info("Server stopped gracefully")
			return nil
		},
	}

	cmd.Flags().BoolVar(&migrateUp, "migrate", false, "apply database migrations before serving (postgres only)")
	cmd.Flags().Lookup("migrate").NoOptDefVal = "true"

	return cmd
}
