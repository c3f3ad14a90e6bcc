package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

func newSweepCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "sweep",
		Short: "Remove expired conversation bindings once",
		RunE: func(cmd *cobra.Command, _ []string) error {
			removed, err := app.sessions.SweepExpired(cmd.Context(), app.now())
			if err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "removed %d expired session(s)\n", removed)
			return err
		},
	}
}

func newServeCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the expiry sweeper until interrupted",
		RunE: func(cmd *cobra.Command, _ []string) error {
			parent := cmd.Context()
			if parent == nil {
				parent = context.Background()
			}
			ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
			defer stop()

			if removed, err := app.sessions.SweepExpired(ctx, app.now()); err != nil {
				app.logger.Error("sweep_failed", "error", err)
			} else if removed > 0 {
				app.logger.Info("sessions_expired", "removed", removed)
			}

			app.sessions.RunSweeper(ctx, app.sweepInterval)
			return nil
		},
	}
}
