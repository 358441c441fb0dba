package main

import (
	"fmt"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"shuttle/internal/daemon"
	"shuttle/internal/logging"
	"shuttle/internal/slot"
)

func newServeCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the worker daemon in the foreground",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			logger, err := logging.NewFromConfig(cfg)
			if err != nil {
				return fmt.Errorf("init logger: %w", err)
			}

			store, err := slot.Open(cfg)
			if err != nil {
				return fmt.Errorf("open slot store: %w", err)
			}
			defer store.Close()

			d, err := daemon.New(cfg, store, logger)
			if err != nil {
				return err
			}
			defer d.Close()

			runCtx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			if err := d.Start(runCtx); err != nil {
				return err
			}

			status := d.Status()
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "shuttled running (pid %d)\n", status.PID)
			fmt.Fprintf(out, "services: %s\n", strings.Join(status.Services, ", "))
			fmt.Fprintf(out, "backend: %s  data: %s\n", status.Backend, status.DataDir)
			fmt.Fprintln(out, "Press Ctrl+C to stop.")

			<-runCtx.Done()
			d.Stop()
			fmt.Fprintln(out, "stopped")
			return nil
		},
	}
}
