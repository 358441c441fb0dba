package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"shuttle/internal/logging"
	"shuttle/internal/logs"
)

func newLogsCommand(ctx *commandContext) *cobra.Command {
	var lines int
	var follow bool

	cmd := &cobra.Command{
		Use:   "logs",
		Short: "Show recent daemon log output",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logPath := logging.LogFilePath(cfg)
			if logPath == "" {
				return errors.New("no log directory configured")
			}

			tailed, offset, err := logs.Tail(logPath, lines)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, line := range tailed {
				fmt.Fprintln(out, line)
			}
			if !follow {
				return nil
			}

			return logs.Follow(cmd.Context(), logPath, offset, 0, func(line string) {
				fmt.Fprintln(out, line)
			})
		},
	}

	cmd.Flags().IntVarP(&lines, "lines", "n", 25, "Number of trailing lines to show")
	cmd.Flags().BoolVarP(&follow, "follow", "f", false, "Keep printing new log lines until interrupted")
	return cmd
}
