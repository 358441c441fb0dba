package main

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"shuttle/internal/protocol"
	"shuttle/internal/slot"
)

func newChannelsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "channels",
		Short: "Show every channel and the state of its slots",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			store, err := slot.Open(cfg)
			if err != nil {
				return err
			}
			defer store.Close()

			rows := make([][]string, 0, len(protocol.Channels()))
			for _, channel := range protocol.Channels() {
				requestState, err := slotState(cmd, store, channel.RequestSlot)
				if err != nil {
					return err
				}
				responseState, err := slotState(cmd, store, channel.ResponseSlot)
				if err != nil {
					return err
				}
				rows = append(rows, []string{
					channel.Name,
					encodingLabel(channel.Encoding),
					channel.RequestSlot,
					requestState,
					channel.ResponseSlot,
					responseState,
				})
			}

			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"Channel", "Encoding", "Request Slot", "Request", "Response Slot", "Response"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignLeft, alignRight, alignLeft, alignRight},
			))
			return nil
		},
	}
}

func slotState(cmd *cobra.Command, store slot.Store, name string) (string, error) {
	content, err := store.Read(cmd.Context(), name)
	if err != nil {
		return "", fmt.Errorf("read slot %s: %w", name, err)
	}
	content = bytes.TrimSpace(content)
	if len(content) == 0 {
		return "empty", nil
	}
	return strconv.Itoa(len(content)) + " B", nil
}

func encodingLabel(encoding protocol.Encoding) string {
	if encoding == protocol.EncodingText {
		return "text"
	}
	return "json"
}
