package main

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"shuttle/internal/client"
	"shuttle/internal/protocol"
)

// describeExchangeError keeps CLI failures actionable: a timeout means the
// daemon probably is not running.
func describeExchangeError(err error) error {
	if errors.Is(err, protocol.ErrTimeout) {
		return fmt.Errorf("service did not answer: %w (is shuttled running?)", err)
	}
	return err
}

func newPickCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "pick ITEM...",
		Short: "Ask the selection service for a random item",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withClient(func(c *client.Client) error {
				picked, err := c.PickString(cmd.Context(), args)
				if err != nil {
					return describeExchangeError(err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), picked)
				return nil
			})
		},
	}
}

func newFormatCommand(ctx *commandContext) *cobra.Command {
	var formatType string

	cmd := &cobra.Command{
		Use:   "format TEXT...",
		Short: "Ask the case-format service to transform text",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withClient(func(c *client.Client) error {
				result, err := c.Format(cmd.Context(), strings.Join(args, " "), formatType)
				if err != nil {
					return describeExchangeError(err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), result)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&formatType, "type", "t", "title", "Transform: upper, lower, title, or clean")
	return cmd
}

func newCountCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "count ITEM...",
		Short: "Ask the aggregate service to tally items",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withClient(func(c *client.Client) error {
				items := make([]any, len(args))
				for i, arg := range args {
					items[i] = arg
				}
				result, err := c.Count(cmd.Context(), items)
				if err != nil {
					return describeExchangeError(err)
				}

				fmt.Fprintf(cmd.OutOrStdout(), "total: %d  unique: %d\n", result.TotalCount, result.UniqueCount)

				names := make([]string, 0, len(result.ItemCounts))
				for name := range result.ItemCounts {
					names = append(names, name)
				}
				sort.Slice(names, func(i, j int) bool {
					if result.ItemCounts[names[i]] != result.ItemCounts[names[j]] {
						return result.ItemCounts[names[i]] > result.ItemCounts[names[j]]
					}
					return names[i] < names[j]
				})
				rows := make([][]string, 0, len(names))
				for _, name := range names {
					rows = append(rows, []string{name, strconv.Itoa(result.ItemCounts[name])})
				}
				fmt.Fprintln(cmd.OutOrStdout(), renderTable(
					[]string{"Item", "Count"},
					rows,
					[]columnAlignment{alignLeft, alignRight},
				))
				return nil
			})
		},
	}
}

func newStatsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "stats TEXT...",
		Short: "Ask the aggregate service for character and word counts",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withClient(func(c *client.Client) error {
				stats, err := c.Stats(cmd.Context(), strings.Join(args, " "))
				if err != nil {
					return describeExchangeError(err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "characters: %d  words: %d\n", stats.CharacterCount, stats.WordCount)
				return nil
			})
		},
	}
}

func newWordsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "words TEXT...",
		Short: "Ask the word-frequency service for the most frequent words",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withClient(func(c *client.Client) error {
				result, err := c.TopWords(cmd.Context(), strings.Join(args, " "))
				if err != nil {
					return describeExchangeError(err)
				}
				if result == "" {
					fmt.Fprintln(cmd.OutOrStdout(), "(no answer; is shuttled running?)")
					return nil
				}
				fmt.Fprintln(cmd.OutOrStdout(), result)
				return nil
			})
		},
	}
}
