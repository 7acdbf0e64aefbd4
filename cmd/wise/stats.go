package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Veraticus/waste-wise/internal/cli"
)

func statsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show your classification total and daily streak",
		Long: `Show how many items you have classified and your current streak of
consecutive days with at least one classification. A streak that was not
continued yesterday or today is reset to zero.`,
		Args: cobra.NoArgs,
		RunE: runStats,
	}

	reset := &cobra.Command{
		Use:   "reset",
		Short: "Reset the total and the streak",
		Args:  cobra.NoArgs,
		RunE:  runStatsReset,
	}
	reset.Flags().BoolP("force", "f", false, "Skip confirmation prompt")
	cmd.AddCommand(reset)

	return cmd
}

func runStats(cmd *cobra.Command, _ []string) error {
	a, cleanup, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	return a.renderer.RenderStats(a.stats.Current(cmd.Context()))
}

func runStatsReset(cmd *cobra.Command, _ []string) error {
	force, _ := cmd.Flags().GetBool("force")
	ctx := cmd.Context()

	a, cleanup, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	if !force {
		prompter := cli.NewPrompter(cmd.InOrStdin(), cmd.OutOrStdout(), a.styles())
		ok, err := prompter.Confirm(ctx, "Reset your total and streak to zero?")
		if err != nil {
			return err
		}
		if !ok {
			return a.renderer.Info("Stats left unchanged.")
		}
	}

	if err := a.stats.Reset(ctx); err != nil {
		return fmt.Errorf("failed to reset stats: %w", err)
	}
	return a.renderer.Success("Stats reset")
}
