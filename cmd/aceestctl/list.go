package main

import (
	"fmt"

	"github.com/claude/aceest/internal/ui"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List logged workouts",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		resp, err := apiClient.ListWorkouts(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to list workouts: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), ui.FormatWorkouts(resp))
		return nil
	},
}

var totalCmd = &cobra.Command{
	Use:   "total",
	Short: "Show total training time",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		resp, err := apiClient.ListWorkouts(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to fetch workouts: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), ui.FormatTotal(resp.TotalDuration))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(totalCmd)
}
