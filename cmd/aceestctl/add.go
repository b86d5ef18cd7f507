package main

import (
	"fmt"
	"strings"

	"github.com/claude/aceest/internal/client"
	"github.com/claude/aceest/internal/ui"
	"github.com/spf13/cobra"
)

var addCmd = &cobra.Command{
	Use:     "add <name> <minutes>",
	Aliases: []string{"a"},
	Short:   "Log a workout",
	Long: `Log a workout with its duration in whole minutes.

Flags go before the workout name; everything after it is read as
arguments, so a negative duration reaches the server's check.

Examples:
  aceestctl add Push-ups 30
  aceestctl add "Morning run" 45
  aceestctl --server http://gym:5000 add Cycling 20`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		msg, err := apiClient.AddWorkout(cmd.Context(), strings.TrimSpace(args[0]), strings.TrimSpace(args[1]))
		if err != nil {
			if client.IsRejected(err) {
				return err
			}
			return fmt.Errorf("failed to add workout: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), ui.Success(msg))
		return nil
	},
}

func init() {
	addCmd.Flags().SetInterspersed(false)
	rootCmd.AddCommand(addCmd)
}
