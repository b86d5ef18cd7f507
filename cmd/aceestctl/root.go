package main

import (
	"os"

	"github.com/claude/aceest/internal/client"
	"github.com/spf13/cobra"
)

const defaultServerURL = "http://localhost:5000"

var (
	serverURL string
	apiClient *client.Client
)

var rootCmd = &cobra.Command{
	Use:   "aceestctl",
	Short: "Command-line client for the ACEest workout tracker",
	Long: `Log and review workouts on an ACEest server.

Examples:
  aceestctl add Push-ups 30
  aceestctl list
  aceestctl total
  aceestctl --server http://gym:5000 reset`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		apiClient = client.New(serverURL)
	},
}

func init() {
	def := os.Getenv("ACEEST_SERVER_URL")
	if def == "" {
		def = defaultServerURL
	}
	rootCmd.PersistentFlags().StringVarP(&serverURL, "server", "s", def, "tracker base URL (env ACEEST_SERVER_URL)")
}
