package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "activity-api",
	Short: "REST backend for activities, users and their posts",
	Long: `activity-api serves CRUD endpoints for the configured resource groups
(activities and users by default) and the posts attached to them.

Configuration comes from .env, an optional config.yaml and the environment.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(seedCmd)
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
