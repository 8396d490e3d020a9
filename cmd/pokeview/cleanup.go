/*
Copyright © 2026 Cristian Oliveira <license@cristianoliveira.dev>
*/
package main

import (
	"context"
	"fmt"

	"github.com/cristianoliveira/pokeview/cmd"
	"github.com/cristianoliveira/pokeview/internal/config"
	"github.com/spf13/cobra"
)

type cleanupClient interface {
	CleanupStaleSessions(ctx context.Context, days int, dryRun bool) (int, error)
}

// NewCleanupCmd creates the cleanup command with explicit dependencies.
func NewCleanupCmd(client cleanupClient) *cobra.Command {
	if client == nil {
		panic("NewCleanupCmd: client dependency cannot be nil")
	}

	var daysFlag int
	var dryRunFlag bool

	cleanupCmd := &cobra.Command{
		Use:   "cleanup",
		Short: "Remove preferences of idle terminal sessions",
		Long: `Remove preferences of idle terminal sessions.

Each terminal session keeps its own filters, sort order, page and search
text. Sessions that have not been touched for more than the configured
number of days are removed. The team roster and user id are kept.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			days := daysFlag
			if days == 0 {
				days = config.GetInt("session_cleanup_days", 7)
			}
			if days <= 0 {
				return fmt.Errorf("days must be a positive integer")
			}

			cmd.Printf("Starting cleanup of sessions idle for more than %d days\n", days)

			n, err := client.CleanupStaleSessions(commandContext(cmd), days, dryRunFlag)
			if err != nil {
				return fmt.Errorf("cleanup failed: %w", err)
			}

			if dryRunFlag {
				cmd.Printf("Would remove %d sessions\n", n)
				return nil
			}
			cmd.Printf("Removed %d sessions\n", n)
			return nil
		},
	}

	// Default days 0 means "use config value"
	cleanupCmd.Flags().IntVar(&daysFlag, "days", 0, "Remove sessions idle for more than N days (default: POKEVIEW_SESSION_CLEANUP_DAYS config value)")
	cleanupCmd.Flags().BoolVar(&dryRunFlag, "dry-run", false, "Show how many sessions would be removed without removing them")

	return cleanupCmd
}

func init() {
	cmd.RootCmd.AddCommand(NewCleanupCmd(defaultRuntime))
}
