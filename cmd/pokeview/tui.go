/*
Copyright © 2026 Cristian Oliveira <license@cristianoliveira.dev>
*/
package main

import (
	"fmt"

	"github.com/cristianoliveira/pokeview/cmd"
	"github.com/cristianoliveira/pokeview/internal/tui/app"
	"github.com/spf13/cobra"
)

type tuiClient interface {
	TUIClient() (app.Client, error)
}

const tuiCommandLong = `Interactive terminal UI for the pokemon catalog.

USAGE:
    pokeview tui

Filters, sort order, page and search text belong to the terminal session and
are restored when the TUI starts again in the same session. The team roster
and reviews are shared by every session of the user.

KEY BINDINGS:
    j/k         Move up/down in the list
    n/p         Next/previous page
    /           Edit the search text (committed after a short pause)
    ctrl+u      Clear the search text
    f           Open the filter & sort editor (a: apply, r: reset, esc: cancel)
    t           Add or remove the selected pokemon from the team
    T           Open the team view (h/l: previous/next, 1-6: go to, x: remove)
    Enter       Open the detail page (tab: stats/abilities, w: write review)
    esc         Go back
    q           Quit`

// NewTUICmd creates the tui command with explicit dependencies.
func NewTUICmd(client tuiClient) *cobra.Command {
	if client == nil {
		panic("NewTUICmd: client dependency cannot be nil")
	}

	return &cobra.Command{
		Use:   "tui",
		Short: "Interactive terminal UI",
		Long:  tuiCommandLong,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := client.TUIClient()
			if err != nil {
				return err
			}
			model, err := c.CreateModel()
			if err != nil {
				return fmt.Errorf("failed to create TUI model: %w", err)
			}
			return c.RunProgram(model)
		},
	}
}

func init() {
	cmd.RootCmd.AddCommand(NewTUICmd(defaultRuntime))
}
