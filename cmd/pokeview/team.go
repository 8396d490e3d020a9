/*
Copyright © 2026 Cristian Oliveira <license@cristianoliveira.dev>
*/
package main

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/cristianoliveira/pokeview/cmd"
	"github.com/cristianoliveira/pokeview/internal/api"
	"github.com/cristianoliveira/pokeview/internal/colors"
	"github.com/cristianoliveira/pokeview/internal/domain"
	"github.com/cristianoliveira/pokeview/internal/search"
	"github.com/cristianoliveira/pokeview/internal/team"
	"github.com/spf13/cobra"
)

type teamClient interface {
	Team() (*team.Manager, error)
	Catalog() (api.Catalog, error)
}

// NewTeamCmd creates the team command with explicit dependencies.
func NewTeamCmd(client teamClient) *cobra.Command {
	if client == nil {
		panic("NewTeamCmd: client dependency cannot be nil")
	}

	teamCmd := &cobra.Command{
		Use:   "team",
		Short: "Manage your team of up to six pokemon",
		Long: `Manage your team of up to six pokemon.

The team is shared by every terminal session and by the TUI.`,
	}

	var searchFlag string
	var matchFlag string
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List the team",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			manager, catalog, err := teamDeps(client)
			if err != nil {
				return err
			}
			roster := manager.Roster()
			if len(roster) == 0 {
				cmd.Println("Your team is empty")
				return nil
			}

			members := make([]domain.Pokemon, 0, len(roster))
			for _, id := range roster {
				p, err := lookupPokemon(cmd, catalog, id)
				if err != nil {
					colors.Warning(fmt.Sprintf("pokemon %s: %v", id, err))
					continue
				}
				members = append(members, p)
			}
			if searchFlag != "" {
				matcher, err := teamMatcher(matchFlag)
				if err != nil {
					return err
				}
				members = search.Filter(matcher, members, searchFlag)
			}
			printPokemon(cmd.OutOrStdout(), members)
			return nil
		},
	}
	listCmd.Flags().StringVar(&searchFlag, "search", "", "Only show members whose name or type matches")
	listCmd.Flags().StringVar(&matchFlag, "match", "token", "How --search matches: token (name and types) or substring (name only)")

	addCmd := &cobra.Command{
		Use:   "add <id>",
		Short: "Add a pokemon to the team",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			manager, catalog, err := teamDeps(client)
			if err != nil {
				return err
			}
			p, err := lookupPokemon(cmd, catalog, args[0])
			if err != nil {
				return err
			}
			if err := manager.Add(p.IDString()); err != nil {
				return err
			}
			colors.Success(fmt.Sprintf("%s joined your team (%d/%d)", p.DisplayName(), len(manager.Roster()), team.MaxSize))
			return nil
		},
	}

	removeCmd := &cobra.Command{
		Use:   "remove <id>",
		Short: "Remove a pokemon from the team",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			manager, err := client.Team()
			if err != nil {
				return err
			}
			id := strings.TrimSpace(args[0])
			if !manager.IsMember(id) {
				cmd.Printf("Pokemon %s is not in your team\n", id)
				return nil
			}
			manager.Remove(id)
			colors.Success(fmt.Sprintf("Pokemon %s left your team", id))
			return nil
		},
	}

	teamCmd.AddCommand(listCmd, addCmd, removeCmd)
	return teamCmd
}

func teamMatcher(name string) (search.Matcher, error) {
	for _, m := range []search.Matcher{search.TokenMatcher{}, search.SubstringMatcher{}} {
		if m.Name() == name {
			return m, nil
		}
	}
	return nil, fmt.Errorf("unknown match mode %q: must be token or substring", name)
}

func teamDeps(client teamClient) (*team.Manager, api.Catalog, error) {
	manager, err := client.Team()
	if err != nil {
		return nil, nil, err
	}
	catalog, err := client.Catalog()
	if err != nil {
		return nil, nil, err
	}
	return manager, catalog, nil
}

// lookupPokemon resolves a numeric id argument against the catalog.
func lookupPokemon(cmd *cobra.Command, catalog api.Catalog, arg string) (domain.Pokemon, error) {
	id, err := strconv.Atoi(strings.TrimSpace(arg))
	if err != nil || id <= 0 {
		return domain.Pokemon{}, fmt.Errorf("invalid pokemon id %q", arg)
	}
	p, err := catalog.Pokemon(commandContext(cmd), id)
	if errors.Is(err, api.ErrNotFound) {
		return domain.Pokemon{}, fmt.Errorf("pokemon %d not found", id)
	}
	return p, err
}

func printPokemon(w io.Writer, items []domain.Pokemon) {
	for _, p := range items {
		fmt.Fprintf(w, "#%-4d %-14s %s\n", p.ID, p.DisplayName(), strings.Join(p.Types, ", "))
	}
}

func init() {
	cmd.RootCmd.AddCommand(NewTeamCmd(defaultRuntime))
}
