/*
Copyright © 2026 Cristian Oliveira <license@cristianoliveira.dev>
*/
package main

import (
	"fmt"

	"github.com/cristianoliveira/pokeview/cmd"
	"github.com/cristianoliveira/pokeview/internal/api"
	"github.com/cristianoliveira/pokeview/internal/colors"
	"github.com/cristianoliveira/pokeview/internal/domain"
	"github.com/cristianoliveira/pokeview/internal/prefs"
	"github.com/cristianoliveira/pokeview/internal/review"
	"github.com/cristianoliveira/pokeview/internal/tui/render"
	"github.com/spf13/cobra"
)

type reviewClient interface {
	Prefs() (*prefs.Store, error)
	Catalog() (api.Catalog, error)
}

// NewReviewCmd creates the review command with explicit dependencies.
func NewReviewCmd(client reviewClient) *cobra.Command {
	if client == nil {
		panic("NewReviewCmd: client dependency cannot be nil")
	}

	reviewCmd := &cobra.Command{
		Use:   "review",
		Short: "List and write pokemon reviews",
	}

	listCmd := &cobra.Command{
		Use:   "list <id>",
		Short: "List the reviews of a pokemon",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog, err := client.Catalog()
			if err != nil {
				return err
			}
			p, err := lookupPokemon(cmd, catalog, args[0])
			if err != nil {
				return err
			}
			reviews, err := catalog.Reviews(commandContext(cmd), p.ID)
			if err != nil {
				return err
			}
			cmd.Printf("%s\n", p.DisplayName())
			if len(reviews) > 0 {
				s := domain.SummarizeRatings(reviews)
				cmd.Printf("Average %.2f, median %.1f, %d reviews\n", s.Mean, s.Median, s.Count)
			}
			cmd.Print(render.ReviewsMarkdown(reviews))
			return nil
		},
	}

	var ratingFlag int
	var textFlag string
	addCmd := &cobra.Command{
		Use:   "add <id>",
		Short: "Review a pokemon",
		Long: `Review a pokemon with a 1 to 5 star rating and a text.

Each user reviews a pokemon once.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog, err := client.Catalog()
			if err != nil {
				return err
			}
			store, err := client.Prefs()
			if err != nil {
				return err
			}
			p, err := lookupPokemon(cmd, catalog, args[0])
			if err != nil {
				return err
			}
			ctx := commandContext(cmd)
			reviews, err := catalog.Reviews(ctx, p.ID)
			if err != nil {
				return err
			}

			composer := review.NewComposer(store, p.ID, reviews)
			composer.SetRating(ratingFlag)
			composer.SetDescription(textFlag)
			if err := composer.Submit(ctx, catalog); err != nil {
				return err
			}
			colors.Success(composer.Message())
			cmd.Printf("%s now has %d reviews\n", p.DisplayName(), len(composer.Reviews()))
			return nil
		},
	}
	addCmd.Flags().IntVar(&ratingFlag, "rating", 0, fmt.Sprintf("Rating from %d to %d", domain.MinRating, domain.MaxRating))
	addCmd.Flags().StringVar(&textFlag, "text", "", "Review text")

	reviewCmd.AddCommand(listCmd, addCmd)
	return reviewCmd
}

func init() {
	cmd.RootCmd.AddCommand(NewReviewCmd(defaultRuntime))
}
