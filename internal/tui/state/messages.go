// Package state provides the pokeview bubbletea model.
package state

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/cristianoliveira/pokeview/internal/api"
	"github.com/cristianoliveira/pokeview/internal/domain"
)

// listLoadedMsg carries one page of the listing for the query with key.
type listLoadedMsg struct {
	key  string
	page domain.PokemonPage
	err  error
}

// pokemonLoadedMsg carries a detail read.
type pokemonLoadedMsg struct {
	id      int
	pokemon domain.Pokemon
	err     error
}

// reviewsLoadedMsg carries the result of the reviews query.
type reviewsLoadedMsg struct {
	id      int
	reviews []domain.Review
	err     error
}

// reviewSubmittedMsg carries the mutation result and the refetched reviews.
type reviewSubmittedMsg struct {
	id         int
	reviews    []domain.Review
	err        error
	refetchErr error
}

// typesLoadedMsg carries the known pokemon types.
type typesLoadedMsg struct {
	types []string
	err   error
}

// clearStatusMsg clears the status line if no newer message was shown.
type clearStatusMsg struct {
	seq int
}

func fetchListCmd(c api.Catalog, q domain.ListQuery, timeout time.Duration) tea.Cmd {
	key := q.Key()
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		page, err := c.ListPokemon(ctx, q)
		return listLoadedMsg{key: key, page: page, err: err}
	}
}

func fetchPokemonCmd(c api.Catalog, id int, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		p, err := c.Pokemon(ctx, id)
		return pokemonLoadedMsg{id: id, pokemon: p, err: err}
	}
}

func fetchReviewsCmd(c api.Catalog, id int, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		reviews, err := c.Reviews(ctx, id)
		return reviewsLoadedMsg{id: id, reviews: reviews, err: err}
	}
}

func fetchTypesCmd(c api.Catalog, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		types, err := c.Types(ctx)
		return typesLoadedMsg{types: types, err: err}
	}
}

// submitReviewCmd sends the mutation and then re-issues the reviews query.
func submitReviewCmd(c api.Catalog, r domain.Review, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		if _, err := c.AddReview(ctx, r); err != nil {
			return reviewSubmittedMsg{id: r.PokemonID, err: err}
		}
		reviews, err := c.Reviews(ctx, r.PokemonID)
		return reviewSubmittedMsg{id: r.PokemonID, reviews: reviews, refetchErr: err}
	}
}

func clearStatusAfter(d time.Duration, seq int) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return clearStatusMsg{seq: seq}
	})
}
