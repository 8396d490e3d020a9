// Package api provides access to the pokemon catalog: a JSON client for the
// catalog server, a local adapter over the catalog database and a caching
// wrapper that de-duplicates in-flight queries.
package api

import (
	"context"
	"errors"
	"fmt"

	"github.com/cristianoliveira/pokeview/internal/domain"
)

// ErrNotFound indicates an unknown pokemon.
var ErrNotFound = errors.New("pokemon not found")

// Catalog is the query and mutation surface used by the UI.
type Catalog interface {
	ListPokemon(ctx context.Context, q domain.ListQuery) (domain.PokemonPage, error)
	Pokemon(ctx context.Context, id int) (domain.Pokemon, error)
	Reviews(ctx context.Context, pokemonID int) ([]domain.Review, error)
	AddReview(ctx context.Context, r domain.Review) (domain.Review, error)
	Types(ctx context.Context) ([]string, error)
}

// RemoteError is a non-success response from the catalog server.
type RemoteError struct {
	Status  int
	Message string
}

func (e *RemoteError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("request failed with status %d", e.Status)
	}
	return e.Message
}
