package api

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cristianoliveira/pokeview/internal/domain"
	"github.com/cristianoliveira/pokeview/internal/storage/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLocalCatalog(t *testing.T) *LocalCatalog {
	t.Helper()
	s, err := sqlite.Open(filepath.Join(t.TempDir(), "catalog.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	seed := "pokemon:\n  - {id: 25, name: pikachu, types: [electric], base_experience: 112}\n"
	_, err = s.ImportSeed(context.Background(), strings.NewReader(seed), sqlite.SeedOptions{Format: sqlite.SeedYAML})
	require.NoError(t, err)
	return NewLocalCatalog(s)
}

func TestLocalCatalogTranslatesNotFound(t *testing.T) {
	c := newLocalCatalog(t)
	ctx := context.Background()

	_, err := c.Pokemon(ctx, 1)
	require.ErrorIs(t, err, ErrNotFound)
	_, err = c.Reviews(ctx, 0)
	require.ErrorIs(t, err, ErrNotFound)
	_, err = c.AddReview(ctx, domain.Review{Rating: 1, Description: "x", UserID: "1", PokemonID: 2})
	require.ErrorIs(t, err, ErrNotFound)
}

func TestLocalCatalogRoundTrip(t *testing.T) {
	c := newLocalCatalog(t)
	ctx := context.Background()

	page, err := c.ListPokemon(ctx, domain.ListQuery{Search: "pika"})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)

	_, err = c.AddReview(ctx, domain.Review{Rating: 5, Description: "zap", UserID: "1", PokemonID: 25})
	require.NoError(t, err)

	reviews, err := c.Reviews(ctx, 25)
	require.NoError(t, err)
	assert.Len(t, reviews, 1)

	types, err := c.Types(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"electric"}, types)
}
