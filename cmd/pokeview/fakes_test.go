package main

import (
	"bytes"
	"context"
	"io"
	"sync"
	"testing"

	"github.com/cristianoliveira/pokeview/internal/api"
	"github.com/cristianoliveira/pokeview/internal/appstate"
	"github.com/cristianoliveira/pokeview/internal/colors"
	"github.com/cristianoliveira/pokeview/internal/domain"
	"github.com/cristianoliveira/pokeview/internal/prefs"
	"github.com/cristianoliveira/pokeview/internal/storage/sqlite"
	"github.com/cristianoliveira/pokeview/internal/team"
	"github.com/spf13/cobra"
)

// memCatalog is an in-memory api.Catalog.
type memCatalog struct {
	mu      sync.Mutex
	pokemon map[int]domain.Pokemon
	reviews map[int][]domain.Review
}

func newMemCatalog(items ...domain.Pokemon) *memCatalog {
	c := &memCatalog{pokemon: map[int]domain.Pokemon{}, reviews: map[int][]domain.Review{}}
	for _, p := range items {
		c.pokemon[p.ID] = p
	}
	return c
}

func (c *memCatalog) ListPokemon(context.Context, domain.ListQuery) (domain.PokemonPage, error) {
	return domain.PokemonPage{}, nil
}

func (c *memCatalog) Pokemon(_ context.Context, id int) (domain.Pokemon, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	p, ok := c.pokemon[id]
	if !ok {
		return domain.Pokemon{}, api.ErrNotFound
	}
	return p, nil
}

func (c *memCatalog) Reviews(_ context.Context, id int) ([]domain.Review, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]domain.Review(nil), c.reviews[id]...), nil
}

func (c *memCatalog) AddReview(_ context.Context, r domain.Review) (domain.Review, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.reviews[r.PokemonID] = append(c.reviews[r.PokemonID], r)
	return r, nil
}

func (c *memCatalog) Types(context.Context) ([]string, error) { return domain.PokemonTypes, nil }

// fakeRuntime implements every command client over in-memory state.
type fakeRuntime struct {
	prefs   *prefs.Store
	catalog *memCatalog

	cleanupDays   int
	cleanupDryRun bool
	cleanupResult int
	cleanupErr    error

	seedOpts  sqlite.SeedOptions
	seedBytes []byte
	seedStats sqlite.SeedStats
	seedErr   error
}

func newFakeRuntime(items ...domain.Pokemon) *fakeRuntime {
	return &fakeRuntime{prefs: prefs.New(nil), catalog: newMemCatalog(items...)}
}

func (f *fakeRuntime) Prefs() (*prefs.Store, error)  { return f.prefs, nil }
func (f *fakeRuntime) Catalog() (api.Catalog, error) { return f.catalog, nil }

func (f *fakeRuntime) Team() (*team.Manager, error) {
	return team.NewManager(appstate.Load(f.prefs)), nil
}

func (f *fakeRuntime) CleanupStaleSessions(_ context.Context, days int, dryRun bool) (int, error) {
	f.cleanupDays = days
	f.cleanupDryRun = dryRun
	return f.cleanupResult, f.cleanupErr
}

func (f *fakeRuntime) ImportSeed(_ context.Context, r io.Reader, opts sqlite.SeedOptions) (sqlite.SeedStats, error) {
	f.seedOpts = opts
	f.seedBytes, _ = io.ReadAll(r)
	return f.seedStats, f.seedErr
}

func (f *fakeRuntime) Version() string { return "1.2.3" }

// execute runs c with args and returns everything written to the command
// and console streams.
func execute(t *testing.T, c *cobra.Command, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	c.SetOut(&out)
	c.SetErr(&out)
	c.SetArgs(args)
	colors.SetOutput(&out, &out)
	t.Cleanup(func() { colors.SetOutput(nil, nil) })

	err := c.Execute()
	return out.String(), err
}

var (
	bulbasaur = domain.Pokemon{ID: 1, Name: "bulbasaur", Types: []string{"grass", "poison"}}
	charizard = domain.Pokemon{ID: 6, Name: "charizard", Types: []string{"fire", "flying"}}
	pikachu   = domain.Pokemon{ID: 25, Name: "pikachu", Types: []string{"electric"}}
)
