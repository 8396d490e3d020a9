package api

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/cristianoliveira/pokeview/internal/domain"
	"golang.org/x/sync/singleflight"
)

// Cached wraps a Catalog. Concurrent queries with the same key share one
// request. Listing, detail and type results are kept until invalidated;
// reviews are always fetched. A successful AddReview invalidates the
// detail of the reviewed pokemon and every listing page.
type Cached struct {
	next  Catalog
	group singleflight.Group

	mu      sync.Mutex
	entries map[string]any
	gen     uint64
}

// NewCached wraps next.
func NewCached(next Catalog) *Cached {
	if next == nil {
		panic("api: catalog cannot be nil")
	}
	return &Cached{next: next, entries: map[string]any{}}
}

func pokemonKey(id int) string { return fmt.Sprintf("pokemon:%d", id) }

const typesKey = "types"

func (c *Cached) lookup(key string) (any, bool, uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.entries[key]
	return v, ok, c.gen
}

func (c *Cached) store(key string, v any, gen uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	// an invalidation happened while the request was in flight
	if gen != c.gen {
		return
	}
	c.entries[key] = v
}

// Invalidate drops the cached entries for keys.
func (c *Cached) Invalidate(keys ...string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gen++
	for _, key := range keys {
		delete(c.entries, key)
	}
}

// InvalidateLists drops every cached listing page.
func (c *Cached) InvalidateLists() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gen++
	for key := range c.entries {
		if strings.HasPrefix(key, domain.ListKeyPrefix) {
			delete(c.entries, key)
		}
	}
}

func cachedQuery[T any](c *Cached, key string, fetch func() (T, error)) (T, error) {
	if v, ok, _ := c.lookup(key); ok {
		return v.(T), nil
	}
	v, err, _ := c.group.Do(key, func() (any, error) {
		_, _, gen := c.lookup(key)
		v, err := fetch()
		if err != nil {
			return nil, err
		}
		c.store(key, v, gen)
		return v, nil
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return v.(T), nil
}

func (c *Cached) ListPokemon(ctx context.Context, q domain.ListQuery) (domain.PokemonPage, error) {
	return cachedQuery(c, q.Key(), func() (domain.PokemonPage, error) {
		return c.next.ListPokemon(ctx, q)
	})
}

func (c *Cached) Pokemon(ctx context.Context, id int) (domain.Pokemon, error) {
	return cachedQuery(c, pokemonKey(id), func() (domain.Pokemon, error) {
		return c.next.Pokemon(ctx, id)
	})
}

func (c *Cached) Types(ctx context.Context) ([]string, error) {
	return cachedQuery(c, typesKey, func() ([]string, error) {
		return c.next.Types(ctx)
	})
}

// Reviews is de-duplicated while in flight but never cached.
func (c *Cached) Reviews(ctx context.Context, pokemonID int) ([]domain.Review, error) {
	v, err, _ := c.group.Do(fmt.Sprintf("reviews:%d", pokemonID), func() (any, error) {
		return c.next.Reviews(ctx, pokemonID)
	})
	if err != nil {
		return nil, err
	}
	return v.([]domain.Review), nil
}

func (c *Cached) AddReview(ctx context.Context, r domain.Review) (domain.Review, error) {
	stored, err := c.next.AddReview(ctx, r)
	if err != nil {
		return domain.Review{}, err
	}
	c.Invalidate(pokemonKey(r.PokemonID))
	c.InvalidateLists()
	return stored, nil
}
