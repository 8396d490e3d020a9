package api

import (
	"context"
	"errors"

	"github.com/cristianoliveira/pokeview/internal/domain"
	"github.com/cristianoliveira/pokeview/internal/storage/sqlite"
)

// Repository is the catalog database surface.
type Repository interface {
	ListPokemon(ctx context.Context, q domain.ListQuery) (domain.PokemonPage, error)
	GetPokemon(ctx context.Context, id int) (domain.Pokemon, error)
	Reviews(ctx context.Context, pokemonID int) ([]domain.Review, error)
	AddReview(ctx context.Context, r domain.Review) (domain.Review, error)
	Types(ctx context.Context) ([]string, error)
}

// LocalCatalog serves the catalog straight from the database.
type LocalCatalog struct {
	repo Repository
}

// NewLocalCatalog creates a LocalCatalog.
func NewLocalCatalog(repo Repository) *LocalCatalog {
	if repo == nil {
		panic("api: repository cannot be nil")
	}
	return &LocalCatalog{repo: repo}
}

func (l *LocalCatalog) ListPokemon(ctx context.Context, q domain.ListQuery) (domain.PokemonPage, error) {
	return l.repo.ListPokemon(ctx, q)
}

func (l *LocalCatalog) Pokemon(ctx context.Context, id int) (domain.Pokemon, error) {
	p, err := l.repo.GetPokemon(ctx, id)
	return p, translate(err)
}

func (l *LocalCatalog) Reviews(ctx context.Context, pokemonID int) ([]domain.Review, error) {
	reviews, err := l.repo.Reviews(ctx, pokemonID)
	return reviews, translate(err)
}

func (l *LocalCatalog) AddReview(ctx context.Context, r domain.Review) (domain.Review, error) {
	stored, err := l.repo.AddReview(ctx, r)
	return stored, translate(err)
}

func (l *LocalCatalog) Types(ctx context.Context) ([]string, error) {
	return l.repo.Types(ctx)
}

func translate(err error) error {
	if errors.Is(err, sqlite.ErrPokemonNotFound) || errors.Is(err, sqlite.ErrInvalidPokemonID) {
		return ErrNotFound
	}
	return err
}
