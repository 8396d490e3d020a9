package sqlite

import (
	"context"
	"fmt"

	"github.com/cristianoliveira/pokeview/internal/domain"
)

// Reviews returns the reviews of a pokemon in submission order.
func (s *Storage) Reviews(ctx context.Context, pokemonID int) ([]domain.Review, error) {
	if pokemonID <= 0 {
		return nil, fmt.Errorf("sqlite storage: list reviews: %w: %d", ErrInvalidPokemonID, pokemonID)
	}
	if err := s.ensurePokemon(ctx, pokemonID); err != nil {
		return nil, err
	}
	return s.selectReviews(ctx, pokemonID)
}

func (s *Storage) selectReviews(ctx context.Context, pokemonID int) ([]domain.Review, error) {
	reviews := []domain.Review{}
	err := s.db.SelectContext(ctx, &reviews,
		"SELECT rating, description, user_id, pokemon_id FROM reviews WHERE pokemon_id = ? ORDER BY id", pokemonID)
	if err != nil {
		return nil, fmt.Errorf("sqlite storage: list reviews: %w", err)
	}
	return reviews, nil
}

// AddReview stores a review. Duplicate reviews by the same user are
// accepted; callers decide whether to allow them.
func (s *Storage) AddReview(ctx context.Context, r domain.Review) (domain.Review, error) {
	if err := r.Validate(); err != nil {
		return domain.Review{}, fmt.Errorf("sqlite storage: add review: %w", err)
	}
	if err := s.ensurePokemon(ctx, r.PokemonID); err != nil {
		return domain.Review{}, err
	}

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO reviews (pokemon_id, user_id, rating, description, created_at) VALUES (?, ?, ?, ?, ?)",
		r.PokemonID, r.UserID, r.Rating, r.Description, utcNow())
	if err != nil {
		return domain.Review{}, fmt.Errorf("sqlite storage: add review: %w", err)
	}
	return r, nil
}

func (s *Storage) ensurePokemon(ctx context.Context, id int) error {
	var exists bool
	if err := s.db.GetContext(ctx, &exists, "SELECT EXISTS (SELECT 1 FROM pokemon WHERE id = ?)", id); err != nil {
		return fmt.Errorf("sqlite storage: lookup pokemon: %w", err)
	}
	if !exists {
		return fmt.Errorf("sqlite storage: %w: id %d", ErrPokemonNotFound, id)
	}
	return nil
}
