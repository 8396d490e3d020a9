package domain

import (
	"errors"
	"strings"

	"github.com/montanaflynn/stats"
)

// Rating bounds.
const (
	MinRating = 1
	MaxRating = 5
)

var (
	// ErrInvalidRating indicates a rating outside 1..5.
	ErrInvalidRating = errors.New("rating must be between 1 and 5")
	// ErrEmptyDescription indicates a blank review text.
	ErrEmptyDescription = errors.New("description cannot be empty")
	// ErrMissingUserID indicates a review without an author.
	ErrMissingUserID = errors.New("userID cannot be empty")
	// ErrInvalidPokemonID indicates a review without a target.
	ErrInvalidPokemonID = errors.New("pokemonID must be positive")
)

// Review is a star rating plus free text left by a pseudo user.
type Review struct {
	Rating      int    `json:"rating" db:"rating"`
	Description string `json:"description" db:"description"`
	UserID      string `json:"userID" db:"user_id"`
	PokemonID   int    `json:"pokemonID,omitempty" db:"pokemon_id"`
}

// Validate checks the review is storable.
func (r Review) Validate() error {
	if r.Rating < MinRating || r.Rating > MaxRating {
		return ErrInvalidRating
	}
	if strings.TrimSpace(r.Description) == "" {
		return ErrEmptyDescription
	}
	if strings.TrimSpace(r.UserID) == "" {
		return ErrMissingUserID
	}
	if r.PokemonID <= 0 {
		return ErrInvalidPokemonID
	}
	return nil
}

// HasReviewFrom reports whether userID authored any of reviews.
func HasReviewFrom(reviews []Review, userID string) bool {
	if userID == "" {
		return false
	}
	for _, r := range reviews {
		if r.UserID == userID {
			return true
		}
	}
	return false
}

// RatingSummary aggregates the ratings of a pokemon.
type RatingSummary struct {
	Count  int     `json:"count"`
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
}

// SummarizeRatings computes count, mean and median over reviews.
func SummarizeRatings(reviews []Review) RatingSummary {
	if len(reviews) == 0 {
		return RatingSummary{}
	}
	data := make(stats.Float64Data, 0, len(reviews))
	for _, r := range reviews {
		data = append(data, float64(r.Rating))
	}
	summary := RatingSummary{Count: len(reviews)}
	if mean, err := data.Mean(); err == nil {
		summary.Mean, _ = stats.Round(mean, 2)
	}
	if median, err := data.Median(); err == nil {
		summary.Median = median
	}
	return summary
}
