package sqlite

import "errors"

var (
	// ErrPokemonNotFound indicates that a pokemon id is not in the catalog.
	ErrPokemonNotFound = errors.New("pokemon not found")
	// ErrInvalidPokemonID indicates a non-positive pokemon id.
	ErrInvalidPokemonID = errors.New("invalid pokemon ID")
)
