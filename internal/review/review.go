// Package review implements the review composer: rating and text drafts,
// ordered validation and submission with a refetch afterwards.
package review

import (
	"context"
	"math/rand/v2"
	"strconv"
	"strings"

	"github.com/cristianoliveira/pokeview/internal/domain"
	"github.com/cristianoliveira/pokeview/internal/prefs"
)

// User facing messages.
const (
	MsgAlreadyReviewed = "Already reviewed this pokemon."
	MsgSelectRating    = "Please select a rating."
	MsgWriteReview     = "Please write a review."
	MsgThankYou        = "Thank you for your review!"
)

// ValidationError is a rejected submission with a message for the user.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string       { return "review: " + e.Message }
func (e *ValidationError) UserMessage() string { return e.Message }

// Client is the remote side of the composer.
type Client interface {
	Reviews(ctx context.Context, pokemonID int) ([]domain.Review, error)
	AddReview(ctx context.Context, r domain.Review) (domain.Review, error)
}

// Composer holds the drafts for one pokemon.
type Composer struct {
	prefs       *prefs.Store
	pokemonID   int
	rating      int
	description string
	reviews     []domain.Review
	message     string
	newID       func() string
}

// NewComposer creates a composer for pokemonID with the reviews already
// fetched for it.
func NewComposer(p *prefs.Store, pokemonID int, reviews []domain.Review) *Composer {
	if p == nil {
		panic("review: prefs store cannot be nil")
	}
	return &Composer{
		prefs:     p,
		pokemonID: pokemonID,
		reviews:   reviews,
		newID:     randomUserID,
	}
}

func randomUserID() string {
	return strconv.FormatInt(rand.Int64N(1_000_000_000_000_000_000), 10)
}

// PokemonID returns the reviewed pokemon.
func (c *Composer) PokemonID() int { return c.pokemonID }

// Rating returns the draft rating, 0 when none is chosen.
func (c *Composer) Rating() int { return c.rating }

// Description returns the draft text.
func (c *Composer) Description() string { return c.description }

// Message returns the last validation or success message.
func (c *Composer) Message() string { return c.message }

// Reviews returns the fetched reviews.
func (c *Composer) Reviews() []domain.Review { return c.reviews }

// SetRating sets the draft rating, clamped to 0..5.
func (c *Composer) SetRating(r int) {
	c.rating = max(0, min(domain.MaxRating, r))
}

// SetDescription sets the draft text.
func (c *Composer) SetDescription(text string) { c.description = text }

// SetReviews replaces the fetched reviews.
func (c *Composer) SetReviews(reviews []domain.Review) { c.reviews = reviews }

// UserID returns the persisted pseudo identity, creating and storing one on
// first use. Stored "" and "undefined" count as absent.
func (c *Composer) UserID() string {
	if id, ok := c.storedUserID(); ok {
		return id
	}
	id := c.newID()
	c.prefs.Write(prefs.Browser, prefs.KeyUserID, id)
	return id
}

// storedUserID reads the persisted id. A stored placeholder is removed.
func (c *Composer) storedUserID() (string, bool) {
	var id string
	if !c.prefs.Read(prefs.Browser, prefs.KeyUserID, &id) {
		return "", false
	}
	if id == "" || id == "undefined" {
		c.prefs.Remove(prefs.Browser, prefs.KeyUserID)
		return "", false
	}
	return id, true
}

// AlreadyReviewed reports whether the current user has a review among the
// fetched ones. It does not create a user id.
func (c *Composer) AlreadyReviewed() bool {
	id, ok := c.storedUserID()
	if !ok {
		return false
	}
	return domain.HasReviewFrom(c.reviews, id)
}

// Validate runs the checks in order and returns the review to submit. The
// first failing check wins and its message is kept for display.
func (c *Composer) Validate() (domain.Review, error) {
	userID := c.UserID()
	var err *ValidationError
	switch {
	case domain.HasReviewFrom(c.reviews, userID):
		err = &ValidationError{Message: MsgAlreadyReviewed}
	case c.rating == 0:
		err = &ValidationError{Message: MsgSelectRating}
	case strings.TrimSpace(c.description) == "":
		err = &ValidationError{Message: MsgWriteReview}
	}
	if err != nil {
		c.message = err.Message
		return domain.Review{}, err
	}
	c.message = ""
	return domain.Review{
		Rating:      c.rating,
		Description: c.description,
		UserID:      userID,
		PokemonID:   c.pokemonID,
	}, nil
}

// Submitted records a successful mutation: drafts are cleared, the thank
// you message is set and reviews replaces the fetched list.
func (c *Composer) Submitted(reviews []domain.Review) {
	c.rating = 0
	c.description = ""
	c.message = MsgThankYou
	if reviews != nil {
		c.reviews = reviews
	}
}

// Submit validates, sends the review and refetches the review list. Errors
// from the client are returned unchanged and are not retried.
func (c *Composer) Submit(ctx context.Context, client Client) error {
	r, err := c.Validate()
	if err != nil {
		return err
	}
	if _, err := client.AddReview(ctx, r); err != nil {
		return err
	}
	reviews, err := client.Reviews(ctx, c.pokemonID)
	if err != nil {
		c.Submitted(nil)
		return err
	}
	c.Submitted(reviews)
	return nil
}
