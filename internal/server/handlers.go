package server

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/cristianoliveira/pokeview/internal/domain"
	"github.com/cristianoliveira/pokeview/internal/logging"
	"github.com/cristianoliveira/pokeview/internal/storage/sqlite"
	"github.com/gin-gonic/gin"
)

type handlers struct {
	repo Repository
	log  logging.Logger
}

type errorResponse struct {
	Error     string `json:"error"`
	RequestID string `json:"request_id,omitempty"`
}

func respondError(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, errorResponse{Error: message, RequestID: GetRequestID(c)})
}

// respondStorageError maps storage errors onto status codes.
func (h *handlers) respondStorageError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, sqlite.ErrPokemonNotFound), errors.Is(err, sqlite.ErrInvalidPokemonID):
		respondError(c, http.StatusNotFound, "pokemon not found")
	case isValidationError(err):
		respondError(c, http.StatusBadRequest, validationMessage(err))
	default:
		_ = c.Error(err)
		respondError(c, http.StatusInternalServerError, "internal server error")
	}
}

var validationErrors = []error{
	domain.ErrInvalidRating,
	domain.ErrEmptyDescription,
	domain.ErrMissingUserID,
	domain.ErrInvalidPokemonID,
}

func isValidationError(err error) bool {
	return validationMessage(err) != ""
}

func validationMessage(err error) string {
	for _, target := range validationErrors {
		if errors.Is(err, target) {
			return target.Error()
		}
	}
	return ""
}

func (h *handlers) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *handlers) types(c *gin.Context) {
	types, err := h.repo.Types(c.Request.Context())
	if err != nil {
		h.respondStorageError(c, err)
		return
	}
	c.JSON(http.StatusOK, types)
}

type listParams struct {
	Search string `form:"search" binding:"max=100"`
	Types  string `form:"types"`
	Sort   string `form:"sort"`
	Page   int    `form:"page" binding:"omitempty,min=1,max=20"`
	Limit  int    `form:"limit" binding:"omitempty,min=1,max=100"`
}

func (h *handlers) listPokemon(c *gin.Context) {
	var params listParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondError(c, http.StatusBadRequest, "invalid query parameters: "+err.Error())
		return
	}

	q := domain.ListQuery{
		Search: params.Search,
		Types:  domain.ParseTypes(params.Types),
		Page:   params.Page,
		Limit:  params.Limit,
	}
	if params.Sort != "" {
		key, err := domain.ParseSortKey(params.Sort)
		if err != nil {
			respondError(c, http.StatusBadRequest, err.Error())
			return
		}
		q.Sort = key
	}
	for _, t := range q.Types {
		if !domain.IsKnownType(t) {
			respondError(c, http.StatusBadRequest, "unknown type: "+t)
			return
		}
	}

	page, err := h.repo.ListPokemon(c.Request.Context(), q)
	if err != nil {
		h.respondStorageError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

func pokemonID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		respondError(c, http.StatusBadRequest, "invalid pokemon id")
		return 0, false
	}
	return id, true
}

func (h *handlers) getPokemon(c *gin.Context) {
	id, ok := pokemonID(c)
	if !ok {
		return
	}
	p, err := h.repo.GetPokemon(c.Request.Context(), id)
	if err != nil {
		h.respondStorageError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *handlers) listReviews(c *gin.Context) {
	id, ok := pokemonID(c)
	if !ok {
		return
	}
	reviews, err := h.repo.Reviews(c.Request.Context(), id)
	if err != nil {
		h.respondStorageError(c, err)
		return
	}
	c.JSON(http.StatusOK, reviews)
}

type addReviewRequest struct {
	Rating      int    `json:"rating" binding:"required,min=1,max=5"`
	Description string `json:"description" binding:"required"`
	UserID      string `json:"userID" binding:"required"`
	PokemonID   int    `json:"pokemonID" binding:"required,min=1"`
}

func (h *handlers) addReview(c *gin.Context) {
	var req addReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid review: "+err.Error())
		return
	}

	stored, err := h.repo.AddReview(c.Request.Context(), domain.Review{
		Rating:      req.Rating,
		Description: req.Description,
		UserID:      req.UserID,
		PokemonID:   req.PokemonID,
	})
	if err != nil {
		h.respondStorageError(c, err)
		return
	}
	h.log.Info("review added", "pokemon_id", stored.PokemonID, "rating", stored.Rating, "request_id", GetRequestID(c))
	c.JSON(http.StatusCreated, stored)
}
