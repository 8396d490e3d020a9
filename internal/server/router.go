// Package server exposes the catalog database over a JSON HTTP API.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/cristianoliveira/pokeview/internal/domain"
	"github.com/cristianoliveira/pokeview/internal/logging"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Repository is the storage surface the handlers need.
type Repository interface {
	ListPokemon(ctx context.Context, q domain.ListQuery) (domain.PokemonPage, error)
	GetPokemon(ctx context.Context, id int) (domain.Pokemon, error)
	Reviews(ctx context.Context, pokemonID int) ([]domain.Review, error)
	AddReview(ctx context.Context, r domain.Review) (domain.Review, error)
	Types(ctx context.Context) ([]string, error)
}

// Options configures the router.
type Options struct {
	AllowedOrigins []string
	Logger         logging.Logger
}

// NewRouter builds the gin engine serving the catalog API.
func NewRouter(repo Repository, opts Options) *gin.Engine {
	if repo == nil {
		panic("server: repository cannot be nil")
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.GetGlobal()
	}

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(RequestID(), RequestLogger(logger), gin.Recovery(), newCORS(opts.AllowedOrigins))
	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Warn("server: set trusted proxies", "error", err)
	}

	r.NoRoute(func(c *gin.Context) {
		respondError(c, http.StatusNotFound, "route not found")
	})

	h := &handlers{repo: repo, log: logger}
	api := r.Group("/api")
	{
		api.GET("/health", h.health)
		api.GET("/types", h.types)

		pokemon := api.Group("/pokemon")
		pokemon.GET("", h.listPokemon)
		pokemon.GET("/:id", h.getPokemon)
		pokemon.GET("/:id/reviews", h.listReviews)

		api.POST("/reviews", h.addReview)
	}
	return r
}

func newCORS(origins []string) gin.HandlerFunc {
	cfg := cors.Config{
		AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", RequestIDHeader},
		ExposeHeaders: []string{RequestIDHeader},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cors.New(cfg)
}
