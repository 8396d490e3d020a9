package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/cristianoliveira/pokeview/internal/api"
	"github.com/cristianoliveira/pokeview/internal/appstate"
	"github.com/cristianoliveira/pokeview/internal/config"
	"github.com/cristianoliveira/pokeview/internal/domain"
	"github.com/cristianoliveira/pokeview/internal/logging"
	"github.com/cristianoliveira/pokeview/internal/prefs"
	"github.com/cristianoliveira/pokeview/internal/server"
	"github.com/cristianoliveira/pokeview/internal/storage/sqlite"
	"github.com/cristianoliveira/pokeview/internal/team"
	"github.com/cristianoliveira/pokeview/internal/tui/app"
	"github.com/cristianoliveira/pokeview/internal/tui/state"
	"github.com/cristianoliveira/pokeview/internal/version"
)

// runtime lazily opens the databases and clients a command asks for.
// Nothing is opened until a command runs, so help and version stay cheap.
type runtime struct {
	mu        sync.Mutex
	stateDB   *sqlite.Storage
	catalogDB *sqlite.Storage
	catalog   api.Catalog
	remote    *api.HTTPClient
	prefs     *prefs.Store
}

var defaultRuntime = &runtime{}

func (r *runtime) stateStorage() (*sqlite.Storage, error) {
	if r.stateDB != nil {
		return r.stateDB, nil
	}
	s, err := sqlite.Open(config.Get("state_db", ""))
	if err != nil {
		return nil, fmt.Errorf("open state database: %w", err)
	}
	r.stateDB = s
	return s, nil
}

func (r *runtime) catalogStorage() (*sqlite.Storage, error) {
	if r.catalogDB != nil {
		return r.catalogDB, nil
	}
	s, err := sqlite.Open(config.Get("catalog_db", ""))
	if err != nil {
		return nil, fmt.Errorf("open catalog database: %w", err)
	}
	r.catalogDB = s
	return s, nil
}

// Prefs returns the preference store of the current terminal session.
func (r *runtime) Prefs() (*prefs.Store, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.prefs != nil {
		return r.prefs, nil
	}
	s, err := r.stateStorage()
	if err != nil {
		return nil, err
	}
	session := prefs.SessionID()
	logging.Debug("preference session", "session", session)
	r.prefs = prefs.New(s.Prefs(session))
	return r.prefs, nil
}

// Catalog returns the cached catalog for the configured source.
func (r *runtime) Catalog() (api.Catalog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.catalog != nil {
		return r.catalog, nil
	}
	var next api.Catalog
	switch source := config.Get("catalog_source", "remote"); source {
	case "local":
		s, err := r.catalogStorage()
		if err != nil {
			return nil, err
		}
		next = api.NewLocalCatalog(s)
	default:
		c, err := api.NewHTTPClient(config.Get("api_url", ""), nil)
		if err != nil {
			return nil, err
		}
		r.remote = c
		next = c
	}
	r.catalog = api.NewCached(next)
	return r.catalog, nil
}

// Team returns a roster manager over the persisted team.
func (r *runtime) Team() (*team.Manager, error) {
	p, err := r.Prefs()
	if err != nil {
		return nil, err
	}
	return team.NewManager(appstate.Load(p)), nil
}

// Repository serves the catalog database to the HTTP server.
func (r *runtime) Repository() (server.Repository, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, err := r.catalogStorage()
	if err != nil {
		return nil, err
	}
	return s, nil
}

// ImportSeed imports a seed document into the catalog database.
func (r *runtime) ImportSeed(ctx context.Context, in io.Reader, opts sqlite.SeedOptions) (sqlite.SeedStats, error) {
	r.mu.Lock()
	s, err := r.catalogStorage()
	r.mu.Unlock()
	if err != nil {
		return sqlite.SeedStats{}, err
	}
	stats, err := s.ImportSeed(ctx, in, opts)
	if err != nil || opts.DryRun {
		return stats, err
	}
	if n, err := s.CountPokemon(ctx); err == nil {
		logging.Info("catalog seeded", "imported", stats.ImportedRows, "catalog_size", n)
	}
	return stats, nil
}

// CleanupStaleSessions prunes tab scoped preferences of idle sessions.
func (r *runtime) CleanupStaleSessions(ctx context.Context, days int, dryRun bool) (int, error) {
	r.mu.Lock()
	s, err := r.stateStorage()
	r.mu.Unlock()
	if err != nil {
		return 0, err
	}
	return s.CleanupStaleSessions(ctx, days, dryRun)
}

// TUIClient builds the bubbletea adapter with the session state restored.
func (r *runtime) TUIClient() (app.Client, error) {
	catalog, err := r.Catalog()
	if err != nil {
		return nil, err
	}
	if err := r.checkRemote(); err != nil {
		return nil, err
	}
	p, err := r.Prefs()
	if err != nil {
		return nil, err
	}
	return app.NewDefaultClient(state.Options{
		Catalog:     catalog,
		Store:       appstate.Load(p),
		PageSize:    config.GetInt("page_size", domain.DefaultPageSize),
		SearchDelay: time.Duration(config.GetInt("search_debounce_ms", 600)) * time.Millisecond,
	}, nil), nil
}

// checkRemote fails before the TUI takes over the terminal when the catalog
// server is down.
func (r *runtime) checkRemote() error {
	r.mu.Lock()
	remote := r.remote
	r.mu.Unlock()
	if remote == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), api.DefaultTimeout)
	defer cancel()
	if err := remote.Health(ctx); err != nil {
		return fmt.Errorf("catalog server %s is not reachable, start it with \"pokeview serve\": %w", remote.BaseURL(), err)
	}
	return nil
}

// Version returns the build version.
func (r *runtime) Version() string {
	return version.String()
}

// Close releases whatever was opened.
func (r *runtime) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	var errs []error
	if r.stateDB != nil {
		errs = append(errs, r.stateDB.Close())
		r.stateDB = nil
	}
	if r.catalogDB != nil {
		errs = append(errs, r.catalogDB.Close())
		r.catalogDB = nil
	}
	r.catalog = nil
	r.remote = nil
	r.prefs = nil
	return errors.Join(errs...)
}
