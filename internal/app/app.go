// Package app is the composition root: it wires configuration, the token store, the
// backend (fixtures or remote), the auth session and the navigator.
package app

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/isdelr/ecolearn/internal/apiclient"
	"github.com/isdelr/ecolearn/internal/auth"
	"github.com/isdelr/ecolearn/internal/config"
	"github.com/isdelr/ecolearn/internal/database"
	"github.com/isdelr/ecolearn/internal/fixtures"
	"github.com/isdelr/ecolearn/internal/services"
	"github.com/rs/zerolog/log"
)

// App holds the long-lived collaborators of one client run.
type App struct {
	Config    *config.Config
	Session   *auth.Session
	Carbon    services.CarbonServiceProvider
	Learning  services.LearningServiceProvider
	Navigator *Navigator

	db *sql.DB
}

// Backend is a set of domain services.
type Backend struct {
	Carbon   services.CarbonServiceProvider
	Learning services.LearningServiceProvider
	Auth     services.AuthServiceProvider
}

// NewBackend builds the services selected by cfg.BackendMode. tokens is the credential the
// services attach to their calls. In fixtures mode, states keeps the fixture data between
// runs; a nil states keeps it in memory.
func NewBackend(cfg *config.Config, tokens apiclient.TokenSource, states fixtures.StateStore) (Backend, error) {
	switch cfg.BackendMode {
	case config.BackendFixtures:
		store, err := newFixtureStore(states)
		if err != nil {
			return Backend{}, err
		}
		issuer := fixtures.NewIssuer(cfg.JWTSecret, cfg.TokenTTL)
		return Backend{
			Carbon:   fixtures.NewCarbonProvider(store, issuer, tokens),
			Learning: fixtures.NewLearningProvider(store, issuer, tokens),
			Auth:     fixtures.NewAuthProvider(store, issuer, tokens),
		}, nil
	case config.BackendRemote:
		client, err := apiclient.New(apiclient.Config{
			BaseURL: cfg.APIBaseURL,
			Timeout: cfg.RequestTimeout,
			Tokens:  tokens,
		})
		if err != nil {
			return Backend{}, fmt.Errorf("failed to create API client: %w", err)
		}
		return Backend{
			Carbon:   services.NewCarbonService(client),
			Learning: services.NewLearningService(client),
			Auth:     services.NewAuthService(client),
		}, nil
	default:
		return Backend{}, fmt.Errorf("unknown backend mode %q", cfg.BackendMode)
	}
}

func newFixtureStore(states fixtures.StateStore) (*fixtures.Store, error) {
	if states == nil {
		return fixtures.NewStore()
	}
	return fixtures.NewPersistentStore(states)
}

// New opens the token store, builds the backend and wires the session.
func New(cfg *config.Config) (*App, error) {
	db, err := database.New(cfg.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := database.Migrate(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply database migrations: %w", err)
	}

	a, err := newApp(cfg, auth.NewSQLiteStore(db, cfg.Profile), fixtures.NewSQLiteState(db, cfg.Profile))
	if err != nil {
		db.Close()
		return nil, err
	}
	a.db = db
	return a, nil
}

// NewWithStore wires an App around an existing token store. Fixture data lives in memory.
func NewWithStore(cfg *config.Config, store auth.TokenStore) (*App, error) {
	return newApp(cfg, store, nil)
}

func newApp(cfg *config.Config, store auth.TokenStore, states fixtures.StateStore) (*App, error) {
	cred := auth.NewCredential()
	backend, err := NewBackend(cfg, cred, states)
	if err != nil {
		return nil, err
	}

	session := auth.NewSession(backend.Auth, store, cred)
	log.Debug().Str("backend", cfg.BackendMode).Str("profile", cfg.Profile).Msg("Client initialized")
	return &App{
		Config:    cfg,
		Session:   session,
		Carbon:    backend.Carbon,
		Learning:  backend.Learning,
		Navigator: NewNavigator(session),
	}, nil
}

// Restore resumes the stored session. A backend that cannot be reached leaves the user
// signed out for this run without discarding the token.
func (a *App) Restore(ctx context.Context) {
	if err := a.Session.Restore(ctx); err != nil {
		kind := apiclient.Kind(err)
		if kind == apiclient.KindNetwork || kind == apiclient.KindTimeout {
			log.Warn().Err(err).Msg("Backend unreachable, continuing signed out")
			return
		}
		log.Error().Err(err).Msg("Failed to restore session")
	}
}

// Close releases the database.
func (a *App) Close() error {
	if a.db == nil {
		return nil
	}
	return a.db.Close()
}
