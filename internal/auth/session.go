// Package auth owns the client-side authentication session: who is signed in, the token
// the API client attaches, and where that token survives between runs.
package auth

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/isdelr/ecolearn/internal/apiclient"
	"github.com/isdelr/ecolearn/internal/models"
	"github.com/isdelr/ecolearn/internal/services"
	"github.com/isdelr/ecolearn/internal/validation"
	"github.com/rs/zerolog/log"
)

// State is the session state.
type State int

const (
	Anonymous State = iota
	Authenticated
)

func (s State) String() string {
	if s == Authenticated {
		return "authenticated"
	}
	return "anonymous"
}

// Session is the explicit auth object handed down from the composition root.
type Session struct {
	svc   services.AuthServiceProvider
	store TokenStore
	cred  *Credential
	now   func() time.Time

	mu    sync.RWMutex
	state State
	user  models.User
}

// NewSession creates an anonymous session. cred must be the same holder the API client reads.
func NewSession(svc services.AuthServiceProvider, store TokenStore, cred *Credential) *Session {
	return &Session{svc: svc, store: store, cred: cred, now: time.Now}
}

// State returns the current state.
func (s *Session) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// User returns the signed-in user. ok is false when anonymous.
func (s *Session) User() (user models.User, ok bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user, s.state == Authenticated
}

// IsAuthenticated is the synchronous check the route guard uses.
func (s *Session) IsAuthenticated() bool {
	return s.State() == Authenticated
}

// Login signs in with email and password.
func (s *Session) Login(ctx context.Context, creds models.Credentials) (models.User, error) {
	if err := validation.Struct(creds); err != nil {
		return models.User{}, err
	}

	result, err := s.svc.Login(ctx, creds)
	if err != nil {
		if apiclient.IsStatus(err, http.StatusUnauthorized, http.StatusForbidden) {
			log.Info().Str("email", creds.Email).Msg("Login rejected")
			return models.User{}, ErrInvalidCredentials
		}
		return models.User{}, fmt.Errorf("login: %w", err)
	}

	if err := s.store.Save(result.Token); err != nil {
		return models.User{}, fmt.Errorf("failed to persist session token: %w", err)
	}
	s.authenticate(result.Token, result.User)
	log.Info().Str("userID", result.User.ID).Msg("Signed in")
	return result.User, nil
}

// Register creates an account. The session stays anonymous; the user signs in afterwards.
func (s *Session) Register(ctx context.Context, form models.RegisterForm) (models.User, error) {
	if err := validation.Struct(form); err != nil {
		return models.User{}, err
	}

	user, err := s.svc.Register(ctx, models.RegisterPayload{
		Name:     form.Name,
		Email:    form.Email,
		Password: form.Password,
	})
	if err != nil {
		return models.User{}, fmt.Errorf("register: %w", err)
	}
	log.Info().Str("userID", user.ID).Msg("Account registered")
	return user, nil
}

// Logout returns to Anonymous. It can be called any number of times.
func (s *Session) Logout() error {
	s.signOut()
	if err := s.store.Clear(); err != nil {
		return fmt.Errorf("failed to clear session token: %w", err)
	}
	return nil
}

// Restore resumes a previous session from the token store.
func (s *Session) Restore(ctx context.Context) error {
	token, err := s.store.Load()
	if err != nil {
		return fmt.Errorf("failed to load session token: %w", err)
	}
	if token == "" {
		return nil
	}

	if !tokenUsable(token, s.now()) {
		log.Info().Msg("Stored session token expired, discarding it")
		return s.Logout()
	}

	s.cred.set(token)
	user, err := s.svc.Me(ctx)
	if err != nil {
		s.cred.set("")
		if apiclient.IsStatus(err, http.StatusUnauthorized, http.StatusForbidden) {
			log.Info().Msg("Stored session token rejected, discarding it")
			return s.Logout()
		}
		// Keep the token; the backend may simply be unreachable right now.
		return fmt.Errorf("restore session: %w", err)
	}

	s.authenticate(token, user)
	log.Debug().Str("userID", user.ID).Msg("Session restored")
	return nil
}

func (s *Session) authenticate(token string, user models.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cred.set(token)
	s.user = user
	s.state = Authenticated
}

func (s *Session) signOut() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cred.set("")
	s.user = models.User{}
	s.state = Anonymous
}
