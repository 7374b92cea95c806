package pages

import (
	"context"
	"sync"

	"github.com/isdelr/ecolearn/internal/models"
	"github.com/rs/zerolog/log"
)

// FormState is the state of a submit-only screen.
type FormState struct {
	Submitting bool
	Err        error
}

type form struct {
	mu    sync.Mutex
	state FormState
}

// State returns the current form state.
func (f *form) State() FormState {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

func (f *form) submit(page string, do func() error) error {
	f.mu.Lock()
	f.state = FormState{Submitting: true}
	f.mu.Unlock()

	err := do()
	if err != nil {
		log.Warn().Err(err).Str("page", page).Msg("Form submission failed")
	}

	f.mu.Lock()
	f.state = FormState{Err: err}
	f.mu.Unlock()
	return err
}

// Login is the sign-in screen.
type Login struct {
	form
	session Authenticator
}

// NewLogin creates a Login controller.
func NewLogin(session Authenticator) *Login {
	return &Login{session: session}
}

// Submit signs in and returns the route to go to next.
func (l *Login) Submit(ctx context.Context, creds models.Credentials) (string, error) {
	err := l.submit("login", func() error {
		_, err := l.session.Login(ctx, creds)
		return err
	})
	if err != nil {
		return "", err
	}
	return RouteDashboard, nil
}

// Register is the sign-up screen.
type Register struct {
	form
	session Authenticator
}

// NewRegister creates a Register controller.
func NewRegister(session Authenticator) *Register {
	return &Register{session: session}
}

// Submit creates the account and returns the route to go to next. The user signs in
// separately afterwards.
func (r *Register) Submit(ctx context.Context, f models.RegisterForm) (string, error) {
	err := r.submit("register", func() error {
		_, err := r.session.Register(ctx, f)
		return err
	})
	if err != nil {
		return "", err
	}
	return RouteLogin, nil
}
