package pages

import (
	"fmt"
	"sync"

	"github.com/isdelr/ecolearn/internal/models"
	"github.com/isdelr/ecolearn/internal/services"
	"github.com/isdelr/ecolearn/internal/validation"
	"github.com/rs/zerolog/log"
)

// ProfileForm holds the editable profile fields.
type ProfileForm struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required,email"`
}

// Rank names a learner by the carbon they have saved.
func Rank(carbonSaved float64) string {
	switch {
	case carbonSaved >= 100:
		return "Planet Guardian"
	case carbonSaved >= 25:
		return "Eco-Warrior"
	case carbonSaved >= 10:
		return "Green Sprout"
	default:
		return "Seedling"
	}
}

// Profile is the user's account screen.
type Profile struct {
	*Loader[models.CarbonMetrics]
	session AccountSession

	mu     sync.Mutex
	edited *ProfileForm
}

// NewProfile creates a Profile controller.
func NewProfile(carbon services.CarbonServiceProvider, session AccountSession) *Profile {
	return &Profile{
		Loader:  NewLoader[models.CarbonMetrics]("profile", carbon.GetMetrics),
		session: session,
	}
}

// User returns the signed-in user with any local edits applied.
func (p *Profile) User() models.User {
	user, _ := p.session.User()
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.edited != nil {
		user.Name = p.edited.Name
		user.Email = p.edited.Email
	}
	return user
}

// Form returns the current values of the edit form.
func (p *Profile) Form() ProfileForm {
	user := p.User()
	return ProfileForm{Name: user.Name, Email: user.Email}
}

// Save validates and keeps the edited fields. Edits stay on this client; there is no
// profile update endpoint.
func (p *Profile) Save(form ProfileForm) error {
	if err := validation.Struct(form); err != nil {
		return err
	}
	p.mu.Lock()
	p.edited = &form
	p.mu.Unlock()
	log.Info().Str("name", form.Name).Str("email", form.Email).Msg("Profile updated locally")
	return nil
}

// Rank is the rank for the loaded metrics.
func (p *Profile) Rank() string {
	return Rank(p.Snapshot().Data.TotalCarbon)
}

// Logout signs out and returns the route to go to.
func (p *Profile) Logout() (string, error) {
	if err := p.session.Logout(); err != nil {
		return "", fmt.Errorf("logout: %w", err)
	}
	p.Unmount()
	return RouteLogin, nil
}
