package services

import (
	"context"

	"github.com/isdelr/ecolearn/internal/models"
)

// AuthServiceProvider defines the interface for the account endpoints.
type AuthServiceProvider interface {
	Login(ctx context.Context, creds models.Credentials) (models.AuthResult, error)
	Register(ctx context.Context, payload models.RegisterPayload) (models.User, error)
	Me(ctx context.Context) (models.User, error)
}

// AuthService calls the /auth endpoints.
type AuthService struct {
	api Requester
}

// NewAuthService creates a new AuthService.
func NewAuthService(api Requester) *AuthService {
	return &AuthService{api: api}
}

// Login exchanges credentials for a session token.
func (s *AuthService) Login(ctx context.Context, creds models.Credentials) (models.AuthResult, error) {
	var result models.AuthResult
	err := s.api.Post(ctx, "/auth/login", creds, &result)
	return result, err
}

// Register creates an account. It does not sign the user in.
func (s *AuthService) Register(ctx context.Context, payload models.RegisterPayload) (models.User, error) {
	var user models.User
	err := s.api.Post(ctx, "/auth/register", payload, &user)
	return user, err
}

// Me returns the user the attached credential belongs to.
func (s *AuthService) Me(ctx context.Context) (models.User, error) {
	var user models.User
	err := s.api.Get(ctx, "/auth/me", &user)
	return user, err
}
