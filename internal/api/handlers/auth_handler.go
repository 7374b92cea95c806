package handlers

import (
	"net/http"
	"time"

	"github.com/isdelr/ecolearn/internal/fixtures"
	"github.com/isdelr/ecolearn/internal/models"
	"github.com/rs/zerolog/log"
)

// AuthHandler handles HTTP requests for accounts and sign-in.
type AuthHandler struct {
	store        *fixtures.Store
	issuer       *fixtures.Issuer
	ttl          time.Duration
	secureCookie bool
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(store *fixtures.Store, issuer *fixtures.Issuer, ttl time.Duration, secureCookie bool) *AuthHandler {
	return &AuthHandler{store: store, issuer: issuer, ttl: ttl, secureCookie: secureCookie}
}

// Register handles new user registration.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var payload models.RegisterPayload
	if !decode(w, r, &payload) {
		return
	}

	user, err := h.store.Register(payload.Name, payload.Email, payload.Password)
	if err != nil {
		log.Warn().Err(err).Str("email", payload.Email).Msg("Failed to register user")
		writeStoreError(w, err, "register user")
		return
	}

	writeJSON(w, http.StatusCreated, user)
}

// Login handles user authentication and JWT generation.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var creds models.Credentials
	if !decode(w, r, &creds) {
		return
	}

	user, err := h.store.Authenticate(creds.Email, creds.Password)
	if err != nil {
		log.Warn().Err(err).Str("email", creds.Email).Msg("Failed authentication attempt")
		http.Error(w, "Invalid credentials", http.StatusUnauthorized)
		return
	}

	token, err := h.issuer.Issue(user)
	if err != nil {
		log.Error().Err(err).Str("user_id", user.ID).Msg("Failed to generate JWT")
		http.Error(w, "Failed to generate token", http.StatusInternalServerError)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     "token",
		Value:    token,
		Expires:  time.Now().Add(h.ttl),
		HttpOnly: true,
		Secure:   h.secureCookie,
		SameSite: http.SameSiteStrictMode,
		Path:     "/",
	})

	writeJSON(w, http.StatusOK, models.AuthResult{Token: token, User: user})
}

// Me retrieves the currently authenticated user from the token.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	claims, ok := fixtures.ClaimsFromContext(r.Context())
	if !ok {
		log.Error().Msg("Could not retrieve user claims from context")
		http.Error(w, "Could not retrieve user from token", http.StatusInternalServerError)
		return
	}

	user, err := h.store.UserByID(claims.UserID)
	if err != nil {
		log.Warn().Err(err).Str("user_id", claims.UserID).Msg("User from token not found")
		http.Error(w, "User not found", http.StatusUnauthorized)
		return
	}

	writeJSON(w, http.StatusOK, user)
}
