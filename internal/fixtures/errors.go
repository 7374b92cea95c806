package fixtures

import (
	"errors"
	"net/http"

	"github.com/isdelr/ecolearn/internal/apiclient"
)

var (
	ErrNotFound       = errors.New("not found")
	ErrInvalidInput   = errors.New("invalid input")
	ErrEmailTaken     = errors.New("email already registered")
	ErrBadCredentials = errors.New("invalid email or password")
	ErrUnauthorized   = errors.New("missing or invalid token")
)

// StatusFor maps a Store error to the HTTP status the REST surface answers with.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, ErrEmailTaken):
		return http.StatusConflict
	case errors.Is(err, ErrBadCredentials), errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// asHTTPError gives in-process failures the shape the API client would produce, so callers
// behave the same whichever backend is configured.
func asHTTPError(err error) error {
	if err == nil {
		return nil
	}
	return &apiclient.HTTPError{Status: StatusFor(err), Message: err.Error()}
}
