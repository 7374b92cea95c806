package auth

import (
	"errors"

	"github.com/isdelr/ecolearn/internal/apiclient"
)

// ErrInvalidCredentials is returned by Login when the backend rejects the email/password pair.
var ErrInvalidCredentials error = invalidCredentialsError{}

type invalidCredentialsError struct{}

func (invalidCredentialsError) Error() string { return "invalid email or password" }

func (invalidCredentialsError) Kind() apiclient.ErrorKind { return apiclient.KindInvalidCredentials }

// IsInvalidCredentials reports whether err is, or wraps, ErrInvalidCredentials.
func IsInvalidCredentials(err error) bool {
	return errors.Is(err, ErrInvalidCredentials)
}
