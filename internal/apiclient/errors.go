package apiclient

import (
	"context"
	"errors"
	"fmt"
	"net/http"
)

// ErrorKind is the coarse category a page controller uses to pick an error affordance.
type ErrorKind string

const (
	KindNetwork            ErrorKind = "network"
	KindHTTP               ErrorKind = "http"
	KindTimeout            ErrorKind = "timeout"
	KindValidation         ErrorKind = "validation"
	KindInvalidCredentials ErrorKind = "invalid_credentials"
	KindCanceled           ErrorKind = "canceled"
	KindUnknown            ErrorKind = "unknown"
)

// Kinded is implemented by errors outside this package that carry their own kind.
type Kinded interface {
	Kind() ErrorKind
}

// NetworkError means no response was received.
type NetworkError struct {
	Op  string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s: network error: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// TimeoutError means the request deadline passed before a response arrived.
type TimeoutError struct {
	Op  string
	Err error
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("%s: timed out: %v", e.Op, e.Err)
}

func (e *TimeoutError) Unwrap() error { return e.Err }

// HTTPError is a 4xx/5xx answer from the backend.
type HTTPError struct {
	Status  int
	Message string
}

func (e *HTTPError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("request failed: %d %s", e.Status, http.StatusText(e.Status))
	}
	return fmt.Sprintf("request failed: %d %s - %s", e.Status, http.StatusText(e.Status), e.Message)
}

// IsStatus reports whether err is an HTTPError with one of the given status codes.
func IsStatus(err error, codes ...int) bool {
	var httpErr *HTTPError
	if !errors.As(err, &httpErr) {
		return false
	}
	for _, code := range codes {
		if httpErr.Status == code {
			return true
		}
	}
	return false
}

// Kind classifies err. A nil error has no kind.
func Kind(err error) ErrorKind {
	if err == nil {
		return ""
	}

	var kinded Kinded
	if errors.As(err, &kinded) {
		return kinded.Kind()
	}

	var (
		netErr     *NetworkError
		timeoutErr *TimeoutError
		httpErr    *HTTPError
	)
	switch {
	case errors.Is(err, context.Canceled):
		return KindCanceled
	case errors.As(err, &timeoutErr), errors.Is(err, context.DeadlineExceeded):
		return KindTimeout
	case errors.As(err, &netErr):
		return KindNetwork
	case errors.As(err, &httpErr):
		return KindHTTP
	default:
		return KindUnknown
	}
}
