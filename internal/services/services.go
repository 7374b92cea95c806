// Package services holds the domain services: thin typed wrappers that turn one business
// operation into one REST call. They never catch, retry or validate; errors from the
// API client propagate unchanged.
package services

import "context"

// Requester is the part of the API client the services need.
type Requester interface {
	Get(ctx context.Context, path string, out any) error
	Post(ctx context.Context, path string, in, out any) error
}
