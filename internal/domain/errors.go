package domain

import "errors"

var (
	// ErrInvalidQuery is returned when query input is out of bounds or
	// contains forbidden characters. Never retried.
	ErrInvalidQuery = errors.New("invalid query input")

	// ErrRateLimited is returned when a client exceeds its request window.
	ErrRateLimited = errors.New("rate limit exceeded")

	// ErrMissingAPIKey is returned when the upstream recipe API credential
	// is not configured. Surfaced immediately, never retried or cached.
	ErrMissingAPIKey = errors.New("MFDS API key is not configured")

	// ErrUpstreamFailure is returned when the upstream recipe API fails
	// after retries, returns a non-success result code, or sends a
	// malformed payload.
	ErrUpstreamFailure = errors.New("MFDS API request failed")

	// ErrRecipeNotFound is returned when no recipe exists for an id.
	ErrRecipeNotFound = errors.New("recipe not found")

	// ErrProductNotFound is returned when the product provider has no
	// entry for a barcode. Handlers translate this into a stub result.
	ErrProductNotFound = errors.New("product not found")

	// ErrRecordNotFound is returned by the record store for missing keys.
	ErrRecordNotFound = errors.New("record not found")
)
