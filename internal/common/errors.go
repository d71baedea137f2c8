// Package common defines shared constants and sentinel errors used across
// the PasteFlow client layers. Callers should use errors.Is to match these
// values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrNotFound = errors.New("not found")

	// Remote-call errors (generic flow control).
	ErrUnauthorized = errors.New("unauthorized")
	ErrUnavailable  = errors.New("server unavailable")

	// Claim-flow errors.
	ErrNoEditSecret = errors.New("no edit secret available")
)
