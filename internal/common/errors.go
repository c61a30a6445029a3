// Package common defines shared constants and sentinel errors used across
// the Lumina client layers. Callers should use errors.Is to match these
// values.
package common

import "errors"

var (
	// Remote store errors.
	ErrNotFound    = errors.New("not found")
	ErrUnavailable = errors.New("store unavailable")

	// Auth errors (invalid credentials, unconfirmed account, expired session).
	ErrUnauthorized   = errors.New("unauthorized")
	ErrSessionExpired = errors.New("session expired")
	ErrNoSession      = errors.New("no active session")

	// Validation / import errors.
	ErrValidation = errors.New("validation error")

	// Persistence gating errors.
	ErrNotStable     = errors.New("connection not stable")
	ErrInitialLoad   = errors.New("initial load not completed")
	ErrLocalDataOnly = errors.New("local data unavailable")

	// Resend-confirmation cooldown.
	ErrCooldownActive = errors.New("cooldown active")
)
