package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors shared across the directory core. HTTP status mapping lives
// in the api package; services compare with errors.Is.
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrTransient          = errors.New("transient backend failure")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrSessionExpired     = errors.New("session expired")
	ErrSnapshotMissing    = errors.New("snapshot not found")

	// ErrNoPendingConfirmation is returned by the HTTP surface when confirm
	// or cancel is called with nothing pending.
	ErrNoPendingConfirmation = errors.New("no pending confirmation")
)

// ErrValidation is the parent of every create-time validation failure; the
// wrapped sentinels identify the exact violation.
var (
	ErrValidation     = errors.New("validation failed")
	ErrMissingFields  = fmt.Errorf("%w: missing required fields", ErrValidation)
	ErrInvalidRole    = fmt.Errorf("%w: invalid role", ErrValidation)
	ErrInvalidStatus  = fmt.Errorf("%w: invalid status", ErrValidation)
	ErrDuplicateEmail = fmt.Errorf("%w: email already exists", ErrValidation)
)
