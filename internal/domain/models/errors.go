package models

import "github.com/pkg/errors"

// Error kinds surfaced by the core services. All of them are recoverable and
// user-facing; callers match with errors.Is after unwrapping.
var (
	ErrNotFound         = errors.New("not found")
	ErrInvalidState     = errors.New("operation not allowed in current state")
	ErrInvalidDateRange = errors.New("invalid date range")
	ErrInvalidScore     = errors.New("invalid rating score")
	ErrAlreadyRated     = errors.New("already rated")
	ErrNotEligible      = errors.New("not eligible")
	ErrUnauthenticated  = errors.New("unauthenticated")
	ErrUnauthorized     = errors.New("unauthorized")
)
