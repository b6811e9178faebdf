package services

import "errors"

// Sentinel errors for the outcomes handlers need to tell apart. Services
// wrap these with fmt.Errorf("...: %w", Err...) so errors.Is still matches.
var (
	ErrNotFound     = errors.New("record not found")
	ErrUnauthorized = errors.New("authentication failed")
	ErrForbidden    = errors.New("permission denied")
	ErrConflict     = errors.New("conflicting state")
	ErrValidation   = errors.New("validation failed")
)
