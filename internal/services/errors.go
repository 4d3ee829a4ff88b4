package services

import "errors"

// Sentinel errors returned by the service layer and mapped to HTTP statuses
// at the handler boundary. Ownership misses on shortcuts surface as
// ErrNotFound rather than ErrForbidden so existence is never leaked.
var (
	ErrNotFound  = errors.New("not found")
	ErrConflict  = errors.New("conflict")
	ErrForbidden = errors.New("forbidden")
)
