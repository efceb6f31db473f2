package store

import "errors"

// Sentinel errors returned by the stores. Handlers map these onto HTTP
// statuses; ownership misses are deliberately the same error as true misses.
var (
	ErrNotFound           = errors.New("resource not found")
	ErrEmailRequired      = errors.New("user must have an email address")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
)
