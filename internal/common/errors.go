// Package common defines shared constants and sentinel errors used across
// client and server layers of the pokedex. Callers should use errors.Is to
// match these values.
package common

import "errors"

var (
	// Repository/store-level errors.
	ErrorNotFound = errors.New("not found")
	ErrorStore    = errors.New("store error")

	// Remote catalog errors (non-success status or malformed payload).
	ErrorNetwork = errors.New("network error")

	// Blob acquisition errors (invalid URI/filename, failed copy/download).
	ErrorAcquisition = errors.New("acquisition error")

	// Service-level errors (generic/internal flow control).
	ErrorInternal      = errors.New("internal error")
	ErrorUnauthorized  = errors.New("unauthorized")
	ErrorAlreadyExists = errors.New("already exists")

	// Auth errors (invalid or malformed token).
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)
