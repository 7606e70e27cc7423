// Package common defines shared constants, sentinel errors and small helpers
// used by both the kbclip client and the reference backend. Callers should
// use errors.Is to match the sentinel values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Service-level errors.
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")
	// ErrForbidden means the caller is authenticated but acts on behalf of
	// someone else.
	ErrForbidden = errors.New("forbidden")

	// ErrValidation marks input rejected locally before any remote call,
	// e.g. an empty login token.
	ErrValidation = errors.New("validation error")

	// Auth errors (invalid or malformed token).
	ErrInvalidToken = errors.New("invalid token")

	// ErrTokenExpired is returned when a session credential is past its expiry.
	ErrTokenExpired = errors.New("token expired")

	// ErrTokenAlreadyUsed is returned when a one-time login token is presented twice.
	ErrTokenAlreadyUsed = errors.New("token already used")
)
