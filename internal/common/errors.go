// Package common defines shared constants and sentinel errors used across
// the portal server and its upload client. Callers should use errors.Is to
// match these values.
package common

import "errors"

var (
	// Request-level errors.
	ErrorMethodNotAllowed = errors.New("method not allowed")
	ErrorValidation       = errors.New("validation error")

	// Authentication errors, local (portal credentials) and remote (Odoo).
	ErrorUnauthorized = errors.New("unauthorized")
	ErrInvalidToken   = errors.New("invalid token")
	ErrTokenExpired   = errors.New("token expired")

	// Remote call errors.
	ErrorRemoteCall = errors.New("remote call failed")
	ErrorCreate     = errors.New("record not created")

	// Journal errors.
	ErrorNotFound = errors.New("not found")
)
