package auth

import "errors"

// Sentinel kinds for authentication errors.
var (
	ErrInvalidCredentials = errors.New("Invalid credentials") //nolint:staticcheck // surfaced verbatim to the login form
	ErrRateLimited        = errors.New("too many login attempts")
)
