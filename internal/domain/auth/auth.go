// Package auth checks credentials for the directory's mock login.
package auth

import (
	"context"
	"crypto/subtle"

	"golang.org/x/time/rate"
)

// Option applies a configuration option to the Authenticator.
type Option func(*Authenticator)

// WithRateLimit throttles login attempts to perSecond with the given burst.
// A non-positive rate disables throttling.
func WithRateLimit(perSecond float64, burst int) Option {
	return func(a *Authenticator) {
		if perSecond <= 0 {
			a.limiter = nil
			return
		}
		if burst < 1 {
			burst = 1
		}
		a.limiter = rate.NewLimiter(rate.Limit(perSecond), burst)
	}
}

// Authenticator accepts exactly one configured username/password pair.
type Authenticator struct {
	username []byte
	password []byte
	limiter  *rate.Limiter
}

// New creates an Authenticator for the given credentials.
func New(username, password string, opts ...Option) *Authenticator {
	a := &Authenticator{
		username: []byte(username),
		password: []byte(password),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Authenticate returns nil when the credentials match.
func (a *Authenticator) Authenticate(_ context.Context, username, password string) error {
	if a.limiter != nil && !a.limiter.Allow() {
		return ErrRateLimited
	}
	userOK := subtle.ConstantTimeCompare([]byte(username), a.username) == 1
	passOK := subtle.ConstantTimeCompare([]byte(password), a.password) == 1
	if !userOK || !passOK || len(a.username) == 0 {
		return ErrInvalidCredentials
	}
	return nil
}
