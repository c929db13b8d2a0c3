// Package session keeps the per-login state of the directory viewer.
package session

import "time"

// Option applies a configuration option to the in-memory store.
type Option func(*inMemoryStore)

// WithMaxSessions bounds the number of live sessions.
// If maxSessions > 0 the oldest session is evicted when the bound is hit.
// If maxSessions <= 0 the store is unbounded.
func WithMaxSessions(maxSessions int) Option {
	return func(s *inMemoryStore) {
		s.maxSessions = maxSessions
	}
}

// WithClock overrides the time source used for session timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *inMemoryStore) {
		if now != nil {
			s.now = now
		}
	}
}

// WithTokenFunc overrides how session tokens are generated.
func WithTokenFunc(fn func() string) Option {
	return func(s *inMemoryStore) {
		if fn != nil {
			s.newToken = fn
		}
	}
}
