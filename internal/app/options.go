package service

import (
	"time"

	"github.com/okian/roster/internal/adapters/repository"
	"github.com/okian/roster/internal/domain/auth"
	"github.com/okian/roster/internal/domain/geo"
	"github.com/okian/roster/internal/domain/session"
	"github.com/okian/roster/pkg/logger"
)

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithDirectory sets the roster snapshotted at login.
func WithDirectory(d repository.Directory) Option {
	return func(s *Service) {
		if d != nil {
			s.directory = d
		}
	}
}

// WithGeoTable sets the table used to place cities on the map.
func WithGeoTable(t *geo.Table) Option {
	return func(s *Service) {
		if t != nil {
			s.table = t
		}
	}
}

// WithSessionStore sets the session store.
func WithSessionStore(st session.Store) Option {
	return func(s *Service) {
		if st != nil {
			s.sessions = st
		}
	}
}

// WithAuthenticator sets the credential check used by Login.
func WithAuthenticator(a *auth.Authenticator) Option {
	return func(s *Service) {
		if a != nil {
			s.auth = a
		}
	}
}

// WithMaxPhotoBytes caps the size of a captured photo.
func WithMaxPhotoBytes(n int64) Option {
	return func(s *Service) {
		if n > 0 {
			s.maxPhotoBytes = n
		}
	}
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}
