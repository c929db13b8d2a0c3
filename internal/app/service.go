// Package service provides the core business service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/okian/roster/internal/adapters/repository"
	"github.com/okian/roster/internal/domain/auth"
	"github.com/okian/roster/internal/domain/geo"
	"github.com/okian/roster/internal/domain/model"
	"github.com/okian/roster/internal/domain/session"
	"github.com/okian/roster/internal/domain/types"
	"github.com/okian/roster/pkg/logger"
	"github.com/okian/roster/pkg/metrics"
	"github.com/rotisserie/eris"
)

const (
	defaultUsername      = "testuser"
	defaultPassword      = "Test123"
	defaultMaxPhotoBytes = 5 << 20
)

// Service implements the API dependencies for the employee directory.
type Service struct {
	mu sync.RWMutex

	directory repository.Directory
	table     *geo.Table
	sessions  session.Store
	auth      *auth.Authenticator

	maxPhotoBytes int64
	now           func() time.Time

	started   bool
	startedAt time.Time

	logger logger.Logger
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		directory:     repository.NewMemoryDirectory(nil),
		table:         geo.Default(),
		sessions:      session.NewInMemoryStore(),
		auth:          auth.New(defaultUsername, defaultPassword),
		maxPhotoBytes: defaultMaxPhotoBytes,
		now:           time.Now,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start marks the service ready and publishes the roster size.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}
	if s.logger == nil {
		s.logger = logger.Get()
	}

	s.started = true
	s.startedAt = s.now()
	metrics.UpdateRosterSize(s.directory.Count(ctx))
	metrics.UpdateActiveSessions(int(s.sessions.Size()))

	s.logger.Info(ctx, "directory service started",
		logger.Int("employees", s.directory.Count(ctx)),
		logger.Int("geoCities", s.table.Len()),
	)
	return nil
}

// Stop marks the service stopped.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}
	s.started = false
	s.log().Info(context.Background(), "directory service stopped",
		logger.Int("activeSessions", int(s.sessions.Size())))
}

// Login checks the credentials and opens a session holding a snapshot of the roster.
func (s *Service) Login(ctx context.Context, username, password string) (types.LoginResponse, error) {
	if err := s.auth.Authenticate(ctx, username, password); err != nil {
		switch {
		case errors.Is(err, auth.ErrRateLimited):
			metrics.RecordLoginAttempt("rate_limited")
		default:
			metrics.RecordLoginAttempt("invalid")
		}
		s.log().Warn(ctx, "login rejected", logger.String("username", username), logger.Error(err))
		return types.LoginResponse{}, err
	}

	snapshot, err := s.directory.Snapshot(ctx)
	if err != nil {
		metrics.RecordErrorByComponent("service", "roster_snapshot")
		return types.LoginResponse{}, eris.Wrapf(ErrRosterUnavailable, "snapshot: %v", err)
	}

	sess := s.sessions.Create(ctx, username, snapshot)
	metrics.RecordLoginAttempt("success")
	metrics.UpdateActiveSessions(int(s.sessions.Size()))

	s.log().Info(ctx, "session opened",
		logger.String("username", username),
		logger.Int("employees", len(snapshot)),
	)

	return types.LoginResponse{
		Token:     sess.Token,
		Username:  sess.Username,
		Employees: summaries(sess.Employees()),
	}, nil
}

// Logout destroys the session and everything it holds. Unknown tokens are ignored.
func (s *Service) Logout(ctx context.Context, token string) {
	if !s.sessions.Delete(ctx, token) {
		return
	}
	metrics.RecordLogout()
	metrics.UpdateActiveSessions(int(s.sessions.Size()))
	s.log().Debug(ctx, "session closed")
}

// Authorize reports whether token names a live session.
func (s *Service) Authorize(ctx context.Context, token string) error {
	_, err := s.session(ctx, token)
	return err
}

// Employees returns the session's employee list in original order.
func (s *Service) Employees(ctx context.Context, token string) ([]types.EmployeeSummary, error) {
	sess, err := s.session(ctx, token)
	if err != nil {
		return nil, err
	}
	return summaries(sess.Employees()), nil
}

// Employee returns the details of the first employee with the given id.
func (s *Service) Employee(ctx context.Context, token, id string) (types.EmployeeDetails, error) {
	sess, err := s.session(ctx, token)
	if err != nil {
		return types.EmployeeDetails{}, err
	}
	e, ok := sess.Employee(id)
	if !ok {
		return types.EmployeeDetails{}, eris.Wrapf(ErrEmployeeNotFound, "id %q", id)
	}
	_, hasPhoto := sess.Photo(id)
	return details(e, hasPhoto), nil
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() types.ServiceStats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx := context.Background()
	stats := types.ServiceStats{
		RosterSize:     s.directory.Count(ctx),
		ActiveSessions: s.sessions.Size(),
		GeoCities:      s.table.Len(),
	}
	if s.started {
		stats.Uptime = s.now().Sub(s.startedAt).Round(time.Second).String()
	}

	metrics.UpdateActiveSessions(int(stats.ActiveSessions))
	return stats
}

func (s *Service) session(ctx context.Context, token string) (*session.Session, error) {
	if token == "" {
		return nil, ErrUnauthorized
	}
	sess, ok := s.sessions.Get(ctx, token)
	if !ok {
		return nil, ErrUnauthorized
	}
	return sess, nil
}

func (s *Service) log() logger.Logger {
	if s.logger == nil {
		return logger.Get()
	}
	return s.logger
}

func summary(e model.Employee) types.EmployeeSummary {
	return types.EmployeeSummary{
		ID:          e.ID,
		Name:        e.DisplayName(),
		Designation: e.DisplayDesignation(),
		City:        e.DisplayCity(),
		Salary:      e.DisplaySalary(),
		SalaryValue: e.SalaryOrZero(),
	}
}

func summaries(employees []model.Employee) []types.EmployeeSummary {
	out := make([]types.EmployeeSummary, len(employees))
	for i, e := range employees {
		out[i] = summary(e)
	}
	return out
}

func details(e model.Employee, hasPhoto bool) types.EmployeeDetails {
	d := types.EmployeeDetails{
		EmployeeSummary: summary(e),
		Title:           e.Title(),
		Email:           e.Email,
		Phone:           e.Phone,
		HasPhoto:        hasPhoto,
	}
	if len(e.Extra) > 0 {
		d.Extra = make(map[string]string, len(e.Extra))
		for k, v := range e.Extra {
			d.Extra[k] = v
		}
	}
	return d
}
