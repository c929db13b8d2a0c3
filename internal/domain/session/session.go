package session

import (
	"sync"
	"time"

	"github.com/okian/roster/internal/domain/model"
)

// Photo is the last image captured for an employee during a session.
type Photo struct {
	EmployeeID  string
	ContentType string
	Data        []byte
	Width       int
	Height      int
	CapturedAt  time.Time
}

// Session is the explicit state created at login and destroyed at logout.
// The employee snapshot is fixed at creation; captured photos are the only
// part that changes afterwards.
type Session struct {
	Token     string
	Username  string
	CreatedAt time.Time

	employees []model.Employee

	mu     sync.RWMutex
	photos map[string]Photo
}

func newSession(token, username string, createdAt time.Time, employees []model.Employee) *Session {
	return &Session{
		Token:     token,
		Username:  username,
		CreatedAt: createdAt,
		employees: model.CloneAll(employees),
		photos:    make(map[string]Photo),
	}
}

// Employees returns the login-time snapshot in its original order.
// The returned slice is shared and must be treated as read-only.
func (s *Session) Employees() []model.Employee {
	return s.employees
}

// Employee returns the first record with the given identifier.
func (s *Session) Employee(id string) (model.Employee, bool) {
	for _, e := range s.employees {
		if e.ID == id {
			return e, true
		}
	}
	return model.Employee{}, false
}

// SetPhoto stores p as the latest photo for its employee, replacing any earlier one.
func (s *Session) SetPhoto(p Photo) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.photos[p.EmployeeID] = p
}

// Photo returns the latest photo captured for an employee.
func (s *Session) Photo(employeeID string) (Photo, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.photos[employeeID]
	return p, ok
}

// PhotoCount reports how many employees have a captured photo.
func (s *Session) PhotoCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.photos)
}

func (s *Session) clearPhotos() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.photos = make(map[string]Photo)
}
