package session

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/okian/roster/internal/domain/model"
)

// Store tracks live sessions by token.
type Store interface {
	// Create starts a session for username holding a private copy of employees.
	Create(ctx context.Context, username string, employees []model.Employee) *Session
	// Get returns the live session for token.
	Get(ctx context.Context, token string) (*Session, bool)
	// Delete ends the session for token. Returns false if it was not live.
	Delete(ctx context.Context, token string) bool

	Size() int64
}

// node is one entry of the creation-ordered list; head is the newest.
type node struct {
	token string
	next  *node
}

// inMemoryStore keeps sessions in a map plus a singly-linked list in creation
// order so the oldest can be evicted when the store is bounded.
type inMemoryStore struct {
	mu          sync.RWMutex
	sessions    map[string]*Session
	nodes       map[string]*node
	head        *node
	maxSessions int
	size        atomic.Int64
	now         func() time.Time
	newToken    func() string
}

// NewInMemoryStore creates a session store with configuration options.
func NewInMemoryStore(opts ...Option) Store {
	s := &inMemoryStore{
		maxSessions: 1000,
		now:         time.Now,
		newToken:    uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.sessions = make(map[string]*Session)
	s.nodes = make(map[string]*node)
	return s
}

func (s *inMemoryStore) Create(_ context.Context, username string, employees []model.Employee) *Session {
	sess := newSession(s.newToken(), username, s.now(), employees)

	s.mu.Lock()
	defer s.mu.Unlock()

	if old, exists := s.sessions[sess.Token]; exists {
		// Token reuse only happens with an injected generator; replace in place.
		old.clearPhotos()
		s.sessions[sess.Token] = sess
		return sess
	}
	if s.maxSessions > 0 && len(s.sessions) >= s.maxSessions {
		s.evictOldest()
	}
	n := &node{token: sess.Token, next: s.head}
	s.head = n
	s.nodes[sess.Token] = n
	s.sessions[sess.Token] = sess
	s.size.Add(1)
	return sess
}

func (s *inMemoryStore) Get(_ context.Context, token string) (*Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[token]
	return sess, ok
}

func (s *inMemoryStore) Delete(_ context.Context, token string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[token]
	if !ok {
		return false
	}
	n := s.nodes[token]
	if s.head == n {
		s.head = n.next
	} else {
		cur := s.head
		for cur != nil && cur.next != n {
			cur = cur.next
		}
		if cur != nil {
			cur.next = n.next
		}
	}
	s.drop(token, sess)
	return true
}

func (s *inMemoryStore) Size() int64 {
	return s.size.Load()
}

// evictOldest removes the tail of the list. Must be called with s.mu held.
func (s *inMemoryStore) evictOldest() {
	if s.head == nil {
		return
	}
	if s.head.next == nil {
		tok := s.head.token
		s.head = nil
		s.drop(tok, s.sessions[tok])
		return
	}
	prev, cur := s.head, s.head.next
	for cur.next != nil {
		prev, cur = cur, cur.next
	}
	prev.next = nil
	s.drop(cur.token, s.sessions[cur.token])
}

// drop forgets a session and releases what it holds. Must be called with s.mu held.
func (s *inMemoryStore) drop(token string, sess *Session) {
	delete(s.sessions, token)
	delete(s.nodes, token)
	if sess != nil {
		sess.clearPhotos()
	}
	s.size.Add(-1)
}
