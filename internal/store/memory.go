package store

import (
	"errors"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/vincentspereira/weatherdeck/internal/session"
)

var (
	// ErrNotFound is returned when no session exists for a given id.
	ErrNotFound = errors.New("no session for id")
)

// Factory builds a fresh session for a new id.
type Factory func() *session.Session

// entry pairs a session with its retention bookkeeping.
type entry struct {
	session    *session.Session
	createdAt  time.Time
	lastAccess time.Time
}

// SessionStore is a concurrency-safe in-memory registry of active
// sessions, keyed by uuid. Sessions are evicted when idle past maxAge or
// when the store grows past maxSessions (oldest-idle first).
type SessionStore struct {
	mu sync.RWMutex

	factory  Factory
	sessions map[string]*entry

	// retention configuration
	maxSessions int           // max number of live sessions (0 = unlimited)
	maxAge      time.Duration // max idle age (0 = unlimited)
}

// NewSessionStore creates a SessionStore with optional limits.
// If maxSessions is <= 0, it is treated as unlimited.
func NewSessionStore(factory Factory, maxSessions int, maxAge time.Duration) *SessionStore {
	return &SessionStore{
		factory:     factory,
		sessions:    make(map[string]*entry),
		maxSessions: maxSessions,
		maxAge:      maxAge,
	}
}

// Create registers a new session and returns its id.
func (s *SessionStore) Create() (string, *session.Session) {
	id := uuid.New().String()
	sess := s.factory()

	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	s.sessions[id] = &entry{session: sess, createdAt: now, lastAccess: now}
	s.evictOverCountLocked()
	return id, sess
}

// Get returns the session for id and bumps its last-access time.
func (s *SessionStore) Get(id string) (*session.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	e.lastAccess = time.Now()
	return e.session, nil
}

// Sweep removes sessions idle past the age limit and reports how many
// were evicted.
func (s *SessionStore) Sweep() int {
	if s.maxAge <= 0 {
		return 0
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := time.Now().Add(-s.maxAge)
	evicted := 0
	for id, e := range s.sessions {
		if e.lastAccess.Before(cutoff) {
			delete(s.sessions, id)
			evicted++
		}
	}
	if evicted > 0 {
		log.Printf("INFO: swept %d expired sessions", evicted)
	}
	return evicted
}

// Len reports the number of live sessions.
func (s *SessionStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// evictOverCountLocked drops the longest-idle sessions until the count
// limit holds. Caller holds s.mu.
func (s *SessionStore) evictOverCountLocked() {
	if s.maxSessions <= 0 {
		return
	}
	for len(s.sessions) > s.maxSessions {
		var oldestID string
		var oldest time.Time
		for id, e := range s.sessions {
			if oldestID == "" || e.lastAccess.Before(oldest) {
				oldestID = id
				oldest = e.lastAccess
			}
		}
		delete(s.sessions, oldestID)
	}
}
