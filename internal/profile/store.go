package profile

import (
	"sync"
	"time"

	"github.com/frahmantamala/vacation-management/internal"
	"github.com/frahmantamala/vacation-management/internal/user"
)

// Store caches at most one profile for a single session. The zero value is empty.
type Store struct {
	mu      sync.RWMutex
	profile *user.User
}

func (s *Store) Get() *user.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.profile
}

func (s *Store) Set(p *user.User) {
	s.mu.Lock()
	s.profile = p
	s.mu.Unlock()
}

func (s *Store) Clear() {
	s.Set(nil)
}

// sweepInterval bounds how often For scans for expired sessions.
const sweepInterval = time.Minute

type storeEntry struct {
	store     *Store
	expiresAt time.Time
}

// Stores hands out one Store per live session. Entries go away on Drop or once their
// session has expired.
type Stores struct {
	mu        sync.Mutex
	bySession map[string]*storeEntry
	now       func() time.Time
	lastSweep time.Time
}

func NewStores() *Stores {
	return &Stores{
		bySession: make(map[string]*storeEntry),
		now:       time.Now,
	}
}

// WithClock replaces the time source, for tests.
func (s *Stores) WithClock(now func() time.Time) *Stores {
	s.mu.Lock()
	s.now = now
	s.mu.Unlock()
	return s
}

// For returns the session's store, creating an empty one on first use. Sessions
// without an id or expiry, or already expired, get a store that is not retained.
func (s *Stores) For(session *internal.Session) *Store {
	if session == nil || session.ID == "" || session.ExpiresAt.IsZero() {
		return &Store{}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if now.Sub(s.lastSweep) >= sweepInterval {
		s.sweepLocked(now)
	}

	if !session.ExpiresAt.After(now) {
		delete(s.bySession, session.ID)
		return &Store{}
	}

	e, ok := s.bySession[session.ID]
	if !ok {
		e = &storeEntry{store: &Store{}}
		s.bySession[session.ID] = e
	}
	e.expiresAt = session.ExpiresAt
	return e.store
}

func (s *Stores) sweepLocked(now time.Time) {
	for id, e := range s.bySession {
		if !e.expiresAt.After(now) {
			delete(s.bySession, id)
		}
	}
	s.lastSweep = now
}

// Drop clears and forgets the session's store.
func (s *Stores) Drop(sessionID string) {
	s.mu.Lock()
	e, ok := s.bySession[sessionID]
	delete(s.bySession, sessionID)
	s.mu.Unlock()

	if ok {
		e.store.Clear()
	}
}

func (s *Stores) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.bySession)
}
