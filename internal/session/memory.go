package session

import (
	"context"
	"sync"
	"time"

	"github.com/iliyamo/restaurant-reservation-web/internal/model"
)

type memoryEntry struct {
	sess      model.Session
	expiresAt time.Time
}

// MemoryStore keeps sessions in process memory.  It is the fallback
// when Redis is unavailable and the default store in tests.  Expired
// entries are dropped lazily on read.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	ttl     time.Duration
	now     clock
}

// NewMemoryStore returns a store whose sessions live for ttl.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]memoryEntry),
		ttl:     ttl,
		now:     time.Now,
	}
}

func (s *MemoryStore) Create(_ context.Context, sess model.Session) (string, error) {
	if !sess.Valid() {
		return "", ErrInvalidSession
	}
	id := newID()
	s.mu.Lock()
	s.entries[id] = memoryEntry{sess: sess, expiresAt: s.now().Add(s.ttl)}
	s.mu.Unlock()
	return id, nil
}

func (s *MemoryStore) Get(_ context.Context, id string) (model.Session, error) {
	s.mu.RLock()
	e, ok := s.entries[id]
	s.mu.RUnlock()
	if !ok {
		return model.Session{}, ErrNoSession
	}
	if s.now().After(e.expiresAt) {
		s.mu.Lock()
		delete(s.entries, id)
		s.mu.Unlock()
		return model.Session{}, ErrNoSession
	}
	return e.sess, nil
}

func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	delete(s.entries, id)
	s.mu.Unlock()
	return nil
}
