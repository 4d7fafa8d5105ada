package session

import (
	"context"
	"sync"
	"time"
)

var _ Store = (*MemoryStore)(nil)

type memoryEntry struct {
	session   Session
	expiresAt time.Time
}

// MemoryStore keeps sessions in process memory. Sessions are lost on
// restart.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	ttl     time.Duration
	now     func() time.Time
}

// NewMemoryStore returns an empty MemoryStore. A zero ttl keeps sessions
// until they are deleted.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]memoryEntry),
		ttl:     ttl,
		now:     time.Now,
	}
}

func (m *MemoryStore) Get(_ context.Context, id string) (*Session, error) {
	m.mu.RLock()
	e, ok := m.entries[id]
	m.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}
	if !e.expiresAt.IsZero() && m.now().After(e.expiresAt) {
		m.mu.Lock()
		delete(m.entries, id)
		m.mu.Unlock()
		return nil, ErrNotFound
	}
	s := e.session
	return &s, nil
}

func (m *MemoryStore) Save(_ context.Context, s *Session) error {
	e := memoryEntry{session: *s}
	if m.ttl > 0 {
		e.expiresAt = m.now().Add(m.ttl)
	}

	m.mu.Lock()
	m.entries[s.ID] = e
	m.mu.Unlock()
	return nil
}

func (m *MemoryStore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	delete(m.entries, id)
	m.mu.Unlock()
	return nil
}

// Len returns the number of stored sessions, expired ones included.
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}
