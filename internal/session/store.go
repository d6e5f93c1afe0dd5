package session

import (
	"context"
	"sync"
	"time"

	"study-tracker/pkg/errors"
)

type Store interface {
	Save(ctx context.Context, sess *Session) error
	Load(ctx context.Context, id string) (*Session, error)
}

// MemoryStore keeps sessions in process; they die with it. Expired entries
// are dropped on every save.
type MemoryStore struct {
	mu       sync.RWMutex
	ttl      time.Duration
	sessions map[string]memoryEntry
	now      func() time.Time
}

type memoryEntry struct {
	session   Session
	expiresAt time.Time
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		ttl:      ttl,
		sessions: make(map[string]memoryEntry),
		now:      time.Now,
	}
}

func (m *MemoryStore) Save(ctx context.Context, sess *Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	if m.ttl > 0 {
		for id, entry := range m.sessions {
			if now.After(entry.expiresAt) {
				delete(m.sessions, id)
			}
		}
	}
	m.sessions[sess.ID] = memoryEntry{session: *sess, expiresAt: now.Add(m.ttl)}
	return nil
}

func (m *MemoryStore) Load(ctx context.Context, id string) (*Session, error) {
	m.mu.RLock()
	entry, ok := m.sessions[id]
	m.mu.RUnlock()

	if !ok {
		return nil, errors.ErrSessionNotFound
	}
	if m.ttl > 0 && m.now().After(entry.expiresAt) {
		m.mu.Lock()
		delete(m.sessions, id)
		m.mu.Unlock()
		return nil, errors.ErrSessionNotFound
	}

	sess := entry.session
	return &sess, nil
}
