package adapters

import (
	"context"
	"sync"
	"time"

	"github.com/ouchsaray/ai-stock-trader/internal/feature/tickers/domain/entity"
	"github.com/ouchsaray/ai-stock-trader/internal/feature/tickers/usecase"
)

type memoryEntry struct {
	session   entity.Session
	expiresAt time.Time
}

// SessionMemory is the in-process SessionRepository used when Redis is unavailable.
// Sessions are lost on restart.
type SessionMemory struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	ttl     time.Duration
	now     func() time.Time
}

var _ usecase.SessionRepository = (*SessionMemory)(nil)

// NewSessionMemory creates an empty in-memory store.
func NewSessionMemory(ttl time.Duration) *SessionMemory {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &SessionMemory{
		entries: make(map[string]memoryEntry),
		ttl:     ttl,
		now:     time.Now,
	}
}

// Find returns a copy of the stored session.
func (m *SessionMemory) Find(ctx context.Context, id string) (*entity.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.entries[id]
	if !ok {
		return nil, usecase.ErrSessionNotFound
	}
	if m.now().After(e.expiresAt) {
		delete(m.entries, id)
		return nil, usecase.ErrSessionNotFound
	}
	s := copySession(e.session)
	return &s, nil
}

// Save stores a copy of the session and resets its expiry.
func (m *SessionMemory) Save(ctx context.Context, session *entity.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.entries[session.ID] = memoryEntry{
		session:   copySession(*session),
		expiresAt: m.now().Add(m.ttl),
	}
	m.sweep()
	return nil
}

// Delete removes a session.
func (m *SessionMemory) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, id)
	return nil
}

// Len returns the number of live sessions.
func (m *SessionMemory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sweep()
	return len(m.entries)
}

// sweep drops expired entries. Callers hold mu.
func (m *SessionMemory) sweep() {
	now := m.now()
	for id, e := range m.entries {
		if now.After(e.expiresAt) {
			delete(m.entries, id)
		}
	}
}

func copySession(s entity.Session) entity.Session {
	s.Selection.Tickers = append([]string{}, s.Selection.Tickers...)
	return s
}
