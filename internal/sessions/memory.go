package sessions

import (
	"context"
	"sync"
	"time"
)

const CleanupInterval = 5 * time.Minute

// keeps sessions in process memory
type MemoryStore struct {
	sessions map[string]*Session
	mu       sync.RWMutex
	ttl      time.Duration
	stopChan chan struct{}
	stopOnce sync.Once
}

// returns a new memory store and starts its cleanup goroutine
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	m := &MemoryStore{
		sessions: make(map[string]*Session),
		ttl:      ttl,
		stopChan: make(chan struct{}),
	}

	go m.cleanupExpiredSessions()

	return m
}

// returns the session and refreshes its activity, so reads keep it alive
// for as long as the cookie that points to it
func (m *MemoryStore) Get(_ context.Context, id string) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	session, exists := m.sessions[id]
	if !exists {
		return nil, ErrSessionNotFound
	}

	now := time.Now()
	if m.expired(session, now) {
		return nil, ErrSessionExpired
	}

	session.LastActivity = now

	return session.clone(), nil
}

func (m *MemoryStore) Update(_ context.Context, id string, fn func(*Session)) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now()

	var session *Session
	if existing, ok := m.sessions[id]; ok && !m.expired(existing, now) {
		session = existing.clone()
	} else {
		session = newSession(id)
	}

	fn(session)
	session.ID = id
	session.LastActivity = now

	m.sessions[id] = session

	return session.clone(), nil
}

func (m *MemoryStore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
	return nil
}

// returns the number of stored sessions
func (m *MemoryStore) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// stops the cleanup goroutine
func (m *MemoryStore) Close() error {
	m.stopOnce.Do(func() { close(m.stopChan) })
	return nil
}

func (m *MemoryStore) expired(s *Session, now time.Time) bool {
	return now.Sub(s.LastActivity) > m.ttl
}

// periodically removes expired sessions
func (m *MemoryStore) cleanupExpiredSessions() {
	ticker := time.NewTicker(CleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			m.removeExpiredSessions()
		case <-m.stopChan:
			return
		}
	}
}

func (m *MemoryStore) removeExpiredSessions() {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now()
	for id, session := range m.sessions {
		if m.expired(session, now) {
			delete(m.sessions, id)
		}
	}
}
