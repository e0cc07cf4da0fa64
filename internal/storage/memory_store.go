package storage

import (
	"context"
	"slices"
	"sync"

	"marketplace-admin-backend/internal/domain"
)

// MemoryStore keeps everything in process memory. Nothing survives a restart,
// so it is meant for tests and throwaway runs.
type MemoryStore struct {
	mu      sync.RWMutex
	session *domain.Session
	read    map[string]struct{}
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{read: make(map[string]struct{})}
}

func (m *MemoryStore) SaveSession(_ context.Context, s domain.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.session = &s
	return nil
}

func (m *MemoryStore) LoadSession(context.Context) (*domain.Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.session == nil {
		return nil, ErrNoSession
	}
	s := *m.session
	return &s, nil
}

func (m *MemoryStore) ClearSession(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.session = nil
	return nil
}

func (m *MemoryStore) Token(context.Context) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.session == nil {
		return "", nil
	}
	return m.session.Token, nil
}

func (m *MemoryStore) ReadNotificationIDs(context.Context) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	ids := make([]string, 0, len(m.read))
	for id := range m.read {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids, nil
}

func (m *MemoryStore) MarkNotificationsRead(_ context.Context, ids []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, id := range ids {
		if id != "" {
			m.read[id] = struct{}{}
		}
	}
	return nil
}

func (m *MemoryStore) Close() error { return nil }
