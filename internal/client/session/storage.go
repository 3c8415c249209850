package session

import (
	"context"
	"sync"

	sessionrepo "github.com/dmitrijs2005/sgrsensor/internal/client/repositories/session"
)

// Storage is session-scoped key/value storage: it lives as long as the
// client process, or as long as the database file when one is configured.
type Storage interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	// Remove deletes all given keys together; missing keys are ignored.
	Remove(ctx context.Context, keys ...string) error
	Clear(ctx context.Context) error
}

// MemoryStorage keeps values in a map. The zero value is ready to use.
type MemoryStorage struct {
	mu   sync.Mutex
	data map[string]string
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{}
}

func (m *MemoryStorage) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *MemoryStorage) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.data == nil {
		m.data = make(map[string]string)
	}
	m.data[key] = value
	return nil
}

func (m *MemoryStorage) Remove(_ context.Context, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, k := range keys {
		delete(m.data, k)
	}
	return nil
}

func (m *MemoryStorage) Clear(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = nil
	return nil
}

// SQLStorage is Storage over the SQLite session repository.
type SQLStorage struct {
	repo sessionrepo.Repository
}

func NewSQLStorage(repo sessionrepo.Repository) *SQLStorage {
	return &SQLStorage{repo: repo}
}

func (s *SQLStorage) Get(ctx context.Context, key string) (string, bool, error) {
	return s.repo.Get(ctx, key)
}

func (s *SQLStorage) Set(ctx context.Context, key, value string) error {
	return s.repo.Set(ctx, key, value)
}

func (s *SQLStorage) Remove(ctx context.Context, keys ...string) error {
	return s.repo.Delete(ctx, keys...)
}

func (s *SQLStorage) Clear(ctx context.Context) error {
	return s.repo.Clear(ctx)
}
