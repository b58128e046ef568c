package csrf

import (
	"context"
	"sync"
	"time"
)

// MemoryStore implements Store in memory for tests and local development.
type MemoryStore struct {
	mu     sync.RWMutex
	tokens map[string]time.Time
}

// NewMemoryStore creates a new in-memory CSRF token store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		tokens: make(map[string]time.Time),
	}
}

// Put records a token with its expiry.
func (m *MemoryStore) Put(ctx context.Context, token string, expiresAt time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.tokens[token] = expiresAt
	return nil
}

// Exists reports whether the token is present and unexpired at now.
func (m *MemoryStore) Exists(ctx context.Context, token string, now time.Time) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	expiresAt, ok := m.tokens[token]
	return ok && now.Before(expiresAt), nil
}

// Delete removes a token. Absent tokens are not an error.
func (m *MemoryStore) Delete(ctx context.Context, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.tokens, token)
	return nil
}

// DeleteExpired removes all tokens expired before now.
func (m *MemoryStore) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var removed int64
	for token, expiresAt := range m.tokens {
		if !now.Before(expiresAt) {
			delete(m.tokens, token)
			removed++
		}
	}
	return removed, nil
}

var _ Store = (*MemoryStore)(nil)
