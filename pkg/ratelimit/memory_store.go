package ratelimit

import (
	"context"
	"sync"
	"time"
)

type window struct {
	count     int64
	expiresAt time.Time
}

// MemoryStore implements Store with a mutex-guarded map. Intended for tests
// and single-process development; production uses the redis store.
type MemoryStore struct {
	mu      sync.Mutex
	windows map[string]*window
	now     func() time.Time
}

// MemoryStoreOption configures a MemoryStore.
type MemoryStoreOption func(*MemoryStore)

// WithMemoryClock injects a time source for deterministic window tests.
func WithMemoryClock(now func() time.Time) MemoryStoreOption {
	return func(s *MemoryStore) {
		if now != nil {
			s.now = now
		}
	}
}

// NewMemoryStore creates a new in-memory counter store.
func NewMemoryStore(opts ...MemoryStoreOption) *MemoryStore {
	s := &MemoryStore{
		windows: make(map[string]*window),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// IncrementAndGet atomically bumps the counter, starting a fresh window when
// none exists or the previous one has elapsed.
func (s *MemoryStore) IncrementAndGet(ctx context.Context, key string, windowLen time.Duration) (int64, time.Duration, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	w, exists := s.windows[key]
	if !exists || !now.Before(w.expiresAt) {
		w = &window{count: 1, expiresAt: now.Add(windowLen)}
		s.windows[key] = w
		return 1, windowLen, nil
	}

	w.count++
	return w.count, w.expiresAt.Sub(now), nil
}

// DeleteExpired removes counters whose window has elapsed.
func (s *MemoryStore) DeleteExpired(ctx context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	var removed int64
	for key, w := range s.windows {
		if !now.Before(w.expiresAt) {
			delete(s.windows, key)
			removed++
		}
	}
	return removed, nil
}

var _ Store = (*MemoryStore)(nil)
