// Package ratelimit throttles repeat submissions per caller identity using a
// single-timestamp-per-key fixed window.
package ratelimit

import (
	"sync"
	"time"
)

// Store decides whether a caller identity may act now. The default store is
// in-memory and process-local; deployments with multiple worker processes can
// substitute a shared implementation behind this interface.
type Store interface {
	Allow(key string) bool
}

// MemoryStore keeps the last allowed submission time per key. Entries are
// never evicted; growth is bounded only by distinct caller identities.
type MemoryStore struct {
	mu     sync.Mutex
	window time.Duration
	seen   map[string]time.Time
	now    func() time.Time
}

func WithClock(now func() time.Time) func(*MemoryStore) {
	return func(s *MemoryStore) {
		s.now = now
	}
}

func NewMemoryStore(window time.Duration, opts ...func(*MemoryStore)) *MemoryStore {
	s := &MemoryStore{
		window: window,
		seen:   make(map[string]time.Time),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Allow reports whether key may submit now, and if so records the submission.
// A denied call does not reset the window.
func (s *MemoryStore) Allow(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if last, ok := s.seen[key]; ok && now.Sub(last) < s.window {
		return false
	}
	s.seen[key] = now
	return true
}
