package cache

import (
	"context"
	"sync"

	"github.com/realorrender/realorrender/src/types"
)

// MemoryStore is an in-process adjudication cache with the same semantics
// as RedisStore. Used by the smoketest and by deployments without Redis.
type MemoryStore struct {
	mu    sync.RWMutex
	items map[string]types.Adjudication
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{items: make(map[string]types.Adjudication)}
}

func (s *MemoryStore) Lookup(_ context.Context, fingerprint string) (types.Adjudication, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	adj, ok := s.items[fingerprint]
	return adj, ok, nil
}

func (s *MemoryStore) Put(_ context.Context, fingerprint string, adj types.Adjudication) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[fingerprint] = adj
	return nil
}

// Len reports the number of distinct fingerprints stored.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}
