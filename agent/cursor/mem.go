package cursor

import (
	"context"
	"sync"
)

// MemStore keeps cursors for the process lifetime only.
type MemStore struct {
	mu      sync.RWMutex
	cursors map[string]string
}

func NewMemStore() *MemStore {
	return &MemStore{cursors: make(map[string]string)}
}

func (s *MemStore) Get(ctx context.Context, name string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cursors[name], nil
}

func (s *MemStore) Set(ctx context.Context, name, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cursors[name] = value
	return nil
}
