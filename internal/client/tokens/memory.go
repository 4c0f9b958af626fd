package tokens

import (
	"context"
	"sync"
)

// MemoryStore is an in-memory Store used by tests and by callers that do not
// want durable tokens.
type MemoryStore struct {
	mu     sync.RWMutex
	values map[Kind]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[Kind]string)}
}

func (s *MemoryStore) Get(_ context.Context, kind Kind) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.values[kind], nil
}

func (s *MemoryStore) Set(_ context.Context, kind Kind, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[kind] = value
	return nil
}

func (s *MemoryStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values = make(map[Kind]string)
	return nil
}
