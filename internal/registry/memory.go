package registry

import (
	"context"
	"sync"

	"secure-share-backend/internal/model"
)

// MemoryStore keeps code entries in a process-local map.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]model.CodeEntry
}

// NewMemoryStore creates an empty in-memory code store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string]model.CodeEntry)}
}

func (s *MemoryStore) Save(_ context.Context, entry *model.CodeEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[entry.Code] = *entry
	return nil
}

func (s *MemoryStore) Get(_ context.Context, code string) (*model.CodeEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entry, ok := s.entries[code]
	if !ok {
		return nil, ErrCodeNotFound
	}
	return &entry, nil
}

func (s *MemoryStore) DeleteAll(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries = make(map[string]model.CodeEntry)
	return nil
}
