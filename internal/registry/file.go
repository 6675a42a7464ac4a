package registry

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"sync"

	"secure-share-backend/internal/model"
)

// FileStore persists code entries as one JSON document (uploads.json) mapping
// code -> entry. The document is loaded fully at startup and rewritten fully
// on every mutation. A missing or unparseable file starts the store empty.
type FileStore struct {
	path string

	mu      sync.RWMutex
	entries map[string]model.CodeEntry
}

// NewFileStore opens (or initializes) the code file at path.
func NewFileStore(path string) *FileStore {
	s := &FileStore{path: path}
	s.load()
	return s
}

func (s *FileStore) load() {
	s.entries = make(map[string]model.CodeEntry)
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("failed to read %s, starting fresh: %v", s.path, err)
		}
		return
	}
	if err := json.Unmarshal(data, &s.entries); err != nil {
		log.Printf("failed to parse %s, starting fresh: %v", s.path, err)
		s.entries = make(map[string]model.CodeEntry)
	}
}

// save rewrites the whole document. Caller must hold the write lock.
func (s *FileStore) save() error {
	data, err := json.MarshalIndent(s.entries, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0o644)
}

func (s *FileStore) Save(_ context.Context, entry *model.CodeEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[entry.Code] = *entry
	return s.save()
}

func (s *FileStore) Get(_ context.Context, code string) (*model.CodeEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entry, ok := s.entries[code]
	if !ok {
		return nil, ErrCodeNotFound
	}
	return &entry, nil
}

func (s *FileStore) DeleteAll(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries = make(map[string]model.CodeEntry)
	return s.save()
}
