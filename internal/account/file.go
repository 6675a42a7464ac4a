package account

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"

	"secure-share-backend/internal/model"
)

// fileRecord is the on-disk shape. model.User hides the password hash from
// JSON responses, but the durable file must carry it.
type fileRecord struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	Password  string    `json:"password"`
	CreatedAt time.Time `json:"created_at"`
}

// FileStore persists the account collection as one JSON array (users.json).
// The whole document is loaded at startup and rewritten on every mutation.
// A missing or unparseable file starts the store empty.
type FileStore struct {
	path string

	mu    sync.RWMutex
	users []model.User
}

// NewFileStore opens (or initializes) the account file at path.
func NewFileStore(path string) *FileStore {
	s := &FileStore{path: path}
	s.load()
	return s
}

func (s *FileStore) load() {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("failed to read %s, starting fresh: %v", s.path, err)
		}
		s.users = nil
		return
	}
	var records []fileRecord
	if err := json.Unmarshal(data, &records); err != nil {
		log.Printf("failed to parse %s, starting fresh: %v", s.path, err)
		s.users = nil
		return
	}
	s.users = make([]model.User, 0, len(records))
	for _, r := range records {
		s.users = append(s.users, model.User{
			ID:        r.ID,
			Email:     r.Email,
			Password:  r.Password,
			CreatedAt: r.CreatedAt,
		})
	}
}

// save rewrites the whole document. Caller must hold the write lock.
func (s *FileStore) save() error {
	records := make([]fileRecord, 0, len(s.users))
	for _, u := range s.users {
		records = append(records, fileRecord{
			ID:        u.ID,
			Email:     u.Email,
			Password:  u.Password,
			CreatedAt: u.CreatedAt,
		})
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0o644)
}

func (s *FileStore) Create(_ context.Context, user *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Email == user.Email {
			return ErrDuplicateEmail
		}
	}
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
	}
	s.users = append(s.users, *user)
	return s.save()
}

func (s *FileStore) GetByEmail(_ context.Context, email string) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if u.Email == email {
			user := u
			return &user, nil
		}
	}
	return nil, ErrNotFound
}

func (s *FileStore) GetByID(_ context.Context, id uuid.UUID) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if u.ID == id {
			user := u
			return &user, nil
		}
	}
	return nil, ErrNotFound
}

func (s *FileStore) Delete(_ context.Context, email string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, u := range s.users {
		if u.Email == email {
			s.users = append(s.users[:i], s.users[i+1:]...)
			return s.save()
		}
	}
	return ErrNotFound
}
