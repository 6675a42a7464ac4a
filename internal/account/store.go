// Package account implements the account collection behind signup and login.
// Backends share one Store contract so a process-local map, a durable JSON
// file and a Postgres table are interchangeable at startup.
package account

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"secure-share-backend/internal/model"
)

var (
	// ErrNotFound is returned when no account matches the lookup.
	ErrNotFound = errors.New("account not found")
	// ErrDuplicateEmail is returned when signup reuses an existing email.
	ErrDuplicateEmail = errors.New("email already registered")
)

// Store is the account collection. Email uniqueness is enforced at creation.
type Store interface {
	// Create persists a new account. The ID is assigned when zero.
	Create(ctx context.Context, user *model.User) error
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	// Delete removes the account matching email, ErrNotFound when absent.
	Delete(ctx context.Context, email string) error
}
