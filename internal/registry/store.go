// Package registry implements the code registry: the mapping from a short
// access code to the set of file descriptors registered under it. The Store
// contract is shared by a process-local map, a durable JSON file and a
// Postgres table, selected at startup.
package registry

import (
	"context"
	"errors"

	"secure-share-backend/internal/model"
)

// ErrCodeNotFound is returned when no entry exists for a code. Callers map it
// to 404; any other error is a backend failure.
var ErrCodeNotFound = errors.New("no entry for code")

// Store is the persistent code -> entry mapping. Save overwrites any existing
// entry for the same code and must complete before returning, so a Get issued
// immediately afterwards observes the write.
type Store interface {
	Save(ctx context.Context, entry *model.CodeEntry) error
	Get(ctx context.Context, code string) (*model.CodeEntry, error)
	DeleteAll(ctx context.Context) error
}
