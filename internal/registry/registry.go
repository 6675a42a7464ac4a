package registry

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"secure-share-backend/internal/model"
)

// ErrValidation is returned when register input is missing code or files.
var ErrValidation = errors.New("missing code or files")

// SecondaryIndex is the optional provider-side search the registry consults
// only when its primary store misses. It is never the source of truth for a
// code that the primary store resolves.
type SecondaryIndex interface {
	FindByCode(ctx context.Context, code string) ([]model.FileDescriptor, error)
	SetAccessCode(ctx context.Context, publicID, code string) error
}

// Registry is the code registry service: register(code, files) and
// retrieve(code) -> files, with an optional provider-backed secondary index.
type Registry struct {
	store Store
	index SecondaryIndex
}

// New constructs a Registry. index may be nil when no provider is configured.
func New(store Store, index SecondaryIndex) *Registry {
	return &Registry{store: store, index: index}
}

// TagForCode derives the provider tag for an access code.
func TagForCode(code string) string {
	return "code_" + code
}

// Register stores the entry for code, replacing any previous entry under the
// same code (last-write-wins, never a merge). The write is persisted before
// Register returns, so an immediate Retrieve observes it. Provider tagging of
// descriptors that carry a public id is best-effort: failures are logged and
// do not fail the registration.
func (r *Registry) Register(ctx context.Context, code string, files []model.FileDescriptor, ownerID *uuid.UUID) error {
	if code == "" || len(files) == 0 {
		return ErrValidation
	}

	entry := &model.CodeEntry{
		Code:      code,
		OwnerID:   ownerID,
		Tags:      pq.StringArray{TagForCode(code)},
		CreatedAt: time.Now(),
	}
	for i := range files {
		f := files[i]
		f.Code = code
		f.Position = i
		if f.Kind == "" {
			if f.Content != "" {
				f.Kind = model.KindText
			} else {
				f.Kind = model.KindFile
			}
		}
		entry.Files = append(entry.Files, f)
	}

	if err := r.store.Save(ctx, entry); err != nil {
		return fmt.Errorf("persist code %s: %w", code, err)
	}

	if r.index != nil {
		for _, f := range entry.Files {
			if f.PublicID == "" {
				continue
			}
			if err := r.index.SetAccessCode(ctx, f.PublicID, code); err != nil {
				log.Printf("failed to tag %s with %s: %v", f.PublicID, TagForCode(code), err)
			}
		}
	}
	return nil
}

// Retrieve returns the descriptors registered under code in upload order,
// normalized. When the primary store misses and a secondary index is
// configured, the provider is searched by the derived tag before giving up.
// ErrCodeNotFound means no entry anywhere; any other error is a backend
// failure.
func (r *Registry) Retrieve(ctx context.Context, code string) ([]model.FileDescriptor, error) {
	entry, err := r.store.Get(ctx, code)
	switch {
	case err == nil:
		return normalize(entry.Files), nil

	case errors.Is(err, ErrCodeNotFound):
		if r.index == nil {
			return nil, ErrCodeNotFound
		}
		files, searchErr := r.index.FindByCode(ctx, code)
		if searchErr != nil {
			return nil, fmt.Errorf("provider search for %s: %w", TagForCode(code), searchErr)
		}
		if len(files) == 0 {
			return nil, ErrCodeNotFound
		}
		return normalize(files), nil

	default:
		return nil, fmt.Errorf("lookup code %s: %w", code, err)
	}
}

// ClearAll deletes every code entry from the primary store.
func (r *Registry) ClearAll(ctx context.Context) error {
	return r.store.DeleteAll(ctx)
}

// normalize fills the descriptor defaults promised at the boundary: a missing
// filename falls back to the public id, then to "Unknown file"; a missing
// size stays 0.
func normalize(files []model.FileDescriptor) []model.FileDescriptor {
	out := make([]model.FileDescriptor, len(files))
	for i, f := range files {
		if f.Filename == "" {
			if f.PublicID != "" {
				f.Filename = f.PublicID
			} else {
				f.Filename = "Unknown file"
			}
		}
		if f.Size < 0 {
			f.Size = 0
		}
		out[i] = f
	}
	return out
}
