package account

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"secure-share-backend/internal/model"
)

func TestMemoryStoreCRUD(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	user := model.User{Email: "a@example.com", Password: "hash-a"}
	require.NoError(t, store.Create(ctx, &user))
	assert.NotEqual(t, uuid.Nil, user.ID, "Create should assign an id")

	dup := model.User{Email: "a@example.com", Password: "hash-b"}
	assert.ErrorIs(t, store.Create(ctx, &dup), ErrDuplicateEmail)

	byEmail, err := store.GetByEmail(ctx, "a@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, byEmail.ID)
	assert.Equal(t, "hash-a", byEmail.Password)

	byID, err := store.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "a@example.com", byID.Email)

	require.NoError(t, store.Delete(ctx, "a@example.com"))
	_, err = store.GetByEmail(ctx, "a@example.com")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, store.Delete(ctx, "a@example.com"), ErrNotFound)
}

func TestFileStorePersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "users.json")
	ctx := context.Background()

	store := NewFileStore(path)
	user := model.User{Email: "durable@example.com", Password: "hash-durable"}
	require.NoError(t, store.Create(ctx, &user))

	// A fresh store over the same file must see the account, password included.
	reopened := NewFileStore(path)
	got, err := reopened.GetByEmail(ctx, "durable@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)
	assert.Equal(t, "hash-durable", got.Password)
}

func TestFileStoreDeletePersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "users.json")
	ctx := context.Background()

	store := NewFileStore(path)
	require.NoError(t, store.Create(ctx, &model.User{Email: "gone@example.com", Password: "h"}))
	require.NoError(t, store.Delete(ctx, "gone@example.com"))

	reopened := NewFileStore(path)
	_, err := reopened.GetByEmail(ctx, "gone@example.com")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFileStoreCorruptFileStartsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "users.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	store := NewFileStore(path)
	_, err := store.GetByEmail(context.Background(), "anyone@example.com")
	assert.ErrorIs(t, err, ErrNotFound)

	// The store still accepts writes after starting fresh.
	assert.NoError(t, store.Create(context.Background(), &model.User{Email: "fresh@example.com", Password: "h"}))
}

func TestFileStoreDuplicateEmail(t *testing.T) {
	path := filepath.Join(t.TempDir(), "users.json")
	ctx := context.Background()

	store := NewFileStore(path)
	require.NoError(t, store.Create(ctx, &model.User{Email: "one@example.com", Password: "h1"}))
	assert.ErrorIs(t, store.Create(ctx, &model.User{Email: "one@example.com", Password: "h2"}), ErrDuplicateEmail)
}
