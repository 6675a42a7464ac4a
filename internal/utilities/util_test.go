package utilities

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("test123")
	require.NoError(t, err)
	assert.NotEqual(t, "test123", hash, "hash must not be the plain password")

	assert.True(t, VerifyPassword("test123", hash))
	assert.False(t, VerifyPassword("wrong", hash))
}

func TestAdminEmail(t *testing.T) {
	t.Setenv("ADMIN_EMAIL", "")
	assert.Equal(t, DefaultAdminEmail, AdminEmail())

	t.Setenv("ADMIN_EMAIL", "ops@example.com")
	assert.Equal(t, "ops@example.com", AdminEmail())
}
