package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"secure-share-backend/internal/account"
	"secure-share-backend/internal/registry"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	m.Run()
}

// newTestHandler builds the full route tree over in-memory stores and no
// storage provider.
func newTestHandler() http.Handler {
	s := &MyServer{
		Accounts: account.NewMemoryStore(),
		Registry: registry.New(registry.NewMemoryStore(), nil),
		Storage:  nil,
	}
	return s.RegisterRoutes()
}

func TestHealthEndpoint(t *testing.T) {
	h := newTestHandler()

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp["status"])
	assert.NotEmpty(t, resp["timestamp"])
}

func TestRootEndpoint(t *testing.T) {
	h := newTestHandler()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "SecureShare Backend API")
}

func TestTestEndpoint(t *testing.T) {
	h := newTestHandler()

	req := httptest.NewRequest(http.MethodGet, "/api/test", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Server is running!")
}

func TestUploadRequiresToken(t *testing.T) {
	h := newTestHandler()

	req := httptest.NewRequest(http.MethodPost, "/api/upload", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "Access token required")
}

func TestStorageClearRequiresToken(t *testing.T) {
	h := newTestHandler()

	req := httptest.NewRequest(http.MethodDelete, "/api/storage/clear", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

// Signup then register then retrieve through the real route tree.
func TestSignupRegisterRetrieveFlow(t *testing.T) {
	h := newTestHandler()

	signup := map[string]string{"email": "flow@example.com", "password": "flow123"}
	b, _ := json.Marshal(signup)
	req := httptest.NewRequest(http.MethodPost, "/api/auth/signup", bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code, "body: %s", rec.Body.String())

	var authResp map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &authResp))
	token, _ := authResp["token"].(string)
	require.NotEmpty(t, token)

	register := map[string]interface{}{
		"code":  "FLOW01",
		"files": []map[string]interface{}{{"content": "flow note", "type": "text"}},
	}
	b, _ = json.Marshal(register)
	req = httptest.NewRequest(http.MethodPost, "/api/register", bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, "body: %s", rec.Body.String())

	req = httptest.NewRequest(http.MethodGet, "/api/files/FLOW01", nil)
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "flow note")
}
