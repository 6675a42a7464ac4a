package storage

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"secure-share-backend/internal/model"
	"secure-share-backend/internal/registry"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	m.Run()
}

// fakeStorage is a scripted StorageClient.
type fakeStorage struct {
	uploaded   map[string][]byte
	uploadErr  error
	usage      int64
	usageErr   error
	purged     int
	purgeErr   error
	foundFiles []model.FileDescriptor
	findErr    error
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{uploaded: make(map[string][]byte)}
}

func (f *fakeStorage) UploadFile(_ context.Context, objectName string, fileData io.Reader) error {
	if f.uploadErr != nil {
		return f.uploadErr
	}
	data, err := io.ReadAll(fileData)
	if err != nil {
		return err
	}
	f.uploaded[objectName] = data
	return nil
}

func (f *fakeStorage) ObjectURL(objectName string) string {
	return "https://storage.googleapis.com/test-bucket/" + objectName
}

func (f *fakeStorage) SetAccessCode(_ context.Context, _, _ string) error { return nil }

func (f *fakeStorage) FindByCode(_ context.Context, _ string) ([]model.FileDescriptor, error) {
	return f.foundFiles, f.findErr
}

func (f *fakeStorage) Usage(_ context.Context) (int64, error) { return f.usage, f.usageErr }

func (f *fakeStorage) Purge(_ context.Context) (int, error) { return f.purged, f.purgeErr }

func newStorageEngine(fake StorageClient) (*gin.Engine, *registry.Registry) {
	reg := registry.New(registry.NewMemoryStore(), nil)
	ctl := NewStorageController(fake, reg, 0)

	r := gin.New()
	r.POST("/api/upload", ctl.Upload)
	r.GET("/api/storage", ctl.GetUsage)
	r.DELETE("/api/storage/clear", ctl.ClearStorage)
	r.GET("/api/debug/:code", ctl.DebugCode)
	return r, reg
}

func TestUploadJSONBase64(t *testing.T) {
	fake := newFakeStorage()
	r, _ := newStorageEngine(fake)

	content := []byte("hello secureshare")
	payload := map[string]string{
		"fileData": base64.StdEncoding.EncodeToString(content),
		"fileName": "hello.txt",
	}
	b, _ := json.Marshal(payload)
	req := httptest.NewRequest(http.MethodPost, "/api/upload", bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, "body: %s", rec.Body.String())

	var resp uploadResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "hello.txt", resp.Filename)
	assert.Contains(t, resp.PublicID, "_hello.txt")
	assert.Equal(t, fake.ObjectURL(resp.PublicID), resp.URL)
	assert.Equal(t, content, fake.uploaded[resp.PublicID])
}

func TestUploadDataURL(t *testing.T) {
	fake := newFakeStorage()
	r, _ := newStorageEngine(fake)

	content := []byte{0x89, 0x50, 0x4e, 0x47}
	payload := map[string]string{
		"fileData": "data:image/png;base64," + base64.StdEncoding.EncodeToString(content),
		"fileName": "pixel.png",
	}
	b, _ := json.Marshal(payload)
	req := httptest.NewRequest(http.MethodPost, "/api/upload", bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, "body: %s", rec.Body.String())

	var resp uploadResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, content, fake.uploaded[resp.PublicID], "data-URL prefix must be stripped")
}

func TestUploadMultipart(t *testing.T) {
	fake := newFakeStorage()
	r, _ := newStorageEngine(fake)

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	fw, err := w.CreateFormFile("file", "notes.md")
	require.NoError(t, err)
	_, err = fw.Write([]byte("# notes"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/upload", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, "body: %s", rec.Body.String())

	var resp uploadResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "notes.md", resp.Filename)
	assert.Equal(t, []byte("# notes"), fake.uploaded[resp.PublicID])
}

func TestUploadMissingFields(t *testing.T) {
	r, _ := newStorageEngine(newFakeStorage())

	b, _ := json.Marshal(map[string]string{"fileName": "orphan.txt"})
	req := httptest.NewRequest(http.MethodPost, "/api/upload", bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "fileData and fileName required")
}

func TestUploadInvalidBase64(t *testing.T) {
	r, _ := newStorageEngine(newFakeStorage())

	b, _ := json.Marshal(map[string]string{"fileData": "!!not base64!!", "fileName": "x.bin"})
	req := httptest.NewRequest(http.MethodPost, "/api/upload", bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "not valid base64")
}

func TestUploadProviderFailure(t *testing.T) {
	fake := newFakeStorage()
	fake.uploadErr = fmt.Errorf("bucket unavailable")
	r, _ := newStorageEngine(fake)

	b, _ := json.Marshal(map[string]string{
		"fileData": base64.StdEncoding.EncodeToString([]byte("x")),
		"fileName": "x.txt",
	})
	req := httptest.NewRequest(http.MethodPost, "/api/upload", bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "Upload failed")
}

func TestUploadTimeout(t *testing.T) {
	fake := newFakeStorage()
	fake.uploadErr = context.DeadlineExceeded
	r, _ := newStorageEngine(fake)

	b, _ := json.Marshal(map[string]string{
		"fileData": base64.StdEncoding.EncodeToString([]byte("x")),
		"fileName": "slow.txt",
	})
	req := httptest.NewRequest(http.MethodPost, "/api/upload", bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusGatewayTimeout, rec.Code)
	assert.Contains(t, rec.Body.String(), "Upload timed out")
}

func TestUploadWithoutStorage(t *testing.T) {
	r, _ := newStorageEngine(nil)

	b, _ := json.Marshal(map[string]string{
		"fileData": base64.StdEncoding.EncodeToString([]byte("x")),
		"fileName": "x.txt",
	})
	req := httptest.NewRequest(http.MethodPost, "/api/upload", bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "Cloud storage is disabled")
}

func TestGetUsageFromProvider(t *testing.T) {
	fake := newFakeStorage()
	fake.usage = 1048576 // 1 MiB
	r, _ := newStorageEngine(fake)

	req := httptest.NewRequest(http.MethodGet, "/api/storage", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp usageResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, int64(1048576), resp.Used)
	assert.Equal(t, DefaultLimitBytes, resp.Limit)
	assert.Equal(t, "1.00", resp.UsedMB)
	assert.Equal(t, "25.00", resp.LimitGB)
}

func TestGetUsageMockFallback(t *testing.T) {
	fake := newFakeStorage()
	fake.usageErr = fmt.Errorf("provider down")
	r, _ := newStorageEngine(fake)

	req := httptest.NewRequest(http.MethodGet, "/api/storage", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, "stats endpoint must not hard-fail")

	var resp usageResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, int64(157286400), resp.Used)
	assert.Equal(t, int64(26843545600), resp.Limit)
	assert.Equal(t, "150.00", resp.UsedMB)
	assert.Equal(t, "25.00", resp.LimitGB)
}

func TestGetUsageNoProvider(t *testing.T) {
	r, _ := newStorageEngine(nil)

	req := httptest.NewRequest(http.MethodGet, "/api/storage", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"usedMB":"150.00"`)
}

func TestClearStorage(t *testing.T) {
	fake := newFakeStorage()
	fake.purged = 3
	r, reg := newStorageEngine(fake)

	require.NoError(t, reg.Register(context.Background(), "WIPE01",
		[]model.FileDescriptor{{Content: "x"}}, nil))

	req := httptest.NewRequest(http.MethodDelete, "/api/storage/clear", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, "body: %s", rec.Body.String())
	assert.Contains(t, rec.Body.String(), "All storage cleared successfully")

	_, err := reg.Retrieve(context.Background(), "WIPE01")
	assert.ErrorIs(t, err, registry.ErrCodeNotFound)
}

func TestClearStorageSurvivesPurgeFailure(t *testing.T) {
	fake := newFakeStorage()
	fake.purgeErr = fmt.Errorf("provider down")
	r, _ := newStorageEngine(fake)

	req := httptest.NewRequest(http.MethodDelete, "/api/storage/clear", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code, "purge failures are best-effort")
}

func TestDebugCode(t *testing.T) {
	fake := newFakeStorage()
	fake.foundFiles = []model.FileDescriptor{{PublicID: "1_a.pdf", Filename: "a.pdf"}}
	r, _ := newStorageEngine(fake)

	req := httptest.NewRequest(http.MethodGet, "/api/debug/7BL29Y", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "tags:code_7BL29Y", resp["searchExpression"])
	assert.Equal(t, float64(1), resp["totalCount"])
}
