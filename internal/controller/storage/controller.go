// Package storage provides HTTP handlers for provider-backed operations:
// uploads, storage usage and the developer clear-all sweep.
package storage

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"secure-share-backend/internal/model"
	"secure-share-backend/internal/registry"
	"secure-share-backend/internal/utilities"
)

// StorageClient is the provider surface the controller depends on. The GCS
// implementation lives in cloud_storage.go; tests substitute a fake.
type StorageClient interface {
	UploadFile(ctx context.Context, objectName string, fileData io.Reader) error
	ObjectURL(objectName string) string
	SetAccessCode(ctx context.Context, publicID, code string) error
	FindByCode(ctx context.Context, code string) ([]model.FileDescriptor, error)
	Usage(ctx context.Context) (int64, error)
	Purge(ctx context.Context) (int, error)
}

const (
	// UploadTimeout bounds one provider upload; exceeding it fails the call
	// with a timeout-specific error, never a silent retry.
	UploadTimeout = 60 * time.Second

	// DefaultLimitBytes is the advertised storage quota (25 GiB).
	DefaultLimitBytes = int64(26843545600)

	// Mock stats served when the provider is unreachable; the stats endpoint
	// never hard-fails.
	mockUsedBytes = int64(157286400)
)

// StorageController handles provider-backed endpoints.
type StorageController struct {
	Storage    StorageClient
	Registry   *registry.Registry
	LimitBytes int64
}

// NewStorageController creates a new instance of StorageController. storage
// may be nil when no bucket is configured.
func NewStorageController(storage StorageClient, reg *registry.Registry, limitBytes int64) *StorageController {
	if limitBytes <= 0 {
		limitBytes = DefaultLimitBytes
	}
	return &StorageController{
		Storage:    storage,
		Registry:   reg,
		LimitBytes: limitBytes,
	}
}

type jsonUpload struct {
	FileData string `json:"fileData"`
	FileName string `json:"fileName"`
}

type uploadResponse struct {
	URL      string `json:"url"`
	PublicID string `json:"public_id"`
	Filename string `json:"filename"`
}

type usageResponse struct {
	Used    int64  `json:"used"`
	Limit   int64  `json:"limit"`
	UsedMB  string `json:"usedMB"`
	LimitGB string `json:"limitGB"`
}

// Upload stores one file on the provider and returns its descriptor fields.
// Accepts either a multipart form with a "file" field or a JSON body carrying
// a base64 (optionally data-URL) payload plus filename.
// @Summary Upload a file to the storage provider
// @Tags Storage
// @Accept mpfd
// @Accept json
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Success 200 {object} uploadResponse "Uploaded file location"
// @Failure 400 {object} utilities.ErrorResponse "Unreadable payload"
// @Failure 401 {object} utilities.ErrorResponse "Missing token"
// @Failure 403 {object} utilities.ErrorResponse "Invalid token"
// @Failure 413 {object} utilities.ErrorResponse "File too large"
// @Failure 500 {object} utilities.ErrorResponse "Provider failure"
// @Failure 504 {object} utilities.ErrorResponse "Upload timed out"
// @Router /upload [post]
func (st *StorageController) Upload(c *gin.Context) {
	if st.Storage == nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: "Cloud storage is disabled",
		})
		return
	}

	fileBytes, fileName, ok := st.readUpload(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), UploadTimeout)
	defer cancel()

	objectName := fmt.Sprintf("%d_%s", time.Now().UnixMilli(), fileName)
	if err := st.Storage.UploadFile(ctx, objectName, bytes.NewReader(fileBytes)); err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
			c.JSON(http.StatusGatewayTimeout, utilities.ErrorResponse{
				Error: "Upload timed out",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: "Upload failed",
		})
		return
	}

	c.JSON(http.StatusOK, uploadResponse{
		URL:      st.Storage.ObjectURL(objectName),
		PublicID: objectName,
		Filename: fileName,
	})
}

// readUpload extracts the payload from either request shape. On failure the
// response has already been written and ok is false.
func (st *StorageController) readUpload(c *gin.Context) (data []byte, filename string, ok bool) {
	if strings.HasPrefix(c.ContentType(), "multipart/") {
		rawFile, err := c.FormFile("file")
		var maxBytesError *http.MaxBytesError
		if errors.As(err, &maxBytesError) {
			c.JSON(http.StatusRequestEntityTooLarge, utilities.ErrorResponse{
				Error: err.Error(),
			})
			return nil, "", false
		}
		if err != nil {
			c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
				Error: fmt.Sprintf("Failed to retrieve file: %s", err.Error()),
			})
			return nil, "", false
		}

		f, err := rawFile.Open()
		if err != nil {
			c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{Error: "Cannot open file"})
			return nil, "", false
		}
		defer func() {
			if err := f.Close(); err != nil {
				log.Printf("failed to close upload: %v", err)
			}
		}()

		fileBytes, err := io.ReadAll(f)
		if err != nil {
			c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{Error: "Cannot read file"})
			return nil, "", false
		}
		return fileBytes, rawFile.Filename, true
	}

	var payload jsonUpload
	if err := c.ShouldBindJSON(&payload); err != nil || payload.FileData == "" || payload.FileName == "" {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: "fileData and fileName required",
		})
		return nil, "", false
	}

	encoded := payload.FileData
	// Data URLs arrive as "data:<mime>;base64,<payload>".
	if idx := strings.Index(encoded, "base64,"); idx >= 0 {
		encoded = encoded[idx+len("base64,"):]
	}
	fileBytes, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: "fileData is not valid base64",
		})
		return nil, "", false
	}
	return fileBytes, payload.FileName, true
}

// GetUsage reports provider storage consumption. Provider failures fall back
// to fixed mock values; this endpoint never hard-fails.
// @Summary Storage usage statistics
// @Tags Storage
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Success 200 {object} usageResponse "Used and available bytes"
// @Router /storage [get]
func (st *StorageController) GetUsage(c *gin.Context) {
	limit := st.LimitBytes

	if st.Storage != nil {
		if used, err := st.Storage.Usage(c.Request.Context()); err == nil {
			c.JSON(http.StatusOK, usageResponse{
				Used:    used,
				Limit:   limit,
				UsedMB:  fmt.Sprintf("%.2f", float64(used)/(1024*1024)),
				LimitGB: fmt.Sprintf("%.2f", float64(limit)/(1024*1024*1024)),
			})
			return
		} else {
			log.Printf("provider usage lookup failed, serving mock stats: %v", err)
		}
	}

	c.JSON(http.StatusOK, usageResponse{
		Used:    mockUsedBytes,
		Limit:   DefaultLimitBytes,
		UsedMB:  "150.00",
		LimitGB: "25.00",
	})
}

// ClearStorage deletes every provider object and every code entry. The
// provider sweep is best-effort: per-object failures are logged and skipped.
// Routed behind RequireAuth + RequireAdmin.
// @Summary Clear all stored files (developer only)
// @Tags Storage
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Success 200 {object} utilities.MessageResponse "Storage cleared"
// @Failure 401 {object} utilities.ErrorResponse "Missing token"
// @Failure 403 {object} utilities.ErrorResponse "Not the developer account"
// @Failure 500 {object} utilities.ErrorResponse "Registry clear failed"
// @Router /storage/clear [delete]
func (st *StorageController) ClearStorage(c *gin.Context) {
	if st.Storage != nil {
		deleted, err := st.Storage.Purge(c.Request.Context())
		if err != nil {
			log.Printf("provider purge failed: %v", err)
		} else {
			log.Printf("provider purge deleted %d object(s)", deleted)
		}
	}

	if err := st.Registry.ClearAll(c.Request.Context()); err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: "Failed to clear storage",
		})
		return
	}

	c.JSON(http.StatusOK, utilities.MessageResponse{
		Message: "All storage cleared successfully",
	})
}

// DebugCode exposes the raw provider search for a code, mirroring what the
// registry fallback would see.
// @Summary Inspect provider search results for a code
// @Tags Share
// @Produce json
// @Param code path string true "Access code"
// @Success 200 {object} map[string]interface{} "Search diagnostics"
// @Router /debug/{code} [get]
func (st *StorageController) DebugCode(c *gin.Context) {
	code := c.Param("code")

	if st.Storage == nil {
		c.JSON(http.StatusOK, gin.H{"error": "cloud storage is disabled"})
		return
	}

	files, err := st.Storage.FindByCode(c.Request.Context(), code)
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"searchExpression": "tags:" + registry.TagForCode(code),
		"totalCount":       len(files),
		"resources":        files,
	})
}
