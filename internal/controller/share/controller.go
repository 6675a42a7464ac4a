// Package share provides HTTP handlers for registering and redeeming access
// codes.
package share

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"secure-share-backend/internal/model"
	"secure-share-backend/internal/registry"
	"secure-share-backend/internal/utilities"
)

// ShareController handles code registration and retrieval endpoints.
type ShareController struct {
	Registry *registry.Registry
}

// NewShareController creates a new instance of ShareController.
func NewShareController(reg *registry.Registry) *ShareController {
	return &ShareController{
		Registry: reg,
	}
}

type registerRequest struct {
	Code  string                 `json:"code"`
	Files []model.FileDescriptor `json:"files"`
}

type filesResponse struct {
	Files []model.FileDescriptor `json:"files"`
}

// RegisterCode stores the uploaded file descriptors under an access code.
// Re-registering a code replaces the previous entry. When the request carries
// a valid bearer token the entry records the uploader as owner; anonymous
// registration is allowed.
// @Summary Register uploaded files under an access code
// @Tags Share
// @Accept json
// @Produce json
// @Param Info body registerRequest true "Access code and file descriptors"
// @Success 200 {object} map[string]bool "success"
// @Failure 400 {object} utilities.ErrorResponse "Missing code or files"
// @Failure 500 {object} utilities.ErrorResponse "Persistence failure"
// @Router /register [post]
func (sc *ShareController) RegisterCode(c *gin.Context) {
	var req registerRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: "Missing code or files",
		})
		return
	}

	var ownerID *uuid.UUID
	if user, err := utilities.ExtractUser(c); err == nil {
		id := user.ID
		ownerID = &id
	}

	if err := sc.Registry.Register(c.Request.Context(), req.Code, req.Files, ownerID); err != nil {
		if errors.Is(err, registry.ErrValidation) {
			c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
				Error: "Missing code or files",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: "Failed to register files",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// GetFilesByCode returns the file descriptors registered under the access
// code, in upload order.
// @Summary Retrieve files for an access code
// @Tags Share
// @Produce json
// @Param code path string true "Access code"
// @Success 200 {object} filesResponse "Registered files"
// @Failure 404 {object} utilities.ErrorResponse "No entry for code"
// @Failure 500 {object} utilities.ErrorResponse "Backend failure"
// @Router /files/{code} [get]
func (sc *ShareController) GetFilesByCode(c *gin.Context) {
	code := c.Param("code")

	files, err := sc.Registry.Retrieve(c.Request.Context(), code)
	if err != nil {
		if errors.Is(err, registry.ErrCodeNotFound) {
			c.JSON(http.StatusNotFound, utilities.ErrorResponse{
				Error: "No files found for this code",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: "Failed to retrieve files",
		})
		return
	}

	c.JSON(http.StatusOK, filesResponse{Files: files})
}
