// Package utilities contain utility code that use across the package
package utilities

import (
	"errors"
	"os"

	"github.com/gin-gonic/gin"

	"secure-share-backend/internal/model"
)

// DefaultAdminEmail is the developer account that owns privileged endpoints
// unless ADMIN_EMAIL overrides it.
const DefaultAdminEmail = "dev@secureshare.com"

// ErrorResponse type for swagger docs
type ErrorResponse struct {
	Error string `json:"error"`
}

// MessageResponse type for swagger docs
type MessageResponse struct {
	Message string `json:"message"`
}

// ExtractUser extracts the user model from Gin context.
// It no longer aborts the request; instead returns an error when missing/invalid.
func ExtractUser(c *gin.Context) (model.User, error) {
	u, _ := c.Get("user")
	if u == nil {
		return model.User{}, errors.New("User information not provided")
	}

	user, ok := u.(model.User)
	if !ok {
		return model.User{}, errors.New("Failed to assert type")
	}
	return user, nil
}

// AdminEmail returns the developer email allowed to call admin-only endpoints.
func AdminEmail() string {
	if email := os.Getenv("ADMIN_EMAIL"); email != "" {
		return email
	}
	return DefaultAdminEmail
}
