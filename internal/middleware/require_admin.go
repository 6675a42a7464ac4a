package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"secure-share-backend/internal/utilities"
)

// RequireAdmin protects developer-only endpoints: the authenticated email
// must match the configured developer email. Must run after RequireAuth.
func RequireAdmin() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		user, err := utilities.ExtractUser(ctx)
		if err != nil || user.Email != utilities.AdminEmail() {
			ctx.AbortWithStatusJSON(http.StatusForbidden, utilities.ErrorResponse{
				Error: "Developer access only",
			})
			return
		}
		ctx.Next()
	}
}
