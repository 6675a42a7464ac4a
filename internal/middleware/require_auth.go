// Package middleware contain utilities middleware code
package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"secure-share-backend/internal/account"
	"secure-share-backend/internal/auth"
	"secure-share-backend/internal/model"
	"secure-share-backend/internal/utilities"
)

// RequireAuth validates the Bearer token in the Authorization header and
// loads the matching account before allowing access to the endpoint. A
// missing credential responds 401; an invalid or expired one responds 403,
// so the two cases stay distinguishable at the boundary.
func RequireAuth(accounts account.Store) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		tokenString, err := utilities.ExtractBearerToken(ctx)
		if err != nil {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, utilities.ErrorResponse{
				Error: "Access token required",
			})
			return
		}

		user, claims, err := resolveUser(ctx.Request.Context(), accounts, tokenString)
		if err != nil {
			ctx.AbortWithStatusJSON(http.StatusForbidden, utilities.ErrorResponse{
				Error: err.Error(),
			})
			return
		}

		ctx.Set("claims", claims)
		ctx.Set("user", *user)
		ctx.Next()
	}
}

// OptionalAuth attaches the authenticated user to the context when a valid
// bearer token is present and proceeds anonymously otherwise. Used by
// /api/register, which records ownership only when an identity is available.
func OptionalAuth(accounts account.Store) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		tokenString, err := utilities.ExtractBearerToken(ctx)
		if err != nil {
			ctx.Next()
			return
		}

		if user, claims, err := resolveUser(ctx.Request.Context(), accounts, tokenString); err == nil {
			ctx.Set("claims", claims)
			ctx.Set("user", *user)
		}
		ctx.Next()
	}
}

func resolveUser(ctx context.Context, accounts account.Store, tokenString string) (*model.User, *auth.Claims, error) {
	token, err := auth.ValidatedToken(tokenString)
	if err != nil {
		return nil, nil, fmt.Errorf("Invalid token")
	}
	if !token.Valid {
		return nil, nil, fmt.Errorf("Invalid token")
	}

	claims, ok := token.Claims.(*auth.Claims)
	if !ok {
		return nil, nil, fmt.Errorf("Invalid token")
	}
	if claims.Issuer != auth.JwtIssuer {
		return nil, nil, fmt.Errorf("Invalid token issuer")
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, nil, fmt.Errorf("Invalid token subject")
	}

	user, err := accounts.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, account.ErrNotFound) {
			return nil, nil, fmt.Errorf("User not exist")
		}
		return nil, nil, fmt.Errorf("Failed to retrieve user data: %s", err.Error())
	}
	return user, claims, nil
}
