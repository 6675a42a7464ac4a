// Package auth implements local email/password authentication and the signed
// access tokens consumed by the middleware guard.
package auth

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"secure-share-backend/internal/account"
	"secure-share-backend/internal/model"
	"secure-share-backend/internal/utilities"
)

// LocalAuthHandler holds the account store for handler methods.
type LocalAuthHandler struct {
	Accounts account.Store
}

// NewLocalAuthHandler creates a new instance of LocalAuthHandler with the provided account store.
func NewLocalAuthHandler(accounts account.Store) *LocalAuthHandler {
	return &LocalAuthHandler{
		Accounts: accounts,
	}
}

type credentialInfo struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type userResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

type authResponse struct {
	Message string       `json:"message"`
	Token   string       `json:"token"`
	User    userResponse `json:"user"`
}

// SignupHandler registers a new account from email and password and returns a
// signed access token for immediate use.
// @Summary Create an account
// @Description Email must not already be registered
// @Tags Auth
// @Accept json
// @Produce json
// @Param Info body credentialInfo true "Account credentials"
// @Success 201 {object} authResponse "Account created"
// @Failure 400 {object} utilities.ErrorResponse "Missing fields or duplicate email"
// @Failure 500 {object} utilities.ErrorResponse "Store or password hashing error"
// @Router /auth/signup [post]
func (lh *LocalAuthHandler) SignupHandler(c *gin.Context) {
	var info credentialInfo

	if err := c.ShouldBindJSON(&info); err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: "Email and password required",
		})
		return
	}

	hashedPassword, err := utilities.HashPassword(info.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed hash password: %s", err.Error()),
		})
		return
	}

	user := model.User{
		Email:    info.Email,
		Password: hashedPassword,
	}
	if err := lh.Accounts.Create(c.Request.Context(), &user); err != nil {
		if errors.Is(err, account.ErrDuplicateEmail) {
			c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
				Error: "User already exists",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to create user: %s", err.Error()),
		})
		return
	}

	token, err := GenerateToken(user.ID, user.Email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to generate access token: %s", err.Error()),
		})
		return
	}

	c.JSON(http.StatusCreated, authResponse{
		Message: "User created successfully",
		Token:   token,
		User:    userResponse{ID: user.ID.String(), Email: user.Email},
	})
}

// LoginHandler verifies email and password and returns a signed access token.
// An unknown email and a wrong password produce the same response, so the
// boundary does not reveal whether an account exists.
// @Summary Log into an existing account
// @Tags Auth
// @Accept json
// @Produce json
// @Param Info body credentialInfo true "Account credentials"
// @Success 200 {object} authResponse "Login successful"
// @Failure 400 {object} utilities.ErrorResponse "Missing fields or invalid credentials"
// @Failure 500 {object} utilities.ErrorResponse "Store error"
// @Router /auth/login [post]
func (lh *LocalAuthHandler) LoginHandler(c *gin.Context) {
	var info credentialInfo

	if err := c.ShouldBindJSON(&info); err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: "Email and password required",
		})
		return
	}

	user, err := lh.Accounts.GetByEmail(c.Request.Context(), info.Email)
	switch {
	case errors.Is(err, account.ErrNotFound):
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: "Invalid credentials",
		})
		return

	case err == nil:
		// Do nothing

	default:
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Store error: %s", err.Error()),
		})
		return
	}

	if !utilities.VerifyPassword(info.Password, user.Password) {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: "Invalid credentials",
		})
		return
	}

	token, err := GenerateToken(user.ID, user.Email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to generate access token: %s", err.Error()),
		})
		return
	}

	c.JSON(http.StatusOK, authResponse{
		Message: "Login successful",
		Token:   token,
		User:    userResponse{ID: user.ID.String(), Email: user.Email},
	})
}

// DeleteUserHandler removes the account matching the email path parameter.
// Routed behind RequireAuth + RequireAdmin.
// @Summary Delete an account (developer only)
// @Tags Admin
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param email path string true "Email of the account to delete"
// @Success 200 {object} utilities.MessageResponse "Account deleted"
// @Failure 401 {object} utilities.ErrorResponse "Missing token"
// @Failure 403 {object} utilities.ErrorResponse "Not the developer account"
// @Failure 404 {object} utilities.ErrorResponse "No account for email"
// @Router /admin/users/{email} [delete]
func (lh *LocalAuthHandler) DeleteUserHandler(c *gin.Context) {
	email := c.Param("email")

	if err := lh.Accounts.Delete(c.Request.Context(), email); err != nil {
		if errors.Is(err, account.ErrNotFound) {
			c.JSON(http.StatusNotFound, utilities.ErrorResponse{
				Error: "User not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to delete user: %s", err.Error()),
		})
		return
	}

	c.JSON(http.StatusOK, utilities.MessageResponse{
		Message: fmt.Sprintf("User %s deleted successfully", email),
	})
}
