package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/chatcode-io/auth-service/internal/logger"
	"github.com/chatcode-io/auth-service/internal/middleware"
	"github.com/chatcode-io/auth-service/internal/service"
)

// AuthHandler handles authentication HTTP requests.
type AuthHandler struct {
	authService service.AuthService
	log         *logger.Logger
}

// NewAuthHandler creates a new AuthHandler instance.
func NewAuthHandler(authService service.AuthService, log *logger.Logger) *AuthHandler {
	return &AuthHandler{authService: authService, log: log}
}

// LoginRequest represents the login request payload.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// SignupRequest represents the signup request payload. The OTP must have
// been requested via /sendotp beforehand.
type SignupRequest struct {
	Username    string `json:"username" binding:"required,min=3,max=50"`
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,min=6"`
	DisplayName string `json:"displayName"`
	OTP         string `json:"otp" binding:"required,len=6"`
}

// SendOTPRequest represents the OTP dispatch request payload.
type SendOTPRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// ChangePasswordRequest represents the password change request payload.
type ChangePasswordRequest struct {
	OldPassword string `json:"oldPassword" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required,min=6"`
}

// Login authenticates a user and returns a signed token with the profile.
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, err.Error())
		return
	}

	response, err := h.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCredentials):
			RespondError(c, http.StatusUnauthorized, "Invalid credentials")
		case errors.Is(err, service.ErrNotVerified):
			RespondError(c, http.StatusForbidden, "Please verify your email before logging in")
		default:
			LogAndRespondError(c, h.log, http.StatusInternalServerError, err, "Server error during login")
		}
		return
	}

	c.JSON(http.StatusOK, response)
}

// Signup verifies the submitted OTP and creates the user account.
func (h *AuthHandler) Signup(c *gin.Context) {
	var req SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, err.Error())
		return
	}

	user, err := h.authService.Signup(c.Request.Context(), service.SignupRequest{
		Username:    req.Username,
		Email:       req.Email,
		Password:    req.Password,
		DisplayName: req.DisplayName,
		OTP:         req.OTP,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidOTP), errors.Is(err, service.ErrExpiredOTP):
			RespondError(c, http.StatusBadRequest, "Invalid or expired verification code")
		case errors.Is(err, service.ErrDuplicateEmail):
			RespondError(c, http.StatusConflict, "An account with this email already exists")
		case errors.Is(err, service.ErrDuplicateUsername):
			RespondError(c, http.StatusConflict, "This username is already taken")
		default:
			LogAndRespondError(c, h.log, http.StatusInternalServerError, err, "Server error during registration")
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"user": user})
}

// SendOTP generates a fresh verification code, invalidating any prior one,
// and dispatches it by mail.
func (h *AuthHandler) SendOTP(c *gin.Context) {
	var req SendOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.authService.SendOTP(c.Request.Context(), req.Email); err != nil {
		switch {
		case errors.Is(err, service.ErrDuplicateEmail):
			RespondError(c, http.StatusBadRequest, "An account with this email already exists")
		case errors.Is(err, service.ErrTooSoon):
			RespondError(c, http.StatusTooManyRequests, "A code was sent recently. Please wait before requesting another.")
		default:
			LogAndRespondError(c, h.log, http.StatusInternalServerError, err, "Server error while sending verification code")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Verification code has been sent to your email"})
}

// ChangePassword updates the authenticated user's password.
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, err.Error())
		return
	}

	userID := c.GetString(middleware.ContextUserID)
	err := h.authService.ChangePassword(c.Request.Context(), userID, req.OldPassword, req.NewPassword)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrWrongPassword):
			RespondError(c, http.StatusBadRequest, "Current password is incorrect")
		case errors.Is(err, service.ErrUserNotFound):
			RespondError(c, http.StatusNotFound, "User not found")
		default:
			LogAndRespondError(c, h.log, http.StatusInternalServerError, err, "Server error while changing password")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Password updated successfully"})
}

// Me returns the authenticated user's profile.
func (h *AuthHandler) Me(c *gin.Context) {
	userID := c.GetString(middleware.ContextUserID)
	user, err := h.authService.Me(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			RespondError(c, http.StatusNotFound, "User not found")
			return
		}
		LogAndRespondError(c, h.log, http.StatusInternalServerError, err, "Server error while fetching user")
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}
