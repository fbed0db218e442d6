package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/chatcode-io/auth-service/internal/logger"
	"github.com/chatcode-io/auth-service/internal/service"
)

// ResetHandler handles the password-reset token flow.
type ResetHandler struct {
	resetService service.ResetService
	log          *logger.Logger
}

// NewResetHandler creates a new ResetHandler instance.
func NewResetHandler(resetService service.ResetService, log *logger.Logger) *ResetHandler {
	return &ResetHandler{resetService: resetService, log: log}
}

// ResetTokenRequest represents the reset-token request payload.
type ResetTokenRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// ResetPasswordRequest represents the reset-password request payload.
type ResetPasswordRequest struct {
	Token    string `json:"token" binding:"required"`
	Password string `json:"password" binding:"required,min=6"`
}

// RequestToken issues a single-use reset token and mails the reset link.
func (h *ResetHandler) RequestToken(c *gin.Context) {
	var req ResetTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.resetService.RequestToken(c.Request.Context(), req.Email); err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			RespondError(c, http.StatusNotFound, "No account found with that email")
		case errors.Is(err, service.ErrTooSoon):
			RespondError(c, http.StatusTooManyRequests, "A reset link was sent recently. Please wait before requesting another.")
		default:
			LogAndRespondError(c, h.log, http.StatusInternalServerError, err, "Server error while requesting password reset")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "A password reset link has been sent to your email"})
}

// ResetPassword exchanges a valid reset token for a new password.
func (h *ResetHandler) ResetPassword(c *gin.Context) {
	var req ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.resetService.ResetPassword(c.Request.Context(), req.Token, req.Password); err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidResetToken), errors.Is(err, service.ErrExpiredResetToken):
			RespondError(c, http.StatusBadRequest, "Invalid or expired reset token. Please request a new password reset.")
		default:
			LogAndRespondError(c, h.log, http.StatusInternalServerError, err, "Server error while resetting password")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Password has been reset successfully"})
}

// ValidateToken lets the frontend probe a reset link before showing the
// new-password form.
func (h *ResetHandler) ValidateToken(c *gin.Context) {
	result, err := h.resetService.VerifyToken(c.Request.Context(), c.Param("token"))
	if err != nil {
		LogAndRespondError(c, h.log, http.StatusInternalServerError, err, "Error validating token")
		return
	}
	if !result.Valid {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"message": "Invalid or expired token",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Token is valid",
	})
}
