// Package handlers contains HTTP request handlers for the auth service.
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/chatcode-io/auth-service/internal/logger"
)

// RespondError writes a structured JSON error with the given status.
func RespondError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"message": message})
}

// LogAndRespondError logs the underlying error and returns only the given
// client-safe message, so internals never leak into responses.
func LogAndRespondError(c *gin.Context, log *logger.Logger, status int, err error, message string) {
	log.Error(message,
		"status", status,
		"method", c.Request.Method,
		"path", c.Request.URL.Path,
		"error", err,
	)
	c.JSON(status, gin.H{"message": message})
}
