// Package middleware provides HTTP middleware for the auth service.
package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/chatcode-io/auth-service/internal/service"
)

// Context keys set by RequireAuth for downstream handlers.
const (
	ContextUserID    = "userID"
	ContextEmail     = "email"
	ContextIsCreator = "isCreator"
)

// RequireAuth gates protected routes. The request must carry a well-formed
// bearer token with a valid signature and unexpired claims; otherwise it is
// rejected with 401 and downstream handlers never execute.
func RequireAuth(jwtService service.JWTService) gin.HandlerFunc {
	return func(c *gin.Context) {
		tok := extractBearer(c)
		if tok == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"message": "Authentication required. Please log in.",
			})
			return
		}

		claims, err := jwtService.Validate(tok)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"message": "Invalid or expired authentication token.",
			})
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextEmail, claims.Email)
		c.Set(ContextIsCreator, claims.IsCreator)
		c.Next()
	}
}

func extractBearer(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	parts := strings.Split(header, " ")
	if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
		return parts[1]
	}
	return ""
}
