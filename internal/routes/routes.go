// Package routes defines HTTP routes for the auth service.
package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/chatcode-io/auth-service/internal/config"
	"github.com/chatcode-io/auth-service/internal/handlers"
	"github.com/chatcode-io/auth-service/internal/middleware"
	"github.com/chatcode-io/auth-service/internal/service"
)

// Handlers groups the handler set wired into the router.
type Handlers struct {
	Auth    *handlers.AuthHandler
	Reset   *handlers.ResetHandler
	Contact *handlers.ContactHandler
	Health  *handlers.HealthHandler
}

// Setup configures all HTTP routes for the application.
func Setup(router *gin.Engine, cfg *config.Config, jwtService service.JWTService, h Handlers, metrics *middleware.Metrics) {
	router.Use(middleware.CORS(middleware.CORSConfig{
		AllowedOrigins: cfg.AllowedOrigins,
	}))
	if metrics != nil {
		router.Use(metrics.Collect())
	}

	router.GET("/health", h.Health.Check)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := router.Group("/api/v1")

	auth := v1.Group("/auth")
	{
		auth.POST("/login", h.Auth.Login)
		auth.POST("/signup", h.Auth.Signup)
		auth.POST("/sendotp", h.Auth.SendOTP)
		auth.POST("/reset-password-token", h.Reset.RequestToken)
		auth.POST("/reset-password", h.Reset.ResetPassword)
		auth.GET("/update-password/:token", h.Reset.ValidateToken)

		protected := auth.Group("")
		protected.Use(middleware.RequireAuth(jwtService))
		protected.POST("/changepassword", h.Auth.ChangePassword)
		protected.GET("/me", h.Auth.Me)
	}

	v1.POST("/contact", h.Contact.Send)
}
