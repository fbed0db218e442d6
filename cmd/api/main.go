// Package main is the entry point for the auth service.
package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/chatcode-io/auth-service/internal/config"
	"github.com/chatcode-io/auth-service/internal/handlers"
	"github.com/chatcode-io/auth-service/internal/logger"
	"github.com/chatcode-io/auth-service/internal/mailer"
	"github.com/chatcode-io/auth-service/internal/middleware"
	"github.com/chatcode-io/auth-service/internal/repository"
	"github.com/chatcode-io/auth-service/internal/routes"
	"github.com/chatcode-io/auth-service/internal/service"
	"github.com/chatcode-io/auth-service/pkg/mongodb"
	redisclient "github.com/chatcode-io/auth-service/pkg/redis"
)

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	log := logger.New(slog.LevelInfo)

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("failed to load configuration", "error", err)
	}

	ctx := context.Background()

	mongoClient, err := mongodb.Connect(ctx, cfg.MongoURI)
	if err != nil {
		log.Fatal("failed to connect to mongodb", "error", err)
	}
	defer func() { _ = mongoClient.Disconnect(context.Background()) }()
	db := mongoClient.Database(cfg.MongoDB)

	redisClient, err := redisclient.NewClient(ctx, cfg)
	if err != nil {
		log.Fatal("failed to connect to redis", "error", err)
	}
	defer func() { _ = redisClient.Close() }()

	mail := mailer.New(mailer.Config{
		Host:       cfg.SMTPHost,
		Port:       cfg.SMTPPort,
		User:       cfg.SMTPUser,
		Password:   cfg.SMTPPassword,
		From:       cfg.MailFrom,
		AdminEmail: cfg.AdminEmail,
	})

	if err := repository.EnsureIndexes(ctx, db); err != nil {
		log.Fatal("failed to create indexes", "error", err)
	}

	userRepo := repository.NewUserRepository(db)
	otpRepo := repository.NewOTPRepository(db)

	jwtService := service.NewJWTService(cfg.JWTSecret, cfg.JWTExpiry)
	authService := service.NewAuthService(userRepo, otpRepo, jwtService, mail, redisClient, cfg.OTPExpiry, cfg.SendCooldown)
	resetService := service.NewResetService(userRepo, mail, redisClient, log, cfg.ResetTokenExpiry, cfg.SendCooldown, cfg.FrontendURL)

	h := routes.Handlers{
		Auth:    handlers.NewAuthHandler(authService, log),
		Reset:   handlers.NewResetHandler(resetService, log),
		Contact: handlers.NewContactHandler(mail, log),
		Health:  handlers.NewHealthHandler(mongoClient, redisClient),
	}

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()

	metrics := middleware.NewMetrics(prometheus.DefaultRegisterer)
	routes.Setup(router, cfg, jwtService, h, metrics)

	log.Info("starting auth service", "port", cfg.Port, "environment", cfg.Environment)
	if err := router.Run(fmt.Sprintf(":%s", cfg.Port)); err != nil {
		log.Fatal("failed to start server", "error", err)
	}
}
