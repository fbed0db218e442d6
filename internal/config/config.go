// Package config handles configuration loading for the auth service.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds all configuration for the auth service.
type Config struct {
	Port        string `env:"PORT" envDefault:"4000"`
	Environment string `env:"ENVIRONMENT" envDefault:"development"`

	MongoURI string `env:"MONGODB_URI"`
	MongoDB  string `env:"MONGODB_DATABASE" envDefault:"chatcode"`

	RedisHost     string `env:"REDIS_HOST" envDefault:"localhost"`
	RedisPort     string `env:"REDIS_PORT" envDefault:"6379"`
	RedisPassword string `env:"REDIS_PASSWORD"`

	JWTSecret string        `env:"JWT_SECRET"`
	JWTExpiry time.Duration `env:"JWT_EXPIRY" envDefault:"168h"`

	OTPExpiry        time.Duration `env:"OTP_EXPIRY" envDefault:"10m"`
	ResetTokenExpiry time.Duration `env:"RESET_TOKEN_EXPIRY" envDefault:"30m"`
	SendCooldown     time.Duration `env:"SEND_COOLDOWN" envDefault:"60s"`

	SMTPHost     string `env:"SMTP_HOST" envDefault:"smtp.gmail.com"`
	SMTPPort     int    `env:"SMTP_PORT" envDefault:"587"`
	SMTPUser     string `env:"SMTP_USER"`
	SMTPPassword string `env:"SMTP_PASSWORD"`
	MailFrom     string `env:"MAIL_FROM" envDefault:"ChatCode <noreply@chatcode.io>"`
	AdminEmail   string `env:"ADMIN_EMAIL"`

	FrontendURL    string   `env:"FRONTEND_URL" envDefault:"http://localhost:5173"`
	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envSeparator:"," envDefault:"http://localhost:5173"`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := Config{}
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if cfg.MongoURI == "" {
		return nil, errors.New("MONGODB_URI environment variable is required")
	}
	if cfg.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET environment variable is required")
	}

	return &cfg, nil
}
