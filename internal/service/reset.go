package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"

	"github.com/chatcode-io/auth-service/internal/logger"
	"github.com/chatcode-io/auth-service/internal/mailer"
	"github.com/chatcode-io/auth-service/internal/models"
	"github.com/chatcode-io/auth-service/internal/repository"
	"github.com/chatcode-io/auth-service/internal/token"
)

// ResetReason explains why a reset token was rejected.
type ResetReason string

const (
	ResetReasonExpired  ResetReason = "expired"
	ResetReasonNotFound ResetReason = "not_found"
)

// TokenResult is the typed outcome of verifying a reset token.
type TokenResult struct {
	Valid  bool
	Reason ResetReason
	User   *models.User
}

// ResetService implements the password-reset token lifecycle: issue a
// single-use, time-limited token by mail, then exchange it for a new
// password exactly once.
type ResetService interface {
	RequestToken(ctx context.Context, email string) error
	VerifyToken(ctx context.Context, tok string) (TokenResult, error)
	ResetPassword(ctx context.Context, tok, newPassword string) error
}

type resetService struct {
	users       repository.UserRepository
	mail        mailer.Mailer
	cooldown    *cooldown
	log         *logger.Logger
	tokenExpiry time.Duration
	frontendURL string
	now         func() time.Time
}

// NewResetService creates a new ResetService instance.
func NewResetService(
	users repository.UserRepository,
	mail mailer.Mailer,
	redisClient *redis.Client,
	log *logger.Logger,
	tokenExpiry, sendCooldown time.Duration,
	frontendURL string,
) ResetService {
	return &resetService{
		users:       users,
		mail:        mail,
		cooldown:    newCooldown(redisClient, sendCooldown),
		log:         log,
		tokenExpiry: tokenExpiry,
		frontendURL: frontendURL,
		now:         time.Now,
	}
}

func (s *resetService) RequestToken(ctx context.Context, email string) error {
	user, err := s.users.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	ok, err := s.cooldown.Allow(ctx, "reset", user.Email)
	if err != nil {
		return err
	}
	if !ok {
		return ErrTooSoon
	}

	tok, err := token.GenerateResetToken()
	if err != nil {
		return err
	}

	// Overwrites any prior token: only the latest one is valid.
	expiry := s.now().UTC().Add(s.tokenExpiry)
	if err := s.users.SetResetToken(ctx, user.ID, tok, expiry); err != nil {
		return err
	}

	link := fmt.Sprintf("%s/update-password/%s", s.frontendURL, tok)
	if err := s.mail.SendResetLink(user.Email, link); err != nil {
		return fmt.Errorf("failed to dispatch reset mail: %w", err)
	}
	return nil
}

// VerifyToken fails closed: an unknown token and an expired one both come
// back invalid, each with its reason.
func (s *resetService) VerifyToken(ctx context.Context, tok string) (TokenResult, error) {
	if tok == "" {
		return TokenResult{Valid: false, Reason: ResetReasonNotFound}, nil
	}

	user, err := s.users.FindByResetToken(ctx, tok)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return TokenResult{Valid: false, Reason: ResetReasonNotFound}, nil
		}
		return TokenResult{}, err
	}
	if user.ResetTokenExpiry == nil || !s.now().Before(*user.ResetTokenExpiry) {
		return TokenResult{Valid: false, Reason: ResetReasonExpired}, nil
	}
	return TokenResult{Valid: true, User: user}, nil
}

func (s *resetService) ResetPassword(ctx context.Context, tok, newPassword string) error {
	result, err := s.VerifyToken(ctx, tok)
	if err != nil {
		return err
	}
	if !result.Valid {
		if result.Reason == ResetReasonExpired {
			return ErrExpiredResetToken
		}
		return ErrInvalidResetToken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	// UpdatePassword clears the token fields, consuming the token.
	if err := s.users.UpdatePassword(ctx, result.User.ID, string(hash)); err != nil {
		return err
	}

	// Confirmation mail is best effort; the reset already happened.
	if err := s.mail.SendResetConfirmation(result.User.Email); err != nil {
		s.log.Warn("failed to send reset confirmation", "email", result.User.Email, "error", err)
	}
	return nil
}
