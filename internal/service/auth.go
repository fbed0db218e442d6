package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"

	"github.com/chatcode-io/auth-service/internal/mailer"
	"github.com/chatcode-io/auth-service/internal/models"
	"github.com/chatcode-io/auth-service/internal/repository"
	"github.com/chatcode-io/auth-service/internal/token"
)

// OTPReason explains why a submitted one-time code was rejected.
type OTPReason string

const (
	OTPReasonExpired  OTPReason = "expired"
	OTPReasonMismatch OTPReason = "mismatch"
	OTPReasonNotFound OTPReason = "not_found"
)

// OTPResult is the typed outcome of verifying a one-time code. Expected
// rejections are results, not errors; errors are reserved for
// infrastructure failures.
type OTPResult struct {
	Valid  bool
	Reason OTPReason
}

// LoginResponse is returned on successful authentication.
type LoginResponse struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

// SignupRequest carries the registration fields plus the code the user
// received by mail.
type SignupRequest struct {
	Username    string
	Email       string
	Password    string
	DisplayName string
	OTP         string
}

// AuthService implements login, signup with OTP verification, OTP dispatch
// and authenticated password change.
type AuthService interface {
	Login(ctx context.Context, email, password string) (*LoginResponse, error)
	SendOTP(ctx context.Context, email string) error
	VerifyOTP(ctx context.Context, email, code string) (OTPResult, error)
	Signup(ctx context.Context, req SignupRequest) (*models.User, error)
	ChangePassword(ctx context.Context, userID, oldPassword, newPassword string) error
	Me(ctx context.Context, userID string) (*models.User, error)
}

type authService struct {
	users      repository.UserRepository
	otps       repository.OTPRepository
	jwtService JWTService
	mail       mailer.Mailer
	cooldown   *cooldown
	otpExpiry  time.Duration
	now        func() time.Time
}

// NewAuthService creates a new AuthService instance.
func NewAuthService(
	users repository.UserRepository,
	otps repository.OTPRepository,
	jwtService JWTService,
	mail mailer.Mailer,
	redisClient *redis.Client,
	otpExpiry, sendCooldown time.Duration,
) AuthService {
	return &authService{
		users:      users,
		otps:       otps,
		jwtService: jwtService,
		mail:       mail,
		cooldown:   newCooldown(redisClient, sendCooldown),
		otpExpiry:  otpExpiry,
		now:        time.Now,
	}
}

func (s *authService) Login(ctx context.Context, email, password string) (*LoginResponse, error) {
	user, err := s.users.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	if !user.IsVerified {
		return nil, ErrNotVerified
	}

	tok, err := s.jwtService.Generate(user)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	return &LoginResponse{Token: tok, User: user}, nil
}

func (s *authService) SendOTP(ctx context.Context, email string) error {
	email = normalizeEmail(email)

	existing, err := s.users.FindByEmail(ctx, email)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return err
	}
	if existing != nil && existing.IsVerified {
		return ErrDuplicateEmail
	}

	ok, err := s.cooldown.Allow(ctx, "otp", email)
	if err != nil {
		return err
	}
	if !ok {
		return ErrTooSoon
	}

	code, err := token.GenerateOTP()
	if err != nil {
		return err
	}

	now := s.now().UTC()
	otp := &models.OTP{
		Email:     email,
		Code:      code,
		ExpiresAt: now.Add(s.otpExpiry),
		CreatedAt: now,
	}
	if err := s.otps.Replace(ctx, otp); err != nil {
		return err
	}

	if err := s.mail.SendOTP(email, code); err != nil {
		return fmt.Errorf("failed to dispatch verification mail: %w", err)
	}
	return nil
}

// VerifyOTP checks the submitted code against the latest record for the
// email. It fails closed: a missing record, a mismatch and an expired code
// all come back invalid, each with its reason.
func (s *authService) VerifyOTP(ctx context.Context, email, code string) (OTPResult, error) {
	otp, err := s.otps.FindLatest(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return OTPResult{Valid: false, Reason: OTPReasonNotFound}, nil
		}
		return OTPResult{}, err
	}
	if otp.Expired(s.now()) {
		return OTPResult{Valid: false, Reason: OTPReasonExpired}, nil
	}
	if otp.Code != code {
		return OTPResult{Valid: false, Reason: OTPReasonMismatch}, nil
	}
	return OTPResult{Valid: true}, nil
}

func (s *authService) Signup(ctx context.Context, req SignupRequest) (*models.User, error) {
	email := normalizeEmail(req.Email)

	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return nil, ErrDuplicateEmail
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}
	if _, err := s.users.FindByUsername(ctx, req.Username); err == nil {
		return nil, ErrDuplicateUsername
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	result, err := s.VerifyOTP(ctx, email, req.OTP)
	if err != nil {
		return nil, err
	}
	if !result.Valid {
		if result.Reason == OTPReasonExpired {
			return nil, ErrExpiredOTP
		}
		return nil, ErrInvalidOTP
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	displayName := req.DisplayName
	if displayName == "" {
		displayName = req.Username
	}

	now := s.now().UTC()
	user := &models.User{
		ID:           uuid.NewString(),
		Username:     req.Username,
		Email:        email,
		PasswordHash: string(hash),
		DisplayName:  displayName,
		IsVerified:   true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrDuplicateEmail
		}
		return nil, err
	}

	// Consume the code so a second submit of it fails.
	if otp, err := s.otps.FindLatest(ctx, email); err == nil {
		_ = s.otps.Delete(ctx, otp.ID)
	}

	return user, nil
}

func (s *authService) ChangePassword(ctx context.Context, userID, oldPassword, newPassword string) error {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(oldPassword)); err != nil {
		return ErrWrongPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	return s.users.UpdatePassword(ctx, user.ID, string(hash))
}

func (s *authService) Me(ctx context.Context, userID string) (*models.User, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
