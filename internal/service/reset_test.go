package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/chatcode-io/auth-service/internal/logger"
	"github.com/chatcode-io/auth-service/internal/models"
	"github.com/chatcode-io/auth-service/internal/repository"
)

const testResetExpiry = 30 * time.Minute

func setupTestResetService(t *testing.T) (*resetService, *mockUserRepository, *mockMailer) {
	t.Helper()

	mockRepo := &mockUserRepository{}
	mail := &mockMailer{}
	svc := NewResetService(mockRepo, mail, nil, logger.NewNoop(), testResetExpiry, 0, "http://localhost:5173").(*resetService)
	return svc, mockRepo, mail
}

func userWithResetToken(t *testing.T, tok string, expiry time.Time) *models.User {
	t.Helper()
	user := testUser(t, "oldpassword")
	user.ResetToken = &tok
	user.ResetTokenExpiry = &expiry
	return user
}

// =============================================================================
// RequestToken Tests
// =============================================================================

func TestRequestToken_Success(t *testing.T) {
	svc, mockRepo, mail := setupTestResetService(t)

	user := testUser(t, "pw")
	mockRepo.findByEmailFunc = func(ctx context.Context, email string) (*models.User, error) {
		return user, nil
	}

	var savedToken string
	var savedExpiry time.Time
	mockRepo.setResetTokenFunc = func(ctx context.Context, id, token string, expiry time.Time) error {
		if id != user.ID {
			t.Errorf("SetResetToken() id = %q, want %q", id, user.ID)
		}
		savedToken = token
		savedExpiry = expiry
		return nil
	}

	if err := svc.RequestToken(context.Background(), "a@x.com"); err != nil {
		t.Fatalf("RequestToken() error = %v", err)
	}

	if len(savedToken) != 64 {
		t.Errorf("RequestToken() stored token of length %d, want 64", len(savedToken))
	}
	until := time.Until(savedExpiry)
	if until < testResetExpiry-time.Minute || until > testResetExpiry+time.Minute {
		t.Errorf("RequestToken() expiry %v from now, want ~%v", until, testResetExpiry)
	}
	if len(mail.resetLinks) != 1 {
		t.Fatal("RequestToken() should mail the reset link")
	}
	if !strings.Contains(mail.resetLinks[0], "/update-password/"+savedToken) {
		t.Errorf("reset link %q should embed the stored token", mail.resetLinks[0])
	}
}

func TestRequestToken_OverwritesPriorToken(t *testing.T) {
	svc, mockRepo, _ := setupTestResetService(t)

	user := testUser(t, "pw")
	mockRepo.findByEmailFunc = func(ctx context.Context, email string) (*models.User, error) {
		return user, nil
	}

	var tokens []string
	mockRepo.setResetTokenFunc = func(ctx context.Context, id, token string, expiry time.Time) error {
		tokens = append(tokens, token)
		return nil
	}

	ctx := context.Background()
	if err := svc.RequestToken(ctx, "a@x.com"); err != nil {
		t.Fatalf("RequestToken() error = %v", err)
	}
	if err := svc.RequestToken(ctx, "a@x.com"); err != nil {
		t.Fatalf("RequestToken() error = %v", err)
	}

	// The single token slot on the user is set both times; the second write
	// replaces the first, so only the latest token remains valid.
	if len(tokens) != 2 {
		t.Fatalf("SetResetToken() called %d times, want 2", len(tokens))
	}
	if tokens[0] == tokens[1] {
		t.Error("each request should issue a fresh token")
	}
}

func TestRequestToken_UnknownEmail(t *testing.T) {
	svc, _, mail := setupTestResetService(t)

	err := svc.RequestToken(context.Background(), "missing@x.com")
	if !errors.Is(err, ErrUserNotFound) {
		t.Errorf("RequestToken() error = %v, want %v", err, ErrUserNotFound)
	}
	if len(mail.resetLinks) != 0 {
		t.Error("RequestToken() should not mail for unknown emails")
	}
}

func TestRequestToken_Cooldown(t *testing.T) {
	redisClient, _ := setupTestRedis(t)

	mockRepo := &mockUserRepository{}
	mail := &mockMailer{}
	svc := NewResetService(mockRepo, mail, redisClient, logger.NewNoop(), testResetExpiry, testSendCooldown, "http://localhost:5173")

	user := testUser(t, "pw")
	mockRepo.findByEmailFunc = func(ctx context.Context, email string) (*models.User, error) {
		return user, nil
	}
	mockRepo.setResetTokenFunc = func(ctx context.Context, id, token string, expiry time.Time) error {
		return nil
	}

	ctx := context.Background()
	if err := svc.RequestToken(ctx, "a@x.com"); err != nil {
		t.Fatalf("RequestToken() error = %v", err)
	}

	err := svc.RequestToken(ctx, "a@x.com")
	if !errors.Is(err, ErrTooSoon) {
		t.Errorf("RequestToken() within cooldown error = %v, want %v", err, ErrTooSoon)
	}
	if len(mail.resetLinks) != 1 {
		t.Errorf("RequestToken() dispatched %d mails, want 1", len(mail.resetLinks))
	}
}

// =============================================================================
// VerifyToken Tests
// =============================================================================

func TestVerifyToken_Valid(t *testing.T) {
	svc, mockRepo, _ := setupTestResetService(t)

	user := userWithResetToken(t, "sometoken", time.Now().Add(10*time.Minute))
	mockRepo.findByResetTokenFunc = func(ctx context.Context, token string) (*models.User, error) {
		return user, nil
	}

	result, err := svc.VerifyToken(context.Background(), "sometoken")
	if err != nil {
		t.Fatalf("VerifyToken() error = %v", err)
	}
	if !result.Valid {
		t.Errorf("VerifyToken() = %+v, want valid", result)
	}
	if result.User == nil || result.User.ID != user.ID {
		t.Error("VerifyToken() should return the owning user")
	}
}

func TestVerifyToken_NotFound(t *testing.T) {
	svc, _, _ := setupTestResetService(t)

	result, err := svc.VerifyToken(context.Background(), "unknown")
	if err != nil {
		t.Fatalf("VerifyToken() error = %v", err)
	}
	if result.Valid || result.Reason != ResetReasonNotFound {
		t.Errorf("VerifyToken() = %+v, want invalid/not_found", result)
	}
}

func TestVerifyToken_Empty(t *testing.T) {
	svc, _, _ := setupTestResetService(t)

	result, err := svc.VerifyToken(context.Background(), "")
	if err != nil {
		t.Fatalf("VerifyToken() error = %v", err)
	}
	if result.Valid {
		t.Error("VerifyToken() must reject an empty token")
	}
}

func TestVerifyToken_Expired(t *testing.T) {
	svc, mockRepo, _ := setupTestResetService(t)

	// The stored token matches; only its expiry has passed.
	user := userWithResetToken(t, "sometoken", time.Now().Add(-time.Minute))
	mockRepo.findByResetTokenFunc = func(ctx context.Context, token string) (*models.User, error) {
		return user, nil
	}

	result, err := svc.VerifyToken(context.Background(), "sometoken")
	if err != nil {
		t.Fatalf("VerifyToken() error = %v", err)
	}
	if result.Valid || result.Reason != ResetReasonExpired {
		t.Errorf("VerifyToken() = %+v, want invalid/expired", result)
	}
}

// =============================================================================
// ResetPassword Tests
// =============================================================================

func TestResetPassword_Success(t *testing.T) {
	svc, mockRepo, mail := setupTestResetService(t)

	user := userWithResetToken(t, "sometoken", time.Now().Add(10*time.Minute))
	mockRepo.findByResetTokenFunc = func(ctx context.Context, token string) (*models.User, error) {
		if token == "sometoken" && user.ResetToken != nil {
			return user, nil
		}
		return nil, repository.ErrNotFound
	}

	var newHash string
	mockRepo.updatePasswordFunc = func(ctx context.Context, id, passwordHash string) error {
		newHash = passwordHash
		// UpdatePassword clears the token fields.
		user.ResetToken = nil
		user.ResetTokenExpiry = nil
		return nil
	}

	if err := svc.ResetPassword(context.Background(), "sometoken", "brandnewpw"); err != nil {
		t.Fatalf("ResetPassword() error = %v", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(newHash), []byte("brandnewpw")); err != nil {
		t.Errorf("new hash should verify: %v", err)
	}
	if len(mail.confirmations) != 1 {
		t.Error("ResetPassword() should send a confirmation mail")
	}

	// Single use: the same token is rejected on a second attempt.
	err := svc.ResetPassword(context.Background(), "sometoken", "anotherpw")
	if !errors.Is(err, ErrInvalidResetToken) {
		t.Errorf("second ResetPassword() error = %v, want %v", err, ErrInvalidResetToken)
	}
}

func TestResetPassword_ExpiredToken(t *testing.T) {
	svc, mockRepo, _ := setupTestResetService(t)

	user := userWithResetToken(t, "sometoken", time.Now().Add(-time.Minute))
	mockRepo.findByResetTokenFunc = func(ctx context.Context, token string) (*models.User, error) {
		return user, nil
	}

	err := svc.ResetPassword(context.Background(), "sometoken", "newpw123")
	if !errors.Is(err, ErrExpiredResetToken) {
		t.Errorf("ResetPassword() error = %v, want %v", err, ErrExpiredResetToken)
	}
}

func TestResetPassword_UnknownToken(t *testing.T) {
	svc, _, _ := setupTestResetService(t)

	err := svc.ResetPassword(context.Background(), "unknown", "newpw123")
	if !errors.Is(err, ErrInvalidResetToken) {
		t.Errorf("ResetPassword() error = %v, want %v", err, ErrInvalidResetToken)
	}
}

func TestResetPassword_ConfirmationMailBestEffort(t *testing.T) {
	svc, mockRepo, mail := setupTestResetService(t)

	user := userWithResetToken(t, "sometoken", time.Now().Add(10*time.Minute))
	mockRepo.findByResetTokenFunc = func(ctx context.Context, token string) (*models.User, error) {
		return user, nil
	}
	mockRepo.updatePasswordFunc = func(ctx context.Context, id, passwordHash string) error {
		return nil
	}
	mail.failSend = true

	// The reset already happened; a failed confirmation mail is not an error.
	if err := svc.ResetPassword(context.Background(), "sometoken", "newpw123"); err != nil {
		t.Errorf("ResetPassword() error = %v, want nil despite mail failure", err)
	}
}
