package repository

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/chatcode-io/auth-service/internal/models"
)

// OTPRepository defines the interface for one-time-code operations.
type OTPRepository interface {
	// Replace removes every existing code for the email and stores the new
	// one, enforcing the at-most-one-active invariant.
	Replace(ctx context.Context, otp *models.OTP) error
	// FindLatest returns the most recently issued code for the email,
	// expired or not. Expiry is judged by the caller so an expired code can
	// be reported distinctly from a missing one.
	FindLatest(ctx context.Context, email string) (*models.OTP, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type otpRepository struct {
	coll *mongo.Collection
}

// NewOTPRepository creates a new OTPRepository backed by the given database.
func NewOTPRepository(db *mongo.Database) OTPRepository {
	return &otpRepository{coll: db.Collection("otps")}
}

func (r *otpRepository) Replace(ctx context.Context, otp *models.OTP) error {
	if _, err := r.coll.DeleteMany(ctx, bson.M{"email": otp.Email}); err != nil {
		return fmt.Errorf("failed to invalidate prior otps for %s: %w", otp.Email, err)
	}
	if _, err := r.coll.InsertOne(ctx, otp); err != nil {
		return fmt.Errorf("failed to store otp for %s: %w", otp.Email, err)
	}
	return nil
}

func (r *otpRepository) FindLatest(ctx context.Context, email string) (*models.OTP, error) {
	opts := options.FindOne().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	var otp models.OTP
	if err := r.coll.FindOne(ctx, bson.M{"email": email}, opts).Decode(&otp); err != nil {
		return nil, fmt.Errorf("failed to find otp for %s: %w", email, mapMongoErr(err))
	}
	return &otp, nil
}

func (r *otpRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	if _, err := r.coll.DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		return fmt.Errorf("failed to delete otp %s: %w", id.Hex(), err)
	}
	return nil
}
