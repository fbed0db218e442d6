package repository

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/chatcode-io/auth-service/internal/models"
)

// UserRepository defines the interface for user data operations.
type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByUsername(ctx context.Context, username string) (*models.User, error)
	FindByID(ctx context.Context, id string) (*models.User, error)
	FindByResetToken(ctx context.Context, token string) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
	UpdatePassword(ctx context.Context, id, passwordHash string) error
	SetResetToken(ctx context.Context, id, token string, expiry time.Time) error
}

type userRepository struct {
	coll *mongo.Collection
}

// NewUserRepository creates a new UserRepository backed by the given database.
func NewUserRepository(db *mongo.Database) UserRepository {
	return &userRepository{coll: db.Collection("users")}
}

func (r *userRepository) findOne(ctx context.Context, filter bson.M, what string) (*models.User, error) {
	var user models.User
	if err := r.coll.FindOne(ctx, filter).Decode(&user); err != nil {
		return nil, fmt.Errorf("failed to find user by %s: %w", what, mapMongoErr(err))
	}
	return &user, nil
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.findOne(ctx, bson.M{"email": email}, "email")
}

func (r *userRepository) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	return r.findOne(ctx, bson.M{"username": username}, "username")
}

func (r *userRepository) FindByID(ctx context.Context, id string) (*models.User, error) {
	return r.findOne(ctx, bson.M{"_id": id}, "id")
}

func (r *userRepository) FindByResetToken(ctx context.Context, token string) (*models.User, error) {
	return r.findOne(ctx, bson.M{"resetToken": token}, "reset token")
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	if _, err := r.coll.InsertOne(ctx, user); err != nil {
		return fmt.Errorf("failed to create user: %w", mapMongoErr(err))
	}
	return nil
}

// UpdatePassword replaces the stored hash and clears any pending reset token,
// so a consumed or superseded token can never authorize a second change.
func (r *userRepository) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$set":   bson.M{"password": passwordHash, "updatedAt": time.Now().UTC()},
		"$unset": bson.M{"resetToken": "", "resetTokenExpiry": ""},
	})
	if err != nil {
		return fmt.Errorf("failed to update password for user %s: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("failed to update password for user %s: %w", id, ErrNotFound)
	}
	return nil
}

// SetResetToken overwrites any previously issued token, keeping at most one
// active reset token per user.
func (r *userRepository) SetResetToken(ctx context.Context, id, token string, expiry time.Time) error {
	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$set": bson.M{
			"resetToken":       token,
			"resetTokenExpiry": expiry,
			"updatedAt":        time.Now().UTC(),
		},
	})
	if err != nil {
		return fmt.Errorf("failed to set reset token for user %s: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("failed to set reset token for user %s: %w", id, ErrNotFound)
	}
	return nil
}
