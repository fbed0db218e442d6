package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// OTP is an ephemeral record binding an email to a one-time code.
// Only the most recently issued code for an email is valid.
type OTP struct {
	ID        primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Email     string             `json:"email" bson:"email"`
	Code      string             `json:"-" bson:"otp"`
	ExpiresAt time.Time          `json:"expires_at" bson:"expiresAt"`
	CreatedAt time.Time          `json:"created_at" bson:"createdAt"`
}

// Expired reports whether the code is past its expiry at the given time.
func (o *OTP) Expired(now time.Time) bool {
	return !now.Before(o.ExpiresAt)
}
