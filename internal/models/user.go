// Package models contains data models for the auth service.
package models

import "time"

// User represents a registered ChatCode user.
//
// The reset token lives directly on the user document: at most one reset
// token can be active per user, and consuming it clears both fields.
type User struct {
	ID               string     `json:"id" bson:"_id"`
	Username         string     `json:"username" bson:"username"`
	Email            string     `json:"email" bson:"email"`
	PasswordHash     string     `json:"-" bson:"password"`
	DisplayName      string     `json:"displayName,omitempty" bson:"displayName,omitempty"`
	Avatar           string     `json:"avatar,omitempty" bson:"avatar,omitempty"`
	IsCreator        bool       `json:"isCreator" bson:"isCreator"`
	IsVerified       bool       `json:"isVerified" bson:"isVerified"`
	ResetToken       *string    `json:"-" bson:"resetToken,omitempty"`
	ResetTokenExpiry *time.Time `json:"-" bson:"resetTokenExpiry,omitempty"`
	CreatedAt        time.Time  `json:"created_at" bson:"createdAt"`
	UpdatedAt        time.Time  `json:"updated_at" bson:"updatedAt"`
}
