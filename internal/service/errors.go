// Package service implements the business logic of the auth service.
package service

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNotVerified        = errors.New("email not verified")
	ErrUserNotFound       = errors.New("user not found")
	ErrDuplicateEmail     = errors.New("email already registered")
	ErrDuplicateUsername  = errors.New("username already taken")
	ErrInvalidOTP         = errors.New("invalid verification code")
	ErrExpiredOTP         = errors.New("expired verification code")
	ErrInvalidResetToken  = errors.New("invalid reset token")
	ErrExpiredResetToken  = errors.New("expired reset token")
	ErrWrongPassword      = errors.New("current password is incorrect")
	ErrTooSoon            = errors.New("a code was sent recently, try again later")
)
