package services

import "errors"

// Sentinel errors surfaced by the core operations. Handlers translate them
// to HTTP status codes with errors.Is.
var (
	ErrUserNotFound      = errors.New("user not found")
	ErrChallengeNotFound = errors.New("challenge not found")
	ErrNotAssigned       = errors.New("user not assigned to this challenge")
	ErrValidation        = errors.New("validation failed")
	ErrInvalidToken      = errors.New("invalid or expired verification code")
)
