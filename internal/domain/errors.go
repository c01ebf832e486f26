package domain

import "errors"

// Domain errors (no external dependencies).
var (
	ErrNotFound              = errors.New("resource not found")
	ErrUserNotFound          = errors.New("user not found")
	ErrCompanyNotFound       = errors.New("company not found")
	ErrProfileMissing        = errors.New("user profile not found")
	ErrEmailAlreadyExists    = errors.New("email is already registered")
	ErrUsernameAlreadyExists = errors.New("username is already taken")
	ErrInvalidInput          = errors.New("invalid input")
	ErrDuplicate             = errors.New("duplicate resource")
	ErrUnauthorized          = errors.New("unauthorized")
	ErrForbidden             = errors.New("access denied")

	// Email-verification ticket errors, in check order.
	ErrCodeNotFound     = errors.New("no verification code found, request a new one")
	ErrCodeExpired      = errors.New("verification code expired")
	ErrCodeMismatch     = errors.New("verification code does not match")
	ErrEmailNotVerified = errors.New("email has not been verified")
)
