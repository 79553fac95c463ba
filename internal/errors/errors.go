package errors

import (
	"errors"
)

var (
	ErrInvalidCredentials   = errors.New("invalid email or password")
	ErrEmailAlreadyInUse    = errors.New("email already in use")
	ErrInvalidInput         = errors.New("email and password are required")
	ErrWeakPassword         = errors.New("password must be at least 6 characters and contain an uppercase letter, a lowercase letter, a digit and one of !@#$%^&*")
	ErrInvalidToken         = errors.New("invalid token")
	ErrBlacklistUnavailable = errors.New("token blacklist unavailable")
)
