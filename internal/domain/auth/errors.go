package auth

import "errors"

var (
	ErrInvalidCredentials = errors.New("Invalid username or password")
	ErrAccountLocked      = errors.New("Account is locked due to too many failed attempts")
	ErrInvalidToken       = errors.New("Invalid or expired token")
)
