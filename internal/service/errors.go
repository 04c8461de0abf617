package service

import "errors"

var (
	// ErrInvalidCredentials covers both an unknown email and a wrong
	// password so callers cannot tell them apart.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrInvalidCode means the verification code is wrong, expired or
	// already used.
	ErrInvalidCode = errors.New("invalid or expired code")
	// ErrVerificationUnavailable is returned when no code store is configured.
	ErrVerificationUnavailable = errors.New("email verification unavailable")
)
