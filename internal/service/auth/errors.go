package auth

import "errors"

// Common authentication service errors
var (
	// ErrInvalidToken indicates the token format is invalid or signature doesn't match
	ErrInvalidToken = errors.New("invalid authentication token")

	// ErrExpiredToken indicates the token has expired
	ErrExpiredToken = errors.New("authentication token has expired")

	// ErrMissingToken indicates a token was expected but not provided
	ErrMissingToken = errors.New("authentication token is missing")

	// ErrEmptyPassword is returned by Hash for an empty password
	ErrEmptyPassword = errors.New("password cannot be empty")
)

// Login failures. Each maps to its own 401 message.
var (
	// ErrUserNotFound indicates no usuario has the given email
	ErrUserNotFound = errors.New("user not found")

	// ErrInvalidPassword indicates the password does not match the stored hash
	ErrInvalidPassword = errors.New("invalid password")

	// ErrInactiveUser indicates the usuario exists but is disabled
	ErrInactiveUser = errors.New("user is inactive")
)
