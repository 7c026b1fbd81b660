package auth

import "errors"

// Common authentication service errors
var (
	// ErrInvalidToken indicates the token format is invalid or signature doesn't match
	ErrInvalidToken = errors.New("invalid authentication token")

	// ErrExpiredToken indicates the token has expired
	ErrExpiredToken = errors.New("authentication token has expired")

	// ErrTokenNotYetValid indicates the token is not yet valid (nbf claim in the future)
	ErrTokenNotYetValid = errors.New("authentication token not yet valid")

	// ErrMissingToken indicates a token was expected but not provided
	ErrMissingToken = errors.New("authentication token is missing")

	// ErrMalformedPayload indicates signature verification succeeded but the subject
	// claim is absent or not a valid identifier
	ErrMalformedPayload = errors.New("authentication token payload is malformed")

	// ErrEmptyPassword indicates a hash was requested for empty input
	ErrEmptyPassword = errors.New("password cannot be empty")
)
