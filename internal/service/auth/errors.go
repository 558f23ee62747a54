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

	// ErrWrongTokenType indicates the token is not an access token
	ErrWrongTokenType = errors.New("wrong token type")

	// ErrEmptyActor indicates a token was requested for a blank actor
	ErrEmptyActor = errors.New("actor cannot be empty")
)

// IsTokenError reports whether err is any of the token validation errors above.
func IsTokenError(err error) bool {
	return errors.Is(err, ErrInvalidToken) ||
		errors.Is(err, ErrExpiredToken) ||
		errors.Is(err, ErrTokenNotYetValid) ||
		errors.Is(err, ErrWrongTokenType)
}
