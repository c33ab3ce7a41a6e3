package service

import (
	"errors"

	"auth-api/internal/repository"
)

// The service layer reports every expected failure through one of these
// sentinels; anything else reaching a caller is a storage or system fault
// and must not be presented as an authentication outcome.
var (
	// ErrUserNotFound is returned when a login email matches no account.
	// Surfacing it separately from ErrInvalidCredentials leaks account
	// existence; kept as the documented behavior of this API.
	ErrUserNotFound = errors.New("user not found")

	ErrInvalidCredentials = errors.New("invalid email or password")

	ErrEmailExists = errors.New("email already exists")

	ErrTokenNotFound = errors.New("refresh token not found")

	// ErrTokenRevoked means a refresh token was presented after rotation or
	// logout. Distinct from a generic validation failure: reuse of a rotated
	// token is a compromise signal.
	ErrTokenRevoked = errors.New("refresh token is revoked")

	ErrTokenInvalid = errors.New("invalid or expired refresh token")
)

func isNotFound(err error) bool {
	return errors.Is(err, repository.ErrNotFound)
}
