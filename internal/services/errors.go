package services

import "errors"

var (
	// ErrDuplicateEmail is returned by Register when the email is taken.
	ErrDuplicateEmail = errors.New("email already registered")

	// ErrInvalidCredentials covers both unknown email and wrong password.
	// The two cases are intentionally merged so callers cannot enumerate
	// registered accounts.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrInvalidRefreshToken covers missing, expired and revoked refresh
	// tokens, again merged to avoid leaking token state.
	ErrInvalidRefreshToken = errors.New("invalid refresh token")

	// ErrUserNotFound is returned when a user referenced by a still-valid
	// token has been deleted.
	ErrUserNotFound = errors.New("user not found")
)
