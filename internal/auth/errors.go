package auth

import (
	"errors"

	"github.com/stwalsh4118/vidhub/internal/errs"
)

// Custom auth service errors
var (
	// ErrInvalidCredentials indicates an unknown login or wrong password
	ErrInvalidCredentials = errs.New(errs.KindUnauthorized, "Invalid credentials")

	// ErrAccountDisabled indicates the account was deactivated by an admin
	ErrAccountDisabled = errs.New(errs.KindForbidden, "Account is disabled")

	// ErrEmailTaken indicates another account uses the email
	ErrEmailTaken = errs.New(errs.KindConflict, "Email already registered")

	// ErrUsernameTaken indicates another account uses the username
	ErrUsernameTaken = errs.New(errs.KindConflict, "Username already taken")

	// ErrUserNotFound indicates the authenticated user no longer exists
	ErrUserNotFound = errs.New(errs.KindNotFound, "User not found")
)

// IsInvalidCredentials checks if the error is an invalid credentials error
func IsInvalidCredentials(err error) bool {
	return errors.Is(err, ErrInvalidCredentials)
}

// IsAccountDisabled checks if the error is an account disabled error
func IsAccountDisabled(err error) bool {
	return errors.Is(err, ErrAccountDisabled)
}
