package user

import (
	"errors"

	"github.com/stwalsh4118/vidhub/internal/errs"
)

// Custom user service errors
var (
	// ErrUserNotFound indicates the requested user or channel does not exist or is disabled
	ErrUserNotFound = errs.New(errs.KindNotFound, "User not found")

	// ErrSelfSubscribe indicates a user subscribing to their own channel
	ErrSelfSubscribe = errs.New(errs.KindValidation, "You cannot subscribe to your own channel")

	// ErrAlreadySubscribed indicates a duplicate subscription
	ErrAlreadySubscribed = errs.New(errs.KindConflict, "Already subscribed")

	// ErrNotSubscribed indicates an unsubscribe without a subscription
	ErrNotSubscribed = errs.New(errs.KindNotFound, "Not subscribed")
)

// IsUserNotFound checks if the error is a user not found error
func IsUserNotFound(err error) bool {
	return errors.Is(err, ErrUserNotFound)
}
