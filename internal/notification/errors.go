package notification

import (
	"errors"

	"github.com/stwalsh4118/vidhub/internal/errs"
)

// Custom notification service errors
var (
	// ErrNotificationNotFound indicates the notification does not exist or belongs to another user
	ErrNotificationNotFound = errs.New(errs.KindNotFound, "Notification not found")
)

// IsNotificationNotFound checks if the error is a notification not found error
func IsNotificationNotFound(err error) bool {
	return errors.Is(err, ErrNotificationNotFound)
}
