package like

import (
	"errors"

	"github.com/stwalsh4118/vidhub/internal/errs"
)

// Custom like service errors
var (
	// ErrVideoNotFound indicates the liked video does not exist
	ErrVideoNotFound = errs.New(errs.KindNotFound, "Video not found")

	// ErrPrivateVideo indicates a private video liked by someone other than its owner
	ErrPrivateVideo = errs.New(errs.KindForbidden, "This video is private")

	// ErrInvalidType indicates a like type other than like or dislike
	ErrInvalidType = errs.New(errs.KindValidation, "Type must be 'like' or 'dislike'")
)

// IsVideoNotFound checks if the error is a video not found error
func IsVideoNotFound(err error) bool {
	return errors.Is(err, ErrVideoNotFound)
}
