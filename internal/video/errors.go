package video

import (
	"errors"

	"github.com/stwalsh4118/vidhub/internal/errs"
)

// Custom video service errors
var (
	// ErrVideoNotFound indicates the requested video does not exist
	ErrVideoNotFound = errs.New(errs.KindNotFound, "Video not found")

	// ErrPrivateVideo indicates a private video was requested by someone other than its owner
	ErrPrivateVideo = errs.New(errs.KindForbidden, "This video is private")

	// ErrNotOwner indicates a modification attempted by someone other than the owner
	ErrNotOwner = errs.New(errs.KindForbidden, "You can only modify your own videos")

	// ErrInvalidCategory indicates a category outside the allowed list
	ErrInvalidCategory = errs.New(errs.KindValidation, "Invalid category")

	// ErrInvalidSort indicates an unsupported sort field or direction
	ErrInvalidSort = errs.New(errs.KindValidation, "Invalid sort parameters")

	// ErrInvalidVisibility indicates an unknown visibility value
	ErrInvalidVisibility = errs.New(errs.KindValidation, "Invalid visibility")

	// ErrInvalidStatus indicates an unknown status value
	ErrInvalidStatus = errs.New(errs.KindValidation, "Invalid status")
)

// IsVideoNotFound checks if the error is a video not found error
func IsVideoNotFound(err error) bool {
	return errors.Is(err, ErrVideoNotFound)
}

// IsForbidden checks if the error denies access to a video
func IsForbidden(err error) bool {
	return errors.Is(err, ErrPrivateVideo) || errors.Is(err, ErrNotOwner)
}
