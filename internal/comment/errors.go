package comment

import (
	"errors"

	"github.com/stwalsh4118/vidhub/internal/errs"
)

// Custom comment service errors
var (
	// ErrCommentNotFound indicates the requested comment does not exist
	ErrCommentNotFound = errs.New(errs.KindNotFound, "Comment not found")

	// ErrParentNotFound indicates a reply whose parent is missing or on another video
	ErrParentNotFound = errs.New(errs.KindNotFound, "Parent comment not found")

	// ErrVideoNotFound indicates the commented video does not exist
	ErrVideoNotFound = errs.New(errs.KindNotFound, "Video not found")

	// ErrPrivateVideo indicates a private video accessed by someone other than its owner
	ErrPrivateVideo = errs.New(errs.KindForbidden, "This video is private")

	// ErrNotAuthor indicates an edit by someone other than the comment author
	ErrNotAuthor = errs.New(errs.KindForbidden, "You can only edit your own comments")

	// ErrNotAllowed indicates a delete by someone who is neither author nor video owner
	ErrNotAllowed = errs.New(errs.KindForbidden, "You can only delete your own comments or comments on your videos")

	// ErrEmptyText indicates a blank comment
	ErrEmptyText = errs.New(errs.KindValidation, "Comment text is required")

	// ErrTextTooLong indicates a comment over MaxTextLength characters
	ErrTextTooLong = errs.New(errs.KindValidation, "Comment must be at most 1000 characters")
)

// IsCommentNotFound checks if the error is a comment not found error
func IsCommentNotFound(err error) bool {
	return errors.Is(err, ErrCommentNotFound)
}
