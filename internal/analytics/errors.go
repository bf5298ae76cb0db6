package analytics

import "github.com/stwalsh4118/vidhub/internal/errs"

// Custom analytics service errors
var (
	// ErrChannelNotFound indicates the requested channel does not exist
	ErrChannelNotFound = errs.New(errs.KindNotFound, "User not found")

	// ErrVideoNotFound indicates the requested video does not exist
	ErrVideoNotFound = errs.New(errs.KindNotFound, "Video not found")

	// ErrAccessDenied indicates a report requested by someone other than its owner or an admin
	ErrAccessDenied = errs.New(errs.KindForbidden, "Access denied")
)
