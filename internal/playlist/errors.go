package playlist

import (
	"errors"

	"github.com/stwalsh4118/vidhub/internal/errs"
)

// Custom playlist service errors
var (
	// ErrPlaylistNotFound indicates the requested playlist does not exist
	ErrPlaylistNotFound = errs.New(errs.KindNotFound, "Playlist not found")

	// ErrPrivatePlaylist indicates a private playlist read by someone other than its owner
	ErrPrivatePlaylist = errs.New(errs.KindForbidden, "This playlist is private")

	// ErrNotOwner indicates a change by someone other than the playlist owner
	ErrNotOwner = errs.New(errs.KindForbidden, "You can only modify your own playlists")

	// ErrVideoNotFound indicates a referenced video does not exist
	ErrVideoNotFound = errs.New(errs.KindNotFound, "Video not found")

	// ErrVideoNotInPlaylist indicates removal of a video the playlist does not contain
	ErrVideoNotInPlaylist = errs.New(errs.KindNotFound, "Video not in playlist")

	// ErrInvalidOrder indicates a reorder list that is not exactly the playlist's videos
	ErrInvalidOrder = errs.New(errs.KindValidation, "Video list must contain exactly the playlist's videos")

	// ErrNoVideos indicates an add request without video ids
	ErrNoVideos = errs.New(errs.KindValidation, "At least one video id is required")

	// ErrInvalidName indicates a blank or overlong playlist name
	ErrInvalidName = errs.New(errs.KindValidation, "Name is required and must be at most 150 characters")

	// ErrInvalidVisibility indicates a visibility other than public or private
	ErrInvalidVisibility = errs.New(errs.KindValidation, "Visibility must be 'public' or 'private'")
)

// IsPlaylistNotFound checks if the error is a playlist not found error
func IsPlaylistNotFound(err error) bool {
	return errors.Is(err, ErrPlaylistNotFound)
}

// IsForbidden checks if the error is an ownership or privacy error
func IsForbidden(err error) bool {
	return errors.Is(err, ErrNotOwner) || errors.Is(err, ErrPrivatePlaylist)
}
