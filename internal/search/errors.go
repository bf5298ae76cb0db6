package search

import "github.com/stwalsh4118/vidhub/internal/errs"

// Custom search service errors
var (
	// ErrQueryRequired indicates a search without a query
	ErrQueryRequired = errs.New(errs.KindValidation, "Search query is required")

	// ErrInvalidType indicates a result type outside all, videos, users and playlists
	ErrInvalidType = errs.New(errs.KindValidation, "Type must be one of all, videos, users, playlists")

	// ErrInvalidSort indicates a sort key outside relevance, views, date and likes
	ErrInvalidSort = errs.New(errs.KindValidation, "sortBy must be one of relevance, views, date, likes")

	// ErrInvalidUploadDate indicates an upload window outside hour, today, week, month and year
	ErrInvalidUploadDate = errs.New(errs.KindValidation, "uploadDate must be one of hour, today, week, month, year")

	// ErrInvalidDuration indicates a negative or inverted duration range
	ErrInvalidDuration = errs.New(errs.KindValidation, "Invalid duration range")
)
