// Package playlist implements user playlists: ordered, owner-managed lists of videos.
package playlist

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/stwalsh4118/vidhub/internal/db"
	"github.com/stwalsh4118/vidhub/internal/logger"
	"github.com/stwalsh4118/vidhub/internal/models"
)

const maxNameLength = 150

// UpdateInput holds optional playlist changes; nil fields are left unchanged
type UpdateInput struct {
	Name        *string
	Description *string
	Visibility  *string
}

// PlaylistService handles business logic for playlist operations
type PlaylistService struct {
	repos *db.Repositories
}

// NewPlaylistService creates a new playlist service instance
func NewPlaylistService(repos *db.Repositories) *PlaylistService {
	return &PlaylistService{repos: repos}
}

// Create creates an empty playlist owned by userID
func (s *PlaylistService) Create(ctx context.Context, userID uuid.UUID, name, description, visibility string) (*models.Playlist, error) {
	name, err := cleanName(name)
	if err != nil {
		return nil, err
	}
	if visibility != "" && !validVisibility(visibility) {
		return nil, ErrInvalidVisibility
	}

	playlist := models.NewPlaylist(userID, name, strings.TrimSpace(description), visibility)
	if err := s.repos.Playlists.Create(ctx, playlist); err != nil {
		logger.Log.Error().
			Err(err).
			Str("user_id", userID.String()).
			Msg("Failed to create playlist in database")
		return nil, fmt.Errorf("failed to create playlist: %w", err)
	}

	logger.Log.Info().
		Str("playlist_id", playlist.ID.String()).
		Str("user_id", userID.String()).
		Str("name", playlist.Name).
		Msg("Playlist created successfully")

	return playlist, nil
}

// ListMine returns a page of every playlist owned by userID
func (s *PlaylistService) ListMine(ctx context.Context, userID uuid.UUID, page db.Page) (*db.Paged[models.Playlist], error) {
	return s.list(ctx, userID, false, page)
}

// ListByUser returns a page of ownerID's playlists as seen by viewerID.
// Only the owner sees private playlists.
func (s *PlaylistService) ListByUser(ctx context.Context, ownerID, viewerID uuid.UUID, page db.Page) (*db.Paged[models.Playlist], error) {
	return s.list(ctx, ownerID, ownerID != viewerID, page)
}

func (s *PlaylistService) list(ctx context.Context, userID uuid.UUID, publicOnly bool, page db.Page) (*db.Paged[models.Playlist], error) {
	playlists, total, err := s.repos.Playlists.ListByUser(ctx, userID, publicOnly, page)
	if err != nil {
		logger.Log.Error().
			Err(err).
			Str("user_id", userID.String()).
			Msg("Failed to list playlists")
		return nil, fmt.Errorf("failed to list playlists: %w", err)
	}
	return db.NewPaged(playlists, page, total), nil
}

// Get returns a playlist with its videos ordered by position. viewerID is
// uuid.Nil for anonymous requests. Private videos of other users are hidden
// from the entries.
func (s *PlaylistService) Get(ctx context.Context, id, viewerID uuid.UUID) (*models.Playlist, error) {
	playlist, err := s.repos.Playlists.GetWithVideos(ctx, id)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, ErrPlaylistNotFound
		}
		return nil, fmt.Errorf("failed to get playlist: %w", err)
	}

	if playlist.Visibility == models.VisibilityPrivate && !playlist.IsOwnedBy(viewerID) {
		logger.Log.Warn().
			Str("playlist_id", id.String()).
			Msg("Private playlist requested by non-owner")
		return nil, ErrPrivatePlaylist
	}

	entries := playlist.Videos[:0]
	for _, entry := range playlist.Videos {
		if entry.Video == nil {
			continue
		}
		if entry.Video.Visibility == models.VisibilityPrivate && !entry.Video.IsOwnedBy(viewerID) {
			continue
		}
		entries = append(entries, entry)
	}
	playlist.Videos = entries

	return playlist, nil
}

// Update applies the non-nil fields of in to a playlist owned by userID
func (s *PlaylistService) Update(ctx context.Context, userID, id uuid.UUID, in UpdateInput) (*models.Playlist, error) {
	playlist, err := s.getOwned(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if in.Name != nil {
		name, err := cleanName(*in.Name)
		if err != nil {
			return nil, err
		}
		playlist.Name = name
	}
	if in.Description != nil {
		playlist.Description = strings.TrimSpace(*in.Description)
	}
	if in.Visibility != nil {
		if !validVisibility(*in.Visibility) {
			return nil, ErrInvalidVisibility
		}
		playlist.Visibility = *in.Visibility
	}

	if err := s.repos.Playlists.Update(ctx, playlist); err != nil {
		logger.Log.Error().
			Err(err).
			Str("playlist_id", id.String()).
			Msg("Failed to update playlist")
		return nil, fmt.Errorf("failed to update playlist: %w", err)
	}

	logger.Log.Info().
		Str("playlist_id", id.String()).
		Msg("Playlist updated successfully")

	return playlist, nil
}

// Delete removes a playlist owned by userID
func (s *PlaylistService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	if _, err := s.getOwned(ctx, userID, id); err != nil {
		return err
	}

	if err := s.repos.Playlists.Delete(ctx, id); err != nil {
		if db.IsNotFound(err) {
			return ErrPlaylistNotFound
		}
		logger.Log.Error().
			Err(err).
			Str("playlist_id", id.String()).
			Msg("Failed to delete playlist")
		return fmt.Errorf("failed to delete playlist: %w", err)
	}

	logger.Log.Info().
		Str("playlist_id", id.String()).
		Str("user_id", userID.String()).
		Msg("Playlist deleted successfully")

	return nil
}

// AddVideos appends videos to a playlist owned by userID in the given order.
// Every video must exist. Videos already in the playlist are skipped.
// Returns the number of videos added.
func (s *PlaylistService) AddVideos(ctx context.Context, userID, id uuid.UUID, videoIDs []uuid.UUID) (int64, error) {
	if len(videoIDs) == 0 {
		return 0, ErrNoVideos
	}
	if _, err := s.getOwned(ctx, userID, id); err != nil {
		return 0, err
	}

	existing, err := s.repos.Videos.ExistingIDs(ctx, videoIDs)
	if err != nil {
		return 0, fmt.Errorf("failed to check videos: %w", err)
	}
	for _, videoID := range videoIDs {
		if !existing[videoID] {
			logger.Log.Warn().
				Str("playlist_id", id.String()).
				Str("video_id", videoID.String()).
				Msg("Add to playlist failed: video not found")
			return 0, ErrVideoNotFound
		}
	}

	added, err := s.repos.Playlists.AddVideos(ctx, id, videoIDs)
	if err != nil {
		if db.IsNotFound(err) {
			return 0, ErrPlaylistNotFound
		}
		if db.IsForeignKey(err) {
			return 0, ErrVideoNotFound
		}
		logger.Log.Error().
			Err(err).
			Str("playlist_id", id.String()).
			Msg("Failed to add videos to playlist")
		return 0, fmt.Errorf("failed to add videos to playlist: %w", err)
	}

	logger.Log.Info().
		Str("playlist_id", id.String()).
		Int("requested", len(videoIDs)).
		Int64("added", added).
		Msg("Videos added to playlist")

	return added, nil
}

// RemoveVideo removes a video from a playlist owned by userID. Positions of
// the remaining entries are unchanged.
func (s *PlaylistService) RemoveVideo(ctx context.Context, userID, id, videoID uuid.UUID) error {
	if _, err := s.getOwned(ctx, userID, id); err != nil {
		return err
	}

	if err := s.repos.Playlists.RemoveVideo(ctx, id, videoID); err != nil {
		if db.IsNotFound(err) {
			return ErrVideoNotInPlaylist
		}
		logger.Log.Error().
			Err(err).
			Str("playlist_id", id.String()).
			Str("video_id", videoID.String()).
			Msg("Failed to remove video from playlist")
		return fmt.Errorf("failed to remove video from playlist: %w", err)
	}

	logger.Log.Info().
		Str("playlist_id", id.String()).
		Str("video_id", videoID.String()).
		Msg("Video removed from playlist")

	return nil
}

// Reorder sets the playlist order to videoIDs, which must be exactly the
// playlist's videos. Positions become 1..N.
func (s *PlaylistService) Reorder(ctx context.Context, userID, id uuid.UUID, videoIDs []uuid.UUID) error {
	if _, err := s.getOwned(ctx, userID, id); err != nil {
		return err
	}

	if err := s.repos.Playlists.Reorder(ctx, id, videoIDs); err != nil {
		if db.IsInvalidInput(err) {
			logger.Log.Warn().
				Str("playlist_id", id.String()).
				Int("count", len(videoIDs)).
				Msg("Reorder failed: video list does not match playlist")
			return ErrInvalidOrder
		}
		logger.Log.Error().
			Err(err).
			Str("playlist_id", id.String()).
			Msg("Failed to reorder playlist")
		return fmt.Errorf("failed to reorder playlist: %w", err)
	}

	logger.Log.Info().
		Str("playlist_id", id.String()).
		Int("count", len(videoIDs)).
		Msg("Playlist reordered")

	return nil
}

func (s *PlaylistService) getOwned(ctx context.Context, userID, id uuid.UUID) (*models.Playlist, error) {
	playlist, err := s.repos.Playlists.GetByID(ctx, id)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, ErrPlaylistNotFound
		}
		return nil, fmt.Errorf("failed to get playlist: %w", err)
	}
	if !playlist.IsOwnedBy(userID) {
		logger.Log.Warn().
			Str("playlist_id", id.String()).
			Str("user_id", userID.String()).
			Msg("Playlist change denied: not owner")
		return nil, ErrNotOwner
	}
	return playlist, nil
}

func cleanName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" || utf8.RuneCountInString(name) > maxNameLength {
		return "", ErrInvalidName
	}
	return name, nil
}

func validVisibility(v string) bool {
	return v == models.VisibilityPublic || v == models.VisibilityPrivate
}
