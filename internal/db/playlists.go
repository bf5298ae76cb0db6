package db

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/stwalsh4118/vidhub/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PlaylistRepository handles database operations for playlists and their entries
type PlaylistRepository struct {
	db *DB
}

// NewPlaylistRepository creates a new playlist repository
func NewPlaylistRepository(db *DB) *PlaylistRepository {
	return &PlaylistRepository{db: db}
}

// Create inserts a new playlist into the database
func (r *PlaylistRepository) Create(ctx context.Context, playlist *models.Playlist) error {
	result := r.db.WithContext(ctx).Create(playlist)
	if result.Error != nil {
		return fmt.Errorf("failed to create playlist: %w", MapGormError(result.Error))
	}
	return nil
}

// GetByID retrieves a playlist by its UUID
func (r *PlaylistRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Playlist, error) {
	var playlist models.Playlist
	result := r.db.WithContext(ctx).Where("id = ?", id.String()).First(&playlist)
	if result.Error != nil {
		return nil, MapGormError(result.Error)
	}
	return &playlist, nil
}

// GetWithVideos retrieves a playlist with its owner and entries loaded,
// entries ordered by position
func (r *PlaylistRepository) GetWithVideos(ctx context.Context, id uuid.UUID) (*models.Playlist, error) {
	var playlist models.Playlist
	result := r.db.WithContext(ctx).
		Preload("User").
		Preload("Videos", func(tx *gorm.DB) *gorm.DB {
			return tx.Order("position ASC, added_at ASC")
		}).
		Preload("Videos.Video").
		Preload("Videos.Video.User").
		Where("id = ?", id.String()).
		First(&playlist)
	if result.Error != nil {
		return nil, MapGormError(result.Error)
	}
	return &playlist, nil
}

// ListByUser returns a page of a user's playlists, newest first.
// With publicOnly set, private playlists are excluded.
func (r *PlaylistRepository) ListByUser(ctx context.Context, userID uuid.UUID, publicOnly bool, page Page) ([]*models.Playlist, int64, error) {
	query := r.db.WithContext(ctx).Where("user_id = ?", userID.String())
	if publicOnly {
		query = query.Where("visibility = ?", models.VisibilityPublic)
	}
	playlists, total, err := findPage[models.Playlist](query, page, "created_at DESC, id ASC", preload("User"))
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list playlists: %w", err)
	}
	return playlists, total, nil
}

// Search finds public playlists whose name or description contains q
func (r *PlaylistRepository) Search(ctx context.Context, q string, page Page) ([]*models.Playlist, int64, error) {
	pattern := contains(q)
	query := r.db.WithContext(ctx).
		Where("visibility = ?", models.VisibilityPublic).
		Where(likeCond("name")+" OR "+likeCond("description"), pattern, pattern)
	playlists, total, err := findPage[models.Playlist](query, page, "video_count DESC, created_at DESC", preload("User"))
	if err != nil {
		return nil, 0, fmt.Errorf("failed to search playlists: %w", err)
	}
	return playlists, total, nil
}

// Update persists the editable fields of a playlist
func (r *PlaylistRepository) Update(ctx context.Context, playlist *models.Playlist) error {
	playlist.UpdatedAt = time.Now().UTC()
	result := r.db.WithContext(ctx).
		Model(playlist).
		Select("name", "description", "visibility", "updated_at").
		Updates(playlist)
	if result.Error != nil {
		return fmt.Errorf("failed to update playlist: %w", MapGormError(result.Error))
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete deletes a playlist by its UUID. Entries cascade.
func (r *PlaylistRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ?", id.String()).Delete(&models.Playlist{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete playlist: %w", MapGormError(result.Error))
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// AddVideos appends videos to a playlist in one transaction. Every requested
// id is assigned the next position after the current maximum, in order;
// ids already present are skipped without reusing their positions.
// Returns the number of entries inserted.
func (r *PlaylistRepository) AddVideos(ctx context.Context, playlistID uuid.UUID, videoIDs []uuid.UUID) (int64, error) {
	var added int64
	err := r.db.WithTransaction(ctx, func(tx *gorm.DB) error {
		var playlist models.Playlist
		if err := ForUpdate(tx).Where("id = ?", playlistID.String()).First(&playlist).Error; err != nil {
			return MapGormError(err)
		}

		var maxPosition int
		if err := tx.Model(&models.PlaylistVideo{}).
			Select("COALESCE(MAX(position), 0)").
			Where("playlist_id = ?", playlistID.String()).
			Scan(&maxPosition).Error; err != nil {
			return fmt.Errorf("failed to get max position: %w", MapGormError(err))
		}

		var present []uuid.UUID
		if err := tx.Model(&models.PlaylistVideo{}).
			Where("playlist_id = ?", playlistID.String()).
			Pluck("video_id", &present).Error; err != nil {
			return fmt.Errorf("failed to load playlist entries: %w", MapGormError(err))
		}
		skip := make(map[uuid.UUID]bool, len(present)+len(videoIDs))
		for _, id := range present {
			skip[id] = true
		}

		for i, videoID := range videoIDs {
			if skip[videoID] {
				continue
			}
			skip[videoID] = true
			entry := models.NewPlaylistVideo(playlistID, videoID, maxPosition+i+1)
			result := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(entry)
			if result.Error != nil {
				return fmt.Errorf("failed to add video %s to playlist: %w", videoID, MapGormError(result.Error))
			}
			added += result.RowsAffected
		}

		if added > 0 {
			if err := tx.Model(&models.Playlist{}).
				Where("id = ?", playlistID.String()).
				Update("video_count", Increment("video_count", added)).Error; err != nil {
				return fmt.Errorf("failed to update playlist video count: %w", MapGormError(err))
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return added, nil
}

// RemoveVideo deletes a playlist entry and decrements the playlist's video count.
// Remaining positions are left as they are.
func (r *PlaylistRepository) RemoveVideo(ctx context.Context, playlistID, videoID uuid.UUID) error {
	return r.db.WithTransaction(ctx, func(tx *gorm.DB) error {
		result := tx.Where("playlist_id = ? AND video_id = ?", playlistID.String(), videoID.String()).
			Delete(&models.PlaylistVideo{})
		if result.Error != nil {
			return fmt.Errorf("failed to remove video from playlist: %w", MapGormError(result.Error))
		}
		if result.RowsAffected == 0 {
			return ErrNotFound
		}
		if err := tx.Model(&models.Playlist{}).
			Where("id = ?", playlistID.String()).
			Update("video_count", Decrement("video_count", 1)).Error; err != nil {
			return fmt.Errorf("failed to update playlist video count: %w", MapGormError(err))
		}
		return nil
	})
}

// VideoIDs returns the ids of the videos in a playlist ordered by position
func (r *PlaylistRepository) VideoIDs(ctx context.Context, playlistID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	result := r.db.WithContext(ctx).
		Model(&models.PlaylistVideo{}).
		Where("playlist_id = ?", playlistID.String()).
		Order("position ASC, added_at ASC").
		Pluck("video_id", &ids)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to list playlist videos: %w", MapGormError(result.Error))
	}
	return ids, nil
}

// Reorder assigns positions 1..N to the playlist's entries in the order of
// videoIDs. videoIDs must contain exactly the playlist's videos, otherwise
// ErrInvalidInput is returned and nothing changes.
func (r *PlaylistRepository) Reorder(ctx context.Context, playlistID uuid.UUID, videoIDs []uuid.UUID) error {
	return r.db.WithTransaction(ctx, func(tx *gorm.DB) error {
		var current []uuid.UUID
		if err := ForUpdate(tx).
			Model(&models.PlaylistVideo{}).
			Where("playlist_id = ?", playlistID.String()).
			Pluck("video_id", &current).Error; err != nil {
			return fmt.Errorf("failed to load playlist entries: %w", MapGormError(err))
		}
		if !sameSet(current, videoIDs) {
			return ErrInvalidInput
		}

		for i, videoID := range videoIDs {
			result := tx.Model(&models.PlaylistVideo{}).
				Where("playlist_id = ? AND video_id = ?", playlistID.String(), videoID.String()).
				Update("position", i+1)
			if result.Error != nil {
				return fmt.Errorf("failed to update position for video %s: %w", videoID, MapGormError(result.Error))
			}
		}

		return tx.Model(&models.Playlist{}).
			Where("id = ?", playlistID.String()).
			Update("updated_at", time.Now().UTC()).Error
	})
}

// sameSet reports whether a and b hold the same ids with no repeats in b
func sameSet(a, b []uuid.UUID) bool {
	if len(a) != len(b) {
		return false
	}
	want := make(map[uuid.UUID]bool, len(a))
	for _, id := range a {
		want[id] = true
	}
	for _, id := range b {
		if !want[id] {
			return false
		}
		delete(want, id)
	}
	return true
}
