package db

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/stwalsh4118/vidhub/internal/models"
	"gorm.io/gorm"
)

// VideoSortColumns maps the sort keys accepted by the API to video columns
var VideoSortColumns = map[string]string{
	"createdAt": "created_at",
	"views":     "views",
	"likes":     "likes",
	"title":     "title",
	"duration":  "duration",
}

// VideoFilter narrows a video listing. Zero values do not filter.
type VideoFilter struct {
	Category     string
	Query        string // substring of title or description
	QueryTags    bool   // also match Query against tags
	Tags         []string
	MinDuration  *int64
	MaxDuration  *int64
	CreatedAfter *time.Time
	UserID       *uuid.UUID
	ChannelsOf   *uuid.UUID // only videos from channels this user subscribes to
	LikedBy      *uuid.UUID // only videos this user liked
	PublicOnly   bool
	SortColumn   string // one of the VideoSortColumns values
	SortAsc      bool
}

func (f VideoFilter) scope(q *gorm.DB) *gorm.DB {
	if f.PublicOnly {
		q = q.Where("videos.visibility = ? AND videos.status = ?", models.VisibilityPublic, models.StatusPublished)
	}
	if f.UserID != nil {
		q = q.Where("videos.user_id = ?", f.UserID.String())
	}
	if f.Category != "" {
		q = q.Where("videos.category = ?", f.Category)
	}
	if strings.TrimSpace(f.Query) != "" {
		pattern := contains(f.Query)
		if f.QueryTags {
			q = q.Where(likeCond("videos.title")+" OR "+likeCond("videos.description")+" OR "+likeCond("videos.tags"),
				pattern, pattern, tagPattern(f.Query))
		} else {
			q = q.Where(likeCond("videos.title")+" OR "+likeCond("videos.description"), pattern, pattern)
		}
	}
	if len(f.Tags) > 0 {
		conds := make([]string, 0, len(f.Tags))
		args := make([]interface{}, 0, len(f.Tags))
		for _, tag := range f.Tags {
			conds = append(conds, likeCond("videos.tags"))
			args = append(args, tagPattern(tag))
		}
		q = q.Where(strings.Join(conds, " OR "), args...)
	}
	if f.MinDuration != nil {
		q = q.Where("videos.duration >= ?", *f.MinDuration)
	}
	if f.MaxDuration != nil {
		q = q.Where("videos.duration <= ?", *f.MaxDuration)
	}
	if f.CreatedAfter != nil {
		q = q.Where("videos.created_at >= ?", f.CreatedAfter.UTC())
	}
	if f.ChannelsOf != nil {
		q = q.Where("videos.user_id IN (?)",
			q.Session(&gorm.Session{NewDB: true}).Model(&models.Subscription{}).
				Select("channel_id").Where("user_id = ?", f.ChannelsOf.String()))
	}
	if f.LikedBy != nil {
		q = q.Where("videos.id IN (?)",
			q.Session(&gorm.Session{NewDB: true}).Model(&models.Like{}).
				Select("video_id").Where("user_id = ? AND type = ?", f.LikedBy.String(), models.LikeTypeLike))
	}
	return q
}

func (f VideoFilter) order() string {
	column := f.SortColumn
	if column == "" {
		column = "created_at"
	}
	dir := "DESC"
	if f.SortAsc {
		dir = "ASC"
	}
	return fmt.Sprintf("videos.%s %s, videos.id ASC", column, dir)
}

// VideoRepository handles database operations for videos
type VideoRepository struct {
	db *DB
}

// NewVideoRepository creates a new video repository
func NewVideoRepository(db *DB) *VideoRepository {
	return &VideoRepository{db: db}
}

// Create inserts a video and increments its owner's video count in one transaction
func (r *VideoRepository) Create(ctx context.Context, video *models.Video) error {
	return r.db.WithTransaction(ctx, func(tx *gorm.DB) error {
		if err := tx.Create(video).Error; err != nil {
			return fmt.Errorf("failed to create video: %w", MapGormError(err))
		}
		result := tx.Model(&models.User{}).
			Where("id = ?", video.UserID.String()).
			Update("video_count", Increment("video_count", 1))
		if result.Error != nil {
			return fmt.Errorf("failed to update video count: %w", MapGormError(result.Error))
		}
		return nil
	})
}

// GetByID retrieves a video by its UUID
func (r *VideoRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Video, error) {
	var video models.Video
	result := r.db.WithContext(ctx).Where("id = ?", id.String()).First(&video)
	if result.Error != nil {
		return nil, MapGormError(result.Error)
	}
	return &video, nil
}

// GetWithOwner retrieves a video with its owner loaded
func (r *VideoRepository) GetWithOwner(ctx context.Context, id uuid.UUID) (*models.Video, error) {
	var video models.Video
	result := r.db.WithContext(ctx).Preload("User").Where("id = ?", id.String()).First(&video)
	if result.Error != nil {
		return nil, MapGormError(result.Error)
	}
	return &video, nil
}

// ExistingIDs returns the subset of ids that belong to existing videos
func (r *VideoRepository) ExistingIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]bool, error) {
	strIDs := make([]string, len(ids))
	for i, id := range ids {
		strIDs[i] = id.String()
	}
	var found []uuid.UUID
	result := r.db.WithContext(ctx).Model(&models.Video{}).Where("id IN ?", strIDs).Pluck("id", &found)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to look up videos: %w", MapGormError(result.Error))
	}
	existing := make(map[uuid.UUID]bool, len(found))
	for _, id := range found {
		existing[id] = true
	}
	return existing, nil
}

// List returns a page of videos matching filter, each with its owner loaded
func (r *VideoRepository) List(ctx context.Context, filter VideoFilter, page Page) ([]*models.Video, int64, error) {
	query := filter.scope(r.db.WithContext(ctx))
	videos, total, err := findPage[models.Video](query, page, filter.order(), preload("User"))
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list videos: %w", err)
	}
	return videos, total, nil
}

// Trending returns public videos created since the given time, most viewed first
func (r *VideoRepository) Trending(ctx context.Context, since time.Time, page Page) ([]*models.Video, int64, error) {
	query := VideoFilter{PublicOnly: true, CreatedAfter: &since}.scope(r.db.WithContext(ctx))
	videos, total, err := findPage[models.Video](query, page,
		"videos.views DESC, videos.likes DESC, videos.created_at DESC", preload("User"))
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list trending videos: %w", err)
	}
	return videos, total, nil
}

// Update persists the editable fields of a video
func (r *VideoRepository) Update(ctx context.Context, video *models.Video) error {
	video.UpdatedAt = time.Now().UTC()
	result := r.db.WithContext(ctx).
		Model(video).
		Select("title", "description", "thumbnail", "category", "tags", "visibility", "status", "updated_at").
		Updates(video)
	if result.Error != nil {
		return fmt.Errorf("failed to update video: %w", MapGormError(result.Error))
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a video in one transaction. Playlists containing it and the
// owner's video count are decremented; likes, comments and playlist entries cascade.
func (r *VideoRepository) Delete(ctx context.Context, video *models.Video) error {
	return r.db.WithTransaction(ctx, func(tx *gorm.DB) error {
		var playlistIDs []string
		if err := tx.Model(&models.PlaylistVideo{}).
			Where("video_id = ?", video.ID.String()).
			Pluck("playlist_id", &playlistIDs).Error; err != nil {
			return fmt.Errorf("failed to find playlists for video: %w", MapGormError(err))
		}
		if len(playlistIDs) > 0 {
			if err := tx.Model(&models.Playlist{}).
				Where("id IN ?", playlistIDs).
				Update("video_count", Decrement("video_count", 1)).Error; err != nil {
				return fmt.Errorf("failed to update playlist counts: %w", MapGormError(err))
			}
		}

		result := tx.Where("id = ?", video.ID.String()).Delete(&models.Video{})
		if result.Error != nil {
			return fmt.Errorf("failed to delete video: %w", MapGormError(result.Error))
		}
		if result.RowsAffected == 0 {
			return ErrNotFound
		}

		if err := tx.Model(&models.User{}).
			Where("id = ?", video.UserID.String()).
			Update("video_count", Decrement("video_count", 1)).Error; err != nil {
			return fmt.Errorf("failed to update video count: %w", MapGormError(err))
		}
		return nil
	})
}

// RecordView increments the view counters of a video and its owner
func (r *VideoRepository) RecordView(ctx context.Context, video *models.Video) error {
	return r.db.WithTransaction(ctx, func(tx *gorm.DB) error {
		result := tx.Model(&models.Video{}).
			Where("id = ?", video.ID.String()).
			Update("views", Increment("views", 1))
		if result.Error != nil {
			return fmt.Errorf("failed to increment views: %w", MapGormError(result.Error))
		}
		if result.RowsAffected == 0 {
			return ErrNotFound
		}
		if err := tx.Model(&models.User{}).
			Where("id = ?", video.UserID.String()).
			Update("total_views", Increment("total_views", 1)).Error; err != nil {
			return fmt.Errorf("failed to increment total views: %w", MapGormError(err))
		}
		return nil
	})
}

// TitleSuggestions returns up to limit public video titles containing q,
// titles starting with q first
func (r *VideoRepository) TitleSuggestions(ctx context.Context, q string, limit int) ([]string, error) {
	var titles []string
	result := VideoFilter{PublicOnly: true}.scope(r.db.WithContext(ctx)).
		Model(&models.Video{}).
		Where(likeCond("videos.title"), contains(q)).
		Order(startsWithFirst("videos.title", q, "videos.views DESC")).
		Limit(limit).
		Pluck("title", &titles)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to suggest titles: %w", MapGormError(result.Error))
	}
	return titles, nil
}

// TagsSince returns the tag sets of public videos created since the given time
func (r *VideoRepository) TagsSince(ctx context.Context, since time.Time) ([][]string, error) {
	var videos []*models.Video
	result := VideoFilter{PublicOnly: true, CreatedAfter: &since}.scope(r.db.WithContext(ctx)).
		Select("id", "tags").
		Find(&videos)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to load tags: %w", MapGormError(result.Error))
	}
	tags := make([][]string, 0, len(videos))
	for _, v := range videos {
		tags = append(tags, v.Tags)
	}
	return tags, nil
}
