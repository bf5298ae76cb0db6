package db

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/stwalsh4118/vidhub/internal/models"
	"gorm.io/gorm"
)

// DailyCount is the number of rows created on one UTC day (YYYY-MM-DD)
type DailyCount struct {
	Day   string `json:"date"`
	Count int64  `json:"count"`
}

// CategoryCount is the number of videos in a category
type CategoryCount struct {
	Category string `json:"category"`
	Count    int64  `json:"count"`
}

// VideoTotals sums the counters of a set of videos
type VideoTotals struct {
	Videos   int64   `json:"videos"`
	Views    int64   `json:"views"`
	Likes    int64   `json:"likes"`
	Dislikes int64   `json:"dislikes"`
	Comments int64   `json:"comments"`
	AvgViews float64 `json:"avgViews"`
}

// AnalyticsRepository runs the aggregate queries behind the analytics reports
type AnalyticsRepository struct {
	db *DB
}

// NewAnalyticsRepository creates a new analytics repository
func NewAnalyticsRepository(db *DB) *AnalyticsRepository {
	return &AnalyticsRepository{db: db}
}

// dailyCounts groups rows of model by the day of column since the given time
func (r *AnalyticsRepository) dailyCounts(ctx context.Context, model interface{}, column string, since time.Time, scope func(*gorm.DB) *gorm.DB) ([]DailyCount, error) {
	rows := make([]DailyCount, 0)
	query := r.db.WithContext(ctx).
		Model(model).
		Select(fmt.Sprintf("CAST(DATE(%s) AS CHAR) AS day, COUNT(*) AS count", column)).
		Where(column+" >= ?", since.UTC())
	if scope != nil {
		query = scope(query)
	}
	if err := query.Group("day").Order("day ASC").Scan(&rows).Error; err != nil {
		return nil, MapGormError(err)
	}
	for i := range rows {
		if len(rows[i].Day) > 10 {
			rows[i].Day = rows[i].Day[:10]
		}
	}
	return rows, nil
}

// videoTotals sums video counters for the videos matched by scope
func (r *AnalyticsRepository) videoTotals(ctx context.Context, scope func(*gorm.DB) *gorm.DB) (*VideoTotals, error) {
	var totals VideoTotals
	query := r.db.WithContext(ctx).
		Model(&models.Video{}).
		Select("COUNT(*) AS videos, " +
			"COALESCE(SUM(views), 0) AS views, " +
			"COALESCE(SUM(likes), 0) AS likes, " +
			"COALESCE(SUM(dislikes), 0) AS dislikes, " +
			"COALESCE(SUM(comments), 0) AS comments, " +
			"COALESCE(AVG(views), 0) AS avg_views")
	if scope != nil {
		query = scope(query)
	}
	if err := query.Scan(&totals).Error; err != nil {
		return nil, MapGormError(err)
	}
	return &totals, nil
}

// ChannelTotals sums the counters of all videos owned by userID
func (r *AnalyticsRepository) ChannelTotals(ctx context.Context, userID uuid.UUID) (*VideoTotals, error) {
	totals, err := r.videoTotals(ctx, func(tx *gorm.DB) *gorm.DB {
		return tx.Where("user_id = ?", userID.String())
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get channel totals: %w", err)
	}
	return totals, nil
}

// TopVideos returns the n most viewed videos of a channel
func (r *AnalyticsRepository) TopVideos(ctx context.Context, userID uuid.UUID, n int) ([]*models.Video, error) {
	videos := make([]*models.Video, 0, n)
	result := r.db.WithContext(ctx).
		Where("user_id = ?", userID.String()).
		Order("views DESC, created_at DESC").
		Limit(n).
		Find(&videos)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to get top videos: %w", MapGormError(result.Error))
	}
	return videos, nil
}

// ChannelUploads returns daily upload counts of a channel
func (r *AnalyticsRepository) ChannelUploads(ctx context.Context, userID uuid.UUID, since time.Time) ([]DailyCount, error) {
	rows, err := r.dailyCounts(ctx, &models.Video{}, "created_at", since, func(tx *gorm.DB) *gorm.DB {
		return tx.Where("user_id = ?", userID.String())
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get channel uploads: %w", err)
	}
	return rows, nil
}

// ChannelSubscribers returns daily new subscriber counts of a channel
func (r *AnalyticsRepository) ChannelSubscribers(ctx context.Context, userID uuid.UUID, since time.Time) ([]DailyCount, error) {
	rows, err := r.dailyCounts(ctx, &models.Subscription{}, "created_at", since, func(tx *gorm.DB) *gorm.DB {
		return tx.Where("channel_id = ?", userID.String())
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get channel subscribers: %w", err)
	}
	return rows, nil
}

// ChannelComments returns daily counts of comments received on a channel's videos
func (r *AnalyticsRepository) ChannelComments(ctx context.Context, userID uuid.UUID, since time.Time) ([]DailyCount, error) {
	rows, err := r.dailyCounts(ctx, &models.Comment{}, "comments.created_at", since, func(tx *gorm.DB) *gorm.DB {
		return tx.Joins("JOIN videos ON videos.id = comments.video_id").
			Where("videos.user_id = ?", userID.String())
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get channel comments: %w", err)
	}
	return rows, nil
}

// VideoLikes returns daily counts of likes of likeType on a video
func (r *AnalyticsRepository) VideoLikes(ctx context.Context, videoID uuid.UUID, likeType string, since time.Time) ([]DailyCount, error) {
	rows, err := r.dailyCounts(ctx, &models.Like{}, "created_at", since, func(tx *gorm.DB) *gorm.DB {
		return tx.Where("video_id = ? AND type = ?", videoID.String(), likeType)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get video %ss: %w", likeType, err)
	}
	return rows, nil
}

// VideoComments returns daily comment counts of a video
func (r *AnalyticsRepository) VideoComments(ctx context.Context, videoID uuid.UUID, since time.Time) ([]DailyCount, error) {
	rows, err := r.dailyCounts(ctx, &models.Comment{}, "created_at", since, func(tx *gorm.DB) *gorm.DB {
		return tx.Where("video_id = ?", videoID.String())
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get video comments: %w", err)
	}
	return rows, nil
}

// PlatformTotals sums the counters of every video on the platform
func (r *AnalyticsRepository) PlatformTotals(ctx context.Context) (*VideoTotals, error) {
	totals, err := r.videoTotals(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to get platform totals: %w", err)
	}
	return totals, nil
}

// CountUsers returns the number of users, only active ones when activeOnly is set
func (r *AnalyticsRepository) CountUsers(ctx context.Context, activeOnly bool) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&models.User{})
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}
	if err := query.Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count users: %w", MapGormError(err))
	}
	return count, nil
}

// CountComments returns the number of comments on the platform
func (r *AnalyticsRepository) CountComments(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Comment{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count comments: %w", MapGormError(err))
	}
	return count, nil
}

// VideosPerCategory counts videos by category, largest first
func (r *AnalyticsRepository) VideosPerCategory(ctx context.Context) ([]CategoryCount, error) {
	rows := make([]CategoryCount, 0)
	result := r.db.WithContext(ctx).
		Model(&models.Video{}).
		Select("category, COUNT(*) AS count").
		Group("category").
		Order("count DESC, category ASC").
		Scan(&rows)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to count videos per category: %w", MapGormError(result.Error))
	}
	return rows, nil
}

// NewUsers returns daily registration counts
func (r *AnalyticsRepository) NewUsers(ctx context.Context, since time.Time) ([]DailyCount, error) {
	rows, err := r.dailyCounts(ctx, &models.User{}, "created_at", since, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to get new users: %w", err)
	}
	return rows, nil
}

// Uploads returns daily upload counts across the platform
func (r *AnalyticsRepository) Uploads(ctx context.Context, since time.Time) ([]DailyCount, error) {
	rows, err := r.dailyCounts(ctx, &models.Video{}, "created_at", since, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to get uploads: %w", err)
	}
	return rows, nil
}
