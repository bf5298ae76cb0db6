package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/stwalsh4118/vidhub/internal/models"
	"gorm.io/gorm"
)

// LikeResult is the like state of a (user, video) pair after an operation,
// together with the video's counters
type LikeResult struct {
	State    string `json:"state"`
	Likes    int64  `json:"likes"`
	Dislikes int64  `json:"dislikes"`
	Changed  bool   `json:"-"` // true when the state moved to a different like type
}

// likeCounters receives the counter columns of a video row
type likeCounters struct {
	Likes    int64
	Dislikes int64
}

// LikeRepository handles database operations for video likes
type LikeRepository struct {
	db *DB
}

// NewLikeRepository creates a new like repository
func NewLikeRepository(db *DB) *LikeRepository {
	return &LikeRepository{db: db}
}

// counterColumn returns the video counter tracking likeType
func counterColumn(likeType string) string {
	if likeType == models.LikeTypeDislike {
		return "dislikes"
	}
	return "likes"
}

// Toggle applies likeType for the user on the video in one transaction.
// Re-applying the stored type removes the like, a different type flips it,
// and no stored row inserts one. Video counters move with the row.
func (r *LikeRepository) Toggle(ctx context.Context, userID, videoID uuid.UUID, likeType string) (*LikeResult, error) {
	res := &LikeResult{}
	err := r.db.WithTransaction(ctx, func(tx *gorm.DB) error {
		var existing models.Like
		err := ForUpdate(tx).
			Where("user_id = ? AND video_id = ?", userID.String(), videoID.String()).
			First(&existing).Error

		counters := map[string]interface{}{}
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			if err := tx.Create(models.NewLike(userID, videoID, likeType)).Error; err != nil {
				return fmt.Errorf("failed to create like: %w", MapGormError(err))
			}
			counters[counterColumn(likeType)] = Increment(counterColumn(likeType), 1)
			res.State = models.StateForType(likeType)
			res.Changed = true
		case err != nil:
			return fmt.Errorf("failed to get like: %w", MapGormError(err))
		case existing.Type == likeType:
			if err := tx.Where("id = ?", existing.ID.String()).Delete(&models.Like{}).Error; err != nil {
				return fmt.Errorf("failed to delete like: %w", MapGormError(err))
			}
			counters[counterColumn(likeType)] = Decrement(counterColumn(likeType), 1)
			res.State = models.LikeStateNone
		default:
			if err := tx.Model(&models.Like{}).
				Where("id = ?", existing.ID.String()).
				Updates(map[string]interface{}{"type": likeType, "updated_at": time.Now().UTC()}).Error; err != nil {
				return fmt.Errorf("failed to update like: %w", MapGormError(err))
			}
			counters[counterColumn(existing.Type)] = Decrement(counterColumn(existing.Type), 1)
			counters[counterColumn(likeType)] = Increment(counterColumn(likeType), 1)
			res.State = models.StateForType(likeType)
			res.Changed = true
		}

		result := tx.Model(&models.Video{}).Where("id = ?", videoID.String()).Updates(counters)
		if result.Error != nil {
			return fmt.Errorf("failed to update like counters: %w", MapGormError(result.Error))
		}
		if result.RowsAffected == 0 {
			return ErrNotFound
		}

		var c likeCounters
		if err := tx.Model(&models.Video{}).
			Select("likes", "dislikes").
			Where("id = ?", videoID.String()).
			Scan(&c).Error; err != nil {
			return fmt.Errorf("failed to read like counters: %w", MapGormError(err))
		}
		res.Likes, res.Dislikes = c.Likes, c.Dislikes
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// Status returns the user's like state on a video with the video's counters.
// A nil userID reports the counters with state none.
func (r *LikeRepository) Status(ctx context.Context, userID *uuid.UUID, videoID uuid.UUID) (*LikeResult, error) {
	var c likeCounters
	result := r.db.WithContext(ctx).
		Model(&models.Video{}).
		Select("likes", "dislikes").
		Where("id = ?", videoID.String()).
		Limit(1).
		Scan(&c)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to get like counters: %w", MapGormError(result.Error))
	}
	if result.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	res := &LikeResult{State: models.LikeStateNone, Likes: c.Likes, Dislikes: c.Dislikes}
	if userID == nil {
		return res, nil
	}

	var like models.Like
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND video_id = ?", userID.String(), videoID.String()).
		First(&like).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
	case err != nil:
		return nil, fmt.Errorf("failed to get like: %w", MapGormError(err))
	default:
		res.State = models.StateForType(like.Type)
	}
	return res, nil
}
