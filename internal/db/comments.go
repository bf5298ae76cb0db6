package db

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/stwalsh4118/vidhub/internal/models"
	"gorm.io/gorm"
)

// CommentRepository handles database operations for comments
type CommentRepository struct {
	db *DB
}

// NewCommentRepository creates a new comment repository
func NewCommentRepository(db *DB) *CommentRepository {
	return &CommentRepository{db: db}
}

// Create inserts a comment and increments the video's comment count in one transaction
func (r *CommentRepository) Create(ctx context.Context, comment *models.Comment) error {
	return r.db.WithTransaction(ctx, func(tx *gorm.DB) error {
		if err := tx.Create(comment).Error; err != nil {
			return fmt.Errorf("failed to create comment: %w", MapGormError(err))
		}
		result := tx.Model(&models.Video{}).
			Where("id = ?", comment.VideoID.String()).
			Update("comments", Increment("comments", 1))
		if result.Error != nil {
			return fmt.Errorf("failed to update comment count: %w", MapGormError(result.Error))
		}
		if result.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}

// GetByID retrieves a comment by its UUID
func (r *CommentRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Comment, error) {
	var comment models.Comment
	result := r.db.WithContext(ctx).Where("id = ?", id.String()).First(&comment)
	if result.Error != nil {
		return nil, MapGormError(result.Error)
	}
	return &comment, nil
}

// GetWithAuthor retrieves a comment with its author loaded
func (r *CommentRepository) GetWithAuthor(ctx context.Context, id uuid.UUID) (*models.Comment, error) {
	var comment models.Comment
	result := r.db.WithContext(ctx).Preload("User").Where("id = ?", id.String()).First(&comment)
	if result.Error != nil {
		return nil, MapGormError(result.Error)
	}
	return &comment, nil
}

// ListTopLevel returns a page of top-level comments on a video, newest first,
// with authors and replies (oldest first) loaded
func (r *CommentRepository) ListTopLevel(ctx context.Context, videoID uuid.UUID, page Page) ([]*models.Comment, int64, error) {
	query := r.db.WithContext(ctx).
		Where("video_id = ? AND parent_id IS NULL", videoID.String())

	comments, total, err := findPage[models.Comment](query, page, "created_at DESC, id ASC",
		preload("User"),
		preload("Replies", func(tx *gorm.DB) *gorm.DB {
			return tx.Order("created_at ASC, id ASC")
		}),
		preload("Replies.User"),
	)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list comments: %w", err)
	}
	return comments, total, nil
}

// UpdateText replaces the text of a comment
func (r *CommentRepository) UpdateText(ctx context.Context, comment *models.Comment, text string) error {
	now := time.Now().UTC()
	result := r.db.WithContext(ctx).
		Model(&models.Comment{}).
		Where("id = ?", comment.ID.String()).
		Updates(map[string]interface{}{"text": text, "updated_at": now})
	if result.Error != nil {
		return fmt.Errorf("failed to update comment: %w", MapGormError(result.Error))
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	comment.Text = text
	comment.UpdatedAt = now
	return nil
}

// Delete removes a comment and its replies and decrements the video's
// comment count by the number of removed rows. Returns that number.
func (r *CommentRepository) Delete(ctx context.Context, comment *models.Comment) (int64, error) {
	var removed int64
	err := r.db.WithTransaction(ctx, func(tx *gorm.DB) error {
		replies := tx.Where("parent_id = ?", comment.ID.String()).Delete(&models.Comment{})
		if replies.Error != nil {
			return fmt.Errorf("failed to delete replies: %w", MapGormError(replies.Error))
		}

		result := tx.Where("id = ?", comment.ID.String()).Delete(&models.Comment{})
		if result.Error != nil {
			return fmt.Errorf("failed to delete comment: %w", MapGormError(result.Error))
		}
		if result.RowsAffected == 0 {
			return ErrNotFound
		}

		removed = replies.RowsAffected + result.RowsAffected
		if err := tx.Model(&models.Video{}).
			Where("id = ?", comment.VideoID.String()).
			Update("comments", Decrement("comments", removed)).Error; err != nil {
			return fmt.Errorf("failed to update comment count: %w", MapGormError(err))
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return removed, nil
}

// IncrementLikes adds one like to a comment and returns the new count
func (r *CommentRepository) IncrementLikes(ctx context.Context, id uuid.UUID) (int64, error) {
	var likes int64
	err := r.db.WithTransaction(ctx, func(tx *gorm.DB) error {
		result := tx.Model(&models.Comment{}).
			Where("id = ?", id.String()).
			Update("likes", Increment("likes", 1))
		if result.Error != nil {
			return fmt.Errorf("failed to like comment: %w", MapGormError(result.Error))
		}
		if result.RowsAffected == 0 {
			return ErrNotFound
		}
		return tx.Model(&models.Comment{}).Select("likes").Where("id = ?", id.String()).Scan(&likes).Error
	})
	if err != nil {
		return 0, err
	}
	return likes, nil
}
