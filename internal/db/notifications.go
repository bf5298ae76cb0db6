package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/stwalsh4118/vidhub/internal/models"
)

// NotificationRepository handles database operations for notifications
type NotificationRepository struct {
	db *DB
}

// NewNotificationRepository creates a new notification repository
func NewNotificationRepository(db *DB) *NotificationRepository {
	return &NotificationRepository{db: db}
}

// Create inserts a new notification
func (r *NotificationRepository) Create(ctx context.Context, n *models.Notification) error {
	result := r.db.WithContext(ctx).Create(n)
	if result.Error != nil {
		return fmt.Errorf("failed to create notification: %w", MapGormError(result.Error))
	}
	return nil
}

// CreateBatch inserts several notifications in one statement
func (r *NotificationRepository) CreateBatch(ctx context.Context, ns []*models.Notification) error {
	if len(ns) == 0 {
		return nil
	}
	result := r.db.WithContext(ctx).CreateInBatches(ns, 100)
	if result.Error != nil {
		return fmt.Errorf("failed to create notifications: %w", MapGormError(result.Error))
	}
	return nil
}

// ListByUser returns a page of a user's notifications, newest first, with actors loaded
func (r *NotificationRepository) ListByUser(ctx context.Context, userID uuid.UUID, unreadOnly bool, page Page) ([]*models.Notification, int64, error) {
	query := r.db.WithContext(ctx).Where("user_id = ?", userID.String())
	if unreadOnly {
		query = query.Where("is_read = ?", false)
	}
	items, total, err := findPage[models.Notification](query, page, "created_at DESC, id ASC", preload("Actor"))
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list notifications: %w", err)
	}
	return items, total, nil
}

// UnreadCount returns the number of unread notifications of a user
func (r *NotificationRepository) UnreadCount(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	result := r.db.WithContext(ctx).
		Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID.String(), false).
		Count(&count)
	if result.Error != nil {
		return 0, fmt.Errorf("failed to count unread notifications: %w", MapGormError(result.Error))
	}
	return count, nil
}

// MarkRead marks one of the user's notifications as read
func (r *NotificationRepository) MarkRead(ctx context.Context, id, userID uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Model(&models.Notification{}).
		Where("id = ? AND user_id = ?", id.String(), userID.String()).
		Update("is_read", true)
	if result.Error != nil {
		return fmt.Errorf("failed to mark notification read: %w", MapGormError(result.Error))
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// MarkAllRead marks every unread notification of the user as read and
// returns how many changed
func (r *NotificationRepository) MarkAllRead(ctx context.Context, userID uuid.UUID) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID.String(), false).
		Update("is_read", true)
	if result.Error != nil {
		return 0, fmt.Errorf("failed to mark notifications read: %w", MapGormError(result.Error))
	}
	return result.RowsAffected, nil
}

// Delete removes one of the user's notifications
func (r *NotificationRepository) Delete(ctx context.Context, id, userID uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id.String(), userID.String()).
		Delete(&models.Notification{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete notification: %w", MapGormError(result.Error))
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
