package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/stwalsh4118/vidhub/internal/models"
	"gorm.io/gorm"
)

// SubscriptionRepository handles database operations for channel subscriptions
type SubscriptionRepository struct {
	db *DB
}

// NewSubscriptionRepository creates a new subscription repository
func NewSubscriptionRepository(db *DB) *SubscriptionRepository {
	return &SubscriptionRepository{db: db}
}

// Create inserts a subscription and increments the channel's subscriber count
// in one transaction. Returns ErrDuplicate when the subscription already exists.
func (r *SubscriptionRepository) Create(ctx context.Context, sub *models.Subscription) error {
	return r.db.WithTransaction(ctx, func(tx *gorm.DB) error {
		if err := tx.Create(sub).Error; err != nil {
			return fmt.Errorf("failed to create subscription: %w", MapGormError(err))
		}
		result := tx.Model(&models.User{}).
			Where("id = ?", sub.ChannelID.String()).
			Update("subscribers", Increment("subscribers", 1))
		if result.Error != nil {
			return fmt.Errorf("failed to update subscriber count: %w", MapGormError(result.Error))
		}
		return nil
	})
}

// Delete removes a subscription and decrements the channel's subscriber count
// in one transaction. Returns ErrNotFound when no subscription exists.
func (r *SubscriptionRepository) Delete(ctx context.Context, userID, channelID uuid.UUID) error {
	return r.db.WithTransaction(ctx, func(tx *gorm.DB) error {
		result := tx.Where("user_id = ? AND channel_id = ?", userID.String(), channelID.String()).
			Delete(&models.Subscription{})
		if result.Error != nil {
			return fmt.Errorf("failed to delete subscription: %w", MapGormError(result.Error))
		}
		if result.RowsAffected == 0 {
			return ErrNotFound
		}
		if err := tx.Model(&models.User{}).
			Where("id = ?", channelID.String()).
			Update("subscribers", Decrement("subscribers", 1)).Error; err != nil {
			return fmt.Errorf("failed to update subscriber count: %w", MapGormError(err))
		}
		return nil
	})
}

// Exists reports whether userID subscribes to channelID
func (r *SubscriptionRepository) Exists(ctx context.Context, userID, channelID uuid.UUID) (bool, error) {
	var count int64
	result := r.db.WithContext(ctx).
		Model(&models.Subscription{}).
		Where("user_id = ? AND channel_id = ?", userID.String(), channelID.String()).
		Count(&count)
	if result.Error != nil {
		return false, fmt.Errorf("failed to check subscription: %w", MapGormError(result.Error))
	}
	return count > 0, nil
}

// ListByUser returns a page of the user's subscriptions, newest first, with channels loaded
func (r *SubscriptionRepository) ListByUser(ctx context.Context, userID uuid.UUID, page Page) ([]*models.Subscription, int64, error) {
	query := r.db.WithContext(ctx).Where("user_id = ?", userID.String())
	subs, total, err := findPage[models.Subscription](query, page, "created_at DESC, id ASC", preload("Channel"))
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list subscriptions: %w", err)
	}
	return subs, total, nil
}

// SubscriberIDs returns the ids of all users subscribed to a channel
func (r *SubscriptionRepository) SubscriberIDs(ctx context.Context, channelID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	result := r.db.WithContext(ctx).
		Model(&models.Subscription{}).
		Where("channel_id = ?", channelID.String()).
		Pluck("user_id", &ids)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to list subscribers: %w", MapGormError(result.Error))
	}
	return ids, nil
}
