// Package notification stores and serves per-user notifications created as
// side effects of likes, comments, subscriptions and uploads.
package notification

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/stwalsh4118/vidhub/internal/db"
	"github.com/stwalsh4118/vidhub/internal/logger"
	"github.com/stwalsh4118/vidhub/internal/models"
)

// NotificationService handles business logic for notifications
type NotificationService struct {
	repos *db.Repositories
}

// NewNotificationService creates a new notification service instance
func NewNotificationService(repos *db.Repositories) *NotificationService {
	return &NotificationService{repos: repos}
}

// Create stores a notification
func (s *NotificationService) Create(ctx context.Context, n *models.Notification) error {
	if err := s.repos.Notifications.Create(ctx, n); err != nil {
		return fmt.Errorf("failed to create notification: %w", err)
	}
	return nil
}

// Notify stores notifications on a best-effort basis. Self-notifications
// (actor == recipient) are dropped and failures are logged, never returned.
func (s *NotificationService) Notify(ctx context.Context, ns ...*models.Notification) {
	pending := make([]*models.Notification, 0, len(ns))
	for _, n := range ns {
		if n.ActorID != nil && *n.ActorID == n.UserID {
			continue
		}
		pending = append(pending, n)
	}
	if len(pending) == 0 {
		return
	}

	if err := s.repos.Notifications.CreateBatch(ctx, pending); err != nil {
		logger.Log.Error().
			Err(err).
			Str("type", pending[0].Type).
			Int("count", len(pending)).
			Msg("Failed to create notifications")
		return
	}

	logger.Log.Debug().
		Str("type", pending[0].Type).
		Int("count", len(pending)).
		Msg("Notifications created")
}

// List returns a page of the user's notifications, newest first
func (s *NotificationService) List(ctx context.Context, userID uuid.UUID, unreadOnly bool, page db.Page) (*db.Paged[models.Notification], error) {
	items, total, err := s.repos.Notifications.ListByUser(ctx, userID, unreadOnly, page)
	if err != nil {
		logger.Log.Error().
			Err(err).
			Str("user_id", userID.String()).
			Msg("Failed to list notifications")
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}
	return db.NewPaged(items, page, total), nil
}

// UnreadCount returns the number of unread notifications of the user
func (s *NotificationService) UnreadCount(ctx context.Context, userID uuid.UUID) (int64, error) {
	count, err := s.repos.Notifications.UnreadCount(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to count notifications: %w", err)
	}
	return count, nil
}

// MarkRead marks one of the user's notifications as read
func (s *NotificationService) MarkRead(ctx context.Context, userID, id uuid.UUID) error {
	if err := s.repos.Notifications.MarkRead(ctx, id, userID); err != nil {
		if db.IsNotFound(err) {
			return ErrNotificationNotFound
		}
		return fmt.Errorf("failed to mark notification read: %w", err)
	}
	return nil
}

// MarkAllRead marks every notification of the user as read
func (s *NotificationService) MarkAllRead(ctx context.Context, userID uuid.UUID) (int64, error) {
	count, err := s.repos.Notifications.MarkAllRead(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to mark notifications read: %w", err)
	}

	logger.Log.Info().
		Str("user_id", userID.String()).
		Int64("count", count).
		Msg("Notifications marked read")

	return count, nil
}

// Delete removes one of the user's notifications
func (s *NotificationService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	if err := s.repos.Notifications.Delete(ctx, id, userID); err != nil {
		if db.IsNotFound(err) {
			return ErrNotificationNotFound
		}
		return fmt.Errorf("failed to delete notification: %w", err)
	}
	return nil
}
