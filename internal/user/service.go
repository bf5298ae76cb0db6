// Package user implements channel profiles, subscriptions and the
// subscription feed.
package user

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/stwalsh4118/vidhub/internal/db"
	"github.com/stwalsh4118/vidhub/internal/logger"
	"github.com/stwalsh4118/vidhub/internal/models"
	"github.com/stwalsh4118/vidhub/internal/notification"
)

// Notifier delivers notifications on a best-effort basis
type Notifier interface {
	Notify(ctx context.Context, ns ...*models.Notification)
}

// SubscriptionStatus reports whether a user follows a channel
type SubscriptionStatus struct {
	Subscribed  bool  `json:"subscribed"`
	Subscribers int64 `json:"subscribers"`
}

// UserService handles channel profiles and subscriptions
type UserService struct {
	repos    *db.Repositories
	notifier Notifier
}

// NewUserService creates a new user service instance
func NewUserService(repos *db.Repositories, notifier Notifier) *UserService {
	return &UserService{
		repos:    repos,
		notifier: notifier,
	}
}

// Profile returns an active user's channel profile
func (s *UserService) Profile(ctx context.Context, id uuid.UUID) (*models.User, error) {
	return s.activeUser(ctx, id)
}

// Subscribe makes subscriber follow channelID and notifies the channel
func (s *UserService) Subscribe(ctx context.Context, subscriber *models.User, channelID uuid.UUID) (*SubscriptionStatus, error) {
	if subscriber.ID == channelID {
		return nil, ErrSelfSubscribe
	}
	channel, err := s.activeUser(ctx, channelID)
	if err != nil {
		return nil, err
	}

	sub := models.NewSubscription(subscriber.ID, channelID)
	if err := s.repos.Subscriptions.Create(ctx, sub); err != nil {
		if db.IsDuplicate(err) {
			logger.Log.Warn().
				Str("user_id", subscriber.ID.String()).
				Str("channel_id", channelID.String()).
				Msg("Subscribe failed: already subscribed")
			return nil, ErrAlreadySubscribed
		}
		if db.IsForeignKey(err) {
			return nil, ErrUserNotFound
		}
		logger.Log.Error().
			Err(err).
			Str("user_id", subscriber.ID.String()).
			Str("channel_id", channelID.String()).
			Msg("Failed to create subscription")
		return nil, fmt.Errorf("failed to subscribe: %w", err)
	}

	logger.Log.Info().
		Str("user_id", subscriber.ID.String()).
		Str("channel_id", channelID.String()).
		Msg("Subscribed to channel")

	if s.notifier != nil {
		s.notifier.Notify(ctx, notification.Subscribed(subscriber, channelID))
	}

	return &SubscriptionStatus{Subscribed: true, Subscribers: channel.Subscribers + 1}, nil
}

// Unsubscribe removes the subscription of userID to channelID
func (s *UserService) Unsubscribe(ctx context.Context, userID, channelID uuid.UUID) (*SubscriptionStatus, error) {
	if err := s.repos.Subscriptions.Delete(ctx, userID, channelID); err != nil {
		if db.IsNotFound(err) {
			return nil, ErrNotSubscribed
		}
		logger.Log.Error().
			Err(err).
			Str("user_id", userID.String()).
			Str("channel_id", channelID.String()).
			Msg("Failed to delete subscription")
		return nil, fmt.Errorf("failed to unsubscribe: %w", err)
	}

	logger.Log.Info().
		Str("user_id", userID.String()).
		Str("channel_id", channelID.String()).
		Msg("Unsubscribed from channel")

	return s.SubscriptionStatus(ctx, userID, channelID)
}

// SubscriptionStatus reports whether userID follows channelID
func (s *UserService) SubscriptionStatus(ctx context.Context, userID, channelID uuid.UUID) (*SubscriptionStatus, error) {
	channel, err := s.repos.Users.GetByID(ctx, channelID)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get channel: %w", err)
	}
	subscribed, err := s.repos.Subscriptions.Exists(ctx, userID, channelID)
	if err != nil {
		return nil, fmt.Errorf("failed to get subscription status: %w", err)
	}
	return &SubscriptionStatus{Subscribed: subscribed, Subscribers: channel.Subscribers}, nil
}

// Subscriptions returns a page of the channels userID follows, newest first
func (s *UserService) Subscriptions(ctx context.Context, userID uuid.UUID, page db.Page) (*db.Paged[models.User], error) {
	subs, total, err := s.repos.Subscriptions.ListByUser(ctx, userID, page)
	if err != nil {
		logger.Log.Error().
			Err(err).
			Str("user_id", userID.String()).
			Msg("Failed to list subscriptions")
		return nil, fmt.Errorf("failed to list subscriptions: %w", err)
	}
	channels := make([]*models.User, 0, len(subs))
	for _, sub := range subs {
		if sub.Channel != nil {
			channels = append(channels, sub.Channel)
		}
	}
	return db.NewPaged(channels, page, total), nil
}

// Feed returns a page of public videos from channels userID follows, newest first
func (s *UserService) Feed(ctx context.Context, userID uuid.UUID, page db.Page) (*db.Paged[models.Video], error) {
	videos, total, err := s.repos.Videos.List(ctx, db.VideoFilter{ChannelsOf: &userID, PublicOnly: true}, page)
	if err != nil {
		logger.Log.Error().
			Err(err).
			Str("user_id", userID.String()).
			Msg("Failed to load subscription feed")
		return nil, fmt.Errorf("failed to load feed: %w", err)
	}
	return db.NewPaged(videos, page, total), nil
}

// SetActive enables or disables an account
func (s *UserService) SetActive(ctx context.Context, id uuid.UUID, active bool) (*models.User, error) {
	if err := s.repos.Users.SetActive(ctx, id, active); err != nil {
		if db.IsNotFound(err) {
			return nil, ErrUserNotFound
		}
		logger.Log.Error().
			Err(err).
			Str("user_id", id.String()).
			Msg("Failed to update user status")
		return nil, fmt.Errorf("failed to update user status: %w", err)
	}

	logger.Log.Info().
		Str("user_id", id.String()).
		Bool("active", active).
		Msg("User status updated")

	user, err := s.repos.Users.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

func (s *UserService) activeUser(ctx context.Context, id uuid.UUID) (*models.User, error) {
	user, err := s.repos.Users.GetByID(ctx, id)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if !user.IsActive {
		return nil, ErrUserNotFound
	}
	return user, nil
}
