// Package like implements the per-user like/dislike toggle on videos.
package like

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

// LikeService handles business logic for video likes
type LikeService struct {
	repos    *db.Repositories
	notifier Notifier
}

// NewLikeService creates a new like service instance
func NewLikeService(repos *db.Repositories, notifier Notifier) *LikeService {
	return &LikeService{
		repos:    repos,
		notifier: notifier,
	}
}

// Toggle applies likeType from user to a video. Repeating the current type
// clears it, the other type flips it. Moving into liked notifies the owner.
func (s *LikeService) Toggle(ctx context.Context, user *models.User, videoID uuid.UUID, likeType string) (*db.LikeResult, error) {
	if likeType != models.LikeTypeLike && likeType != models.LikeTypeDislike {
		return nil, ErrInvalidType
	}

	video, err := s.loadVisibleVideo(ctx, user.ID, videoID)
	if err != nil {
		return nil, err
	}

	res, err := s.repos.Likes.Toggle(ctx, user.ID, videoID, likeType)
	if err != nil {
		if db.IsNotFound(err) || db.IsForeignKey(err) {
			return nil, ErrVideoNotFound
		}
		logger.Log.Error().
			Err(err).
			Str("video_id", videoID.String()).
			Str("user_id", user.ID.String()).
			Msg("Failed to toggle like")
		return nil, fmt.Errorf("failed to toggle like: %w", err)
	}

	logger.Log.Info().
		Str("video_id", videoID.String()).
		Str("user_id", user.ID.String()).
		Str("state", res.State).
		Msg("Like toggled")

	if res.Changed && res.State == models.LikeStateLiked && s.notifier != nil {
		s.notifier.Notify(ctx, notification.VideoLiked(user, video))
	}

	return res, nil
}

// Status returns the user's like state on a video with its counters
func (s *LikeService) Status(ctx context.Context, userID, videoID uuid.UUID) (*db.LikeResult, error) {
	res, err := s.repos.Likes.Status(ctx, &userID, videoID)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, ErrVideoNotFound
		}
		return nil, fmt.Errorf("failed to get like status: %w", err)
	}
	return res, nil
}

// Liked returns a page of public videos the user liked, newest first
func (s *LikeService) Liked(ctx context.Context, userID uuid.UUID, page db.Page) (*db.Paged[models.Video], error) {
	videos, total, err := s.repos.Videos.List(ctx, db.VideoFilter{LikedBy: &userID, PublicOnly: true}, page)
	if err != nil {
		logger.Log.Error().
			Err(err).
			Str("user_id", userID.String()).
			Msg("Failed to list liked videos")
		return nil, fmt.Errorf("failed to list liked videos: %w", err)
	}
	return db.NewPaged(videos, page, total), nil
}

func (s *LikeService) loadVisibleVideo(ctx context.Context, userID, videoID uuid.UUID) (*models.Video, error) {
	video, err := s.repos.Videos.GetByID(ctx, videoID)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, ErrVideoNotFound
		}
		return nil, fmt.Errorf("failed to get video: %w", err)
	}
	if video.Visibility == models.VisibilityPrivate && !video.IsOwnedBy(userID) {
		return nil, ErrPrivateVideo
	}
	return video, nil
}
