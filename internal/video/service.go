// Package video implements the video catalog: listing, upload, detail reads
// with view counting, and owner-only edits.
package video

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/stwalsh4118/vidhub/internal/db"
	"github.com/stwalsh4118/vidhub/internal/logger"
	"github.com/stwalsh4118/vidhub/internal/models"
	"github.com/stwalsh4118/vidhub/internal/notification"
	"golang.org/x/sync/errgroup"
)

const (
	// trendingWindow bounds how old a trending video may be
	trendingWindow = 7 * 24 * time.Hour

	// detailComments is the number of top-level comments embedded in a video detail
	detailComments = 20
)

// Notifier delivers notifications on a best-effort basis
type Notifier interface {
	Notify(ctx context.Context, ns ...*models.Notification)
}

// ListInput holds the filters and ordering of a public video listing
type ListInput struct {
	Category  string
	Search    string
	SortBy    string // key of db.VideoSortColumns, createdAt when empty
	SortOrder string // asc or desc, desc when empty
}

// CreateInput holds the fields of a new video
type CreateInput struct {
	Title       string
	Description string
	Thumbnail   string
	VideoURL    string
	Duration    int64
	Category    string
	Tags        []string
	Visibility  string
}

// UpdateInput holds optional video changes; nil fields are left unchanged
type UpdateInput struct {
	Title       *string
	Description *string
	Thumbnail   *string
	Category    *string
	Tags        []string
	Visibility  *string
	Status      *string
}

// Detail is a video with the data its watch page needs
type Detail struct {
	Video     *models.Video
	Comments  *db.Paged[models.Comment]
	LikeState string
}

// VideoService handles business logic for videos
type VideoService struct {
	repos    *db.Repositories
	notifier Notifier
}

// NewVideoService creates a new video service instance
func NewVideoService(repos *db.Repositories, notifier Notifier) *VideoService {
	return &VideoService{
		repos:    repos,
		notifier: notifier,
	}
}

// List returns a page of public, published videos
func (s *VideoService) List(ctx context.Context, in ListInput, page db.Page) (*db.Paged[models.Video], error) {
	filter := db.VideoFilter{
		PublicOnly: true,
		Category:   strings.TrimSpace(in.Category),
		Query:      in.Search,
	}
	if err := applySort(&filter, in.SortBy, in.SortOrder); err != nil {
		return nil, err
	}

	videos, total, err := s.repos.Videos.List(ctx, filter, page)
	if err != nil {
		logger.Log.Error().Err(err).Msg("Failed to list videos")
		return nil, fmt.Errorf("failed to list videos: %w", err)
	}
	return db.NewPaged(videos, page, total), nil
}

// Trending returns public videos of the last seven days, most viewed first
func (s *VideoService) Trending(ctx context.Context, page db.Page) (*db.Paged[models.Video], error) {
	videos, total, err := s.repos.Videos.Trending(ctx, time.Now().UTC().Add(-trendingWindow), page)
	if err != nil {
		logger.Log.Error().Err(err).Msg("Failed to list trending videos")
		return nil, fmt.Errorf("failed to list trending videos: %w", err)
	}
	return db.NewPaged(videos, page, total), nil
}

// ListByUser returns a page of a channel's videos, newest first. The owner
// sees every video; everyone else sees public, published ones.
func (s *VideoService) ListByUser(ctx context.Context, ownerID uuid.UUID, viewer *models.User, page db.Page) (*db.Paged[models.Video], error) {
	filter := db.VideoFilter{
		UserID:     &ownerID,
		PublicOnly: viewer == nil || viewer.ID != ownerID,
	}
	videos, total, err := s.repos.Videos.List(ctx, filter, page)
	if err != nil {
		logger.Log.Error().
			Err(err).
			Str("user_id", ownerID.String()).
			Msg("Failed to list user videos")
		return nil, fmt.Errorf("failed to list user videos: %w", err)
	}
	return db.NewPaged(videos, page, total), nil
}

// GetByID returns a video without side effects
func (s *VideoService) GetByID(ctx context.Context, id uuid.UUID) (*models.Video, error) {
	video, err := s.repos.Videos.GetWithOwner(ctx, id)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, ErrVideoNotFound
		}
		return nil, fmt.Errorf("failed to get video: %w", err)
	}
	return video, nil
}

// Watch returns a video's detail for viewer (nil when anonymous). Private
// videos are refused to everyone but the owner, and every read by someone
// other than the owner counts one view.
func (s *VideoService) Watch(ctx context.Context, id uuid.UUID, viewer *models.User) (*Detail, error) {
	video, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	var viewerID *uuid.UUID
	if viewer != nil {
		viewerID = &viewer.ID
	}
	isOwner := viewerID != nil && video.IsOwnedBy(*viewerID)

	if video.Visibility == models.VisibilityPrivate && !isOwner {
		logger.Log.Warn().
			Str("video_id", id.String()).
			Msg("Private video requested by non-owner")
		return nil, ErrPrivateVideo
	}

	if !isOwner {
		if err := s.repos.Videos.RecordView(ctx, video); err != nil {
			logger.Log.Error().
				Err(err).
				Str("video_id", id.String()).
				Msg("Failed to record view")
			return nil, fmt.Errorf("failed to record view: %w", err)
		}
		video.Views++
	}

	detail := &Detail{Video: video, LikeState: models.LikeStateNone}
	commentPage := db.NewPage(1, detailComments)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		comments, total, err := s.repos.Comments.ListTopLevel(gctx, id, commentPage)
		if err != nil {
			return err
		}
		detail.Comments = db.NewPaged(comments, commentPage, total)
		return nil
	})
	if viewerID != nil {
		g.Go(func() error {
			status, err := s.repos.Likes.Status(gctx, viewerID, id)
			if err != nil {
				return err
			}
			detail.LikeState = status.State
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		logger.Log.Error().
			Err(err).
			Str("video_id", id.String()).
			Msg("Failed to load video detail")
		return nil, fmt.Errorf("failed to load video detail: %w", err)
	}

	return detail, nil
}

// Create uploads a video for owner. Subscribers are told about public videos.
func (s *VideoService) Create(ctx context.Context, owner *models.User, in CreateInput) (*models.Video, error) {
	category := strings.ToLower(strings.TrimSpace(in.Category))
	if !models.IsValidCategory(category) {
		logger.Log.Warn().
			Str("category", in.Category).
			Msg("Video creation failed: invalid category")
		return nil, ErrInvalidCategory
	}

	video := models.NewVideo(owner.ID, strings.TrimSpace(in.Title), in.Thumbnail, in.VideoURL, category)
	video.Description = strings.TrimSpace(in.Description)
	video.Duration = in.Duration
	video.Tags = models.NormalizeTags(in.Tags)
	if in.Visibility != "" {
		if !validVisibility(in.Visibility) {
			return nil, ErrInvalidVisibility
		}
		video.Visibility = in.Visibility
	}

	if err := s.repos.Videos.Create(ctx, video); err != nil {
		logger.Log.Error().
			Err(err).
			Str("user_id", owner.ID.String()).
			Msg("Failed to create video in database")
		return nil, fmt.Errorf("failed to create video: %w", err)
	}

	logger.Log.Info().
		Str("video_id", video.ID.String()).
		Str("user_id", owner.ID.String()).
		Str("title", video.Title).
		Msg("Video created successfully")

	if video.IsPublic() {
		s.notifySubscribers(ctx, owner, video)
	}

	video.User = owner
	return video, nil
}

// Update applies the non-nil fields of in to a video owned by userID
func (s *VideoService) Update(ctx context.Context, userID, id uuid.UUID, in UpdateInput) (*models.Video, error) {
	video, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !video.IsOwnedBy(userID) {
		logger.Log.Warn().
			Str("video_id", id.String()).
			Str("user_id", userID.String()).
			Msg("Video update denied: not owner")
		return nil, ErrNotOwner
	}

	if in.Title != nil {
		video.Title = strings.TrimSpace(*in.Title)
	}
	if in.Description != nil {
		video.Description = strings.TrimSpace(*in.Description)
	}
	if in.Thumbnail != nil {
		video.Thumbnail = *in.Thumbnail
	}
	if in.Category != nil {
		category := strings.ToLower(strings.TrimSpace(*in.Category))
		if !models.IsValidCategory(category) {
			return nil, ErrInvalidCategory
		}
		video.Category = category
	}
	if in.Tags != nil {
		video.Tags = models.NormalizeTags(in.Tags)
	}
	if in.Visibility != nil {
		if !validVisibility(*in.Visibility) {
			return nil, ErrInvalidVisibility
		}
		video.Visibility = *in.Visibility
	}
	if in.Status != nil {
		if !validStatus(*in.Status) {
			return nil, ErrInvalidStatus
		}
		video.Status = *in.Status
	}

	if err := s.repos.Videos.Update(ctx, video); err != nil {
		logger.Log.Error().
			Err(err).
			Str("video_id", id.String()).
			Msg("Failed to update video")
		return nil, fmt.Errorf("failed to update video: %w", err)
	}

	logger.Log.Info().
		Str("video_id", id.String()).
		Msg("Video updated successfully")

	return video, nil
}

// Delete removes a video owned by userID
func (s *VideoService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	video, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !video.IsOwnedBy(userID) {
		logger.Log.Warn().
			Str("video_id", id.String()).
			Str("user_id", userID.String()).
			Msg("Video deletion denied: not owner")
		return ErrNotOwner
	}

	if err := s.repos.Videos.Delete(ctx, video); err != nil {
		if db.IsNotFound(err) {
			return ErrVideoNotFound
		}
		logger.Log.Error().
			Err(err).
			Str("video_id", id.String()).
			Msg("Failed to delete video")
		return fmt.Errorf("failed to delete video: %w", err)
	}

	logger.Log.Info().
		Str("video_id", id.String()).
		Str("user_id", userID.String()).
		Msg("Video deleted successfully")

	return nil
}

func (s *VideoService) notifySubscribers(ctx context.Context, owner *models.User, video *models.Video) {
	if s.notifier == nil {
		return
	}
	subscribers, err := s.repos.Subscriptions.SubscriberIDs(ctx, owner.ID)
	if err != nil {
		logger.Log.Error().
			Err(err).
			Str("user_id", owner.ID.String()).
			Msg("Failed to load subscribers for upload notification")
		return
	}
	s.notifier.Notify(ctx, notification.Uploaded(owner, video, subscribers)...)
}

// applySort validates sortBy/sortOrder against the allow-list and sets them on filter
func applySort(filter *db.VideoFilter, sortBy, sortOrder string) error {
	if sortBy != "" {
		column, ok := db.VideoSortColumns[sortBy]
		if !ok {
			return ErrInvalidSort
		}
		filter.SortColumn = column
	}
	switch strings.ToLower(sortOrder) {
	case "", "desc":
	case "asc":
		filter.SortAsc = true
	default:
		return ErrInvalidSort
	}
	return nil
}

func validVisibility(v string) bool {
	return v == models.VisibilityPublic || v == models.VisibilityPrivate || v == models.VisibilityUnlisted
}

func validStatus(s string) bool {
	return s == models.StatusPublished || s == models.StatusProcessing || s == models.StatusDraft
}
