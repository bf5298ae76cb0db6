// Package comment implements video comments with one level of replies.
package comment

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/stwalsh4118/vidhub/internal/db"
	"github.com/stwalsh4118/vidhub/internal/logger"
	"github.com/stwalsh4118/vidhub/internal/models"
	"github.com/stwalsh4118/vidhub/internal/notification"
)

// MaxTextLength is the longest comment accepted, in characters
const MaxTextLength = 1000

// Notifier delivers notifications on a best-effort basis
type Notifier interface {
	Notify(ctx context.Context, ns ...*models.Notification)
}

// CreateInput holds the fields of a new comment
type CreateInput struct {
	VideoID  uuid.UUID
	Text     string
	ParentID *uuid.UUID
}

// CommentService handles business logic for comments
type CommentService struct {
	repos    *db.Repositories
	notifier Notifier
}

// NewCommentService creates a new comment service instance
func NewCommentService(repos *db.Repositories, notifier Notifier) *CommentService {
	return &CommentService{
		repos:    repos,
		notifier: notifier,
	}
}

// Create posts a comment by author. A reply to a reply is attached to the
// top-level comment so threads stay one level deep.
func (s *CommentService) Create(ctx context.Context, author *models.User, in CreateInput) (*models.Comment, error) {
	text, err := cleanText(in.Text)
	if err != nil {
		return nil, err
	}

	video, err := s.loadVideo(ctx, author.ID, in.VideoID)
	if err != nil {
		return nil, err
	}

	var parent *models.Comment
	if in.ParentID != nil {
		parent, err = s.resolveParent(ctx, video.ID, *in.ParentID)
		if err != nil {
			return nil, err
		}
	}

	var parentID *uuid.UUID
	if parent != nil {
		parentID = &parent.ID
	}
	comment := models.NewComment(author.ID, video.ID, text, parentID)

	if err := s.repos.Comments.Create(ctx, comment); err != nil {
		if db.IsNotFound(err) || db.IsForeignKey(err) {
			return nil, ErrVideoNotFound
		}
		logger.Log.Error().
			Err(err).
			Str("video_id", video.ID.String()).
			Str("user_id", author.ID.String()).
			Msg("Failed to create comment")
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}

	logger.Log.Info().
		Str("comment_id", comment.ID.String()).
		Str("video_id", video.ID.String()).
		Str("user_id", author.ID.String()).
		Bool("reply", parent != nil).
		Msg("Comment created successfully")

	if s.notifier != nil {
		if parent != nil {
			s.notifier.Notify(ctx, notification.CommentReplied(author, parent, comment))
		} else {
			s.notifier.Notify(ctx, notification.VideoCommented(author, video, comment))
		}
	}

	comment.User = author
	return comment, nil
}

// List returns a page of a video's top-level comments with their replies.
// viewer is nil for anonymous requests.
func (s *CommentService) List(ctx context.Context, videoID uuid.UUID, viewer *models.User, page db.Page) (*db.Paged[models.Comment], error) {
	viewerID := uuid.Nil
	if viewer != nil {
		viewerID = viewer.ID
	}
	if _, err := s.loadVideo(ctx, viewerID, videoID); err != nil {
		return nil, err
	}

	comments, total, err := s.repos.Comments.ListTopLevel(ctx, videoID, page)
	if err != nil {
		logger.Log.Error().
			Err(err).
			Str("video_id", videoID.String()).
			Msg("Failed to list comments")
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	return db.NewPaged(comments, page, total), nil
}

// Update replaces the text of a comment written by userID
func (s *CommentService) Update(ctx context.Context, userID, id uuid.UUID, text string) (*models.Comment, error) {
	text, err := cleanText(text)
	if err != nil {
		return nil, err
	}

	comment, err := s.getComment(ctx, id)
	if err != nil {
		return nil, err
	}
	if comment.UserID != userID {
		logger.Log.Warn().
			Str("comment_id", id.String()).
			Str("user_id", userID.String()).
			Msg("Comment update denied: not author")
		return nil, ErrNotAuthor
	}

	if err := s.repos.Comments.UpdateText(ctx, comment, text); err != nil {
		if db.IsNotFound(err) {
			return nil, ErrCommentNotFound
		}
		return nil, fmt.Errorf("failed to update comment: %w", err)
	}

	logger.Log.Info().
		Str("comment_id", id.String()).
		Msg("Comment updated successfully")

	return comment, nil
}

// Delete removes a comment and its replies. Allowed for the author and the
// owner of the video.
func (s *CommentService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	comment, err := s.getComment(ctx, id)
	if err != nil {
		return err
	}

	if comment.UserID != userID {
		video, err := s.repos.Videos.GetByID(ctx, comment.VideoID)
		if err != nil {
			if db.IsNotFound(err) {
				return ErrCommentNotFound
			}
			return fmt.Errorf("failed to get video: %w", err)
		}
		if !video.IsOwnedBy(userID) {
			logger.Log.Warn().
				Str("comment_id", id.String()).
				Str("user_id", userID.String()).
				Msg("Comment deletion denied")
			return ErrNotAllowed
		}
	}

	removed, err := s.repos.Comments.Delete(ctx, comment)
	if err != nil {
		if db.IsNotFound(err) {
			return ErrCommentNotFound
		}
		logger.Log.Error().
			Err(err).
			Str("comment_id", id.String()).
			Msg("Failed to delete comment")
		return fmt.Errorf("failed to delete comment: %w", err)
	}

	logger.Log.Info().
		Str("comment_id", id.String()).
		Int64("removed", removed).
		Msg("Comment deleted successfully")

	return nil
}

// Like adds one like to a comment and returns the new count. Likes on
// comments are counted per request, not per user.
func (s *CommentService) Like(ctx context.Context, id uuid.UUID) (int64, error) {
	likes, err := s.repos.Comments.IncrementLikes(ctx, id)
	if err != nil {
		if db.IsNotFound(err) {
			return 0, ErrCommentNotFound
		}
		return 0, fmt.Errorf("failed to like comment: %w", err)
	}
	return likes, nil
}

func (s *CommentService) getComment(ctx context.Context, id uuid.UUID) (*models.Comment, error) {
	comment, err := s.repos.Comments.GetWithAuthor(ctx, id)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, ErrCommentNotFound
		}
		return nil, fmt.Errorf("failed to get comment: %w", err)
	}
	return comment, nil
}

func (s *CommentService) loadVideo(ctx context.Context, userID, videoID uuid.UUID) (*models.Video, error) {
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

// resolveParent returns the top-level comment a reply attaches to
func (s *CommentService) resolveParent(ctx context.Context, videoID, parentID uuid.UUID) (*models.Comment, error) {
	parent, err := s.repos.Comments.GetByID(ctx, parentID)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, ErrParentNotFound
		}
		return nil, fmt.Errorf("failed to get parent comment: %w", err)
	}
	if parent.VideoID != videoID {
		return nil, ErrParentNotFound
	}
	if parent.ParentID != nil {
		return s.resolveParent(ctx, videoID, *parent.ParentID)
	}
	return parent, nil
}

func cleanText(text string) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", ErrEmptyText
	}
	if utf8.RuneCountInString(text) > MaxTextLength {
		return "", ErrTextTooLong
	}
	return text, nil
}
