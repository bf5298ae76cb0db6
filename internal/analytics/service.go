// Package analytics builds read-only channel, video and platform reports.
package analytics

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/stwalsh4118/vidhub/internal/db"
	"github.com/stwalsh4118/vidhub/internal/logger"
	"github.com/stwalsh4118/vidhub/internal/models"
	"golang.org/x/sync/errgroup"
)

const (
	// DefaultDays is the report window when none is requested
	DefaultDays = 30

	// MaxDays is the longest report window
	MaxDays = 365

	topVideos = 5
)

// ChannelTotals are lifetime totals of a channel
type ChannelTotals struct {
	Videos      int64 `json:"videos"`
	Views       int64 `json:"views"`
	Likes       int64 `json:"likes"`
	Dislikes    int64 `json:"dislikes"`
	Comments    int64 `json:"comments"`
	Subscribers int64 `json:"subscribers"`
}

// ChannelReport describes a channel's performance over a window of days
type ChannelReport struct {
	Channel     *models.User
	Totals      ChannelTotals
	TopVideos   []*models.Video
	Uploads     []db.DailyCount
	Subscribers []db.DailyCount
	Comments    []db.DailyCount
	Days        int
}

// VideoReport describes one video's engagement over a window of days
type VideoReport struct {
	Video             *models.Video
	LikeRatio         float64
	AvgCommentsPerDay float64
	Likes             []db.DailyCount
	Dislikes          []db.DailyCount
	Comments          []db.DailyCount
	Days              int
}

// PlatformReport describes the whole platform over a window of days
type PlatformReport struct {
	Users       int64
	ActiveUsers int64
	Videos      int64
	Comments    int64
	Views       int64
	AvgViews    float64
	Categories  []db.CategoryCount
	NewUsers    []db.DailyCount
	Uploads     []db.DailyCount
	Days        int
}

// AnalyticsService builds analytics reports
type AnalyticsService struct {
	repos   *db.Repositories
	nowFunc func() time.Time
}

// NewAnalyticsService creates a new analytics service instance
func NewAnalyticsService(repos *db.Repositories) *AnalyticsService {
	return &AnalyticsService{
		repos:   repos,
		nowFunc: time.Now,
	}
}

// ClampDays bounds a requested window to 1..MaxDays, DefaultDays when unset
func ClampDays(days int) int {
	if days <= 0 {
		return DefaultDays
	}
	if days > MaxDays {
		return MaxDays
	}
	return days
}

// Channel reports on channelID. Only the channel owner and admins may read it.
func (s *AnalyticsService) Channel(ctx context.Context, requester *models.User, channelID uuid.UUID, days int) (*ChannelReport, error) {
	if requester.ID != channelID && !requester.IsAdmin {
		logger.Log.Warn().
			Str("user_id", requester.ID.String()).
			Str("channel_id", channelID.String()).
			Msg("Channel analytics denied")
		return nil, ErrAccessDenied
	}

	channel, err := s.repos.Users.GetByID(ctx, channelID)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, ErrChannelNotFound
		}
		return nil, fmt.Errorf("failed to get channel: %w", err)
	}

	days = ClampDays(days)
	since := s.since(days)
	report := &ChannelReport{Channel: channel, Days: days}
	report.Totals.Subscribers = channel.Subscribers

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		totals, err := s.repos.Analytics.ChannelTotals(gctx, channelID)
		if err != nil {
			return err
		}
		report.Totals.Videos = totals.Videos
		report.Totals.Views = totals.Views
		report.Totals.Likes = totals.Likes
		report.Totals.Dislikes = totals.Dislikes
		report.Totals.Comments = totals.Comments
		return nil
	})
	g.Go(func() (err error) {
		report.TopVideos, err = s.repos.Analytics.TopVideos(gctx, channelID, topVideos)
		return err
	})
	g.Go(func() (err error) {
		report.Uploads, err = s.repos.Analytics.ChannelUploads(gctx, channelID, since)
		return err
	})
	g.Go(func() (err error) {
		report.Subscribers, err = s.repos.Analytics.ChannelSubscribers(gctx, channelID, since)
		return err
	})
	g.Go(func() (err error) {
		report.Comments, err = s.repos.Analytics.ChannelComments(gctx, channelID, since)
		return err
	})
	if err := g.Wait(); err != nil {
		logger.Log.Error().
			Err(err).
			Str("channel_id", channelID.String()).
			Msg("Failed to build channel analytics")
		return nil, fmt.Errorf("failed to build channel analytics: %w", err)
	}

	return report, nil
}

// Video reports on videoID. Only the video owner and admins may read it.
func (s *AnalyticsService) Video(ctx context.Context, requester *models.User, videoID uuid.UUID, days int) (*VideoReport, error) {
	video, err := s.repos.Videos.GetByID(ctx, videoID)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, ErrVideoNotFound
		}
		return nil, fmt.Errorf("failed to get video: %w", err)
	}
	if !video.IsOwnedBy(requester.ID) && !requester.IsAdmin {
		logger.Log.Warn().
			Str("user_id", requester.ID.String()).
			Str("video_id", videoID.String()).
			Msg("Video analytics denied")
		return nil, ErrAccessDenied
	}

	days = ClampDays(days)
	since := s.since(days)
	report := &VideoReport{
		Video:             video,
		LikeRatio:         likeRatio(video.Likes, video.Dislikes),
		AvgCommentsPerDay: s.perDay(video.Comments, video.CreatedAt),
		Days:              days,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		report.Likes, err = s.repos.Analytics.VideoLikes(gctx, videoID, models.LikeTypeLike, since)
		return err
	})
	g.Go(func() (err error) {
		report.Dislikes, err = s.repos.Analytics.VideoLikes(gctx, videoID, models.LikeTypeDislike, since)
		return err
	})
	g.Go(func() (err error) {
		report.Comments, err = s.repos.Analytics.VideoComments(gctx, videoID, since)
		return err
	})
	if err := g.Wait(); err != nil {
		logger.Log.Error().
			Err(err).
			Str("video_id", videoID.String()).
			Msg("Failed to build video analytics")
		return nil, fmt.Errorf("failed to build video analytics: %w", err)
	}

	return report, nil
}

// Platform reports on the whole platform. Admins only.
func (s *AnalyticsService) Platform(ctx context.Context, requester *models.User, days int) (*PlatformReport, error) {
	if !requester.IsAdmin {
		return nil, ErrAccessDenied
	}

	days = ClampDays(days)
	since := s.since(days)
	report := &PlatformReport{Days: days}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		totals, err := s.repos.Analytics.PlatformTotals(gctx)
		if err != nil {
			return err
		}
		report.Videos = totals.Videos
		report.Views = totals.Views
		report.AvgViews = math.Round(totals.AvgViews*100) / 100
		return nil
	})
	g.Go(func() (err error) {
		report.Users, err = s.repos.Analytics.CountUsers(gctx, false)
		return err
	})
	g.Go(func() (err error) {
		report.ActiveUsers, err = s.repos.Analytics.CountUsers(gctx, true)
		return err
	})
	g.Go(func() (err error) {
		report.Comments, err = s.repos.Analytics.CountComments(gctx)
		return err
	})
	g.Go(func() (err error) {
		report.Categories, err = s.repos.Analytics.VideosPerCategory(gctx)
		return err
	})
	g.Go(func() (err error) {
		report.NewUsers, err = s.repos.Analytics.NewUsers(gctx, since)
		return err
	})
	g.Go(func() (err error) {
		report.Uploads, err = s.repos.Analytics.Uploads(gctx, since)
		return err
	})
	if err := g.Wait(); err != nil {
		logger.Log.Error().Err(err).Msg("Failed to build platform analytics")
		return nil, fmt.Errorf("failed to build platform analytics: %w", err)
	}

	return report, nil
}

// since returns the start of a window of days ending now
func (s *AnalyticsService) since(days int) time.Time {
	return s.nowFunc().UTC().AddDate(0, 0, -days)
}

// perDay averages n over the whole days since start, counting a partial day as one
func (s *AnalyticsService) perDay(n int64, start time.Time) float64 {
	days := math.Ceil(s.nowFunc().Sub(start).Hours() / 24)
	if days < 1 {
		days = 1
	}
	return math.Round(float64(n)/days*100) / 100
}

// likeRatio is the share of likes among likes and dislikes as a percentage
func likeRatio(likes, dislikes int64) float64 {
	if likes+dislikes == 0 {
		return 0
	}
	return math.Round(float64(likes)/float64(likes+dislikes)*10000) / 100
}
