package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stwalsh4118/vidhub/internal/analytics"
	"github.com/stwalsh4118/vidhub/internal/db"
)

// ChannelAnalyticsResponse represents a channel report
type ChannelAnalyticsResponse struct {
	Channel     *UserSummary            `json:"channel"`
	Totals      analytics.ChannelTotals `json:"totals"`
	TopVideos   []*VideoResponse        `json:"topVideos"`
	Uploads     []db.DailyCount         `json:"uploads"`
	Subscribers []db.DailyCount         `json:"subscribers"`
	Comments    []db.DailyCount         `json:"comments"`
	Days        int                     `json:"days"`
}

// VideoAnalyticsResponse represents a video report
type VideoAnalyticsResponse struct {
	Video             *VideoResponse  `json:"video"`
	LikeRatio         float64         `json:"likeRatio"`
	AvgCommentsPerDay float64         `json:"avgCommentsPerDay"`
	Likes             []db.DailyCount `json:"likes"`
	Dislikes          []db.DailyCount `json:"dislikes"`
	Comments          []db.DailyCount `json:"comments"`
	Days              int             `json:"days"`
}

// PlatformTotalsResponse holds platform-wide totals
type PlatformTotalsResponse struct {
	Users       int64   `json:"users"`
	ActiveUsers int64   `json:"activeUsers"`
	Videos      int64   `json:"videos"`
	Comments    int64   `json:"comments"`
	Views       int64   `json:"views"`
	AvgViews    float64 `json:"avgViews"`
}

// PlatformAnalyticsResponse represents the platform report
type PlatformAnalyticsResponse struct {
	Totals     PlatformTotalsResponse `json:"totals"`
	Categories []db.CategoryCount     `json:"categories"`
	NewUsers   []db.DailyCount        `json:"newUsers"`
	Uploads    []db.DailyCount        `json:"uploads"`
	Days       int                    `json:"days"`
}

// AnalyticsHandler handles analytics API requests
type AnalyticsHandler struct {
	analyticsService *analytics.AnalyticsService
	timeout          time.Duration
}

// NewAnalyticsHandler creates a new analytics handler instance
func NewAnalyticsHandler(analyticsService *analytics.AnalyticsService, timeout time.Duration) *AnalyticsHandler {
	return &AnalyticsHandler{
		analyticsService: analyticsService,
		timeout:          timeout,
	}
}

// Channel handles GET /api/analytics/channel/:userId
func (h *AnalyticsHandler) Channel(c *gin.Context) {
	channelID, ok := uuidParam(c, "userId")
	if !ok {
		return
	}

	ctx, cancel := requestContext(c, h.timeout)
	defer cancel()

	report, err := h.analyticsService.Channel(ctx, mustUser(c), channelID, daysQuery(c))
	if err != nil {
		respondError(c, err)
		return
	}

	topVideos := make([]*VideoResponse, 0, len(report.TopVideos))
	for _, v := range report.TopVideos {
		topVideos = append(topVideos, toVideoResponse(v))
	}

	c.JSON(http.StatusOK, ChannelAnalyticsResponse{
		Channel:     toUserSummary(report.Channel),
		Totals:      report.Totals,
		TopVideos:   topVideos,
		Uploads:     series(report.Uploads),
		Subscribers: series(report.Subscribers),
		Comments:    series(report.Comments),
		Days:        report.Days,
	})
}

// Video handles GET /api/analytics/video/:videoId
func (h *AnalyticsHandler) Video(c *gin.Context) {
	videoID, ok := uuidParam(c, "videoId")
	if !ok {
		return
	}

	ctx, cancel := requestContext(c, h.timeout)
	defer cancel()

	report, err := h.analyticsService.Video(ctx, mustUser(c), videoID, daysQuery(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, VideoAnalyticsResponse{
		Video:             toVideoResponse(report.Video),
		LikeRatio:         report.LikeRatio,
		AvgCommentsPerDay: report.AvgCommentsPerDay,
		Likes:             series(report.Likes),
		Dislikes:          series(report.Dislikes),
		Comments:          series(report.Comments),
		Days:              report.Days,
	})
}

// Platform handles GET /api/analytics/platform
func (h *AnalyticsHandler) Platform(c *gin.Context) {
	ctx, cancel := requestContext(c, h.timeout)
	defer cancel()

	report, err := h.analyticsService.Platform(ctx, mustUser(c), daysQuery(c))
	if err != nil {
		respondError(c, err)
		return
	}

	categories := report.Categories
	if categories == nil {
		categories = []db.CategoryCount{}
	}

	c.JSON(http.StatusOK, PlatformAnalyticsResponse{
		Totals: PlatformTotalsResponse{
			Users:       report.Users,
			ActiveUsers: report.ActiveUsers,
			Videos:      report.Videos,
			Comments:    report.Comments,
			Views:       report.Views,
			AvgViews:    report.AvgViews,
		},
		Categories: categories,
		NewUsers:   series(report.NewUsers),
		Uploads:    series(report.Uploads),
		Days:       report.Days,
	})
}

// daysQuery reads the report window; malformed values fall back to the default
func daysQuery(c *gin.Context) int {
	days, err := strconv.Atoi(c.Query("days"))
	if err != nil {
		return analytics.DefaultDays
	}
	return days
}

// series keeps empty time series as [] in JSON
func series(counts []db.DailyCount) []db.DailyCount {
	if counts == nil {
		return []db.DailyCount{}
	}
	return counts
}

// SetupAnalyticsRoutes registers analytics routes. Every route requires authentication.
func SetupAnalyticsRoutes(apiGroup *gin.RouterGroup, analyticsService *analytics.AnalyticsService, guards Guards, timeout time.Duration) {
	handler := NewAnalyticsHandler(analyticsService, timeout)

	group := apiGroup.Group("/analytics", guards.Auth)
	group.GET("/channel/:userId", handler.Channel)
	group.GET("/video/:videoId", handler.Video)
	group.GET("/platform", guards.Admin, handler.Platform)
}
