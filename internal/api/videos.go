package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stwalsh4118/vidhub/internal/middleware"
	"github.com/stwalsh4118/vidhub/internal/video"
)

// CreateVideoRequest represents a video upload
type CreateVideoRequest struct {
	Title       string   `json:"title" binding:"required,max=200"`
	Description string   `json:"description" binding:"max=5000"`
	Thumbnail   string   `json:"thumbnail" binding:"required"`
	VideoURL    string   `json:"videoUrl" binding:"required"`
	Duration    int64    `json:"duration" binding:"gte=0"`
	Category    string   `json:"category" binding:"required"`
	Tags        []string `json:"tags" binding:"max=30"`
	Visibility  string   `json:"visibility" binding:"omitempty,oneof=public private unlisted"`
}

// UpdateVideoRequest represents a partial video update
type UpdateVideoRequest struct {
	Title       *string  `json:"title" binding:"omitempty,min=1,max=200"`
	Description *string  `json:"description" binding:"omitempty,max=5000"`
	Thumbnail   *string  `json:"thumbnail" binding:"omitempty,min=1"`
	Category    *string  `json:"category"`
	Tags        []string `json:"tags" binding:"omitempty,max=30"`
	Visibility  *string  `json:"visibility" binding:"omitempty,oneof=public private unlisted"`
	Status      *string  `json:"status" binding:"omitempty,oneof=published processing draft"`
}

// VideoDetailResponse is a video with its first page of comments and the
// requester's like state
type VideoDetailResponse struct {
	*VideoResponse
	CommentList ListResponse[*CommentResponse] `json:"commentList"`
	UserLike    string                         `json:"userLike"`
}

// VideoHandler handles video API requests
type VideoHandler struct {
	videoService *video.VideoService
	timeout      time.Duration
}

// NewVideoHandler creates a new video handler instance
func NewVideoHandler(videoService *video.VideoService, timeout time.Duration) *VideoHandler {
	return &VideoHandler{
		videoService: videoService,
		timeout:      timeout,
	}
}

// ListVideos handles GET /api/videos
func (h *VideoHandler) ListVideos(c *gin.Context) {
	ctx, cancel := requestContext(c, h.timeout)
	defer cancel()

	page, err := h.videoService.List(ctx, video.ListInput{
		Category:  c.Query("category"),
		Search:    c.Query("search"),
		SortBy:    c.Query("sortBy"),
		SortOrder: c.Query("sortOrder"),
	}, pageQuery(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, newListResponse(page, toVideoResponse))
}

// Trending handles GET /api/videos/trending
func (h *VideoHandler) Trending(c *gin.Context) {
	ctx, cancel := requestContext(c, h.timeout)
	defer cancel()

	page, err := h.videoService.Trending(ctx, pageQuery(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, newListResponse(page, toVideoResponse))
}

// ListByUser handles GET /api/videos/user/:userId
func (h *VideoHandler) ListByUser(c *gin.Context) {
	ownerID, ok := uuidParam(c, "userId")
	if !ok {
		return
	}

	ctx, cancel := requestContext(c, h.timeout)
	defer cancel()

	page, err := h.videoService.ListByUser(ctx, ownerID, middleware.CurrentUser(c), pageQuery(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, newListResponse(page, toVideoResponse))
}

// GetVideo handles GET /api/videos/:id
func (h *VideoHandler) GetVideo(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	ctx, cancel := requestContext(c, h.timeout)
	defer cancel()

	detail, err := h.videoService.Watch(ctx, id, middleware.CurrentUser(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, VideoDetailResponse{
		VideoResponse: toVideoResponse(detail.Video),
		CommentList:   newListResponse(detail.Comments, toCommentResponse),
		UserLike:      detail.LikeState,
	})
}

// CreateVideo handles POST /api/videos
func (h *VideoHandler) CreateVideo(c *gin.Context) {
	var req CreateVideoRequest
	if !bindJSON(c, &req) {
		return
	}

	ctx, cancel := requestContext(c, h.timeout)
	defer cancel()

	created, err := h.videoService.Create(ctx, mustUser(c), video.CreateInput{
		Title:       req.Title,
		Description: req.Description,
		Thumbnail:   req.Thumbnail,
		VideoURL:    req.VideoURL,
		Duration:    req.Duration,
		Category:    req.Category,
		Tags:        req.Tags,
		Visibility:  req.Visibility,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toVideoResponse(created))
}

// UpdateVideo handles PUT /api/videos/:id
func (h *VideoHandler) UpdateVideo(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	var req UpdateVideoRequest
	if !bindJSON(c, &req) {
		return
	}

	ctx, cancel := requestContext(c, h.timeout)
	defer cancel()

	updated, err := h.videoService.Update(ctx, mustUser(c).ID, id, video.UpdateInput{
		Title:       req.Title,
		Description: req.Description,
		Thumbnail:   req.Thumbnail,
		Category:    req.Category,
		Tags:        req.Tags,
		Visibility:  req.Visibility,
		Status:      req.Status,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toVideoResponse(updated))
}

// DeleteVideo handles DELETE /api/videos/:id
func (h *VideoHandler) DeleteVideo(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	ctx, cancel := requestContext(c, h.timeout)
	defer cancel()

	if err := h.videoService.Delete(ctx, mustUser(c).ID, id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, MessageResponse{Message: "Video deleted successfully"})
}

// SetupVideoRoutes registers video routes
func SetupVideoRoutes(apiGroup *gin.RouterGroup, videoService *video.VideoService, guards Guards, timeout time.Duration) {
	handler := NewVideoHandler(videoService, timeout)

	group := apiGroup.Group("/videos")
	group.GET("", handler.ListVideos)
	group.GET("/trending", handler.Trending)
	group.GET("/user/:userId", guards.Optional, handler.ListByUser)
	group.GET("/:id", guards.Optional, handler.GetVideo)
	group.POST("", guards.Auth, handler.CreateVideo)
	group.PUT("/:id", guards.Auth, handler.UpdateVideo)
	group.DELETE("/:id", guards.Auth, handler.DeleteVideo)
}
