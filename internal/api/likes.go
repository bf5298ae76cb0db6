package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stwalsh4118/vidhub/internal/like"
)

// LikeRequest represents a like or dislike click
type LikeRequest struct {
	Type string `json:"type" binding:"required,oneof=like dislike"`
}

// LikeHandler handles like API requests
type LikeHandler struct {
	likeService *like.LikeService
	timeout     time.Duration
}

// NewLikeHandler creates a new like handler instance
func NewLikeHandler(likeService *like.LikeService, timeout time.Duration) *LikeHandler {
	return &LikeHandler{
		likeService: likeService,
		timeout:     timeout,
	}
}

// Toggle handles POST /api/likes/:videoId
func (h *LikeHandler) Toggle(c *gin.Context) {
	videoID, ok := uuidParam(c, "videoId")
	if !ok {
		return
	}

	var req LikeRequest
	if !bindJSON(c, &req) {
		return
	}

	ctx, cancel := requestContext(c, h.timeout)
	defer cancel()

	res, err := h.likeService.Toggle(ctx, mustUser(c), videoID, req.Type)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

// Status handles GET /api/likes/:videoId/status
func (h *LikeHandler) Status(c *gin.Context) {
	videoID, ok := uuidParam(c, "videoId")
	if !ok {
		return
	}

	ctx, cancel := requestContext(c, h.timeout)
	defer cancel()

	res, err := h.likeService.Status(ctx, mustUser(c).ID, videoID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

// Liked handles GET /api/likes/user/liked
func (h *LikeHandler) Liked(c *gin.Context) {
	ctx, cancel := requestContext(c, h.timeout)
	defer cancel()

	page, err := h.likeService.Liked(ctx, mustUser(c).ID, pageQuery(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, newListResponse(page, toVideoResponse))
}

// SetupLikeRoutes registers like routes. Every route requires authentication.
func SetupLikeRoutes(apiGroup *gin.RouterGroup, likeService *like.LikeService, guards Guards, timeout time.Duration) {
	handler := NewLikeHandler(likeService, timeout)

	group := apiGroup.Group("/likes", guards.Auth)
	group.GET("/user/liked", handler.Liked)
	group.POST("/:videoId", handler.Toggle)
	group.GET("/:videoId/status", handler.Status)
}
