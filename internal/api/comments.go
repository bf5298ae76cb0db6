package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stwalsh4118/vidhub/internal/comment"
	"github.com/stwalsh4118/vidhub/internal/middleware"
)

// CreateCommentRequest represents a new comment or reply
type CreateCommentRequest struct {
	VideoID  string  `json:"videoId" binding:"required,uuid"`
	Text     string  `json:"text" binding:"required"`
	ParentID *string `json:"parentId" binding:"omitempty,uuid"`
}

// UpdateCommentRequest represents a comment edit
type UpdateCommentRequest struct {
	Text string `json:"text" binding:"required"`
}

// CommentLikesResponse reports a comment's like counter
type CommentLikesResponse struct {
	Likes int64 `json:"likes"`
}

// CommentHandler handles comment API requests
type CommentHandler struct {
	commentService *comment.CommentService
	timeout        time.Duration
}

// NewCommentHandler creates a new comment handler instance
func NewCommentHandler(commentService *comment.CommentService, timeout time.Duration) *CommentHandler {
	return &CommentHandler{
		commentService: commentService,
		timeout:        timeout,
	}
}

// CreateComment handles POST /api/comments
func (h *CommentHandler) CreateComment(c *gin.Context) {
	var req CreateCommentRequest
	if !bindJSON(c, &req) {
		return
	}

	in := comment.CreateInput{
		VideoID: uuid.MustParse(req.VideoID),
		Text:    req.Text,
	}
	if req.ParentID != nil {
		parentID := uuid.MustParse(*req.ParentID)
		in.ParentID = &parentID
	}

	ctx, cancel := requestContext(c, h.timeout)
	defer cancel()

	created, err := h.commentService.Create(ctx, mustUser(c), in)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toCommentResponse(created))
}

// ListComments handles GET /api/comments/video/:videoId
func (h *CommentHandler) ListComments(c *gin.Context) {
	videoID, ok := uuidParam(c, "videoId")
	if !ok {
		return
	}

	ctx, cancel := requestContext(c, h.timeout)
	defer cancel()

	page, err := h.commentService.List(ctx, videoID, middleware.CurrentUser(c), pageQuery(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, newListResponse(page, toCommentResponse))
}

// UpdateComment handles PUT /api/comments/:id
func (h *CommentHandler) UpdateComment(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	var req UpdateCommentRequest
	if !bindJSON(c, &req) {
		return
	}

	ctx, cancel := requestContext(c, h.timeout)
	defer cancel()

	updated, err := h.commentService.Update(ctx, mustUser(c).ID, id, req.Text)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toCommentResponse(updated))
}

// DeleteComment handles DELETE /api/comments/:id
func (h *CommentHandler) DeleteComment(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	ctx, cancel := requestContext(c, h.timeout)
	defer cancel()

	if err := h.commentService.Delete(ctx, mustUser(c).ID, id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, MessageResponse{Message: "Comment deleted successfully"})
}

// LikeComment handles POST /api/comments/:id/like
func (h *CommentHandler) LikeComment(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	ctx, cancel := requestContext(c, h.timeout)
	defer cancel()

	likes, err := h.commentService.Like(ctx, id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, CommentLikesResponse{Likes: likes})
}

// SetupCommentRoutes registers comment routes
func SetupCommentRoutes(apiGroup *gin.RouterGroup, commentService *comment.CommentService, guards Guards, timeout time.Duration) {
	handler := NewCommentHandler(commentService, timeout)

	group := apiGroup.Group("/comments")
	group.GET("/video/:videoId", guards.Optional, handler.ListComments)
	group.POST("", guards.Auth, handler.CreateComment)
	group.PUT("/:id", guards.Auth, handler.UpdateComment)
	group.DELETE("/:id", guards.Auth, handler.DeleteComment)
	group.POST("/:id/like", guards.Auth, handler.LikeComment)
}
