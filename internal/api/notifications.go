package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stwalsh4118/vidhub/internal/notification"
)

// UnreadCountResponse reports the number of unread notifications
type UnreadCountResponse struct {
	Count int64 `json:"count"`
}

// MarkAllReadResponse reports how many notifications were marked read
type MarkAllReadResponse struct {
	Message string `json:"message"`
	Updated int64  `json:"updated"`
}

// NotificationHandler handles notification API requests
type NotificationHandler struct {
	notificationService *notification.NotificationService
	timeout             time.Duration
}

// NewNotificationHandler creates a new notification handler instance
func NewNotificationHandler(notificationService *notification.NotificationService, timeout time.Duration) *NotificationHandler {
	return &NotificationHandler{
		notificationService: notificationService,
		timeout:             timeout,
	}
}

// List handles GET /api/notifications
func (h *NotificationHandler) List(c *gin.Context) {
	unreadOnly, _ := strconv.ParseBool(c.Query("unreadOnly"))

	ctx, cancel := requestContext(c, h.timeout)
	defer cancel()

	page, err := h.notificationService.List(ctx, mustUser(c).ID, unreadOnly, pageQuery(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, newListResponse(page, toNotificationResponse))
}

// UnreadCount handles GET /api/notifications/unread-count
func (h *NotificationHandler) UnreadCount(c *gin.Context) {
	ctx, cancel := requestContext(c, h.timeout)
	defer cancel()

	count, err := h.notificationService.UnreadCount(ctx, mustUser(c).ID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, UnreadCountResponse{Count: count})
}

// MarkRead handles PUT /api/notifications/:id/read
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	ctx, cancel := requestContext(c, h.timeout)
	defer cancel()

	if err := h.notificationService.MarkRead(ctx, mustUser(c).ID, id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, MessageResponse{Message: "Notification marked as read"})
}

// MarkAllRead handles PUT /api/notifications/read-all
func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	ctx, cancel := requestContext(c, h.timeout)
	defer cancel()

	count, err := h.notificationService.MarkAllRead(ctx, mustUser(c).ID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, MarkAllReadResponse{Message: "All notifications marked as read", Updated: count})
}

// Delete handles DELETE /api/notifications/:id
func (h *NotificationHandler) Delete(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	ctx, cancel := requestContext(c, h.timeout)
	defer cancel()

	if err := h.notificationService.Delete(ctx, mustUser(c).ID, id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, MessageResponse{Message: "Notification deleted"})
}

// SetupNotificationRoutes registers notification routes. Every route requires authentication.
func SetupNotificationRoutes(apiGroup *gin.RouterGroup, notificationService *notification.NotificationService, guards Guards, timeout time.Duration) {
	handler := NewNotificationHandler(notificationService, timeout)

	group := apiGroup.Group("/notifications", guards.Auth)
	group.GET("", handler.List)
	group.GET("/unread-count", handler.UnreadCount)
	group.PUT("/read-all", handler.MarkAllRead)
	group.PUT("/:id/read", handler.MarkRead)
	group.DELETE("/:id", handler.Delete)
}
