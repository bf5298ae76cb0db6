package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stwalsh4118/vidhub/internal/user"
)

// UserStatusRequest enables or disables an account
type UserStatusRequest struct {
	IsActive *bool `json:"isActive" binding:"required"`
}

// UserHandler handles channel profile and subscription API requests
type UserHandler struct {
	userService *user.UserService
	timeout     time.Duration
}

// NewUserHandler creates a new user handler instance
func NewUserHandler(userService *user.UserService, timeout time.Duration) *UserHandler {
	return &UserHandler{
		userService: userService,
		timeout:     timeout,
	}
}

// GetProfile handles GET /api/users/:id
func (h *UserHandler) GetProfile(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	ctx, cancel := requestContext(c, h.timeout)
	defer cancel()

	profile, err := h.userService.Profile(ctx, id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toProfileResponse(profile))
}

// Subscribe handles POST /api/users/:id/subscribe
func (h *UserHandler) Subscribe(c *gin.Context) {
	channelID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	ctx, cancel := requestContext(c, h.timeout)
	defer cancel()

	status, err := h.userService.Subscribe(ctx, mustUser(c), channelID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, status)
}

// Unsubscribe handles DELETE /api/users/:id/subscribe
func (h *UserHandler) Unsubscribe(c *gin.Context) {
	channelID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	ctx, cancel := requestContext(c, h.timeout)
	defer cancel()

	status, err := h.userService.Unsubscribe(ctx, mustUser(c).ID, channelID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, status)
}

// SubscriptionStatus handles GET /api/users/:id/subscription-status
func (h *UserHandler) SubscriptionStatus(c *gin.Context) {
	channelID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	ctx, cancel := requestContext(c, h.timeout)
	defer cancel()

	status, err := h.userService.SubscriptionStatus(ctx, mustUser(c).ID, channelID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, status)
}

// Subscriptions handles GET /api/users/me/subscriptions
func (h *UserHandler) Subscriptions(c *gin.Context) {
	ctx, cancel := requestContext(c, h.timeout)
	defer cancel()

	page, err := h.userService.Subscriptions(ctx, mustUser(c).ID, pageQuery(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, newListResponse(page, toUserSummary))
}

// Feed handles GET /api/users/me/feed
func (h *UserHandler) Feed(c *gin.Context) {
	ctx, cancel := requestContext(c, h.timeout)
	defer cancel()

	page, err := h.userService.Feed(ctx, mustUser(c).ID, pageQuery(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, newListResponse(page, toVideoResponse))
}

// SetStatus handles PUT /api/users/:id/status
func (h *UserHandler) SetStatus(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	var req UserStatusRequest
	if !bindJSON(c, &req) {
		return
	}

	ctx, cancel := requestContext(c, h.timeout)
	defer cancel()

	updated, err := h.userService.SetActive(ctx, id, *req.IsActive)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toProfileResponse(updated))
}

// SetupUserRoutes registers channel profile and subscription routes
func SetupUserRoutes(apiGroup *gin.RouterGroup, userService *user.UserService, guards Guards, timeout time.Duration) {
	handler := NewUserHandler(userService, timeout)

	group := apiGroup.Group("/users")
	group.GET("/me/subscriptions", guards.Auth, handler.Subscriptions)
	group.GET("/me/feed", guards.Auth, handler.Feed)
	group.GET("/:id", handler.GetProfile)
	group.POST("/:id/subscribe", guards.Auth, handler.Subscribe)
	group.DELETE("/:id/subscribe", guards.Auth, handler.Unsubscribe)
	group.GET("/:id/subscription-status", guards.Auth, handler.SubscriptionStatus)
	group.PUT("/:id/status", guards.Auth, guards.Admin, handler.SetStatus)
}
