package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stwalsh4118/vidhub/internal/auth"
)

// RegisterRequest represents a request to create an account
type RegisterRequest struct {
	Email       string `json:"email" binding:"required,email"`
	Username    string `json:"username" binding:"required,min=3,max=50"`
	Password    string `json:"password" binding:"required,min=6"`
	ChannelName string `json:"channelName" binding:"omitempty,max=100"`
}

// LoginRequest represents a login attempt. Email also accepts a username.
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// UpdateProfileRequest represents a partial profile update
type UpdateProfileRequest struct {
	Username    *string `json:"username" binding:"omitempty,min=3,max=50"`
	ChannelName *string `json:"channelName" binding:"omitempty,min=1,max=100"`
	Description *string `json:"description" binding:"omitempty,max=5000"`
}

// UpdateAvatarRequest represents a new avatar URL
type UpdateAvatarRequest struct {
	Avatar string `json:"avatar" binding:"required,url"`
}

// AuthResponse is returned by register and login
type AuthResponse struct {
	Token string           `json:"token"`
	User  *AccountResponse `json:"user"`
}

// AuthHandler handles account API requests
type AuthHandler struct {
	authService *auth.AuthService
	timeout     time.Duration
}

// NewAuthHandler creates a new auth handler instance
func NewAuthHandler(authService *auth.AuthService, timeout time.Duration) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		timeout:     timeout,
	}
}

// Register handles POST /api/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if !bindJSON(c, &req) {
		return
	}

	ctx, cancel := requestContext(c, h.timeout)
	defer cancel()

	user, token, err := h.authService.Register(ctx, auth.RegisterInput{
		Email:       req.Email,
		Username:    req.Username,
		Password:    req.Password,
		ChannelName: req.ChannelName,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, AuthResponse{Token: token, User: toAccountResponse(user)})
}

// Login handles POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	ctx, cancel := requestContext(c, h.timeout)
	defer cancel()

	user, token, err := h.authService.Login(ctx, req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, AuthResponse{Token: token, User: toAccountResponse(user)})
}

// Me handles GET /api/auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	c.JSON(http.StatusOK, toAccountResponse(mustUser(c)))
}

// UpdateProfile handles PUT /api/auth/profile
func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	var req UpdateProfileRequest
	if !bindJSON(c, &req) {
		return
	}

	ctx, cancel := requestContext(c, h.timeout)
	defer cancel()

	user, err := h.authService.UpdateProfile(ctx, mustUser(c).ID, auth.ProfileInput{
		Username:    req.Username,
		ChannelName: req.ChannelName,
		Description: req.Description,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toAccountResponse(user))
}

// UpdateAvatar handles PUT /api/auth/avatar
func (h *AuthHandler) UpdateAvatar(c *gin.Context) {
	var req UpdateAvatarRequest
	if !bindJSON(c, &req) {
		return
	}

	ctx, cancel := requestContext(c, h.timeout)
	defer cancel()

	user, err := h.authService.UpdateAvatar(ctx, mustUser(c).ID, req.Avatar)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toAccountResponse(user))
}

// SetupAuthRoutes registers account routes
func SetupAuthRoutes(apiGroup *gin.RouterGroup, authService *auth.AuthService, guards Guards, timeout time.Duration) {
	handler := NewAuthHandler(authService, timeout)

	group := apiGroup.Group("/auth")
	group.POST("/register", handler.Register)
	group.POST("/login", handler.Login)
	group.GET("/me", guards.Auth, handler.Me)
	group.PUT("/profile", guards.Auth, handler.UpdateProfile)
	group.PUT("/avatar", guards.Auth, handler.UpdateAvatar)
}
