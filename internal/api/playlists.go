package api

import (
	"net/http"
	"time"

	"github.com/ecodeclub/ekit/slice"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stwalsh4118/vidhub/internal/playlist"
)

// CreatePlaylistRequest represents a new playlist
type CreatePlaylistRequest struct {
	Name        string `json:"name" binding:"required,max=150"`
	Description string `json:"description" binding:"max=5000"`
	Visibility  string `json:"visibility" binding:"omitempty,oneof=public private"`
}

// UpdatePlaylistRequest represents a partial playlist update
type UpdatePlaylistRequest struct {
	Name        *string `json:"name" binding:"omitempty,min=1,max=150"`
	Description *string `json:"description" binding:"omitempty,max=5000"`
	Visibility  *string `json:"visibility" binding:"omitempty,oneof=public private"`
}

// PlaylistVideosRequest carries an ordered list of video ids
type PlaylistVideosRequest struct {
	VideoIDs []string `json:"videoIds" binding:"required,min=1,dive,uuid"`
}

// AddVideosResponse reports how many videos were appended
type AddVideosResponse struct {
	Message string `json:"message"`
	Added   int64  `json:"added"`
}

// PlaylistHandler handles playlist API requests
type PlaylistHandler struct {
	playlistService *playlist.PlaylistService
	timeout         time.Duration
}

// NewPlaylistHandler creates a new playlist handler instance
func NewPlaylistHandler(playlistService *playlist.PlaylistService, timeout time.Duration) *PlaylistHandler {
	return &PlaylistHandler{
		playlistService: playlistService,
		timeout:         timeout,
	}
}

// CreatePlaylist handles POST /api/playlists
func (h *PlaylistHandler) CreatePlaylist(c *gin.Context) {
	var req CreatePlaylistRequest
	if !bindJSON(c, &req) {
		return
	}

	ctx, cancel := requestContext(c, h.timeout)
	defer cancel()

	created, err := h.playlistService.Create(ctx, mustUser(c).ID, req.Name, req.Description, req.Visibility)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toPlaylistResponse(created))
}

// ListMine handles GET /api/playlists
func (h *PlaylistHandler) ListMine(c *gin.Context) {
	ctx, cancel := requestContext(c, h.timeout)
	defer cancel()

	page, err := h.playlistService.ListMine(ctx, mustUser(c).ID, pageQuery(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, newListResponse(page, toPlaylistResponse))
}

// ListByUser handles GET /api/playlists/user/:userId
func (h *PlaylistHandler) ListByUser(c *gin.Context) {
	ownerID, ok := uuidParam(c, "userId")
	if !ok {
		return
	}

	ctx, cancel := requestContext(c, h.timeout)
	defer cancel()

	page, err := h.playlistService.ListByUser(ctx, ownerID, viewerID(c), pageQuery(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, newListResponse(page, toPlaylistResponse))
}

// GetPlaylist handles GET /api/playlists/:id
func (h *PlaylistHandler) GetPlaylist(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	ctx, cancel := requestContext(c, h.timeout)
	defer cancel()

	found, err := h.playlistService.Get(ctx, id, viewerID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toPlaylistDetailResponse(found))
}

// UpdatePlaylist handles PUT /api/playlists/:id
func (h *PlaylistHandler) UpdatePlaylist(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	var req UpdatePlaylistRequest
	if !bindJSON(c, &req) {
		return
	}

	ctx, cancel := requestContext(c, h.timeout)
	defer cancel()

	updated, err := h.playlistService.Update(ctx, mustUser(c).ID, id, playlist.UpdateInput{
		Name:        req.Name,
		Description: req.Description,
		Visibility:  req.Visibility,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toPlaylistResponse(updated))
}

// DeletePlaylist handles DELETE /api/playlists/:id
func (h *PlaylistHandler) DeletePlaylist(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	ctx, cancel := requestContext(c, h.timeout)
	defer cancel()

	if err := h.playlistService.Delete(ctx, mustUser(c).ID, id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, MessageResponse{Message: "Playlist deleted successfully"})
}

// AddVideos handles POST /api/playlists/:id/videos
func (h *PlaylistHandler) AddVideos(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	var req PlaylistVideosRequest
	if !bindJSON(c, &req) {
		return
	}

	ctx, cancel := requestContext(c, h.timeout)
	defer cancel()

	added, err := h.playlistService.AddVideos(ctx, mustUser(c).ID, id, parseIDs(req.VideoIDs))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, AddVideosResponse{Message: "Videos added to playlist", Added: added})
}

// RemoveVideo handles DELETE /api/playlists/:id/videos/:videoId
func (h *PlaylistHandler) RemoveVideo(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	videoID, ok := uuidParam(c, "videoId")
	if !ok {
		return
	}

	ctx, cancel := requestContext(c, h.timeout)
	defer cancel()

	if err := h.playlistService.RemoveVideo(ctx, mustUser(c).ID, id, videoID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, MessageResponse{Message: "Video removed from playlist"})
}

// Reorder handles PUT /api/playlists/:id/reorder
func (h *PlaylistHandler) Reorder(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	var req PlaylistVideosRequest
	if !bindJSON(c, &req) {
		return
	}

	ctx, cancel := requestContext(c, h.timeout)
	defer cancel()

	if err := h.playlistService.Reorder(ctx, mustUser(c).ID, id, parseIDs(req.VideoIDs)); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, MessageResponse{Message: "Playlist reordered"})
}

// parseIDs converts ids already validated by the uuid binding tag
func parseIDs(ids []string) []uuid.UUID {
	return slice.Map(ids, func(_ int, id string) uuid.UUID {
		return uuid.MustParse(id)
	})
}

// SetupPlaylistRoutes registers playlist routes
func SetupPlaylistRoutes(apiGroup *gin.RouterGroup, playlistService *playlist.PlaylistService, guards Guards, timeout time.Duration) {
	handler := NewPlaylistHandler(playlistService, timeout)

	group := apiGroup.Group("/playlists")
	group.GET("", guards.Auth, handler.ListMine)
	group.POST("", guards.Auth, handler.CreatePlaylist)
	group.GET("/user/:userId", guards.Optional, handler.ListByUser)
	group.GET("/:id", guards.Optional, handler.GetPlaylist)
	group.PUT("/:id", guards.Auth, handler.UpdatePlaylist)
	group.DELETE("/:id", guards.Auth, handler.DeletePlaylist)
	group.POST("/:id/videos", guards.Auth, handler.AddVideos)
	group.DELETE("/:id/videos/:videoId", guards.Auth, handler.RemoveVideo)
	group.PUT("/:id/reorder", guards.Auth, handler.Reorder)
}
