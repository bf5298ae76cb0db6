package api

import (
	"time"

	"github.com/ecodeclub/ekit/slice"
	"github.com/stwalsh4118/vidhub/internal/models"
)

// UserSummary is the public identity of a user embedded in other resources
type UserSummary struct {
	ID          string `json:"id"`
	Username    string `json:"username"`
	ChannelName string `json:"channelName"`
	Avatar      string `json:"avatar"`
	Subscribers int64  `json:"subscribers"`
}

// ProfileResponse is a public channel profile
type ProfileResponse struct {
	ID          string    `json:"id"`
	Username    string    `json:"username"`
	ChannelName string    `json:"channelName"`
	Description string    `json:"description"`
	Avatar      string    `json:"avatar"`
	Subscribers int64     `json:"subscribers"`
	TotalViews  int64     `json:"totalViews"`
	VideoCount  int64     `json:"videoCount"`
	IsActive    bool      `json:"isActive"`
	CreatedAt   time.Time `json:"createdAt"`
}

// AccountResponse is the authenticated user's own account
type AccountResponse struct {
	ProfileResponse
	Email     string    `json:"email"`
	IsAdmin   bool      `json:"isAdmin"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// VideoResponse represents a video in API responses
type VideoResponse struct {
	ID           string       `json:"id"`
	Title        string       `json:"title"`
	Description  string       `json:"description"`
	Thumbnail    string       `json:"thumbnail"`
	VideoURL     string       `json:"videoUrl"`
	Duration     int64        `json:"duration"`
	DurationText string       `json:"durationText"`
	Category     string       `json:"category"`
	Tags         []string     `json:"tags"`
	Visibility   string       `json:"visibility"`
	Status       string       `json:"status"`
	Views        int64        `json:"views"`
	Likes        int64        `json:"likes"`
	Dislikes     int64        `json:"dislikes"`
	Comments     int64        `json:"comments"`
	UserID       string       `json:"userId"`
	User         *UserSummary `json:"user,omitempty"`
	CreatedAt    time.Time    `json:"createdAt"`
	UpdatedAt    time.Time    `json:"updatedAt"`
}

// CommentResponse represents a comment and its replies
type CommentResponse struct {
	ID        string             `json:"id"`
	Text      string             `json:"text"`
	VideoID   string             `json:"videoId"`
	ParentID  *string            `json:"parentId,omitempty"`
	Likes     int64              `json:"likes"`
	User      *UserSummary       `json:"user,omitempty"`
	Replies   []*CommentResponse `json:"replies,omitempty"`
	CreatedAt time.Time          `json:"createdAt"`
	UpdatedAt time.Time          `json:"updatedAt"`
}

// PlaylistResponse represents a playlist without its entries
type PlaylistResponse struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Description string       `json:"description"`
	Visibility  string       `json:"visibility"`
	VideoCount  int64        `json:"videoCount"`
	UserID      string       `json:"userId"`
	User        *UserSummary `json:"user,omitempty"`
	CreatedAt   time.Time    `json:"createdAt"`
	UpdatedAt   time.Time    `json:"updatedAt"`
}

// PlaylistEntryResponse is one positioned video of a playlist
type PlaylistEntryResponse struct {
	Position int            `json:"position"`
	AddedAt  time.Time      `json:"addedAt"`
	Video    *VideoResponse `json:"video"`
}

// PlaylistDetailResponse is a playlist with its entries in order
type PlaylistDetailResponse struct {
	PlaylistResponse
	Videos []*PlaylistEntryResponse `json:"videos"`
}

// NotificationResponse represents a notification in API responses
type NotificationResponse struct {
	ID        string       `json:"id"`
	Type      string       `json:"type"`
	Title     string       `json:"title"`
	Message   string       `json:"message"`
	IsRead    bool         `json:"isRead"`
	VideoID   *string      `json:"videoId,omitempty"`
	CommentID *string      `json:"commentId,omitempty"`
	Actor     *UserSummary `json:"actor,omitempty"`
	CreatedAt time.Time    `json:"createdAt"`
}

func toUserSummary(u *models.User) *UserSummary {
	if u == nil {
		return nil
	}
	return &UserSummary{
		ID:          u.ID.String(),
		Username:    u.Username,
		ChannelName: u.ChannelName,
		Avatar:      u.Avatar,
		Subscribers: u.Subscribers,
	}
}

func toProfileResponse(u *models.User) *ProfileResponse {
	return &ProfileResponse{
		ID:          u.ID.String(),
		Username:    u.Username,
		ChannelName: u.ChannelName,
		Description: u.Description,
		Avatar:      u.Avatar,
		Subscribers: u.Subscribers,
		TotalViews:  u.TotalViews,
		VideoCount:  u.VideoCount,
		IsActive:    u.IsActive,
		CreatedAt:   u.CreatedAt,
	}
}

func toAccountResponse(u *models.User) *AccountResponse {
	return &AccountResponse{
		ProfileResponse: *toProfileResponse(u),
		Email:           u.Email,
		IsAdmin:         u.IsAdmin,
		UpdatedAt:       u.UpdatedAt,
	}
}

func toVideoResponse(v *models.Video) *VideoResponse {
	tags := v.Tags
	if tags == nil {
		tags = []string{}
	}
	return &VideoResponse{
		ID:           v.ID.String(),
		Title:        v.Title,
		Description:  v.Description,
		Thumbnail:    v.Thumbnail,
		VideoURL:     v.VideoURL,
		Duration:     v.Duration,
		DurationText: v.DurationString(),
		Category:     v.Category,
		Tags:         tags,
		Visibility:   v.Visibility,
		Status:       v.Status,
		Views:        v.Views,
		Likes:        v.Likes,
		Dislikes:     v.Dislikes,
		Comments:     v.Comments,
		UserID:       v.UserID.String(),
		User:         toUserSummary(v.User),
		CreatedAt:    v.CreatedAt,
		UpdatedAt:    v.UpdatedAt,
	}
}

func toCommentResponse(cm *models.Comment) *CommentResponse {
	resp := &CommentResponse{
		ID:        cm.ID.String(),
		Text:      cm.Text,
		VideoID:   cm.VideoID.String(),
		Likes:     cm.Likes,
		User:      toUserSummary(cm.User),
		CreatedAt: cm.CreatedAt,
		UpdatedAt: cm.UpdatedAt,
	}
	if cm.ParentID != nil {
		parent := cm.ParentID.String()
		resp.ParentID = &parent
	}
	if len(cm.Replies) > 0 {
		resp.Replies = slice.Map(cm.Replies, func(_ int, reply *models.Comment) *CommentResponse {
			return toCommentResponse(reply)
		})
	}
	return resp
}

func toPlaylistResponse(p *models.Playlist) *PlaylistResponse {
	return &PlaylistResponse{
		ID:          p.ID.String(),
		Name:        p.Name,
		Description: p.Description,
		Visibility:  p.Visibility,
		VideoCount:  p.VideoCount,
		UserID:      p.UserID.String(),
		User:        toUserSummary(p.User),
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func toPlaylistDetailResponse(p *models.Playlist) *PlaylistDetailResponse {
	return &PlaylistDetailResponse{
		PlaylistResponse: *toPlaylistResponse(p),
		Videos: slice.Map(p.Videos, func(_ int, entry *models.PlaylistVideo) *PlaylistEntryResponse {
			out := &PlaylistEntryResponse{Position: entry.Position, AddedAt: entry.AddedAt}
			if entry.Video != nil {
				out.Video = toVideoResponse(entry.Video)
			}
			return out
		}),
	}
}

func toNotificationResponse(n *models.Notification) *NotificationResponse {
	resp := &NotificationResponse{
		ID:        n.ID.String(),
		Type:      n.Type,
		Title:     n.Title,
		Message:   n.Message,
		IsRead:    n.IsRead,
		Actor:     toUserSummary(n.Actor),
		CreatedAt: n.CreatedAt,
	}
	if n.VideoID != nil {
		id := n.VideoID.String()
		resp.VideoID = &id
	}
	if n.CommentID != nil {
		id := n.CommentID.String()
		resp.CommentID = &id
	}
	return resp
}
