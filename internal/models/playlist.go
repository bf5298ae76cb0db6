package models

import (
	"time"

	"github.com/google/uuid"
)

// Playlist represents a user-curated ordered list of videos
type Playlist struct {
	ID          uuid.UUID `json:"id" gorm:"type:char(36);primaryKey;column:id"`
	Name        string    `json:"name" gorm:"type:varchar(150);not null;column:name" validate:"required,max=150"`
	Description string    `json:"description" gorm:"type:text;column:description"`
	Visibility  string    `json:"visibility" gorm:"type:varchar(20);not null;default:public;column:visibility" validate:"oneof=public private"`
	VideoCount  int64     `json:"videoCount" gorm:"not null;default:0;column:video_count"`
	UserID      uuid.UUID `json:"userId" gorm:"type:char(36);not null;index;column:user_id"`
	CreatedAt   time.Time `json:"createdAt" gorm:"column:created_at"`
	UpdatedAt   time.Time `json:"updatedAt" gorm:"column:updated_at"`

	User   *User            `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Videos []*PlaylistVideo `json:"videos,omitempty" gorm:"foreignKey:PlaylistID"`
}

// NewPlaylist creates a new Playlist with generated UUID and timestamps
func NewPlaylist(userID uuid.UUID, name, description, visibility string) *Playlist {
	now := time.Now().UTC()
	if visibility == "" {
		visibility = VisibilityPublic
	}
	return &Playlist{
		ID:          uuid.New(),
		Name:        name,
		Description: description,
		Visibility:  visibility,
		UserID:      userID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// IsOwnedBy reports whether userID owns the playlist
func (p *Playlist) IsOwnedBy(userID uuid.UUID) bool {
	return userID != uuid.Nil && p.UserID == userID
}

// PlaylistVideo is a playlist entry. Position orders entries within a playlist.
type PlaylistVideo struct {
	ID         uuid.UUID `json:"id" gorm:"type:char(36);primaryKey;column:id"`
	PlaylistID uuid.UUID `json:"playlistId" gorm:"type:char(36);not null;uniqueIndex:idx_playlist_videos_playlist_video;column:playlist_id"`
	VideoID    uuid.UUID `json:"videoId" gorm:"type:char(36);not null;uniqueIndex:idx_playlist_videos_playlist_video;column:video_id"`
	Position   int       `json:"position" gorm:"not null;column:position" validate:"gte=1"`
	AddedAt    time.Time `json:"addedAt" gorm:"column:added_at"`

	Video *Video `json:"video,omitempty" gorm:"foreignKey:VideoID"`
}

// NewPlaylistVideo creates a new PlaylistVideo with generated UUID and timestamp
func NewPlaylistVideo(playlistID, videoID uuid.UUID, position int) *PlaylistVideo {
	return &PlaylistVideo{
		ID:         uuid.New(),
		PlaylistID: playlistID,
		VideoID:    videoID,
		Position:   position,
		AddedAt:    time.Now().UTC(),
	}
}
