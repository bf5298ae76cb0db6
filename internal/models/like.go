package models

import (
	"time"

	"github.com/google/uuid"
)

// Like records a user's like or dislike on a video.
// At most one row exists per (UserID, VideoID).
type Like struct {
	ID        uuid.UUID `json:"id" gorm:"type:char(36);primaryKey;column:id"`
	UserID    uuid.UUID `json:"userId" gorm:"type:char(36);not null;uniqueIndex:idx_likes_user_video;column:user_id"`
	VideoID   uuid.UUID `json:"videoId" gorm:"type:char(36);not null;uniqueIndex:idx_likes_user_video;column:video_id"`
	Type      string    `json:"type" gorm:"type:varchar(10);not null;column:type" validate:"oneof=like dislike"`
	CreatedAt time.Time `json:"createdAt" gorm:"column:created_at"`
	UpdatedAt time.Time `json:"updatedAt" gorm:"column:updated_at"`
}

// NewLike creates a new Like with generated UUID and timestamps
func NewLike(userID, videoID uuid.UUID, likeType string) *Like {
	now := time.Now().UTC()
	return &Like{
		ID:        uuid.New(),
		UserID:    userID,
		VideoID:   videoID,
		Type:      likeType,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
