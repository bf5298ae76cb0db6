package models

import (
	"time"

	"github.com/google/uuid"
)

// Comment represents a comment on a video. Replies reference a top-level
// comment on the same video through ParentID.
type Comment struct {
	ID        uuid.UUID  `json:"id" gorm:"type:char(36);primaryKey;column:id"`
	Text      string     `json:"text" gorm:"type:text;not null;column:text" validate:"required,max=1000"`
	UserID    uuid.UUID  `json:"userId" gorm:"type:char(36);not null;index;column:user_id"`
	VideoID   uuid.UUID  `json:"videoId" gorm:"type:char(36);not null;index;column:video_id"`
	ParentID  *uuid.UUID `json:"parentId,omitempty" gorm:"type:char(36);index;column:parent_id"`
	Likes     int64      `json:"likes" gorm:"not null;default:0;column:likes"`
	CreatedAt time.Time  `json:"createdAt" gorm:"column:created_at"`
	UpdatedAt time.Time  `json:"updatedAt" gorm:"column:updated_at"`

	User    *User      `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Replies []*Comment `json:"replies,omitempty" gorm:"foreignKey:ParentID"`
}

// NewComment creates a new Comment with generated UUID and timestamps
func NewComment(userID, videoID uuid.UUID, text string, parentID *uuid.UUID) *Comment {
	now := time.Now().UTC()
	return &Comment{
		ID:        uuid.New(),
		Text:      text,
		UserID:    userID,
		VideoID:   videoID,
		ParentID:  parentID,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// IsReply reports whether the comment is a reply
func (c *Comment) IsReply() bool {
	return c.ParentID != nil
}
