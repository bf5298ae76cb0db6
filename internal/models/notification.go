package models

import (
	"time"

	"github.com/google/uuid"
)

// Notification is a message addressed to UserID about an action by ActorID
type Notification struct {
	ID        uuid.UUID  `json:"id" gorm:"type:char(36);primaryKey;column:id"`
	UserID    uuid.UUID  `json:"userId" gorm:"type:char(36);not null;index;column:user_id"`
	Type      string     `json:"type" gorm:"type:varchar(20);not null;column:type"`
	Title     string     `json:"title" gorm:"type:varchar(200);not null;column:title"`
	Message   string     `json:"message" gorm:"type:text;column:message"`
	ActorID   *uuid.UUID `json:"actorId,omitempty" gorm:"type:char(36);column:actor_id"`
	VideoID   *uuid.UUID `json:"videoId,omitempty" gorm:"type:char(36);column:video_id"`
	CommentID *uuid.UUID `json:"commentId,omitempty" gorm:"type:char(36);column:comment_id"`
	IsRead    bool       `json:"isRead" gorm:"not null;default:false;index;column:is_read"`
	CreatedAt time.Time  `json:"createdAt" gorm:"column:created_at"`

	Actor *User `json:"actor,omitempty" gorm:"foreignKey:ActorID"`
}

// NewNotification creates an unread Notification with generated UUID and timestamp
func NewNotification(userID uuid.UUID, notificationType, title, message string) *Notification {
	return &Notification{
		ID:        uuid.New(),
		UserID:    userID,
		Type:      notificationType,
		Title:     title,
		Message:   message,
		CreatedAt: time.Now().UTC(),
	}
}
