package models

import (
	"time"

	"github.com/google/uuid"
)

// User represents a registered account and its channel
type User struct {
	ID          uuid.UUID `json:"id" gorm:"type:char(36);primaryKey;column:id"`
	Email       string    `json:"email" gorm:"type:varchar(255);not null;uniqueIndex;column:email" validate:"required,email"`
	Username    string    `json:"username" gorm:"type:varchar(50);not null;uniqueIndex;column:username" validate:"required,min=3,max=50"`
	Password    string    `json:"-" gorm:"type:varchar(255);not null;column:password"`
	ChannelName string    `json:"channelName" gorm:"type:varchar(100);not null;column:channel_name"`
	Description string    `json:"description" gorm:"type:text;column:description"`
	Avatar      string    `json:"avatar" gorm:"type:varchar(500);column:avatar"`
	Subscribers int64     `json:"subscribers" gorm:"not null;default:0;column:subscribers"`
	TotalViews  int64     `json:"totalViews" gorm:"not null;default:0;column:total_views"`
	VideoCount  int64     `json:"videoCount" gorm:"not null;default:0;column:video_count"`
	IsAdmin     bool      `json:"isAdmin" gorm:"not null;default:false;column:is_admin"`
	IsActive    bool      `json:"isActive" gorm:"not null;default:true;column:is_active"`
	CreatedAt   time.Time `json:"createdAt" gorm:"column:created_at"`
	UpdatedAt   time.Time `json:"updatedAt" gorm:"column:updated_at"`
}

// NewUser creates an active, non-admin User with generated UUID and timestamps.
// The channel name defaults to the username.
func NewUser(email, username, passwordHash string) *User {
	now := time.Now().UTC()
	return &User{
		ID:          uuid.New(),
		Email:       email,
		Username:    username,
		Password:    passwordHash,
		ChannelName: username,
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// Subscription links a subscriber (UserID) to a channel (ChannelID)
type Subscription struct {
	ID        uuid.UUID `json:"id" gorm:"type:char(36);primaryKey;column:id"`
	UserID    uuid.UUID `json:"userId" gorm:"type:char(36);not null;uniqueIndex:idx_subscriptions_user_channel;column:user_id"`
	ChannelID uuid.UUID `json:"channelId" gorm:"type:char(36);not null;uniqueIndex:idx_subscriptions_user_channel;column:channel_id"`
	CreatedAt time.Time `json:"createdAt" gorm:"column:created_at"`

	Channel *User `json:"channel,omitempty" gorm:"foreignKey:ChannelID"`
}

// NewSubscription creates a new Subscription with generated UUID and timestamp
func NewSubscription(userID, channelID uuid.UUID) *Subscription {
	return &Subscription{
		ID:        uuid.New(),
		UserID:    userID,
		ChannelID: channelID,
		CreatedAt: time.Now().UTC(),
	}
}
