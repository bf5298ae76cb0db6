package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Video represents an uploaded video and its denormalized counters
type Video struct {
	ID          uuid.UUID `json:"id" gorm:"type:char(36);primaryKey;column:id"`
	Title       string    `json:"title" gorm:"type:varchar(200);not null;column:title" validate:"required,max=200"`
	Description string    `json:"description" gorm:"type:text;column:description"`
	Thumbnail   string    `json:"thumbnail" gorm:"type:varchar(500);not null;column:thumbnail" validate:"required"`
	VideoURL    string    `json:"videoUrl" gorm:"type:varchar(500);not null;column:video_url" validate:"required"`
	Duration    int64     `json:"duration" gorm:"not null;default:0;column:duration"` // seconds
	Category    string    `json:"category" gorm:"type:varchar(50);not null;index;column:category" validate:"required"`
	Tags        []string  `json:"tags" gorm:"type:text;serializer:json;column:tags"`
	Visibility  string    `json:"visibility" gorm:"type:varchar(20);not null;default:public;column:visibility" validate:"oneof=public private unlisted"`
	Status      string    `json:"status" gorm:"type:varchar(20);not null;default:published;column:status" validate:"oneof=published processing draft"`
	Views       int64     `json:"views" gorm:"not null;default:0;column:views"`
	Likes       int64     `json:"likes" gorm:"not null;default:0;column:likes"`
	Dislikes    int64     `json:"dislikes" gorm:"not null;default:0;column:dislikes"`
	Comments    int64     `json:"comments" gorm:"not null;default:0;column:comments"`
	UserID      uuid.UUID `json:"userId" gorm:"type:char(36);not null;index;column:user_id"`
	CreatedAt   time.Time `json:"createdAt" gorm:"column:created_at"`
	UpdatedAt   time.Time `json:"updatedAt" gorm:"column:updated_at"`

	User *User `json:"user,omitempty" gorm:"foreignKey:UserID"`
}

// NewVideo creates a new public, published Video with generated UUID and timestamps
func NewVideo(userID uuid.UUID, title, thumbnail, videoURL, category string) *Video {
	now := time.Now().UTC()
	return &Video{
		ID:         uuid.New(),
		Title:      title,
		Thumbnail:  thumbnail,
		VideoURL:   videoURL,
		Category:   category,
		Tags:       []string{},
		Visibility: VisibilityPublic,
		Status:     StatusPublished,
		UserID:     userID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// IsPublic reports whether the video is listed publicly
func (v *Video) IsPublic() bool {
	return v.Visibility == VisibilityPublic && v.Status == StatusPublished
}

// IsOwnedBy reports whether userID owns the video
func (v *Video) IsOwnedBy(userID uuid.UUID) bool {
	return userID != uuid.Nil && v.UserID == userID
}

// DurationString returns duration in HH:MM:SS format
func (v *Video) DurationString() string {
	hours := v.Duration / 3600
	minutes := (v.Duration % 3600) / 60
	seconds := v.Duration % 60
	return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, seconds)
}

// NormalizeTags trims, lowercases and de-duplicates tags, dropping empty ones
func NormalizeTags(tags []string) []string {
	seen := make(map[string]struct{}, len(tags))
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		t = strings.ToLower(strings.TrimSpace(t))
		if t == "" {
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}
