package models

// Video visibility values
const (
	VisibilityPublic   = "public"
	VisibilityPrivate  = "private"
	VisibilityUnlisted = "unlisted"
)

// Video status values
const (
	StatusPublished  = "published"
	StatusProcessing = "processing"
	StatusDraft      = "draft"
)

// Like types
const (
	LikeTypeLike    = "like"
	LikeTypeDislike = "dislike"
)

// Like states reported back to clients
const (
	LikeStateNone     = "none"
	LikeStateLiked    = "liked"
	LikeStateDisliked = "disliked"
)

// Notification types
const (
	NotificationLike      = "like"
	NotificationComment   = "comment"
	NotificationReply     = "reply"
	NotificationSubscribe = "subscribe"
	NotificationUpload    = "upload"
	NotificationSystem    = "system"
)

// Categories lists the video categories accepted on upload
var Categories = []string{
	"autos",
	"comedy",
	"education",
	"entertainment",
	"film",
	"gaming",
	"howto",
	"music",
	"news",
	"people",
	"pets",
	"science",
	"sports",
	"technology",
	"travel",
	"other",
}

// IsValidCategory reports whether c is one of Categories
func IsValidCategory(c string) bool {
	for _, v := range Categories {
		if v == c {
			return true
		}
	}
	return false
}

// StateForType maps a stored like type to the client-facing state
func StateForType(likeType string) string {
	switch likeType {
	case LikeTypeLike:
		return LikeStateLiked
	case LikeTypeDislike:
		return LikeStateDisliked
	default:
		return LikeStateNone
	}
}
