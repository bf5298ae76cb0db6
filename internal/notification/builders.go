package notification

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/stwalsh4118/vidhub/internal/models"
)

// VideoLiked builds the notification sent to a video owner when actor likes the video
func VideoLiked(actor *models.User, video *models.Video) *models.Notification {
	n := models.NewNotification(video.UserID, models.NotificationLike, "New like",
		fmt.Sprintf("%s liked your video \"%s\"", actor.ChannelName, video.Title))
	n.ActorID = &actor.ID
	n.VideoID = &video.ID
	return n
}

// VideoCommented builds the notification sent to a video owner on a new top-level comment
func VideoCommented(actor *models.User, video *models.Video, comment *models.Comment) *models.Notification {
	n := models.NewNotification(video.UserID, models.NotificationComment, "New comment",
		fmt.Sprintf("%s commented on your video \"%s\"", actor.ChannelName, video.Title))
	n.ActorID = &actor.ID
	n.VideoID = &video.ID
	n.CommentID = &comment.ID
	return n
}

// CommentReplied builds the notification sent to a comment author on a reply
func CommentReplied(actor *models.User, parent, reply *models.Comment) *models.Notification {
	n := models.NewNotification(parent.UserID, models.NotificationReply, "New reply",
		fmt.Sprintf("%s replied to your comment", actor.ChannelName))
	n.ActorID = &actor.ID
	n.VideoID = &parent.VideoID
	n.CommentID = &reply.ID
	return n
}

// Subscribed builds the notification sent to a channel when actor subscribes
func Subscribed(actor *models.User, channelID uuid.UUID) *models.Notification {
	n := models.NewNotification(channelID, models.NotificationSubscribe, "New subscriber",
		fmt.Sprintf("%s subscribed to your channel", actor.ChannelName))
	n.ActorID = &actor.ID
	return n
}

// Uploaded builds one notification per subscriber announcing a new video
func Uploaded(owner *models.User, video *models.Video, subscriberIDs []uuid.UUID) []*models.Notification {
	ns := make([]*models.Notification, 0, len(subscriberIDs))
	for _, id := range subscriberIDs {
		n := models.NewNotification(id, models.NotificationUpload, "New video",
			fmt.Sprintf("%s uploaded \"%s\"", owner.ChannelName, video.Title))
		n.ActorID = &owner.ID
		n.VideoID = &video.ID
		ns = append(ns, n)
	}
	return ns
}
