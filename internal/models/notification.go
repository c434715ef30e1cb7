package models

import "time"

// Notification types
const (
	NotificationTypeLike   = "like"
	NotificationTypeReply  = "reply"
	NotificationTypeFollow = "follow"
)

// Notification represents a user notification created as a side effect of a
// like or a reply. Follow actions currently never emit one, the type value
// exists for forward compatibility.
type Notification struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Type        string    `json:"type" gorm:"size:30;index"` // like, reply, follow
	SenderID    uint      `json:"sender_id" gorm:"index"`
	RecipientID uint      `json:"recipient_id" gorm:"index"`
	TweetID     *uint     `json:"tweet_id,omitempty"`
	CommentID   *uint     `json:"comment_id,omitempty"`
	IsRead      bool      `json:"is_read" gorm:"default:false;index"`
	CreatedAt   time.Time `json:"created_at" gorm:"index"`
}
