package models

import "time"

// Comment represents a comment on a tweet. ParentID points at another comment
// when this is a reply; TweetID is always the root tweet of the thread.
type Comment struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"index"`
	TweetID   uint      `json:"tweet_id" gorm:"index"`
	ParentID  *uint     `json:"parent" gorm:"index"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CommentResponse is the comment view-model with nested replies
type CommentResponse struct {
	ID        uint              `json:"id"`
	User      string            `json:"user"` // author username
	Content   string            `json:"content"`
	Parent    *uint             `json:"parent"`
	Replies   []CommentResponse `json:"replies"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
}

// CreateCommentRequest defines the request body for commenting on a tweet.
// Parent is set when replying to another comment.
type CreateCommentRequest struct {
	Content string `json:"content" validate:"required,min=1"`
	Parent  *uint  `json:"parent,omitempty"`
}

// UpdateCommentRequest defines the request body for editing a comment
type UpdateCommentRequest struct {
	Content string `json:"content" validate:"required,min=1"`
}
