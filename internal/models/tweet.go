package models

import "time"

// Tweet represents a short text post
type Tweet struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"index"` // author, immutable after creation
	Content   string    `json:"content" gorm:"size:280"`
	CreatedAt time.Time `json:"created_at" gorm:"index"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TweetResponse is the tweet view-model with author name and live counts
type TweetResponse struct {
	ID            uint      `json:"id"`
	User          string    `json:"user"` // author username, not numeric id
	Content       string    `json:"content"`
	LikesCount    int64     `json:"likes_count"`
	CommentsCount int64     `json:"comments_count"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// CreateTweetRequest defines the request body for posting a tweet
type CreateTweetRequest struct {
	Content string `json:"content" validate:"required,min=1,max=280"`
}

// UpdateTweetRequest defines the request body for editing a tweet
type UpdateTweetRequest struct {
	Content string `json:"content" validate:"required,min=1,max=280"`
}
