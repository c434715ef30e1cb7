package models

import "time"

// Like represents a user liking a tweet. Presence of the row is the liked
// state; the (user, tweet) pair is unique.
type Like struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"index;uniqueIndex:idx_user_tweet_like"`
	TweetID   uint      `json:"tweet_id" gorm:"index;uniqueIndex:idx_user_tweet_like"`
	CreatedAt time.Time `json:"created_at"`
}
