package repositories

import (
	"fmt"

	"github.com/hossein-sa/twitter-clone-api/internal/models"
	"gorm.io/gorm"
)

// LikeRepository defines the interface for like data operations
type LikeRepository interface {
	CreateLike(like *models.Like) error
	DeleteLike(tweetID, userID uint) error
	HasUserLikedTweet(tweetID, userID uint) (bool, error)
	GetLikesCountByTweetID(tweetID uint) (int64, error)
}

// PostgresLikeRepository implements LikeRepository for PostgreSQL
type PostgresLikeRepository struct {
	db *gorm.DB
}

// NewPostgresLikeRepository creates a new PostgresLikeRepository
func NewPostgresLikeRepository(db *gorm.DB) *PostgresLikeRepository {
	return &PostgresLikeRepository{db: db}
}

// CreateLike creates a new like in PostgreSQL. A concurrent duplicate insert
// surfaces as gorm.ErrDuplicatedKey via the (user, tweet) unique index.
func (r *PostgresLikeRepository) CreateLike(like *models.Like) error {
	return r.db.Create(like).Error
}

// DeleteLike deletes a like from PostgreSQL
func (r *PostgresLikeRepository) DeleteLike(tweetID, userID uint) error {
	res := r.db.Where("tweet_id = ? AND user_id = ?", tweetID, userID).Delete(&models.Like{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("like not found")
	}
	return nil
}

// HasUserLikedTweet checks if a user has liked a specific tweet
func (r *PostgresLikeRepository) HasUserLikedTweet(tweetID, userID uint) (bool, error) {
	var count int64
	if err := r.db.Model(&models.Like{}).Where("tweet_id = ? AND user_id = ?", tweetID, userID).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// GetLikesCountByTweetID retrieves the count of likes for a specific tweet
func (r *PostgresLikeRepository) GetLikesCountByTweetID(tweetID uint) (int64, error) {
	var count int64
	if err := r.db.Model(&models.Like{}).Where("tweet_id = ?", tweetID).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
