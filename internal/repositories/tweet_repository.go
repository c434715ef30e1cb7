package repositories

import (
	"github.com/hossein-sa/twitter-clone-api/internal/models"
	"gorm.io/gorm"
)

// TweetRepository defines the interface for tweet data operations
type TweetRepository interface {
	CreateTweet(tweet *models.Tweet) error
	GetTweetByID(id uint) (*models.Tweet, error)
	GetAllTweets() ([]models.Tweet, error)
	GetTweetsByAuthorIDs(authorIDs []uint) ([]models.Tweet, error)
	UpdateTweet(tweet *models.Tweet) error
	DeleteTweet(id uint) error
}

// PostgresTweetRepository implements TweetRepository for PostgreSQL
type PostgresTweetRepository struct {
	db *gorm.DB
}

// NewPostgresTweetRepository creates a new PostgresTweetRepository
func NewPostgresTweetRepository(db *gorm.DB) *PostgresTweetRepository {
	return &PostgresTweetRepository{db: db}
}

// CreateTweet creates a new tweet in PostgreSQL
func (r *PostgresTweetRepository) CreateTweet(tweet *models.Tweet) error {
	return r.db.Create(tweet).Error
}

// GetTweetByID retrieves a tweet by ID from PostgreSQL
func (r *PostgresTweetRepository) GetTweetByID(id uint) (*models.Tweet, error) {
	var tweet models.Tweet
	if err := r.db.First(&tweet, id).Error; err != nil {
		return nil, err
	}
	return &tweet, nil
}

// GetAllTweets retrieves all tweets, newest first
func (r *PostgresTweetRepository) GetAllTweets() ([]models.Tweet, error) {
	var tweets []models.Tweet
	if err := r.db.Order("created_at DESC").Find(&tweets).Error; err != nil {
		return nil, err
	}
	return tweets, nil
}

// GetTweetsByAuthorIDs retrieves tweets authored by any of the given users,
// newest first. An empty author set yields an empty result.
func (r *PostgresTweetRepository) GetTweetsByAuthorIDs(authorIDs []uint) ([]models.Tweet, error) {
	tweets := []models.Tweet{}
	if len(authorIDs) == 0 {
		return tweets, nil
	}
	if err := r.db.Where("user_id IN ?", authorIDs).Order("created_at DESC").Find(&tweets).Error; err != nil {
		return nil, err
	}
	return tweets, nil
}

// UpdateTweet updates an existing tweet in PostgreSQL
func (r *PostgresTweetRepository) UpdateTweet(tweet *models.Tweet) error {
	return r.db.Save(tweet).Error
}

// DeleteTweet deletes a tweet and cascades to its likes and comments.
// Replies share the root tweet's id, so deleting by tweet_id removes whole
// comment trees.
func (r *PostgresTweetRepository) DeleteTweet(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("tweet_id = ?", id).Delete(&models.Like{}).Error; err != nil {
			return err
		}
		if err := tx.Where("tweet_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&models.Tweet{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}
