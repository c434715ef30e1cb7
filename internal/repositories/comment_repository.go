package repositories

import (
	"github.com/hossein-sa/twitter-clone-api/internal/models"
	"gorm.io/gorm"
)

// CommentRepository defines the interface for comment data operations
type CommentRepository interface {
	CreateComment(comment *models.Comment) error
	GetCommentByID(id uint) (*models.Comment, error)
	GetTopLevelByTweetID(tweetID uint) ([]models.Comment, error)
	GetReplies(parentID uint) ([]models.Comment, error)
	GetCommentsCountByTweetID(tweetID uint) (int64, error)
	UpdateComment(comment *models.Comment) error
	DeleteCommentTree(id uint) error
}

// PostgresCommentRepository implements CommentRepository for PostgreSQL
type PostgresCommentRepository struct {
	db *gorm.DB
}

// NewPostgresCommentRepository creates a new PostgresCommentRepository
func NewPostgresCommentRepository(db *gorm.DB) *PostgresCommentRepository {
	return &PostgresCommentRepository{db: db}
}

// CreateComment creates a new comment in PostgreSQL
func (r *PostgresCommentRepository) CreateComment(comment *models.Comment) error {
	return r.db.Create(comment).Error
}

// GetCommentByID retrieves a comment by ID from PostgreSQL
func (r *PostgresCommentRepository) GetCommentByID(id uint) (*models.Comment, error) {
	var comment models.Comment
	if err := r.db.First(&comment, id).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

// GetTopLevelByTweetID retrieves the top-level comments of a tweet in
// creation order
func (r *PostgresCommentRepository) GetTopLevelByTweetID(tweetID uint) ([]models.Comment, error) {
	var comments []models.Comment
	if err := r.db.Where("tweet_id = ? AND parent_id IS NULL", tweetID).Order("id ASC").Find(&comments).Error; err != nil {
		return nil, err
	}
	return comments, nil
}

// GetReplies retrieves the direct replies of a comment in creation order
func (r *PostgresCommentRepository) GetReplies(parentID uint) ([]models.Comment, error) {
	var comments []models.Comment
	if err := r.db.Where("parent_id = ?", parentID).Order("id ASC").Find(&comments).Error; err != nil {
		return nil, err
	}
	return comments, nil
}

// GetCommentsCountByTweetID retrieves the count of all comments (including
// replies) for a specific tweet
func (r *PostgresCommentRepository) GetCommentsCountByTweetID(tweetID uint) (int64, error) {
	var count int64
	if err := r.db.Model(&models.Comment{}).Where("tweet_id = ?", tweetID).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// UpdateComment updates an existing comment in PostgreSQL
func (r *PostgresCommentRepository) UpdateComment(comment *models.Comment) error {
	return r.db.Save(comment).Error
}

// DeleteCommentTree deletes a comment and every descendant reply in a single
// transaction. Descendant ids are collected level by level before deleting.
func (r *PostgresCommentRepository) DeleteCommentTree(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		subtree := []uint{id}
		frontier := []uint{id}
		for len(frontier) > 0 {
			var childIDs []uint
			if err := tx.Model(&models.Comment{}).Where("parent_id IN ?", frontier).Pluck("id", &childIDs).Error; err != nil {
				return err
			}
			subtree = append(subtree, childIDs...)
			frontier = childIDs
		}

		res := tx.Where("id IN ?", subtree).Delete(&models.Comment{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}
