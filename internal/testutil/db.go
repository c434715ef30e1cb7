package testutil

import (
	"testing"

	"github.com/hossein-sa/twitter-clone-api/internal/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewTestDB opens an in-memory sqlite database with all models migrated.
// TranslateError is enabled so unique-index violations surface as
// gorm.ErrDuplicatedKey, matching the production PostgreSQL setup.
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open in-memory db: %v", err)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.Tweet{},
		&models.Like{},
		&models.Comment{},
		&models.Follow{},
		&models.Notification{},
	)
	if err != nil {
		t.Fatalf("failed to migrate test db: %v", err)
	}

	return db
}

// CreateUser inserts a user fixture
func CreateUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()

	user := &models.User{
		Username: username,
		Email:    username + "@example.com",
		Password: "hashed",
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create user fixture: %v", err)
	}
	return user
}

// CreateTweet inserts a tweet fixture
func CreateTweet(t *testing.T, db *gorm.DB, userID uint, content string) *models.Tweet {
	t.Helper()

	tweet := &models.Tweet{UserID: userID, Content: content}
	if err := db.Create(tweet).Error; err != nil {
		t.Fatalf("failed to create tweet fixture: %v", err)
	}
	return tweet
}
