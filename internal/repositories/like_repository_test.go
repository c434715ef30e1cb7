package repositories

import (
	"testing"

	"github.com/hossein-sa/twitter-clone-api/internal/models"
	"github.com/hossein-sa/twitter-clone-api/internal/testutil"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestLikeCreateAndDelete(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewPostgresLikeRepository(db)

	user := testutil.CreateUser(t, db, "alice")
	tweet := testutil.CreateTweet(t, db, user.ID, "hello")

	liked, err := repo.HasUserLikedTweet(tweet.ID, user.ID)
	require.NoError(t, err)
	require.False(t, liked)

	require.NoError(t, repo.CreateLike(&models.Like{TweetID: tweet.ID, UserID: user.ID}))

	liked, err = repo.HasUserLikedTweet(tweet.ID, user.ID)
	require.NoError(t, err)
	require.True(t, liked)

	count, err := repo.GetLikesCountByTweetID(tweet.ID)
	require.NoError(t, err)
	require.EqualValues(t, 1, count)

	require.NoError(t, repo.DeleteLike(tweet.ID, user.ID))

	count, err = repo.GetLikesCountByTweetID(tweet.ID)
	require.NoError(t, err)
	require.EqualValues(t, 0, count)
}

func TestLikeUniquePerUserAndTweet(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewPostgresLikeRepository(db)

	user := testutil.CreateUser(t, db, "alice")
	tweet := testutil.CreateTweet(t, db, user.ID, "hello")

	require.NoError(t, repo.CreateLike(&models.Like{TweetID: tweet.ID, UserID: user.ID}))

	err := repo.CreateLike(&models.Like{TweetID: tweet.ID, UserID: user.ID})
	require.ErrorIs(t, err, gorm.ErrDuplicatedKey)

	count, err := repo.GetLikesCountByTweetID(tweet.ID)
	require.NoError(t, err)
	require.EqualValues(t, 1, count)
}

func TestDeleteLikeNotFound(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewPostgresLikeRepository(db)

	err := repo.DeleteLike(42, 42)
	require.Error(t, err)
}
