package repositories

import (
	"testing"

	"github.com/hossein-sa/twitter-clone-api/internal/models"
	"github.com/hossein-sa/twitter-clone-api/internal/testutil"
	"github.com/stretchr/testify/require"
)

func TestAddFollowIsIdempotent(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewPostgresFollowRepository(db)

	alice := testutil.CreateUser(t, db, "alice")
	bob := testutil.CreateUser(t, db, "bob")

	require.NoError(t, repo.AddFollow(alice.ID, bob.ID))
	require.NoError(t, repo.AddFollow(alice.ID, bob.ID))

	var count int64
	require.NoError(t, db.Model(&models.Follow{}).Count(&count).Error)
	require.EqualValues(t, 1, count)

	following, err := repo.IsFollowing(alice.ID, bob.ID)
	require.NoError(t, err)
	require.True(t, following)
}

func TestDeleteFollowMissingEdge(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewPostgresFollowRepository(db)

	alice := testutil.CreateUser(t, db, "alice")
	bob := testutil.CreateUser(t, db, "bob")

	err := repo.DeleteFollow(alice.ID, bob.ID)
	require.Error(t, err)

	require.NoError(t, repo.AddFollow(alice.ID, bob.ID))
	require.NoError(t, repo.DeleteFollow(alice.ID, bob.ID))

	following, err := repo.IsFollowing(alice.ID, bob.ID)
	require.NoError(t, err)
	require.False(t, following)
}

func TestFollowersAndFollowingListings(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewPostgresFollowRepository(db)

	alice := testutil.CreateUser(t, db, "alice")
	bob := testutil.CreateUser(t, db, "bob")
	carol := testutil.CreateUser(t, db, "carol")

	// alice and carol both follow bob; bob follows alice back
	require.NoError(t, repo.AddFollow(alice.ID, bob.ID))
	require.NoError(t, repo.AddFollow(carol.ID, bob.ID))
	require.NoError(t, repo.AddFollow(bob.ID, alice.ID))

	followers, err := repo.GetFollowers(bob.ID)
	require.NoError(t, err)
	require.Len(t, followers, 2)

	following, err := repo.GetFollowing(bob.ID)
	require.NoError(t, err)
	require.Len(t, following, 1)
	require.Equal(t, "alice", following[0].Username)

	followersCount, err := repo.GetFollowersCount(bob.ID)
	require.NoError(t, err)
	require.EqualValues(t, 2, followersCount)

	followingIDs, err := repo.GetFollowingIDs(alice.ID)
	require.NoError(t, err)
	require.Equal(t, []uint{bob.ID}, followingIDs)
}
