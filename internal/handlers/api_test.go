package handlers_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/hossein-sa/twitter-clone-api/internal/auth"
	"github.com/hossein-sa/twitter-clone-api/internal/router"
	"github.com/hossein-sa/twitter-clone-api/internal/testutil"
	"github.com/hossein-sa/twitter-clone-api/validators"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

// newTestServer wires the full API against an in-memory database and a
// miniredis-backed token blacklist.
func newTestServer(t *testing.T) *echo.Echo {
	t.Helper()

	db := testutil.NewTestDB(t)
	mr := miniredis.RunT(t)
	redisClient := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	tokens := auth.NewTokenManager("test-secret", time.Minute, time.Hour, redisClient)

	e := echo.New()
	e.Validator = validators.NewValidator()
	router.SetupRoutes(e, db, tokens)
	return e
}

func doJSON(t *testing.T, e *echo.Echo, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *strings.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = strings.NewReader(string(payload))
	} else {
		reader = strings.NewReader("")
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func decodeList(t *testing.T, rec *httptest.ResponseRecorder) []map[string]any {
	t.Helper()

	var body []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

// signupAndLogin registers a user and returns its id and an access token
func signupAndLogin(t *testing.T, e *echo.Echo, username string) (uint, string) {
	t.Helper()

	rec := doJSON(t, e, http.MethodPost, "/api/v1/auth/signup", "", map[string]any{
		"username": username,
		"email":    username + "@example.com",
		"password": "password123",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	userID := uint(decodeBody(t, rec)["id"].(float64))

	rec = doJSON(t, e, http.MethodPost, "/api/v1/auth/login", "", map[string]any{
		"username": username,
		"password": "password123",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	return userID, decodeBody(t, rec)["access"].(string)
}

func postTweet(t *testing.T, e *echo.Echo, token, content string) uint {
	t.Helper()

	rec := doJSON(t, e, http.MethodPost, "/api/v1/tweets", token, map[string]any{"content": content})
	require.Equal(t, http.StatusCreated, rec.Code)
	return uint(decodeBody(t, rec)["id"].(float64))
}

func TestSignupLoginRefreshLogout(t *testing.T) {
	e := newTestServer(t)

	rec := doJSON(t, e, http.MethodPost, "/api/v1/auth/signup", "", map[string]any{
		"username": "alice",
		"email":    "alice@example.com",
		"password": "password123",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	body := decodeBody(t, rec)
	require.Equal(t, "alice", body["username"])
	require.EqualValues(t, 0, body["followers_count"])

	// Duplicate username is rejected
	rec = doJSON(t, e, http.MethodPost, "/api/v1/auth/signup", "", map[string]any{
		"username": "alice",
		"email":    "other@example.com",
		"password": "password123",
	})
	require.Equal(t, http.StatusConflict, rec.Code)

	rec = doJSON(t, e, http.MethodPost, "/api/v1/auth/login", "", map[string]any{
		"username": "alice",
		"password": "password123",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	tokens := decodeBody(t, rec)
	access := tokens["access"].(string)
	refresh := tokens["refresh"].(string)

	rec = doJSON(t, e, http.MethodPost, "/api/v1/auth/token/refresh", "", map[string]any{"refresh": refresh})
	require.Equal(t, http.StatusOK, rec.Code)
	require.NotEmpty(t, decodeBody(t, rec)["access"])

	rec = doJSON(t, e, http.MethodPost, "/api/v1/auth/logout", access, map[string]any{"refresh": refresh})
	require.Equal(t, http.StatusOK, rec.Code)

	// Blacklisted refresh token no longer works
	rec = doJSON(t, e, http.MethodPost, "/api/v1/auth/token/refresh", "", map[string]any{"refresh": refresh})
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestTweetContentLimitAndOwnership(t *testing.T) {
	e := newTestServer(t)
	_, aliceToken := signupAndLogin(t, e, "alice")
	_, bobToken := signupAndLogin(t, e, "bob")

	// 281 characters is rejected
	rec := doJSON(t, e, http.MethodPost, "/api/v1/tweets", aliceToken, map[string]any{
		"content": strings.Repeat("x", 281),
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	// Empty content is rejected
	rec = doJSON(t, e, http.MethodPost, "/api/v1/tweets", aliceToken, map[string]any{"content": ""})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	// 280 characters is fine
	tweetID := postTweet(t, e, aliceToken, strings.Repeat("x", 280))

	// Reads need no token
	rec = doJSON(t, e, http.MethodGet, fmt.Sprintf("/api/v1/tweets/%d", tweetID), "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "alice", decodeBody(t, rec)["user"])

	// Only the author can edit or delete
	rec = doJSON(t, e, http.MethodPut, fmt.Sprintf("/api/v1/tweets/%d", tweetID), bobToken, map[string]any{"content": "hijacked"})
	require.Equal(t, http.StatusForbidden, rec.Code)

	rec = doJSON(t, e, http.MethodDelete, fmt.Sprintf("/api/v1/tweets/%d", tweetID), bobToken, nil)
	require.Equal(t, http.StatusForbidden, rec.Code)

	rec = doJSON(t, e, http.MethodPut, fmt.Sprintf("/api/v1/tweets/%d", tweetID), aliceToken, map[string]any{"content": "edited"})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, e, http.MethodDelete, fmt.Sprintf("/api/v1/tweets/%d", tweetID), aliceToken, nil)
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = doJSON(t, e, http.MethodGet, fmt.Sprintf("/api/v1/tweets/%d", tweetID), "", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestLikeToggleAndNotificationFlow(t *testing.T) {
	e := newTestServer(t)
	aliceID, aliceToken := signupAndLogin(t, e, "alice")
	bobID, bobToken := signupAndLogin(t, e, "bob")

	tweetID := postTweet(t, e, aliceToken, "hello")

	// First toggle likes
	rec := doJSON(t, e, http.MethodPost, fmt.Sprintf("/api/v1/tweets/%d/like", tweetID), bobToken, nil)
	require.Equal(t, http.StatusCreated, rec.Code)
	require.Equal(t, "Tweet liked", decodeBody(t, rec)["message"])

	rec = doJSON(t, e, http.MethodGet, fmt.Sprintf("/api/v1/tweets/%d", tweetID), "", nil)
	require.EqualValues(t, 1, decodeBody(t, rec)["likes_count"])

	// Alice received an unread like notification from bob
	rec = doJSON(t, e, http.MethodGet, "/api/v1/notifications", aliceToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	notifications := decodeList(t, rec)
	require.Len(t, notifications, 1)
	notif := notifications[0]
	require.Equal(t, "like", notif["type"])
	require.EqualValues(t, bobID, notif["sender_id"])
	require.EqualValues(t, aliceID, notif["recipient_id"])
	require.Equal(t, "bob", notif["sender"])
	require.Equal(t, false, notif["is_read"])
	notifID := uint(notif["id"].(float64))

	// Bob cannot mark alice's notification as read
	rec = doJSON(t, e, http.MethodPost, fmt.Sprintf("/api/v1/notifications/%d/read", notifID), bobToken, nil)
	require.Equal(t, http.StatusNotFound, rec.Code)

	// Mark as read, twice; the second call is a no-op success
	rec = doJSON(t, e, http.MethodPost, fmt.Sprintf("/api/v1/notifications/%d/read", notifID), aliceToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	rec = doJSON(t, e, http.MethodPost, fmt.Sprintf("/api/v1/notifications/%d/read", notifID), aliceToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, e, http.MethodGet, "/api/v1/notifications", aliceToken, nil)
	require.Equal(t, true, decodeList(t, rec)[0]["is_read"])

	// Second toggle unlikes without a new notification
	rec = doJSON(t, e, http.MethodPost, fmt.Sprintf("/api/v1/tweets/%d/like", tweetID), bobToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "Tweet unliked", decodeBody(t, rec)["message"])

	rec = doJSON(t, e, http.MethodGet, fmt.Sprintf("/api/v1/tweets/%d", tweetID), "", nil)
	require.EqualValues(t, 0, decodeBody(t, rec)["likes_count"])

	rec = doJSON(t, e, http.MethodGet, "/api/v1/notifications", aliceToken, nil)
	require.Len(t, decodeList(t, rec), 1)
}

func TestReplyInheritsParentTweetAndNotifies(t *testing.T) {
	e := newTestServer(t)
	_, aliceToken := signupAndLogin(t, e, "alice")
	bobID, bobToken := signupAndLogin(t, e, "bob")

	firstTweet := postTweet(t, e, aliceToken, "first")
	otherTweet := postTweet(t, e, aliceToken, "other")

	// Top-level comment emits no notification
	rec := doJSON(t, e, http.MethodPost, fmt.Sprintf("/api/v1/tweets/%d/comments", firstTweet), aliceToken, map[string]any{
		"content": "top-level",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	commentID := uint(decodeBody(t, rec)["id"].(float64))

	rec = doJSON(t, e, http.MethodGet, "/api/v1/notifications", aliceToken, nil)
	require.Empty(t, decodeList(t, rec))

	// Reply posted against the WRONG tweet path still lands on the parent's
	// tweet
	rec = doJSON(t, e, http.MethodPost, fmt.Sprintf("/api/v1/tweets/%d/comments", otherTweet), bobToken, map[string]any{
		"content": "a reply",
		"parent":  commentID,
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, e, http.MethodGet, fmt.Sprintf("/api/v1/tweets/%d/comments", otherTweet), bobToken, nil)
	require.Empty(t, decodeList(t, rec))

	rec = doJSON(t, e, http.MethodGet, fmt.Sprintf("/api/v1/tweets/%d/comments", firstTweet), bobToken, nil)
	comments := decodeList(t, rec)
	require.Len(t, comments, 1)
	require.Equal(t, "top-level", comments[0]["content"])
	replies := comments[0]["replies"].([]any)
	require.Len(t, replies, 1)
	reply := replies[0].(map[string]any)
	require.Equal(t, "a reply", reply["content"])
	require.Equal(t, "bob", reply["user"])
	require.EqualValues(t, commentID, reply["parent"])

	// The reply notified the parent comment's author
	rec = doJSON(t, e, http.MethodGet, "/api/v1/notifications", aliceToken, nil)
	notifications := decodeList(t, rec)
	require.Len(t, notifications, 1)
	require.Equal(t, "reply", notifications[0]["type"])
	require.EqualValues(t, bobID, notifications[0]["sender_id"])

	// Deleting the parent removes the whole subtree
	rec = doJSON(t, e, http.MethodDelete, fmt.Sprintf("/api/v1/comments/%d", commentID), aliceToken, nil)
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = doJSON(t, e, http.MethodGet, fmt.Sprintf("/api/v1/tweets/%d", firstTweet), "", nil)
	require.EqualValues(t, 0, decodeBody(t, rec)["comments_count"])
}

func TestFollowUnfollowAndFeed(t *testing.T) {
	e := newTestServer(t)
	aliceID, aliceToken := signupAndLogin(t, e, "alice")
	bobID, bobToken := signupAndLogin(t, e, "bob")
	_, carolToken := signupAndLogin(t, e, "carol")

	postTweet(t, e, aliceToken, "from alice")
	postTweet(t, e, carolToken, "from carol")

	// Empty following set yields an empty feed
	rec := doJSON(t, e, http.MethodGet, "/api/v1/feed", bobToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Empty(t, decodeList(t, rec))

	// Self-follow is rejected
	rec = doJSON(t, e, http.MethodPost, fmt.Sprintf("/api/v1/users/%d/follow", bobID), bobToken, nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	// Following a missing user is a 404
	rec = doJSON(t, e, http.MethodPost, "/api/v1/users/9999/follow", bobToken, nil)
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec = doJSON(t, e, http.MethodPost, fmt.Sprintf("/api/v1/users/%d/follow", aliceID), bobToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	// Re-following is a no-op, not an error
	rec = doJSON(t, e, http.MethodPost, fmt.Sprintf("/api/v1/users/%d/follow", aliceID), bobToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, e, http.MethodGet, fmt.Sprintf("/api/v1/users/%d/followers", aliceID), bobToken, nil)
	followers := decodeList(t, rec)
	require.Len(t, followers, 1)
	require.Equal(t, "bob", followers[0]["username"])

	// Feed shows only followed authors
	rec = doJSON(t, e, http.MethodGet, "/api/v1/feed", bobToken, nil)
	feed := decodeList(t, rec)
	require.Len(t, feed, 1)
	require.Equal(t, "alice", feed[0]["user"])
	require.Equal(t, "from alice", feed[0]["content"])

	rec = doJSON(t, e, http.MethodPost, fmt.Sprintf("/api/v1/users/%d/unfollow", aliceID), bobToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	// Unfollowing someone not followed is an error
	rec = doJSON(t, e, http.MethodPost, fmt.Sprintf("/api/v1/users/%d/unfollow", aliceID), bobToken, nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, e, http.MethodGet, "/api/v1/feed", bobToken, nil)
	require.Empty(t, decodeList(t, rec))
}
