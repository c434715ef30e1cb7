package handlers

import (
	"net/http"

	"github.com/hossein-sa/twitter-clone-api/internal/repositories"
	"github.com/labstack/echo/v4"
)

// FeedHandler handles the personalized feed endpoint
type FeedHandler struct {
	tweetHandler     *TweetHandler
	tweetRepository  repositories.TweetRepository
	followRepository repositories.FollowRepository
}

// NewFeedHandler creates a new FeedHandler
func NewFeedHandler(tweetHandler *TweetHandler, tweetRepo repositories.TweetRepository, followRepo repositories.FollowRepository) *FeedHandler {
	return &FeedHandler{
		tweetHandler:     tweetHandler,
		tweetRepository:  tweetRepo,
		followRepository: followRepo,
	}
}

// RegisterFeedRoutes registers feed-related routes
func (h *FeedHandler) RegisterFeedRoutes(g *echo.Group) {
	g.GET("/feed", h.GetFeed)
}

// GetFeed returns the tweets of the users the current user follows, newest
// first. An empty following set yields an empty feed.
func (h *FeedHandler) GetFeed(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	followingIDs, err := h.followRepository.GetFollowingIDs(currentUserID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	tweets, err := h.tweetRepository.GetTweetsByAuthorIDs(followingIDs)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, h.tweetHandler.toResponses(tweets))
}
