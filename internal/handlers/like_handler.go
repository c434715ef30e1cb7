package handlers

import (
	"net/http"
	"strconv"

	"github.com/hossein-sa/twitter-clone-api/internal/models"
	"github.com/hossein-sa/twitter-clone-api/internal/repositories"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// LikeHandler handles the like toggle endpoint
type LikeHandler struct {
	likeRepository         repositories.LikeRepository
	tweetRepository        repositories.TweetRepository
	notificationRepository repositories.NotificationRepository
}

// NewLikeHandler creates a new LikeHandler
func NewLikeHandler(likeRepo repositories.LikeRepository, tweetRepo repositories.TweetRepository, notifRepo repositories.NotificationRepository) *LikeHandler {
	return &LikeHandler{
		likeRepository:         likeRepo,
		tweetRepository:        tweetRepo,
		notificationRepository: notifRepo,
	}
}

// RegisterLikeRoutes registers like-related routes
func (h *LikeHandler) RegisterLikeRoutes(g *echo.Group) {
	g.POST("/tweets/:id/like", h.ToggleLike)
}

// ToggleLike likes a tweet, or unlikes it if the user has already liked it.
// Liking notifies the tweet's author; unliking emits nothing.
func (h *LikeHandler) ToggleLike(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	tweetID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid tweet ID")
	}

	tweet, err := h.tweetRepository.GetTweetByID(uint(tweetID))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Tweet not found")
	}

	hasLiked, err := h.likeRepository.HasUserLikedTweet(tweet.ID, currentUserID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if hasLiked {
		if err := h.likeRepository.DeleteLike(tweet.ID, currentUserID); err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
		return c.JSON(http.StatusOK, echo.Map{"message": "Tweet unliked"})
	}

	like := &models.Like{
		TweetID: tweet.ID,
		UserID:  currentUserID,
	}

	if err := h.likeRepository.CreateLike(like); err != nil {
		if err == gorm.ErrDuplicatedKey {
			// Lost a race against a concurrent like from the same user.
			return echo.NewHTTPError(http.StatusConflict, "Tweet already liked by this user")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	notif := &models.Notification{
		Type:        models.NotificationTypeLike,
		SenderID:    currentUserID,
		RecipientID: tweet.UserID,
		TweetID:     &tweet.ID,
	}
	if err := h.notificationRepository.CreateNotification(notif); err != nil {
		c.Logger().Errorf("failed to create like notification: %v", err)
	}

	return c.JSON(http.StatusCreated, echo.Map{"message": "Tweet liked"})
}
