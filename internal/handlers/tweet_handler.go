package handlers

import (
	"net/http"
	"strconv"

	"github.com/hossein-sa/twitter-clone-api/internal/models"
	"github.com/hossein-sa/twitter-clone-api/internal/repositories"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// TweetHandler handles HTTP requests related to tweets
type TweetHandler struct {
	tweetRepository   repositories.TweetRepository
	userRepository    repositories.UserRepository
	likeRepository    repositories.LikeRepository
	commentRepository repositories.CommentRepository
}

// NewTweetHandler creates a new TweetHandler
func NewTweetHandler(
	tweetRepo repositories.TweetRepository,
	userRepo repositories.UserRepository,
	likeRepo repositories.LikeRepository,
	commentRepo repositories.CommentRepository,
) *TweetHandler {
	return &TweetHandler{
		tweetRepository:   tweetRepo,
		userRepository:    userRepo,
		likeRepository:    likeRepo,
		commentRepository: commentRepo,
	}
}

// RegisterPublicTweetRoutes registers tweet read routes open to anyone
func (h *TweetHandler) RegisterPublicTweetRoutes(g *echo.Group) {
	g.GET("/tweets", h.ListTweets)
	g.GET("/tweets/:id", h.GetTweet)
}

// RegisterTweetRoutes registers tweet mutation routes
func (h *TweetHandler) RegisterTweetRoutes(g *echo.Group) {
	g.POST("/tweets", h.CreateTweet)
	g.PUT("/tweets/:id", h.UpdateTweet)
	g.DELETE("/tweets/:id", h.DeleteTweet)
}

// ListTweets returns all tweets, newest first, with live counts
func (h *TweetHandler) ListTweets(c echo.Context) error {
	tweets, err := h.tweetRepository.GetAllTweets()
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, h.toResponses(tweets))
}

// GetTweet returns a single tweet with live counts
func (h *TweetHandler) GetTweet(c echo.Context) error {
	tweetID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid tweet ID")
	}

	tweet, err := h.tweetRepository.GetTweetByID(uint(tweetID))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Tweet not found")
	}

	return c.JSON(http.StatusOK, h.toResponse(tweet))
}

// CreateTweet posts a new tweet authored by the authenticated user
func (h *TweetHandler) CreateTweet(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	var req models.CreateTweetRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	tweet := &models.Tweet{
		UserID:  currentUserID,
		Content: req.Content,
	}

	if err := h.tweetRepository.CreateTweet(tweet); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusCreated, h.toResponse(tweet))
}

// UpdateTweet edits a tweet's content; only the author may do so
func (h *TweetHandler) UpdateTweet(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	tweetID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid tweet ID")
	}

	var req models.UpdateTweetRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	tweet, err := h.tweetRepository.GetTweetByID(uint(tweetID))
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "Tweet not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if tweet.UserID != currentUserID {
		return echo.NewHTTPError(http.StatusForbidden, "You can only edit your own tweets")
	}

	tweet.Content = req.Content

	if err := h.tweetRepository.UpdateTweet(tweet); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, h.toResponse(tweet))
}

// DeleteTweet deletes a tweet together with its likes and comment trees
func (h *TweetHandler) DeleteTweet(c echo.Context) error {
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
		if err == gorm.ErrRecordNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "Tweet not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if tweet.UserID != currentUserID {
		return echo.NewHTTPError(http.StatusForbidden, "You can only delete your own tweets")
	}

	if err := h.tweetRepository.DeleteTweet(uint(tweetID)); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.NoContent(http.StatusNoContent)
}

// toResponse decorates a tweet with its author name and current counts
func (h *TweetHandler) toResponse(tweet *models.Tweet) models.TweetResponse {
	username := ""
	if user, err := h.userRepository.GetUserByID(tweet.UserID); err == nil {
		username = user.Username
	}
	likes, _ := h.likeRepository.GetLikesCountByTweetID(tweet.ID)
	comments, _ := h.commentRepository.GetCommentsCountByTweetID(tweet.ID)
	return models.TweetResponse{
		ID:            tweet.ID,
		User:          username,
		Content:       tweet.Content,
		LikesCount:    likes,
		CommentsCount: comments,
		CreatedAt:     tweet.CreatedAt,
		UpdatedAt:     tweet.UpdatedAt,
	}
}

func (h *TweetHandler) toResponses(tweets []models.Tweet) []models.TweetResponse {
	responses := make([]models.TweetResponse, len(tweets))
	for i := range tweets {
		responses[i] = h.toResponse(&tweets[i])
	}
	return responses
}
