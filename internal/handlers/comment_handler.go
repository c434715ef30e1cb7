package handlers

import (
	"net/http"
	"strconv"

	"github.com/hossein-sa/twitter-clone-api/internal/models"
	"github.com/hossein-sa/twitter-clone-api/internal/repositories"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// CommentHandler handles HTTP requests related to comments and replies
type CommentHandler struct {
	commentRepository      repositories.CommentRepository
	tweetRepository        repositories.TweetRepository
	userRepository         repositories.UserRepository
	notificationRepository repositories.NotificationRepository
}

// NewCommentHandler creates a new CommentHandler
func NewCommentHandler(
	commentRepo repositories.CommentRepository,
	tweetRepo repositories.TweetRepository,
	userRepo repositories.UserRepository,
	notifRepo repositories.NotificationRepository,
) *CommentHandler {
	return &CommentHandler{
		commentRepository:      commentRepo,
		tweetRepository:        tweetRepo,
		userRepository:         userRepo,
		notificationRepository: notifRepo,
	}
}

// RegisterCommentRoutes registers comment-related routes
func (h *CommentHandler) RegisterCommentRoutes(g *echo.Group) {
	g.POST("/tweets/:id/comments", h.CreateComment)
	g.GET("/tweets/:id/comments", h.GetCommentsByTweetID)
	g.PUT("/comments/:id", h.UpdateComment)
	g.DELETE("/comments/:id", h.DeleteComment)
}

// CreateComment creates a comment on a tweet, or a reply when parent is set.
// Replies inherit the root tweet from their parent regardless of the path
// parameter, and notify the parent comment's author.
func (h *CommentHandler) CreateComment(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	tweetID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid tweet ID")
	}

	var req models.CreateCommentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	tweet, err := h.tweetRepository.GetTweetByID(uint(tweetID))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Tweet not found")
	}

	comment := &models.Comment{
		UserID:  currentUserID,
		TweetID: tweet.ID,
		Content: req.Content,
	}

	var parent *models.Comment
	if req.Parent != nil {
		parent, err = h.commentRepository.GetCommentByID(*req.Parent)
		if err != nil {
			return echo.NewHTTPError(http.StatusNotFound, "Parent comment not found")
		}
		// The reply belongs to the parent's thread, whatever the path said.
		comment.TweetID = parent.TweetID
		comment.ParentID = &parent.ID
	}

	if err := h.commentRepository.CreateComment(comment); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if parent != nil {
		notif := &models.Notification{
			Type:        models.NotificationTypeReply,
			SenderID:    currentUserID,
			RecipientID: parent.UserID,
			TweetID:     &comment.TweetID,
			CommentID:   &comment.ID,
		}
		if err := h.notificationRepository.CreateNotification(notif); err != nil {
			c.Logger().Errorf("failed to create reply notification: %v", err)
		}
	}

	return c.JSON(http.StatusCreated, h.toResponse(comment, false))
}

// GetCommentsByTweetID returns a tweet's top-level comments with their reply
// trees embedded
func (h *CommentHandler) GetCommentsByTweetID(c echo.Context) error {
	tweetID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid tweet ID")
	}

	if _, err := h.tweetRepository.GetTweetByID(uint(tweetID)); err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Tweet not found")
	}

	comments, err := h.commentRepository.GetTopLevelByTweetID(uint(tweetID))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	responses := make([]models.CommentResponse, len(comments))
	for i := range comments {
		responses[i] = h.toResponse(&comments[i], true)
	}

	return c.JSON(http.StatusOK, responses)
}

// UpdateComment edits a comment's content; only the author may do so
func (h *CommentHandler) UpdateComment(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	commentID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid comment ID")
	}

	var req models.UpdateCommentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	comment, err := h.commentRepository.GetCommentByID(uint(commentID))
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "Comment not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if comment.UserID != currentUserID {
		return echo.NewHTTPError(http.StatusForbidden, "You can only edit your own comments")
	}

	comment.Content = req.Content

	if err := h.commentRepository.UpdateComment(comment); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, h.toResponse(comment, false))
}

// DeleteComment deletes a comment and its entire reply subtree
func (h *CommentHandler) DeleteComment(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	commentID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid comment ID")
	}

	comment, err := h.commentRepository.GetCommentByID(uint(commentID))
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "Comment not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if comment.UserID != currentUserID {
		return echo.NewHTTPError(http.StatusForbidden, "You can only delete your own comments")
	}

	if err := h.commentRepository.DeleteCommentTree(uint(commentID)); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.NoContent(http.StatusNoContent)
}

// toResponse builds the comment view-model, recursing depth-first into
// replies when withReplies is set
func (h *CommentHandler) toResponse(comment *models.Comment, withReplies bool) models.CommentResponse {
	username := ""
	if user, err := h.userRepository.GetUserByID(comment.UserID); err == nil {
		username = user.Username
	}

	replies := []models.CommentResponse{}
	if withReplies {
		children, err := h.commentRepository.GetReplies(comment.ID)
		if err == nil {
			for i := range children {
				replies = append(replies, h.toResponse(&children[i], true))
			}
		}
	}

	return models.CommentResponse{
		ID:        comment.ID,
		User:      username,
		Content:   comment.Content,
		Parent:    comment.ParentID,
		Replies:   replies,
		CreatedAt: comment.CreatedAt,
		UpdatedAt: comment.UpdatedAt,
	}
}
