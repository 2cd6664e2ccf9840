package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/proconnect-app/backend/internal/models"
	"github.com/proconnect-app/backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// NotificationHandler handles notification-related HTTP requests
type NotificationHandler struct {
	notificationRepository repositories.NotificationRepository
	userRepository         repositories.UserRepository
	postRepository         repositories.PostRepository
}

// NewNotificationHandler creates a new NotificationHandler
func NewNotificationHandler(
	notificationRepo repositories.NotificationRepository,
	userRepo repositories.UserRepository,
	postRepo repositories.PostRepository,
) *NotificationHandler {
	return &NotificationHandler{
		notificationRepository: notificationRepo,
		userRepository:         userRepo,
		postRepository:         postRepo,
	}
}

// RegisterNotificationRoutes registers notification routes
func (h *NotificationHandler) RegisterNotificationRoutes(g *echo.Group) {
	g.GET("/notifications/", h.GetNotifications)
	g.PUT("/notifications/:id/read", h.MarkAsRead)
	g.DELETE("/notifications/:id", h.DeleteNotification)
}

// RelatedPost is the post summary attached to a notification
type RelatedPost struct {
	ID      primitive.ObjectID `json:"id"`
	Content string             `json:"content"`
	Image   string             `json:"image,omitempty"`
}

// EnrichedNotification includes the related user's public profile and the
// related post summary
type EnrichedNotification struct {
	models.Notification
	RelatedUser *models.UserCompact `json:"related_user,omitempty"`
	RelatedPost *RelatedPost        `json:"related_post,omitempty"`
}

// GetNotifications returns the acting user's notifications, newest first
func (h *NotificationHandler) GetNotifications(c echo.Context) error {
	userID, err := actingUserID(c)
	if err != nil {
		return err
	}

	notifications, err := h.notificationRepository.GetByRecipientID(userID.Hex())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Server error")
	}

	ctx := c.Request().Context()

	enriched := make([]EnrichedNotification, len(notifications))
	userCache := make(map[string]*models.UserCompact)
	postCache := make(map[string]*RelatedPost)

	for i, n := range notifications {
		enriched[i] = EnrichedNotification{Notification: n}

		if n.RelatedUserID != "" {
			compact, ok := userCache[n.RelatedUserID]
			if !ok {
				compact = h.lookupUser(c, n.RelatedUserID)
				userCache[n.RelatedUserID] = compact
			}
			enriched[i].RelatedUser = compact
		}

		if n.RelatedPostID != "" {
			related, ok := postCache[n.RelatedPostID]
			if !ok {
				if postID, err := primitive.ObjectIDFromHex(n.RelatedPostID); err == nil {
					if post, err := h.postRepository.GetPostByID(ctx, postID); err == nil {
						related = &RelatedPost{ID: post.ID, Content: post.Content, Image: post.Image}
					}
				}
				postCache[n.RelatedPostID] = related
			}
			enriched[i].RelatedPost = related
		}
	}

	return c.JSON(http.StatusOK, enriched)
}

func (h *NotificationHandler) lookupUser(c echo.Context, id string) *models.UserCompact {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil
	}
	user, err := h.userRepository.GetUserByID(c.Request().Context(), objID)
	if err != nil {
		return nil
	}
	compact := user.ToCompact()
	return &compact
}

// MarkAsRead flips the read flag on one of the acting user's notifications
func (h *NotificationHandler) MarkAsRead(c echo.Context) error {
	userID, err := actingUserID(c)
	if err != nil {
		return err
	}

	notificationID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid notification ID")
	}

	notification, err := h.notificationRepository.MarkAsRead(uint(notificationID), userID.Hex())
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Notification not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Server error")
	}

	return c.JSON(http.StatusOK, notification)
}

// DeleteNotification deletes one of the acting user's notifications
func (h *NotificationHandler) DeleteNotification(c echo.Context) error {
	userID, err := actingUserID(c)
	if err != nil {
		return err
	}

	notificationID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid notification ID")
	}

	if err := h.notificationRepository.DeleteNotification(uint(notificationID), userID.Hex()); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Server error")
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "Notification deleted successfully"})
}
