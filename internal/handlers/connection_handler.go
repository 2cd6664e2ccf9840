package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/proconnect-app/backend/internal/models"
	"github.com/proconnect-app/backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ConnectionHandler handles HTTP requests for the connection request
// lifecycle and the connections list.
type ConnectionHandler struct {
	requestRepository      repositories.ConnectionRequestRepository
	userRepository         repositories.UserRepository
	notificationRepository repositories.NotificationRepository
	mailer                 Mailer
	clientURL              string
}

// NewConnectionHandler creates a new ConnectionHandler
func NewConnectionHandler(
	requestRepo repositories.ConnectionRequestRepository,
	userRepo repositories.UserRepository,
	notificationRepo repositories.NotificationRepository,
	mailer Mailer,
	clientURL string,
) *ConnectionHandler {
	return &ConnectionHandler{
		requestRepository:      requestRepo,
		userRepository:         userRepo,
		notificationRepository: notificationRepo,
		mailer:                 mailer,
		clientURL:              clientURL,
	}
}

// RegisterConnectionRoutes registers connection-related routes
func (h *ConnectionHandler) RegisterConnectionRoutes(g *echo.Group) {
	g.POST("/connections/request/:userId", h.SendConnectionRequest)
	g.PUT("/connections/accept/:requestId", h.AcceptConnectionRequest)
	g.PUT("/connections/reject/:requestId", h.RejectConnectionRequest)
	g.GET("/connections/requests", h.GetConnectionRequests)
	g.GET("/connections/", h.GetUserConnections)
	g.DELETE("/connections/:userId", h.RemoveConnection)
	g.GET("/connections/status/:userId", h.GetConnectionStatus)
}

// EnrichedConnectionRequest includes the sender's public profile
type EnrichedConnectionRequest struct {
	models.ConnectionRequest
	Sender models.UserCompact `json:"sender"`
}

// SendConnectionRequest handles sending a connection request
func (h *ConnectionHandler) SendConnectionRequest(c echo.Context) error {
	senderID, err := actingUserID(c)
	if err != nil {
		return err
	}

	recipientID, err := primitive.ObjectIDFromHex(c.Param("userId"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid user ID")
	}

	if senderID == recipientID {
		return echo.NewHTTPError(http.StatusBadRequest, "You can't send a request to yourself")
	}

	ctx := c.Request().Context()

	sender, err := h.userRepository.GetUserByID(ctx, senderID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Server error")
	}
	if sender.IsConnectedTo(recipientID) {
		return echo.NewHTTPError(http.StatusBadRequest, "You are already connected")
	}

	if _, err := h.userRepository.GetUserByID(ctx, recipientID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "User not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Server error")
	}

	// At most one pending request per pair, in either direction.
	if _, err := h.requestRepository.FindPendingBetween(ctx, senderID, recipientID); err == nil {
		return echo.NewHTTPError(http.StatusBadRequest, "A connection request already exists")
	} else if !errors.Is(err, repositories.ErrNotFound) {
		return echo.NewHTTPError(http.StatusInternalServerError, "Server error")
	}

	request := &models.ConnectionRequest{
		SenderID:    senderID,
		RecipientID: recipientID,
	}
	if err := h.requestRepository.Create(ctx, request); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Server error")
	}

	return c.JSON(http.StatusCreated, request)
}

// AcceptConnectionRequest accepts a pending request addressed to the acting
// user, makes the connection mutual, notifies the sender and emails them.
func (h *ConnectionHandler) AcceptConnectionRequest(c echo.Context) error {
	userID, err := actingUserID(c)
	if err != nil {
		return err
	}

	requestID, err := primitive.ObjectIDFromHex(c.Param("requestId"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request ID")
	}

	ctx := c.Request().Context()

	request, err := h.requestRepository.GetByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Connection request not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Server error")
	}

	if request.RecipientID != userID {
		return echo.NewHTTPError(http.StatusForbidden, "Not authorized to accept this request")
	}
	if request.Status != models.StatusPending {
		return echo.NewHTTPError(http.StatusBadRequest, "Request has already been processed")
	}

	// Conditional on the request still being pending; a concurrent accept
	// or reject wins at most once.
	if err := h.requestRepository.TransitionStatus(ctx, requestID, models.StatusAccepted); err != nil {
		if errors.Is(err, repositories.ErrInvalidState) {
			return echo.NewHTTPError(http.StatusBadRequest, "Request has already been processed")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Server error")
	}

	if err := h.userRepository.AddConnection(ctx, request.SenderID, userID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Server error")
	}
	if err := h.userRepository.AddConnection(ctx, userID, request.SenderID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Server error")
	}

	notification := &models.Notification{
		RecipientID:   request.SenderID.Hex(),
		Type:          models.NotificationTypeConnectionAccepted,
		RelatedUserID: userID.Hex(),
	}
	if err := h.notificationRepository.CreateNotification(notification); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Server error")
	}

	h.sendAcceptanceEmail(ctx, request.SenderID, userID)

	return c.JSON(http.StatusOK, echo.Map{"message": "Connection request accepted"})
}

// sendAcceptanceEmail emails the original sender that their request was
// accepted. Failures are logged, never surfaced.
func (h *ConnectionHandler) sendAcceptanceEmail(ctx context.Context, senderID, recipientID primitive.ObjectID) {
	sender, err := h.userRepository.GetUserByID(ctx, senderID)
	if err != nil {
		log.Printf("Error loading sender for acceptance email: %v", err)
		return
	}
	recipient, err := h.userRepository.GetUserByID(ctx, recipientID)
	if err != nil {
		log.Printf("Error loading recipient for acceptance email: %v", err)
		return
	}

	profileURL := h.clientURL + "/profile/" + recipient.Username
	go func(email, senderName, recipientName, profileURL string) {
		if err := h.mailer.SendConnectionAcceptedEmail(context.Background(), email, senderName, recipientName, profileURL); err != nil {
			log.Printf("Error sending connection accepted email: %v", err)
		}
	}(sender.Email, sender.Name, recipient.Name, profileURL)
}

// RejectConnectionRequest rejects a pending request addressed to the acting
// user. No notification, no email.
func (h *ConnectionHandler) RejectConnectionRequest(c echo.Context) error {
	userID, err := actingUserID(c)
	if err != nil {
		return err
	}

	requestID, err := primitive.ObjectIDFromHex(c.Param("requestId"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request ID")
	}

	ctx := c.Request().Context()

	request, err := h.requestRepository.GetByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Connection request not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Server error")
	}

	if request.RecipientID != userID {
		return echo.NewHTTPError(http.StatusForbidden, "Not authorized to reject this request")
	}
	if request.Status != models.StatusPending {
		return echo.NewHTTPError(http.StatusBadRequest, "Request has already been processed")
	}

	if err := h.requestRepository.TransitionStatus(ctx, requestID, models.StatusRejected); err != nil {
		if errors.Is(err, repositories.ErrInvalidState) {
			return echo.NewHTTPError(http.StatusBadRequest, "Request has already been processed")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Server error")
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "Connection request rejected"})
}

// GetConnectionRequests retrieves pending requests addressed to the acting
// user, each enriched with the sender's public profile
func (h *ConnectionHandler) GetConnectionRequests(c echo.Context) error {
	userID, err := actingUserID(c)
	if err != nil {
		return err
	}

	ctx := c.Request().Context()

	requests, err := h.requestRepository.GetPendingForRecipient(ctx, userID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Server error")
	}

	senderIDs := make([]primitive.ObjectID, 0, len(requests))
	for _, req := range requests {
		senderIDs = append(senderIDs, req.SenderID)
	}
	senders, err := h.userRepository.GetUsersByIDs(ctx, senderIDs)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Server error")
	}

	compactByID := make(map[primitive.ObjectID]models.UserCompact, len(senders))
	for i := range senders {
		compactByID[senders[i].ID] = senders[i].ToCompact()
	}

	enriched := make([]EnrichedConnectionRequest, len(requests))
	for i, req := range requests {
		enriched[i] = EnrichedConnectionRequest{ConnectionRequest: req, Sender: compactByID[req.SenderID]}
	}

	return c.JSON(http.StatusOK, enriched)
}

// GetUserConnections retrieves the acting user's connections with their
// public profile fields
func (h *ConnectionHandler) GetUserConnections(c echo.Context) error {
	userID, err := actingUserID(c)
	if err != nil {
		return err
	}

	ctx := c.Request().Context()

	user, err := h.userRepository.GetUserByID(ctx, userID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Server error")
	}

	connections, err := h.userRepository.GetUsersByIDs(ctx, user.Connections)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Server error")
	}

	compacts := make([]models.UserCompact, len(connections))
	for i := range connections {
		compacts[i] = connections[i].ToCompact()
	}

	return c.JSON(http.StatusOK, compacts)
}

// RemoveConnection removes each user from the other's connections set.
// Removing an absent connection is not an error.
func (h *ConnectionHandler) RemoveConnection(c echo.Context) error {
	userID, err := actingUserID(c)
	if err != nil {
		return err
	}

	otherID, err := primitive.ObjectIDFromHex(c.Param("userId"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid user ID")
	}

	ctx := c.Request().Context()

	if err := h.userRepository.RemoveConnection(ctx, userID, otherID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Server error")
	}
	if err := h.userRepository.RemoveConnection(ctx, otherID, userID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Server error")
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "Connection removed successfully"})
}

// GetConnectionStatus reports the relationship between the acting user and
// the target: connected, pending (we sent), received (they sent, with the
// request ID) or not_connected.
func (h *ConnectionHandler) GetConnectionStatus(c echo.Context) error {
	userID, err := actingUserID(c)
	if err != nil {
		return err
	}

	targetID, err := primitive.ObjectIDFromHex(c.Param("userId"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid user ID")
	}

	ctx := c.Request().Context()

	user, err := h.userRepository.GetUserByID(ctx, userID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Server error")
	}
	if user.IsConnectedTo(targetID) {
		return c.JSON(http.StatusOK, echo.Map{"status": models.ConnectionStatusConnected})
	}

	request, err := h.requestRepository.FindPendingBetween(ctx, userID, targetID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return c.JSON(http.StatusOK, echo.Map{"status": models.ConnectionStatusNotConnected})
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Server error")
	}

	if request.SenderID == userID {
		return c.JSON(http.StatusOK, echo.Map{"status": models.ConnectionStatusPending})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"status":     models.ConnectionStatusReceived,
		"request_id": request.ID,
	})
}
