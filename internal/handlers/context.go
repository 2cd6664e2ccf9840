package handlers

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Mailer sends transactional emails. Implementations must be safe for
// concurrent use; callers invoke them fire-and-forget.
type Mailer interface {
	SendWelcomeEmail(ctx context.Context, email, name, profileURL string) error
	SendConnectionAcceptedEmail(ctx context.Context, email, senderName, recipientName, profileURL string) error
	SendCommentNotificationEmail(ctx context.Context, email, recipientName, commenterName, postURL, comment string) error
}

// MediaStore uploads and deletes hosted media.
type MediaStore interface {
	Upload(ctx context.Context, file string) (string, error)
	Destroy(ctx context.Context, publicID string) error
}

// actingUserID returns the authenticated user's ID injected by the auth
// middleware.
func actingUserID(c echo.Context) (primitive.ObjectID, error) {
	raw, ok := c.Get("userID").(string)
	if !ok || raw == "" {
		return primitive.NilObjectID, echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	id, err := primitive.ObjectIDFromHex(raw)
	if err != nil {
		return primitive.NilObjectID, echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}
	return id, nil
}
