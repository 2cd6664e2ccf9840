package models

import "time"

// Notification types created as side effects of workflow transitions.
const (
	NotificationTypeConnectionAccepted = "connection_accepted"
	NotificationTypeComment            = "comment"
)

// Notification represents a user notification (PostgreSQL). Related IDs are
// hex-encoded MongoDB ObjectIDs pointing at the user/post documents.
type Notification struct {
	ID            uint      `json:"id" gorm:"primaryKey"`
	RecipientID   string    `json:"recipient_id" gorm:"size:24;index"`
	Type          string    `json:"type" gorm:"size:30;index"`
	RelatedUserID string    `json:"related_user_id" gorm:"size:24"`
	RelatedPostID string    `json:"related_post_id,omitempty" gorm:"size:24"`
	IsRead        bool      `json:"read" gorm:"default:false;index"`
	CreatedAt     time.Time `json:"created_at" gorm:"index"`
}
