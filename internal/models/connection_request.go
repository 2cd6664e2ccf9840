package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Connection request lifecycle. A request starts pending and is processed
// exactly once: pending -> accepted or pending -> rejected.
const (
	StatusPending  = "pending"
	StatusAccepted = "accepted"
	StatusRejected = "rejected"
)

// ConnectionRequest represents a directed proposal from sender to recipient
// to establish a mutual connection.
type ConnectionRequest struct {
	ID          primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	SenderID    primitive.ObjectID `json:"sender_id" bson:"sender"`
	RecipientID primitive.ObjectID `json:"recipient_id" bson:"recipient"`
	Status      string             `json:"status" bson:"status"`
	CreatedAt   time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at" bson:"updated_at"`
}

// Connection status values returned by the status lookup endpoint.
const (
	ConnectionStatusConnected    = "connected"
	ConnectionStatusPending      = "pending"
	ConnectionStatusReceived     = "received"
	ConnectionStatusNotConnected = "not_connected"
)
