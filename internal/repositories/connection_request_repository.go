package repositories

import (
	"context"
	"time"

	"github.com/proconnect-app/backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ConnectionRequestRepository defines the interface for connection request
// data operations
type ConnectionRequestRepository interface {
	Create(ctx context.Context, req *models.ConnectionRequest) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.ConnectionRequest, error)
	FindPendingBetween(ctx context.Context, a, b primitive.ObjectID) (*models.ConnectionRequest, error)
	GetPendingForRecipient(ctx context.Context, recipientID primitive.ObjectID) ([]models.ConnectionRequest, error)
	TransitionStatus(ctx context.Context, id primitive.ObjectID, status string) error
}

// MongoConnectionRequestRepository implements ConnectionRequestRepository
// for MongoDB
type MongoConnectionRequestRepository struct {
	collection *mongo.Collection
}

// NewMongoConnectionRequestRepository creates a new MongoConnectionRequestRepository
func NewMongoConnectionRequestRepository(db *mongo.Database) *MongoConnectionRequestRepository {
	return &MongoConnectionRequestRepository{collection: db.Collection("connection_requests")}
}

// Create creates a new connection request with status pending
func (r *MongoConnectionRequestRepository) Create(ctx context.Context, req *models.ConnectionRequest) error {
	req.ID = primitive.NewObjectID()
	req.Status = models.StatusPending
	req.CreatedAt = time.Now()
	req.UpdatedAt = time.Now()
	_, err := r.collection.InsertOne(ctx, req)
	return err
}

// GetByID retrieves a connection request by ID
func (r *MongoConnectionRequestRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.ConnectionRequest, error) {
	var req models.ConnectionRequest
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&req)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &req, nil
}

// FindPendingBetween retrieves the pending request between the two users,
// looking in both directions. At most one pending request may exist per
// unordered pair.
func (r *MongoConnectionRequestRepository) FindPendingBetween(ctx context.Context, a, b primitive.ObjectID) (*models.ConnectionRequest, error) {
	filter := bson.M{
		"status": models.StatusPending,
		"$or": []bson.M{
			{"sender": a, "recipient": b},
			{"sender": b, "recipient": a},
		},
	}

	var req models.ConnectionRequest
	err := r.collection.FindOne(ctx, filter).Decode(&req)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &req, nil
}

// GetPendingForRecipient retrieves all pending requests addressed to the
// given user, newest first
func (r *MongoConnectionRequestRepository) GetPendingForRecipient(ctx context.Context, recipientID primitive.ObjectID) ([]models.ConnectionRequest, error) {
	requests := []models.ConnectionRequest{}
	findOptions := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"recipient": recipientID, "status": models.StatusPending}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &requests); err != nil {
		return nil, err
	}
	return requests, nil
}

// TransitionStatus moves a pending request to the given terminal status.
// The update is conditional on the request still being pending, so two
// concurrent transitions cannot both succeed; the loser gets
// ErrInvalidState.
func (r *MongoConnectionRequestRepository) TransitionStatus(ctx context.Context, id primitive.ObjectID, status string) error {
	res, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": id, "status": models.StatusPending},
		bson.M{"$set": bson.M{"status": status, "updated_at": time.Now()}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrInvalidState
	}
	return nil
}
