package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Comment is a comment embedded in a post document. Comments are appended in
// order and never reordered.
type Comment struct {
	UserID    primitive.ObjectID `json:"user_id" bson:"user"`
	Content   string             `json:"content" bson:"content"`
	CreatedAt time.Time          `json:"created_at" bson:"created_at"`
}

// Post represents a post stored in MongoDB with its comments embedded.
type Post struct {
	ID        primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	AuthorID  primitive.ObjectID `json:"author_id" bson:"author"`
	Content   string             `json:"content" bson:"content"`
	Image     string             `json:"image,omitempty" bson:"image,omitempty"`
	Comments  []Comment          `json:"comments" bson:"comments"`
	CreatedAt time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time          `json:"updated_at" bson:"updated_at"`
}

// CreatePostRequest defines the request body for creating a new post.
// Image, when present, is a data URI uploaded to the media store before the
// post is persisted.
type CreatePostRequest struct {
	Content string `json:"content" validate:"required,min=1,max=3000"`
	Image   string `json:"image,omitempty"`
}

// CreateCommentRequest defines the request body for commenting on a post
type CreateCommentRequest struct {
	Content string `json:"content" validate:"required,min=1,max=500"`
}
