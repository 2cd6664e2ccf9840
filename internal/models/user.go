package models

import (
	"time"

	"github.com/golang-jwt/jwt/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User represents a member profile stored in MongoDB. Connections holds the
// IDs of users this user is mutually connected with; the set is kept
// symmetric by the connection accept/remove flows.
type User struct {
	ID             primitive.ObjectID   `json:"id,omitempty" bson:"_id,omitempty"`
	Name           string               `json:"name" bson:"name"`
	Username       string               `json:"username" bson:"username"`
	Email          string               `json:"email" bson:"email"`
	Password       string               `json:"-" bson:"password"`
	Headline       string               `json:"headline" bson:"headline"`
	ProfilePicture string               `json:"profile_picture" bson:"profile_picture"`
	BannerImg      string               `json:"banner_img,omitempty" bson:"banner_img,omitempty"`
	About          string               `json:"about,omitempty" bson:"about,omitempty"`
	Location       string               `json:"location,omitempty" bson:"location,omitempty"`
	Skills         []string             `json:"skills,omitempty" bson:"skills,omitempty"`
	Connections    []primitive.ObjectID `json:"connections" bson:"connections"`
	CreatedAt      time.Time            `json:"created_at" bson:"created_at"`
	UpdatedAt      time.Time            `json:"updated_at" bson:"updated_at"`
}

// UserCompact is the subset of profile fields safe to expose to other users.
type UserCompact struct {
	ID             primitive.ObjectID `json:"id"`
	Name           string             `json:"name"`
	Username       string             `json:"username"`
	Headline       string             `json:"headline"`
	ProfilePicture string             `json:"profile_picture"`
}

// ToCompact returns the public view of the user.
func (u *User) ToCompact() UserCompact {
	return UserCompact{
		ID:             u.ID,
		Name:           u.Name,
		Username:       u.Username,
		Headline:       u.Headline,
		ProfilePicture: u.ProfilePicture,
	}
}

// IsConnectedTo reports whether other is in the user's connections set.
func (u *User) IsConnectedTo(other primitive.ObjectID) bool {
	for _, id := range u.Connections {
		if id == other {
			return true
		}
	}
	return false
}

// SignupRequest defines the request body for registering a new user
type SignupRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=50"`
	Username string `json:"username" validate:"required,min=3,max=30,alphanum"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// LoginRequest defines the request body for logging in
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// UpdateProfileRequest defines the whitelisted profile fields a user may change
type UpdateProfileRequest struct {
	Name           string   `json:"name,omitempty" validate:"omitempty,min=2,max=50"`
	Username       string   `json:"username,omitempty" validate:"omitempty,min=3,max=30,alphanum"`
	Headline       string   `json:"headline,omitempty" validate:"omitempty,max=120"`
	About          string   `json:"about,omitempty" validate:"omitempty,max=2000"`
	Location       string   `json:"location,omitempty" validate:"omitempty,max=100"`
	Skills         []string `json:"skills,omitempty" validate:"omitempty,dive,min=1,max=50"`
	ProfilePicture string   `json:"profile_picture,omitempty"`
	BannerImg      string   `json:"banner_img,omitempty"`
}

// JwtCustomClaims are custom claims extending standard jwt.RegisteredClaims
type JwtCustomClaims struct {
	UserID string `json:"user_id"`
	jwt.RegisteredClaims
}
