package handlers

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/proconnect-app/backend/internal/models"
	"github.com/proconnect-app/backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Suggestion listing is bounded; policy is simply the newest users not
// already in the network.
const suggestionLimit = 5

// UserHandler handles HTTP requests related to user profiles
type UserHandler struct {
	userRepository repositories.UserRepository
	mediaStore     MediaStore
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(userRepo repositories.UserRepository, mediaStore MediaStore) *UserHandler {
	return &UserHandler{userRepository: userRepo, mediaStore: mediaStore}
}

// RegisterUserRoutes registers user profile-related routes
func (h *UserHandler) RegisterUserRoutes(g *echo.Group) {
	g.GET("/users/suggestions", h.GetSuggestions)
	g.PUT("/users/profile", h.UpdateProfile)
	g.GET("/users/:username", h.GetPublicProfile)
}

// GetSuggestions retrieves users the acting user might want to connect with
func (h *UserHandler) GetSuggestions(c echo.Context) error {
	userID, err := actingUserID(c)
	if err != nil {
		return err
	}

	ctx := c.Request().Context()

	user, err := h.userRepository.GetUserByID(ctx, userID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Server error")
	}

	excludeIDs := append(append([]primitive.ObjectID{}, user.Connections...), user.ID)
	suggestions, err := h.userRepository.GetSuggestions(ctx, excludeIDs, suggestionLimit)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Server error")
	}

	compacts := make([]models.UserCompact, len(suggestions))
	for i := range suggestions {
		compacts[i] = suggestions[i].ToCompact()
	}

	return c.JSON(http.StatusOK, compacts)
}

// GetPublicProfile retrieves a user's public profile by username
func (h *UserHandler) GetPublicProfile(c echo.Context) error {
	if _, err := actingUserID(c); err != nil {
		return err
	}

	user, err := h.userRepository.GetUserByUsername(c.Request().Context(), c.Param("username"))
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "User not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Server error")
	}

	return c.JSON(http.StatusOK, user)
}

// UpdateProfile updates the whitelisted profile fields of the acting user.
// Picture fields sent as data URIs are uploaded to the media store first.
func (h *UserHandler) UpdateProfile(c echo.Context) error {
	userID, err := actingUserID(c)
	if err != nil {
		return err
	}

	var req models.UpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	ctx := c.Request().Context()

	fields := bson.M{}
	if req.Name != "" {
		fields["name"] = req.Name
	}
	if req.Username != "" {
		fields["username"] = req.Username
	}
	if req.Headline != "" {
		fields["headline"] = req.Headline
	}
	if req.About != "" {
		fields["about"] = req.About
	}
	if req.Location != "" {
		fields["location"] = req.Location
	}
	if req.Skills != nil {
		fields["skills"] = req.Skills
	}

	if req.ProfilePicture != "" {
		url, err := h.uploadIfDataURI(c, req.ProfilePicture)
		if err != nil {
			return err
		}
		fields["profile_picture"] = url
	}
	if req.BannerImg != "" {
		url, err := h.uploadIfDataURI(c, req.BannerImg)
		if err != nil {
			return err
		}
		fields["banner_img"] = url
	}

	if len(fields) == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "No updatable fields provided")
	}

	user, err := h.userRepository.UpdateProfile(ctx, userID, fields)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "User not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Server error")
	}

	return c.JSON(http.StatusOK, user)
}

func (h *UserHandler) uploadIfDataURI(c echo.Context, value string) (string, error) {
	if !strings.HasPrefix(value, "data:") {
		return value, nil
	}
	url, err := h.mediaStore.Upload(c.Request().Context(), value)
	if err != nil {
		log.Printf("Error uploading profile image: %v", err)
		return "", echo.NewHTTPError(http.StatusInternalServerError, "Failed to upload image")
	}
	return url, nil
}
