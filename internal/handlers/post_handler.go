package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/proconnect-app/backend/internal/models"
	"github.com/proconnect-app/backend/internal/repositories"
	"github.com/proconnect-app/backend/pkg/media"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PostHandler handles HTTP requests related to posts and comments
type PostHandler struct {
	postRepository         repositories.PostRepository
	userRepository         repositories.UserRepository
	notificationRepository repositories.NotificationRepository
	mediaStore             MediaStore
	mailer                 Mailer
	clientURL              string
}

// NewPostHandler creates a new PostHandler
func NewPostHandler(
	postRepo repositories.PostRepository,
	userRepo repositories.UserRepository,
	notificationRepo repositories.NotificationRepository,
	mediaStore MediaStore,
	mailer Mailer,
	clientURL string,
) *PostHandler {
	return &PostHandler{
		postRepository:         postRepo,
		userRepository:         userRepo,
		notificationRepository: notificationRepo,
		mediaStore:             mediaStore,
		mailer:                 mailer,
		clientURL:              clientURL,
	}
}

// RegisterPostRoutes registers post-related routes
func (h *PostHandler) RegisterPostRoutes(g *echo.Group) {
	g.GET("/posts/", h.GetFeed)
	g.POST("/posts/create", h.CreatePost)
	g.DELETE("/posts/delete/:id", h.DeletePost)
	g.GET("/posts/:id", h.GetPost)
	g.POST("/posts/:id/comment", h.CreateComment)
}

// EnrichedComment includes the commenter's public profile
type EnrichedComment struct {
	models.Comment
	User models.UserCompact `json:"user"`
}

// EnrichedPost includes the author's and commenters' public profiles
type EnrichedPost struct {
	models.Post
	Author   models.UserCompact `json:"author"`
	Comments []EnrichedComment  `json:"comments"`
}

// GetFeed retrieves posts authored by the acting user's connections, newest
// first
func (h *PostHandler) GetFeed(c echo.Context) error {
	userID, err := actingUserID(c)
	if err != nil {
		return err
	}

	ctx := c.Request().Context()

	user, err := h.userRepository.GetUserByID(ctx, userID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Server error")
	}

	posts, err := h.postRepository.GetFeed(ctx, user.Connections)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Server error")
	}

	enriched, err := h.enrichPosts(ctx, posts)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Server error")
	}
	return c.JSON(http.StatusOK, enriched)
}

// CreatePost creates a new post, uploading the image to the media store
// first when one is attached
func (h *PostHandler) CreatePost(c echo.Context) error {
	userID, err := actingUserID(c)
	if err != nil {
		return err
	}

	var req models.CreatePostRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	ctx := c.Request().Context()

	post := &models.Post{
		AuthorID: userID,
		Content:  req.Content,
	}

	if req.Image != "" {
		imageURL, err := h.mediaStore.Upload(ctx, req.Image)
		if err != nil {
			log.Printf("Error uploading post image: %v", err)
			return echo.NewHTTPError(http.StatusInternalServerError, "Failed to upload image")
		}
		post.Image = imageURL
	}

	if err := h.postRepository.CreatePost(ctx, post); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Server error")
	}

	return c.JSON(http.StatusCreated, post)
}

// DeletePost deletes the acting user's own post, removing the hosted image
// best-effort first
func (h *PostHandler) DeletePost(c echo.Context) error {
	userID, err := actingUserID(c)
	if err != nil {
		return err
	}

	postID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid post ID")
	}

	ctx := c.Request().Context()

	post, err := h.postRepository.GetPostByID(ctx, postID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Post not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Server error")
	}

	if post.AuthorID != userID {
		return echo.NewHTTPError(http.StatusForbidden, "You cannot delete this post")
	}

	if post.Image != "" {
		if err := h.mediaStore.Destroy(ctx, media.PublicIDFromURL(post.Image)); err != nil {
			log.Printf("Error deleting post image: %v", err)
		}
	}

	if err := h.postRepository.DeletePost(ctx, postID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Post not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Server error")
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "Post deleted successfully"})
}

// GetPost retrieves a single post enriched with author and commenter
// profiles
func (h *PostHandler) GetPost(c echo.Context) error {
	if _, err := actingUserID(c); err != nil {
		return err
	}

	postID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid post ID")
	}

	ctx := c.Request().Context()

	post, err := h.postRepository.GetPostByID(ctx, postID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Post not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Server error")
	}

	enriched, err := h.enrichPosts(ctx, []models.Post{*post})
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Server error")
	}
	return c.JSON(http.StatusOK, enriched[0])
}

// CreateComment appends a comment to the post. When the commenter is not
// the author, the author gets a notification and an email.
func (h *PostHandler) CreateComment(c echo.Context) error {
	userID, err := actingUserID(c)
	if err != nil {
		return err
	}

	postID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid post ID")
	}

	var req models.CreateCommentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	ctx := c.Request().Context()

	comment := models.Comment{
		UserID:    userID,
		Content:   req.Content,
		CreatedAt: time.Now(),
	}

	post, err := h.postRepository.AddComment(ctx, postID, comment)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Post not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Server error")
	}

	if post.AuthorID != userID {
		notification := &models.Notification{
			RecipientID:   post.AuthorID.Hex(),
			Type:          models.NotificationTypeComment,
			RelatedUserID: userID.Hex(),
			RelatedPostID: post.ID.Hex(),
		}
		if err := h.notificationRepository.CreateNotification(notification); err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, "Server error")
		}

		h.sendCommentEmail(ctx, post, userID, req.Content)
	}

	return c.JSON(http.StatusOK, post)
}

// sendCommentEmail emails the post author about a new comment. Failures are
// logged, never surfaced.
func (h *PostHandler) sendCommentEmail(ctx context.Context, post *models.Post, commenterID primitive.ObjectID, comment string) {
	author, err := h.userRepository.GetUserByID(ctx, post.AuthorID)
	if err != nil {
		log.Printf("Error loading author for comment email: %v", err)
		return
	}
	commenter, err := h.userRepository.GetUserByID(ctx, commenterID)
	if err != nil {
		log.Printf("Error loading commenter for comment email: %v", err)
		return
	}

	postURL := h.clientURL + "/post/" + post.ID.Hex()
	go func(email, authorName, commenterName, postURL, comment string) {
		if err := h.mailer.SendCommentNotificationEmail(context.Background(), email, authorName, commenterName, postURL, comment); err != nil {
			log.Printf("Error sending comment notification email: %v", err)
		}
	}(author.Email, author.Name, commenter.Name, postURL, comment)
}

// enrichPosts joins author and commenter public profiles onto the posts.
func (h *PostHandler) enrichPosts(ctx context.Context, posts []models.Post) ([]EnrichedPost, error) {
	idSet := make(map[primitive.ObjectID]struct{})
	for _, post := range posts {
		idSet[post.AuthorID] = struct{}{}
		for _, comment := range post.Comments {
			idSet[comment.UserID] = struct{}{}
		}
	}
	ids := make([]primitive.ObjectID, 0, len(idSet))
	for id := range idSet {
		ids = append(ids, id)
	}

	users, err := h.userRepository.GetUsersByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	compactByID := make(map[primitive.ObjectID]models.UserCompact, len(users))
	for i := range users {
		compactByID[users[i].ID] = users[i].ToCompact()
	}

	enriched := make([]EnrichedPost, len(posts))
	for i, post := range posts {
		comments := make([]EnrichedComment, len(post.Comments))
		for j, comment := range post.Comments {
			comments[j] = EnrichedComment{Comment: comment, User: compactByID[comment.UserID]}
		}
		enriched[i] = EnrichedPost{
			Post:     post,
			Author:   compactByID[post.AuthorID],
			Comments: comments,
		}
	}
	return enriched, nil
}
