package handlers

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/proconnect-app/backend/internal/models"
	"github.com/proconnect-app/backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// In-memory repository fakes mirroring the store semantics the handlers
// rely on: set-add/set-pull connections, conditional status transitions,
// ordered comment append.

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[primitive.ObjectID]*models.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[primitive.ObjectID]*models.User)}
}

func (r *fakeUserRepo) add(user *models.User) *models.User {
	r.mu.Lock()
	defer r.mu.Unlock()
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	if user.Connections == nil {
		user.Connections = []primitive.ObjectID{}
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
	}
	r.users[user.ID] = user
	return user
}

func (r *fakeUserRepo) CreateUser(_ context.Context, user *models.User) error {
	r.add(user)
	return nil
}

func copyUser(user *models.User) *models.User {
	cp := *user
	cp.Connections = append([]primitive.ObjectID{}, user.Connections...)
	return &cp
}

func (r *fakeUserRepo) GetUserByID(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return copyUser(user), nil
}

func (r *fakeUserRepo) GetUserByUsername(_ context.Context, username string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if user.Username == username {
			return copyUser(user), nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *fakeUserRepo) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if user.Email == email {
			return copyUser(user), nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *fakeUserRepo) GetUsersByIDs(_ context.Context, ids []primitive.ObjectID) ([]models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	users := []models.User{}
	for _, id := range ids {
		if user, ok := r.users[id]; ok {
			users = append(users, *copyUser(user))
		}
	}
	return users, nil
}

func (r *fakeUserRepo) UpdateProfile(_ context.Context, id primitive.ObjectID, fields bson.M) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	for key, value := range fields {
		switch key {
		case "name":
			user.Name = value.(string)
		case "username":
			user.Username = value.(string)
		case "headline":
			user.Headline = value.(string)
		case "about":
			user.About = value.(string)
		case "location":
			user.Location = value.(string)
		case "skills":
			user.Skills = value.([]string)
		case "profile_picture":
			user.ProfilePicture = value.(string)
		case "banner_img":
			user.BannerImg = value.(string)
		}
	}
	user.UpdatedAt = time.Now()
	return copyUser(user), nil
}

func (r *fakeUserRepo) AddConnection(_ context.Context, userID, otherID primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[userID]
	if !ok {
		return repositories.ErrNotFound
	}
	for _, id := range user.Connections {
		if id == otherID {
			return nil
		}
	}
	user.Connections = append(user.Connections, otherID)
	return nil
}

func (r *fakeUserRepo) RemoveConnection(_ context.Context, userID, otherID primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[userID]
	if !ok {
		return nil
	}
	connections := user.Connections[:0]
	for _, id := range user.Connections {
		if id != otherID {
			connections = append(connections, id)
		}
	}
	user.Connections = connections
	return nil
}

func (r *fakeUserRepo) GetSuggestions(_ context.Context, exclude []primitive.ObjectID, limit int64) ([]models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	excluded := make(map[primitive.ObjectID]struct{}, len(exclude))
	for _, id := range exclude {
		excluded[id] = struct{}{}
	}
	users := []models.User{}
	for _, user := range r.users {
		if _, skip := excluded[user.ID]; !skip {
			users = append(users, *copyUser(user))
		}
	}
	sort.Slice(users, func(i, j int) bool { return users[i].CreatedAt.After(users[j].CreatedAt) })
	if int64(len(users)) > limit {
		users = users[:limit]
	}
	return users, nil
}

type fakeConnectionRequestRepo struct {
	mu       sync.Mutex
	requests map[primitive.ObjectID]*models.ConnectionRequest
}

func newFakeConnectionRequestRepo() *fakeConnectionRequestRepo {
	return &fakeConnectionRequestRepo{requests: make(map[primitive.ObjectID]*models.ConnectionRequest)}
}

func (r *fakeConnectionRequestRepo) Create(_ context.Context, req *models.ConnectionRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	req.ID = primitive.NewObjectID()
	req.Status = models.StatusPending
	req.CreatedAt = time.Now()
	req.UpdatedAt = req.CreatedAt
	cp := *req
	r.requests[req.ID] = &cp
	return nil
}

func (r *fakeConnectionRequestRepo) GetByID(_ context.Context, id primitive.ObjectID) (*models.ConnectionRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	req, ok := r.requests[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	cp := *req
	return &cp, nil
}

func (r *fakeConnectionRequestRepo) FindPendingBetween(_ context.Context, a, b primitive.ObjectID) (*models.ConnectionRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, req := range r.requests {
		if req.Status != models.StatusPending {
			continue
		}
		if (req.SenderID == a && req.RecipientID == b) || (req.SenderID == b && req.RecipientID == a) {
			cp := *req
			return &cp, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *fakeConnectionRequestRepo) GetPendingForRecipient(_ context.Context, recipientID primitive.ObjectID) ([]models.ConnectionRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	requests := []models.ConnectionRequest{}
	for _, req := range r.requests {
		if req.RecipientID == recipientID && req.Status == models.StatusPending {
			requests = append(requests, *req)
		}
	}
	sort.Slice(requests, func(i, j int) bool { return requests[i].CreatedAt.After(requests[j].CreatedAt) })
	return requests, nil
}

func (r *fakeConnectionRequestRepo) TransitionStatus(_ context.Context, id primitive.ObjectID, status string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	req, ok := r.requests[id]
	if !ok || req.Status != models.StatusPending {
		return repositories.ErrInvalidState
	}
	req.Status = status
	req.UpdatedAt = time.Now()
	return nil
}

type fakePostRepo struct {
	mu    sync.Mutex
	posts map[primitive.ObjectID]*models.Post
}

func newFakePostRepo() *fakePostRepo {
	return &fakePostRepo{posts: make(map[primitive.ObjectID]*models.Post)}
}

func copyPost(post *models.Post) *models.Post {
	cp := *post
	cp.Comments = append([]models.Comment{}, post.Comments...)
	return &cp
}

func (r *fakePostRepo) CreatePost(_ context.Context, post *models.Post) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	post.ID = primitive.NewObjectID()
	if post.Comments == nil {
		post.Comments = []models.Comment{}
	}
	if post.CreatedAt.IsZero() {
		post.CreatedAt = time.Now()
	}
	post.UpdatedAt = post.CreatedAt
	r.posts[post.ID] = copyPost(post)
	return nil
}

func (r *fakePostRepo) GetPostByID(_ context.Context, id primitive.ObjectID) (*models.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	post, ok := r.posts[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return copyPost(post), nil
}

func (r *fakePostRepo) GetFeed(_ context.Context, authorIDs []primitive.ObjectID) ([]models.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	authors := make(map[primitive.ObjectID]struct{}, len(authorIDs))
	for _, id := range authorIDs {
		authors[id] = struct{}{}
	}
	posts := []models.Post{}
	for _, post := range r.posts {
		if _, ok := authors[post.AuthorID]; ok {
			posts = append(posts, *copyPost(post))
		}
	}
	sort.Slice(posts, func(i, j int) bool { return posts[i].CreatedAt.After(posts[j].CreatedAt) })
	return posts, nil
}

func (r *fakePostRepo) DeletePost(_ context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.posts[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(r.posts, id)
	return nil
}

func (r *fakePostRepo) AddComment(_ context.Context, postID primitive.ObjectID, comment models.Comment) (*models.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	post, ok := r.posts[postID]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	post.Comments = append(post.Comments, comment)
	post.UpdatedAt = time.Now()
	return copyPost(post), nil
}

type fakeNotificationRepo struct {
	mu            sync.Mutex
	notifications []*models.Notification
	nextID        uint
}

func newFakeNotificationRepo() *fakeNotificationRepo {
	return &fakeNotificationRepo{}
}

func (r *fakeNotificationRepo) CreateNotification(notification *models.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	notification.ID = r.nextID
	notification.CreatedAt = time.Now()
	cp := *notification
	r.notifications = append(r.notifications, &cp)
	return nil
}

func (r *fakeNotificationRepo) GetByRecipientID(recipientID string) ([]models.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	notifications := []models.Notification{}
	// Newest first: iterate in reverse insertion order.
	for i := len(r.notifications) - 1; i >= 0; i-- {
		if r.notifications[i].RecipientID == recipientID {
			notifications = append(notifications, *r.notifications[i])
		}
	}
	return notifications, nil
}

func (r *fakeNotificationRepo) MarkAsRead(id uint, recipientID string) (*models.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, notification := range r.notifications {
		if notification.ID == id && notification.RecipientID == recipientID {
			notification.IsRead = true
			cp := *notification
			return &cp, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *fakeNotificationRepo) DeleteNotification(id uint, recipientID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	kept := r.notifications[:0]
	for _, notification := range r.notifications {
		if !(notification.ID == id && notification.RecipientID == recipientID) {
			kept = append(kept, notification)
		}
	}
	r.notifications = kept
	return nil
}

func (r *fakeNotificationRepo) byRecipient(recipientID string) []models.Notification {
	notifications, _ := r.GetByRecipientID(recipientID)
	return notifications
}

type fakeMailer struct {
	mu       sync.Mutex
	err      error
	welcomes []string
	accepted []string
	comments []string
}

func (m *fakeMailer) SendWelcomeEmail(_ context.Context, email, _, _ string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.welcomes = append(m.welcomes, email)
	return nil
}

func (m *fakeMailer) SendConnectionAcceptedEmail(_ context.Context, email, _, _, _ string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.accepted = append(m.accepted, email)
	return nil
}

func (m *fakeMailer) SendCommentNotificationEmail(_ context.Context, email, _, _, _, _ string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.comments = append(m.comments, email)
	return nil
}

func (m *fakeMailer) acceptedEmails() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string{}, m.accepted...)
}

func (m *fakeMailer) commentEmails() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string{}, m.comments...)
}

func (m *fakeMailer) welcomeEmails() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string{}, m.welcomes...)
}

type fakeMediaStore struct {
	mu         sync.Mutex
	uploadErr  error
	destroyErr error
	uploads    []string
	destroyed  []string
}

func (s *fakeMediaStore) Upload(_ context.Context, file string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.uploadErr != nil {
		return "", s.uploadErr
	}
	s.uploads = append(s.uploads, file)
	return "https://res.cloudinary.com/test/image/upload/v1/proconnect/asset.png", nil
}

func (s *fakeMediaStore) Destroy(_ context.Context, publicID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.destroyErr != nil {
		return s.destroyErr
	}
	s.destroyed = append(s.destroyed, publicID)
	return nil
}
