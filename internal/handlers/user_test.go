package handlers

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/proconnect-app/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type userFixture struct {
	users   *fakeUserRepo
	media   *fakeMediaStore
	handler *UserHandler
}

func newUserFixture() *userFixture {
	users := newFakeUserRepo()
	store := &fakeMediaStore{}
	return &userFixture{
		users:   users,
		media:   store,
		handler: NewUserHandler(users, store),
	}
}

func (f *userFixture) addUser(name, username string, createdAt time.Time) *models.User {
	return f.users.add(&models.User{
		Name:      name,
		Username:  username,
		Email:     username + "@example.com",
		CreatedAt: createdAt,
	})
}

func TestGetSuggestions(t *testing.T) {
	f := newUserFixture()
	base := time.Now()
	alice := f.addUser("Alice", "alice", base)
	bob := f.addUser("Bob", "bob", base.Add(time.Minute))
	for i := 0; i < 7; i++ {
		f.addUser("User", "user"+string(rune('a'+i)), base.Add(time.Duration(i+2)*time.Minute))
	}
	require.NoError(t, f.users.AddConnection(t.Context(), alice.ID, bob.ID))
	require.NoError(t, f.users.AddConnection(t.Context(), bob.ID, alice.ID))

	c, rec := newTestContext(http.MethodGet, "", alice.ID)
	require.NoError(t, f.handler.GetSuggestions(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var suggestions []models.UserCompact
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &suggestions))
	require.Len(t, suggestions, 5)
	for _, s := range suggestions {
		assert.NotEqual(t, alice.ID, s.ID, "suggestions must not include the acting user")
		assert.NotEqual(t, bob.ID, s.ID, "suggestions must not include existing connections")
	}
}

func TestGetPublicProfile(t *testing.T) {
	t.Run("returns the profile without the password", func(t *testing.T) {
		f := newUserFixture()
		alice := f.addUser("Alice", "alice", time.Now())
		alice.Headline = "Engineer"
		alice.Password = "hashed-secret"

		c, rec := newTestContext(http.MethodGet, "", alice.ID)
		c.SetParamNames("username")
		c.SetParamValues("alice")
		require.NoError(t, f.handler.GetPublicProfile(c))
		assert.Equal(t, http.StatusOK, rec.Code)

		var body map[string]interface{}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "Alice", body["name"])
		assert.Equal(t, "Engineer", body["headline"])
		assert.NotContains(t, body, "password")
	})

	t.Run("returns not found for an unknown username", func(t *testing.T) {
		f := newUserFixture()
		alice := f.addUser("Alice", "alice", time.Now())

		c, _ := newTestContext(http.MethodGet, "", alice.ID)
		c.SetParamNames("username")
		c.SetParamValues("nobody")
		err := f.handler.GetPublicProfile(c)
		assert.Equal(t, http.StatusNotFound, httpCode(t, err))
	})
}

func TestUpdateProfile(t *testing.T) {
	t.Run("updates only the provided fields", func(t *testing.T) {
		f := newUserFixture()
		alice := f.addUser("Alice", "alice", time.Now())
		alice.About = "old about"

		c, rec := newTestContext(http.MethodPut, `{"headline":"Staff Engineer","location":"Berlin"}`, alice.ID)
		require.NoError(t, f.handler.UpdateProfile(c))
		assert.Equal(t, http.StatusOK, rec.Code)

		updated, err := f.users.GetUserByID(t.Context(), alice.ID)
		require.NoError(t, err)
		assert.Equal(t, "Staff Engineer", updated.Headline)
		assert.Equal(t, "Berlin", updated.Location)
		assert.Equal(t, "Alice", updated.Name)
		assert.Equal(t, "old about", updated.About)
	})

	t.Run("uploads data URI picture fields", func(t *testing.T) {
		f := newUserFixture()
		alice := f.addUser("Alice", "alice", time.Now())

		c, rec := newTestContext(http.MethodPut, `{"profile_picture":"data:image/png;base64,aGk="}`, alice.ID)
		require.NoError(t, f.handler.UpdateProfile(c))
		assert.Equal(t, http.StatusOK, rec.Code)
		require.Len(t, f.media.uploads, 1)

		updated, err := f.users.GetUserByID(t.Context(), alice.ID)
		require.NoError(t, err)
		assert.Contains(t, updated.ProfilePicture, "res.cloudinary.com")
	})

	t.Run("keeps an already-hosted picture URL as is", func(t *testing.T) {
		f := newUserFixture()
		alice := f.addUser("Alice", "alice", time.Now())

		c, _ := newTestContext(http.MethodPut, `{"banner_img":"https://example.com/banner.png"}`, alice.ID)
		require.NoError(t, f.handler.UpdateProfile(c))
		assert.Empty(t, f.media.uploads)

		updated, err := f.users.GetUserByID(t.Context(), alice.ID)
		require.NoError(t, err)
		assert.Equal(t, "https://example.com/banner.png", updated.BannerImg)
	})

	t.Run("rejects an empty update", func(t *testing.T) {
		f := newUserFixture()
		alice := f.addUser("Alice", "alice", time.Now())

		c, _ := newTestContext(http.MethodPut, `{}`, alice.ID)
		err := f.handler.UpdateProfile(c)
		assert.Equal(t, http.StatusBadRequest, httpCode(t, err))
	})

	t.Run("upload failure surfaces as a server error", func(t *testing.T) {
		f := newUserFixture()
		f.media.uploadErr = assert.AnError
		alice := f.addUser("Alice", "alice", time.Now())

		c, _ := newTestContext(http.MethodPut, `{"profile_picture":"data:image/png;base64,aGk="}`, alice.ID)
		err := f.handler.UpdateProfile(c)
		assert.Equal(t, http.StatusInternalServerError, httpCode(t, err))
	})
}
