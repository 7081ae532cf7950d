package server

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"trailfund/internal/models"
	"trailfund/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newUserTestServer(userRepo *MockUserRepository, friendRepo *MockFriendRepository) *fiber.App {
	app := fiber.New()
	s := &Server{userRepo: userRepo, friendRepo: friendRepo}
	s.userService = service.NewUserService(userRepo, friendRepo)

	app.Get("/users/:id/full", s.GetFullProfile)
	app.Get("/users/:id", s.GetUser)
	app.Put("/users/:id", s.UpdateUser)
	app.Post("/users/:id/photo", s.UpdatePhoto)
	return app
}

func TestGetFullProfile(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		friendRepo := new(MockFriendRepository)
		app := newUserTestServer(userRepo, friendRepo)

		userRepo.On("GetByIDWithPosts", mock.Anything, uint(7), 20).
			Return(&models.User{ID: 7, Username: "mira"}, nil)
		friendRepo.On("ListFriends", mock.Anything, uint(7)).
			Return([]models.User{{ID: 3, Username: "sol"}}, nil)
		friendRepo.On("PendingFor", mock.Anything, uint(7)).
			Return([]models.Friendship{{ID: 11, RequesterID: 4, AddresseeID: 7, Status: models.FriendshipStatusPending}}, nil)

		resp := getJSON(t, app, "/users/7/full")
		defer func() { _ = resp.Body.Close() }()

		require.Equal(t, fiber.StatusOK, resp.StatusCode)
		body := decodeBody(t, resp)
		assert.Equal(t, "mira", body["username"])
		friends, ok := body["friends"].([]any)
		require.True(t, ok)
		assert.Len(t, friends, 1)
		requests, ok := body["friend_requests"].([]any)
		require.True(t, ok)
		assert.Len(t, requests, 1)
	})

	t.Run("Unknown User", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		friendRepo := new(MockFriendRepository)
		app := newUserTestServer(userRepo, friendRepo)

		userRepo.On("GetByIDWithPosts", mock.Anything, uint(999), 20).
			Return(nil, models.NewNotFoundError("User", 999))

		resp := getJSON(t, app, "/users/999/full")
		defer func() { _ = resp.Body.Close() }()

		assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	})
}

func TestUpdateUserUsernameConflict(t *testing.T) {
	userRepo := new(MockUserRepository)
	friendRepo := new(MockFriendRepository)
	app := newUserTestServer(userRepo, friendRepo)

	userRepo.On("GetByID", mock.Anything, uint(7)).
		Return(&models.User{ID: 7, Username: "mira"}, nil)
	userRepo.On("GetByUsername", mock.Anything, "taken_name").
		Return(&models.User{ID: 8, Username: "taken_name"}, nil)

	req := httptest.NewRequest(http.MethodPut, "/users/7",
		jsonBody(t, map[string]any{"user_id": 7, "username": "taken_name"}))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, "Username already taken", body["message"])
	userRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestUpdatePhoto(t *testing.T) {
	tests := []struct {
		name           string
		body           map[string]any
		expectedStatus int
		expectUpdate   bool
	}{
		{
			name:           "Profile Picture Field",
			body:           map[string]any{"profile_picture": "data:image/png;base64,AAAA"},
			expectedStatus: http.StatusOK,
			expectUpdate:   true,
		},
		{
			name:           "Photo Field",
			body:           map[string]any{"photo": "data:image/png;base64,BBBB"},
			expectedStatus: http.StatusOK,
			expectUpdate:   true,
		},
		{
			name:           "Missing Photo",
			body:           map[string]any{},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			userRepo := new(MockUserRepository)
			friendRepo := new(MockFriendRepository)
			app := newUserTestServer(userRepo, friendRepo)

			if tt.expectUpdate {
				userRepo.On("GetByID", mock.Anything, uint(7)).
					Return(&models.User{ID: 7, Username: "mira"}, nil)
				userRepo.On("Update", mock.Anything, mock.MatchedBy(func(u *models.User) bool {
					return u.ID == 7 && u.ProfilePicture != ""
				})).Return(nil)
			}

			resp := postJSON(t, app, "/users/7/photo", tt.body)
			defer func() { _ = resp.Body.Close() }()

			assert.Equal(t, tt.expectedStatus, resp.StatusCode)
			if !tt.expectUpdate {
				userRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
			}
		})
	}
}

func TestUpdateUserProfilePicture(t *testing.T) {
	userRepo := new(MockUserRepository)
	friendRepo := new(MockFriendRepository)
	app := newUserTestServer(userRepo, friendRepo)

	userRepo.On("GetByID", mock.Anything, uint(7)).
		Return(&models.User{ID: 7, Username: "mira"}, nil)
	userRepo.On("Update", mock.Anything, mock.MatchedBy(func(u *models.User) bool {
		return u.ProfilePicture == "data:image/png;base64,CCCC"
	})).Return(nil)

	req := httptest.NewRequest(http.MethodPut, "/users/7",
		jsonBody(t, map[string]any{"profile_picture": "data:image/png;base64,CCCC"}))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	userRepo.AssertExpectations(t)
}

func TestGetUserHidesPassword(t *testing.T) {
	userRepo := new(MockUserRepository)
	friendRepo := new(MockFriendRepository)
	app := newUserTestServer(userRepo, friendRepo)

	userRepo.On("GetByID", mock.Anything, uint(7)).
		Return(&models.User{ID: 7, Username: "mira", Password: "hashed-secret"}, nil)

	resp := getJSON(t, app, "/users/7")
	defer func() { _ = resp.Body.Close() }()

	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.NotContains(t, body, "password")
}
