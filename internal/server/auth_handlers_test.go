package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"trailfund/internal/config"
	"trailfund/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func postJSON(t *testing.T, app *fiber.App, path string, body any) *http.Response {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	defer func() { _ = resp.Body.Close() }()
	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}

func TestSignup(t *testing.T) {
	app := fiber.New()
	mockRepo := new(MockUserRepository)

	s := &Server{
		config:   &config.Config{JWTSecret: "test_secret"},
		userRepo: mockRepo,
	}

	app.Post("/signup", s.Signup)

	tests := []struct {
		name           string
		body           map[string]any
		mockSetup      func()
		expectedStatus int
	}{
		{
			name: "Success",
			body: map[string]any{
				"username": "testuser",
				"password": "Password123!",
				"email":    "test@example.com",
				"name":     "Test User",
				"age":      21,
				"college":  "Engineering",
			},
			mockSetup: func() {
				mockRepo.On("GetByEmail", mock.Anything, "test@example.com").Return(nil, nil)
				mockRepo.On("GetByUsername", mock.Anything, "testuser").Return(nil, nil)
				mockRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name: "Duplicate Email",
			body: map[string]any{
				"username": "someoneelse",
				"password": "Password123!",
				"email":    "exists@example.com",
				"name":     "Someone Else",
			},
			mockSetup: func() {
				mockRepo.On("GetByEmail", mock.Anything, "exists@example.com").
					Return(&models.User{ID: 1}, nil)
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "Duplicate Username",
			body: map[string]any{
				"username": "takenname",
				"password": "Password123!",
				"email":    "fresh@example.com",
				"name":     "Fresh User",
			},
			mockSetup: func() {
				mockRepo.On("GetByEmail", mock.Anything, "fresh@example.com").Return(nil, nil)
				mockRepo.On("GetByUsername", mock.Anything, "takenname").
					Return(&models.User{ID: 2}, nil)
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "Weak Password",
			body: map[string]any{
				"username": "weakling",
				"password": "short",
				"email":    "weak@example.com",
				"name":     "Weak User",
			},
			mockSetup:      func() {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "Missing Name",
			body: map[string]any{
				"username": "noname",
				"password": "Password123!",
				"email":    "noname@example.com",
			},
			mockSetup:      func() {},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			resp := postJSON(t, app, "/signup", tt.body)
			defer func() { _ = resp.Body.Close() }()
			assert.Equal(t, tt.expectedStatus, resp.StatusCode)
		})
	}
}

func TestSignupResponseCarriesTokenAndUser(t *testing.T) {
	app := fiber.New()
	mockRepo := new(MockUserRepository)

	s := &Server{
		config:   &config.Config{JWTSecret: "test_secret"},
		userRepo: mockRepo,
	}
	app.Post("/signup", s.Signup)

	mockRepo.On("GetByEmail", mock.Anything, "carrie@example.com").Return(nil, nil)
	mockRepo.On("GetByUsername", mock.Anything, "carrie").Return(nil, nil)
	mockRepo.On("Create", mock.Anything, mock.Anything).Return(nil)

	resp := postJSON(t, app, "/signup", map[string]any{
		"username": "carrie",
		"password": "Password123!",
		"email":    "carrie@example.com",
		"name":     "Carrie",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.NotEmpty(t, body["token"])

	user, ok := body["user"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "carrie", user["username"])
	assert.Equal(t, string(models.RoleStudent), user["role"])
	// The password hash must never appear in a response.
	_, hasPassword := user["password"]
	assert.False(t, hasPassword)
}

func TestLogin(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("Password123!"), bcrypt.DefaultCost)
	require.NoError(t, err)

	user := &models.User{
		ID:       7,
		Username: "hiker",
		Email:    "hiker@example.com",
		Password: string(hash),
	}

	tests := []struct {
		name           string
		body           map[string]any
		mockSetup      func(m *MockUserRepository)
		expectedStatus int
		wantLoginLog   string
	}{
		{
			name: "Success By Username",
			body: map[string]any{"identifier": "hiker", "password": "Password123!"},
			mockSetup: func(m *MockUserRepository) {
				m.On("GetByIdentifier", mock.Anything, "hiker").Return(user, nil)
				m.On("RecordLogin", mock.Anything, mock.Anything).Return(nil)
			},
			expectedStatus: http.StatusOK,
			wantLoginLog:   "success",
		},
		{
			name: "Success By Email",
			body: map[string]any{"identifier": "hiker@example.com", "password": "Password123!"},
			mockSetup: func(m *MockUserRepository) {
				m.On("GetByIdentifier", mock.Anything, "hiker@example.com").Return(user, nil)
				m.On("RecordLogin", mock.Anything, mock.Anything).Return(nil)
			},
			expectedStatus: http.StatusOK,
			wantLoginLog:   "success",
		},
		{
			name: "Wrong Password",
			body: map[string]any{"identifier": "hiker", "password": "WrongPassword1!"},
			mockSetup: func(m *MockUserRepository) {
				m.On("GetByIdentifier", mock.Anything, "hiker").Return(user, nil)
				m.On("RecordLogin", mock.Anything, mock.Anything).Return(nil)
			},
			expectedStatus: http.StatusBadRequest,
			wantLoginLog:   "failed",
		},
		{
			name: "Unknown Identifier",
			body: map[string]any{"identifier": "ghost", "password": "Password123!"},
			mockSetup: func(m *MockUserRepository) {
				m.On("GetByIdentifier", mock.Anything, "ghost").Return(nil, nil)
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "Missing Fields",
			body:           map[string]any{"identifier": "hiker"},
			mockSetup:      func(m *MockUserRepository) {},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New()
			mockRepo := new(MockUserRepository)
			s := &Server{
				config:   &config.Config{JWTSecret: "test_secret"},
				userRepo: mockRepo,
			}
			app.Post("/login", s.Login)
			tt.mockSetup(mockRepo)

			resp := postJSON(t, app, "/login", tt.body)
			defer func() { _ = resp.Body.Close() }()
			assert.Equal(t, tt.expectedStatus, resp.StatusCode)

			if tt.wantLoginLog != "" {
				mockRepo.AssertCalled(t, "RecordLogin", mock.Anything,
					mock.MatchedBy(func(entry *models.LoginLog) bool {
						return entry.UserID == user.ID && entry.Status == tt.wantLoginLog
					}))
			}
		})
	}
}

func TestLoginGenericErrorMessage(t *testing.T) {
	// Wrong password and unknown identifier must be indistinguishable.
	hash, err := bcrypt.GenerateFromPassword([]byte("Password123!"), bcrypt.DefaultCost)
	require.NoError(t, err)

	app := fiber.New()
	mockRepo := new(MockUserRepository)
	s := &Server{
		config:   &config.Config{JWTSecret: "test_secret"},
		userRepo: mockRepo,
	}
	app.Post("/login", s.Login)

	mockRepo.On("GetByIdentifier", mock.Anything, "ghost").Return(nil, nil)
	mockRepo.On("GetByIdentifier", mock.Anything, "hiker").
		Return(&models.User{ID: 7, Username: "hiker", Password: string(hash)}, nil)
	mockRepo.On("RecordLogin", mock.Anything, mock.Anything).Return(nil)

	unknown := decodeBody(t, postJSON(t, app, "/login",
		map[string]any{"identifier": "ghost", "password": "Password123!"}))
	wrongPassword := decodeBody(t, postJSON(t, app, "/login",
		map[string]any{"identifier": "hiker", "password": "WrongPassword1!"}))

	assert.Equal(t, "Invalid credentials", unknown["message"])
	assert.Equal(t, unknown["message"], wrongPassword["message"])
}
