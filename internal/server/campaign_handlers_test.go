package server

import (
	"testing"

	"trailfund/internal/models"
	"trailfund/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newCampaignTestServer(
	campaignRepo *MockCampaignRepository,
	userRepo *MockUserRepository,
	notificationRepo *MockNotificationRepository,
) *fiber.App {
	app := fiber.New()
	s := &Server{campaignRepo: campaignRepo, userRepo: userRepo}

	var notifications *service.NotificationService
	if notificationRepo != nil {
		notifications = service.NewNotificationService(notificationRepo, nil)
	}
	s.campaignService = service.NewCampaignService(campaignRepo, userRepo, notifications)

	app.Post("/campaigns/:id/approve", s.ApproveCampaign)
	app.Post("/campaigns/:id/reject", s.RejectCampaign)
	app.Get("/approvals/:campaignId", s.GetApprovalHistory)
	return app
}

func TestApproveCampaign(t *testing.T) {
	tests := []struct {
		name           string
		path           string
		body           map[string]any
		mockSetup      func(campaignRepo *MockCampaignRepository, userRepo *MockUserRepository, notificationRepo *MockNotificationRepository)
		expectedStatus int
		expectDecide   bool
	}{
		{
			name: "Faculty Approves",
			path: "/campaigns/3/approve",
			body: map[string]any{"user_id": 9},
			mockSetup: func(campaignRepo *MockCampaignRepository, userRepo *MockUserRepository, notificationRepo *MockNotificationRepository) {
				userRepo.On("GetByID", mock.Anything, uint(9)).
					Return(&models.User{ID: 9, Role: models.RoleFaculty}, nil)
				campaignRepo.On("Decide", mock.Anything, uint(3), uint(9), models.ApprovalDecisionApproved, "").
					Return(&models.Campaign{ID: 3, UserID: 7, Name: "Lab Fund", Status: models.CampaignStatusApproved}, nil)
				notificationRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
			},
			expectedStatus: fiber.StatusOK,
			expectDecide:   true,
		},
		{
			name: "Student Forbidden",
			path: "/campaigns/3/approve",
			body: map[string]any{"user_id": 4},
			mockSetup: func(campaignRepo *MockCampaignRepository, userRepo *MockUserRepository, notificationRepo *MockNotificationRepository) {
				userRepo.On("GetByID", mock.Anything, uint(4)).
					Return(&models.User{ID: 4, Role: models.RoleStudent}, nil)
			},
			expectedStatus: fiber.StatusForbidden,
		},
		{
			name: "Admin Forbidden",
			path: "/campaigns/3/approve",
			body: map[string]any{"user_id": 2},
			mockSetup: func(campaignRepo *MockCampaignRepository, userRepo *MockUserRepository, notificationRepo *MockNotificationRepository) {
				userRepo.On("GetByID", mock.Anything, uint(2)).
					Return(&models.User{ID: 2, Role: models.RoleAdmin}, nil)
			},
			expectedStatus: fiber.StatusForbidden,
		},
		{
			name: "Unknown Campaign",
			path: "/campaigns/999/approve",
			body: map[string]any{"user_id": 9},
			mockSetup: func(campaignRepo *MockCampaignRepository, userRepo *MockUserRepository, notificationRepo *MockNotificationRepository) {
				userRepo.On("GetByID", mock.Anything, uint(9)).
					Return(&models.User{ID: 9, Role: models.RoleFaculty}, nil)
				campaignRepo.On("Decide", mock.Anything, uint(999), uint(9), models.ApprovalDecisionApproved, "").
					Return(nil, models.NewNotFoundError("Campaign", 999))
			},
			expectedStatus: fiber.StatusNotFound,
			expectDecide:   true,
		},
		{
			name: "Unknown Reviewer",
			path: "/campaigns/3/approve",
			body: map[string]any{"user_id": 42},
			mockSetup: func(campaignRepo *MockCampaignRepository, userRepo *MockUserRepository, notificationRepo *MockNotificationRepository) {
				userRepo.On("GetByID", mock.Anything, uint(42)).
					Return(nil, models.NewNotFoundError("User", 42))
			},
			expectedStatus: fiber.StatusNotFound,
		},
		{
			name: "Missing Actor",
			path: "/campaigns/3/approve",
			body: map[string]any{},
			mockSetup: func(campaignRepo *MockCampaignRepository, userRepo *MockUserRepository, notificationRepo *MockNotificationRepository) {
			},
			expectedStatus: fiber.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			campaignRepo := new(MockCampaignRepository)
			userRepo := new(MockUserRepository)
			notificationRepo := new(MockNotificationRepository)
			app := newCampaignTestServer(campaignRepo, userRepo, notificationRepo)
			tt.mockSetup(campaignRepo, userRepo, notificationRepo)

			resp := postJSON(t, app, tt.path, tt.body)
			defer func() { _ = resp.Body.Close() }()
			assert.Equal(t, tt.expectedStatus, resp.StatusCode)

			if !tt.expectDecide {
				campaignRepo.AssertNotCalled(t, "Decide",
					mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
			}
		})
	}
}

func TestApproveCampaignNotifiesOwner(t *testing.T) {
	campaignRepo := new(MockCampaignRepository)
	userRepo := new(MockUserRepository)
	notificationRepo := new(MockNotificationRepository)
	app := newCampaignTestServer(campaignRepo, userRepo, notificationRepo)

	userRepo.On("GetByID", mock.Anything, uint(9)).
		Return(&models.User{ID: 9, Role: models.RoleFaculty}, nil)
	campaignRepo.On("Decide", mock.Anything, uint(3), uint(9), models.ApprovalDecisionApproved, "").
		Return(&models.Campaign{ID: 3, UserID: 7, Name: "Lab Fund", Status: models.CampaignStatusApproved}, nil)
	notificationRepo.On("Create", mock.Anything, mock.MatchedBy(func(n *models.Notification) bool {
		return n.RecipientID == 7 &&
			n.Type == models.NotificationTypeCampaignApproved &&
			n.SenderID != nil && *n.SenderID == 9
	})).Return(nil)

	resp := postJSON(t, app, "/campaigns/3/approve", map[string]any{"user_id": 9})
	defer func() { _ = resp.Body.Close() }()

	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	notificationRepo.AssertExpectations(t)

	body := decodeBody(t, resp)
	assert.Equal(t, "approved", body["status"])
}

func TestRejectCampaign(t *testing.T) {
	t.Run("Faculty Rejects With Feedback", func(t *testing.T) {
		campaignRepo := new(MockCampaignRepository)
		userRepo := new(MockUserRepository)
		notificationRepo := new(MockNotificationRepository)
		app := newCampaignTestServer(campaignRepo, userRepo, notificationRepo)

		userRepo.On("GetByID", mock.Anything, uint(9)).
			Return(&models.User{ID: 9, Role: models.RoleFaculty}, nil)
		campaignRepo.On("Decide", mock.Anything, uint(3), uint(9), models.ApprovalDecisionRejected, "Needs a budget breakdown").
			Return(&models.Campaign{ID: 3, UserID: 7, Status: models.CampaignStatusRejected}, nil)

		resp := postJSON(t, app, "/campaigns/3/reject",
			map[string]any{"user_id": 9, "feedback": "Needs a budget breakdown"})
		defer func() { _ = resp.Body.Close() }()

		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		campaignRepo.AssertExpectations(t)
		notificationRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Student Forbidden", func(t *testing.T) {
		campaignRepo := new(MockCampaignRepository)
		userRepo := new(MockUserRepository)
		app := newCampaignTestServer(campaignRepo, userRepo, nil)

		userRepo.On("GetByID", mock.Anything, uint(4)).
			Return(&models.User{ID: 4, Role: models.RoleStudent}, nil)

		resp := postJSON(t, app, "/campaigns/3/reject",
			map[string]any{"user_id": 4, "feedback": "No"})
		defer func() { _ = resp.Body.Close() }()

		assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
		campaignRepo.AssertNotCalled(t, "Decide",
			mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestGetApprovalHistory(t *testing.T) {
	campaignRepo := new(MockCampaignRepository)
	userRepo := new(MockUserRepository)
	app := newCampaignTestServer(campaignRepo, userRepo, nil)

	campaignRepo.On("ApprovalHistory", mock.Anything, uint(3)).
		Return([]models.ApprovalHistory{
			{ID: 2, CampaignID: 3, Decision: models.ApprovalDecisionApproved},
			{ID: 1, CampaignID: 3, Decision: models.ApprovalDecisionRejected},
		}, nil)

	resp := getJSON(t, app, "/approvals/3")
	defer func() { _ = resp.Body.Close() }()

	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	history := decodeBodySlice(t, resp)
	require.Len(t, history, 2)
	assert.Equal(t, "approved", history[0]["decision"])
}
