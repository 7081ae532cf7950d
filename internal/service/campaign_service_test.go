package service

import (
	"context"
	"testing"

	"trailfund/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type campaignRepoStub struct {
	createFn          func(context.Context, *models.Campaign) error
	getByIDFn         func(context.Context, uint) (*models.Campaign, error)
	listFn            func(context.Context, models.CampaignStatus, int, int) ([]*models.Campaign, error)
	listByUserFn      func(context.Context, uint) ([]*models.Campaign, error)
	updateFn          func(context.Context, *models.Campaign) error
	deleteFn          func(context.Context, uint) error
	decideFn          func(context.Context, uint, uint, models.ApprovalDecision, string) (*models.Campaign, error)
	approvalHistoryFn func(context.Context, uint) ([]models.ApprovalHistory, error)
}

func (s *campaignRepoStub) Create(ctx context.Context, campaign *models.Campaign) error {
	return s.createFn(ctx, campaign)
}
func (s *campaignRepoStub) GetByID(ctx context.Context, id uint) (*models.Campaign, error) {
	return s.getByIDFn(ctx, id)
}
func (s *campaignRepoStub) List(ctx context.Context, status models.CampaignStatus, limit, offset int) ([]*models.Campaign, error) {
	return s.listFn(ctx, status, limit, offset)
}
func (s *campaignRepoStub) ListByUser(ctx context.Context, userID uint) ([]*models.Campaign, error) {
	return s.listByUserFn(ctx, userID)
}
func (s *campaignRepoStub) Update(ctx context.Context, campaign *models.Campaign) error {
	return s.updateFn(ctx, campaign)
}
func (s *campaignRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}
func (s *campaignRepoStub) Decide(ctx context.Context, campaignID, reviewerID uint, decision models.ApprovalDecision, feedback string) (*models.Campaign, error) {
	return s.decideFn(ctx, campaignID, reviewerID, decision, feedback)
}
func (s *campaignRepoStub) ApprovalHistory(ctx context.Context, campaignID uint) ([]models.ApprovalHistory, error) {
	return s.approvalHistoryFn(ctx, campaignID)
}

func noopCampaignRepo() *campaignRepoStub {
	return &campaignRepoStub{
		createFn: func(context.Context, *models.Campaign) error { return nil },
		getByIDFn: func(_ context.Context, id uint) (*models.Campaign, error) {
			return &models.Campaign{ID: id}, nil
		},
		listFn: func(context.Context, models.CampaignStatus, int, int) ([]*models.Campaign, error) {
			return nil, nil
		},
		listByUserFn: func(context.Context, uint) ([]*models.Campaign, error) { return nil, nil },
		updateFn:     func(context.Context, *models.Campaign) error { return nil },
		deleteFn:     func(context.Context, uint) error { return nil },
		decideFn: func(_ context.Context, campaignID, reviewerID uint, decision models.ApprovalDecision, feedback string) (*models.Campaign, error) {
			return &models.Campaign{ID: campaignID}, nil
		},
		approvalHistoryFn: func(context.Context, uint) ([]models.ApprovalHistory, error) { return nil, nil },
	}
}

func facultyUserRepo() *userRepoStub {
	users := noopUserRepo()
	users.getByIDFn = func(_ context.Context, id uint) (*models.User, error) {
		return &models.User{ID: id, Username: "prof", Role: models.RoleFaculty}, nil
	}
	return users
}

func TestCampaignServiceCreateValidation(t *testing.T) {
	svc := NewCampaignService(noopCampaignRepo(), noopUserRepo(), nil)

	tests := []struct {
		name string
		in   CreateCampaignInput
	}{
		{"missing name", CreateCampaignInput{UserID: 1, Description: "d", TargetAmount: 100}},
		{"missing description", CreateCampaignInput{UserID: 1, Name: "n", TargetAmount: 100}},
		{"zero target", CreateCampaignInput{UserID: 1, Name: "n", Description: "d"}},
		{"negative target", CreateCampaignInput{UserID: 1, Name: "n", Description: "d", TargetAmount: -5}},
		{"min above max", CreateCampaignInput{UserID: 1, Name: "n", Description: "d", TargetAmount: 100, MinDonation: 50, MaxDonation: 10}},
		{"bad donation type", CreateCampaignInput{UserID: 1, Name: "n", Description: "d", TargetAmount: 100, DonationType: "Crypto"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateCampaign(context.Background(), tt.in)
			require.Error(t, err)
			assert.Equal(t, models.ErrCodeValidation, models.ErrorCodeOf(err))
		})
	}
}

func TestCampaignServiceApproveRequiresFaculty(t *testing.T) {
	for _, role := range []models.UserRole{models.RoleStudent, models.RoleAdmin} {
		t.Run(string(role), func(t *testing.T) {
			users := noopUserRepo()
			users.getByIDFn = func(_ context.Context, id uint) (*models.User, error) {
				return &models.User{ID: id, Role: role}, nil
			}

			repo := noopCampaignRepo()
			decided := false
			repo.decideFn = func(context.Context, uint, uint, models.ApprovalDecision, string) (*models.Campaign, error) {
				decided = true
				return nil, nil
			}

			svc := NewCampaignService(repo, users, nil)
			_, err := svc.ApproveCampaign(context.Background(), 5, 2)
			require.Error(t, err)
			assert.Equal(t, models.ErrCodeForbidden, models.ErrorCodeOf(err))
			assert.False(t, decided, "a non-faculty reviewer must never reach the status mutation")
		})
	}
}

func TestCampaignServiceApproveNotifiesOwner(t *testing.T) {
	repo := noopCampaignRepo()
	repo.decideFn = func(_ context.Context, campaignID, reviewerID uint, decision models.ApprovalDecision, _ string) (*models.Campaign, error) {
		assert.Equal(t, models.ApprovalDecisionApproved, decision)
		return &models.Campaign{ID: campaignID, UserID: 40, Name: "Books for All", Status: models.CampaignStatusApproved}, nil
	}

	var created *models.Notification
	notifRepo := noopNotificationRepo()
	notifRepo.createFn = func(_ context.Context, n *models.Notification) error {
		created = n
		return nil
	}

	svc := NewCampaignService(repo, facultyUserRepo(), NewNotificationService(notifRepo, nil))
	campaign, err := svc.ApproveCampaign(context.Background(), 5, 2)
	require.NoError(t, err)
	assert.Equal(t, models.CampaignStatusApproved, campaign.Status)

	require.NotNil(t, created)
	assert.EqualValues(t, 40, created.RecipientID)
	require.NotNil(t, created.SenderID)
	assert.EqualValues(t, 2, *created.SenderID)
	assert.Equal(t, models.NotificationTypeCampaignApproved, created.Type)
}

func TestCampaignServiceApproveUnknownCampaign(t *testing.T) {
	repo := noopCampaignRepo()
	repo.decideFn = func(context.Context, uint, uint, models.ApprovalDecision, string) (*models.Campaign, error) {
		return nil, models.NewNotFoundMessage("No pending campaign with this id")
	}

	svc := NewCampaignService(repo, facultyUserRepo(), nil)
	_, err := svc.ApproveCampaign(context.Background(), 5, 2)
	require.Error(t, err)
	assert.Equal(t, models.ErrCodeNotFound, models.ErrorCodeOf(err))
}

func TestCampaignServiceRejectEmitsNoNotification(t *testing.T) {
	repo := noopCampaignRepo()
	repo.decideFn = func(_ context.Context, campaignID, _ uint, decision models.ApprovalDecision, feedback string) (*models.Campaign, error) {
		assert.Equal(t, models.ApprovalDecisionRejected, decision)
		assert.Equal(t, "needs a budget breakdown", feedback)
		return &models.Campaign{ID: campaignID, Status: models.CampaignStatusRejected, AdminFeedback: feedback}, nil
	}

	notified := false
	notifRepo := noopNotificationRepo()
	notifRepo.createFn = func(context.Context, *models.Notification) error {
		notified = true
		return nil
	}

	svc := NewCampaignService(repo, facultyUserRepo(), NewNotificationService(notifRepo, nil))
	campaign, err := svc.RejectCampaign(context.Background(), 5, 2, "needs a budget breakdown")
	require.NoError(t, err)
	assert.Equal(t, models.CampaignStatusRejected, campaign.Status)
	assert.False(t, notified)
}
