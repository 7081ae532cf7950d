package service

import (
	"context"
	"fmt"

	"trailfund/internal/models"
	"trailfund/internal/observability"
	"trailfund/internal/repository"
)

// CampaignService provides campaign lifecycle business logic. Campaigns are
// created pending and require a faculty decision before going live.
type CampaignService struct {
	campaignRepo  repository.CampaignRepository
	userRepo      repository.UserRepository
	notifications *NotificationService
}

// CreateCampaignInput is the payload for creating a campaign.
type CreateCampaignInput struct {
	UserID         uint
	OrganizationID *uint
	Name           string
	Description    string
	TargetAmount   float64
	MinDonation    float64
	MaxDonation    float64
	DonationType   models.DonationType
	DesignatedSite string
	Image          string
}

// NewCampaignService returns a new CampaignService.
func NewCampaignService(
	campaignRepo repository.CampaignRepository,
	userRepo repository.UserRepository,
	notifications *NotificationService,
) *CampaignService {
	return &CampaignService{
		campaignRepo:  campaignRepo,
		userRepo:      userRepo,
		notifications: notifications,
	}
}

func (s *CampaignService) CreateCampaign(ctx context.Context, in CreateCampaignInput) (*models.Campaign, error) {
	if in.Name == "" {
		return nil, models.NewValidationError("Name is required")
	}
	if in.Description == "" {
		return nil, models.NewValidationError("Description is required")
	}
	if in.TargetAmount <= 0 {
		return nil, models.NewValidationError("Target amount must be greater than zero")
	}
	if in.MinDonation < 0 || in.MaxDonation < 0 {
		return nil, models.NewValidationError("Donation bounds cannot be negative")
	}
	if in.MaxDonation > 0 && in.MinDonation > in.MaxDonation {
		return nil, models.NewValidationError("Minimum donation cannot exceed maximum donation")
	}

	donationType := in.DonationType
	if donationType == "" {
		donationType = models.DonationTypeCash
	}
	switch donationType {
	case models.DonationTypeCash, models.DonationTypeDigital, models.DonationTypeItems:
		// valid
	default:
		return nil, models.NewValidationError("Invalid donation_type")
	}

	if _, err := s.userRepo.GetByID(ctx, in.UserID); err != nil {
		return nil, err
	}

	campaign := &models.Campaign{
		UserID:         in.UserID,
		OrganizationID: in.OrganizationID,
		Name:           in.Name,
		Description:    in.Description,
		TargetAmount:   in.TargetAmount,
		MinDonation:    in.MinDonation,
		MaxDonation:    in.MaxDonation,
		DonationType:   donationType,
		DesignatedSite: in.DesignatedSite,
		Status:         models.CampaignStatusPending,
		Image:          in.Image,
	}
	if err := s.campaignRepo.Create(ctx, campaign); err != nil {
		return nil, err
	}

	return s.campaignRepo.GetByID(ctx, campaign.ID)
}

func (s *CampaignService) GetCampaign(ctx context.Context, campaignID uint) (*models.Campaign, error) {
	return s.campaignRepo.GetByID(ctx, campaignID)
}

func (s *CampaignService) ListCampaigns(ctx context.Context, status models.CampaignStatus, limit, offset int) ([]*models.Campaign, error) {
	return s.campaignRepo.List(ctx, status, limit, offset)
}

func (s *CampaignService) ListCampaignsByUser(ctx context.Context, userID uint) ([]*models.Campaign, error) {
	return s.campaignRepo.ListByUser(ctx, userID)
}

// ApproveCampaign approves a pending campaign. The acting user's role is
// checked against the live user record, not a cached claim; only faculty
// may approve. The owner is notified on success.
func (s *CampaignService) ApproveCampaign(ctx context.Context, campaignID, reviewerID uint) (*models.Campaign, error) {
	reviewer, err := s.requireFaculty(ctx, reviewerID)
	if err != nil {
		return nil, err
	}

	campaign, err := s.campaignRepo.Decide(ctx, campaignID, reviewerID, models.ApprovalDecisionApproved, "")
	if err != nil {
		return nil, err
	}
	observability.CampaignDecisions.WithLabelValues(string(models.ApprovalDecisionApproved)).Inc()

	if s.notifications != nil {
		// Notification failure must not fail the approval itself.
		_ = s.notifications.Notify(ctx, &models.Notification{
			RecipientID: campaign.UserID,
			SenderID:    &reviewer.ID,
			Type:        models.NotificationTypeCampaignApproved,
			Message:     fmt.Sprintf("Your campaign %q has been approved", campaign.Name),
			RelatedID:   &campaign.ID,
		})
	}

	return campaign, nil
}

// RejectCampaign rejects a pending campaign with feedback for the owner.
// The same faculty gate applies; no notification is emitted on rejection.
func (s *CampaignService) RejectCampaign(ctx context.Context, campaignID, reviewerID uint, feedback string) (*models.Campaign, error) {
	if _, err := s.requireFaculty(ctx, reviewerID); err != nil {
		return nil, err
	}

	campaign, err := s.campaignRepo.Decide(ctx, campaignID, reviewerID, models.ApprovalDecisionRejected, feedback)
	if err != nil {
		return nil, err
	}
	observability.CampaignDecisions.WithLabelValues(string(models.ApprovalDecisionRejected)).Inc()

	return campaign, nil
}

// ApprovalHistory returns the decision trail for a campaign, newest first.
func (s *CampaignService) ApprovalHistory(ctx context.Context, campaignID uint) ([]models.ApprovalHistory, error) {
	return s.campaignRepo.ApprovalHistory(ctx, campaignID)
}

func (s *CampaignService) requireFaculty(ctx context.Context, userID uint) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.Role != models.RoleFaculty {
		return nil, models.NewForbiddenError("Only faculty can review campaigns")
	}
	return user, nil
}
