package service

import (
	"context"

	"trailfund/internal/models"
	"trailfund/internal/repository"
)

// DonationService records completed contributions toward campaigns and
// requests.
type DonationService struct {
	donationRepo repository.DonationRepository
	campaignRepo repository.CampaignRepository
	requestRepo  repository.RequestRepository
}

// CreateDonationInput is the payload for recording a donation. Exactly one
// of RequestID / CampaignID must be set.
type CreateDonationInput struct {
	UserID          uint
	RequestID       *uint
	CampaignID      *uint
	DonationType    string
	DonationAmount  float64
	ItemDescription string
	DigitalMethod   string
	ServiceDetails  string
	ResourceDetails string
	MeetupLocation  string
}

// NewDonationService returns a new DonationService.
func NewDonationService(
	donationRepo repository.DonationRepository,
	campaignRepo repository.CampaignRepository,
	requestRepo repository.RequestRepository,
) *DonationService {
	return &DonationService{
		donationRepo: donationRepo,
		campaignRepo: campaignRepo,
		requestRepo:  requestRepo,
	}
}

func (s *DonationService) CreateDonation(ctx context.Context, in CreateDonationInput) (*models.Donation, error) {
	if in.DonationType == "" {
		return nil, models.NewValidationError("Donation type is required")
	}
	if (in.RequestID == nil) == (in.CampaignID == nil) {
		return nil, models.NewValidationError("Exactly one of request_id or campaign_id is required")
	}

	if in.CampaignID != nil {
		campaign, err := s.campaignRepo.GetByID(ctx, *in.CampaignID)
		if err != nil {
			return nil, err
		}
		if campaign.Status != models.CampaignStatusApproved {
			return nil, models.NewValidationError("Campaign is not accepting donations")
		}
		if in.DonationAmount > 0 {
			if campaign.MinDonation > 0 && in.DonationAmount < campaign.MinDonation {
				return nil, models.NewValidationError("Donation is below the campaign minimum")
			}
			if campaign.MaxDonation > 0 && in.DonationAmount > campaign.MaxDonation {
				return nil, models.NewValidationError("Donation is above the campaign maximum")
			}
		}
	}
	if in.RequestID != nil {
		if _, err := s.requestRepo.GetByID(ctx, *in.RequestID); err != nil {
			return nil, err
		}
	}

	donation := &models.Donation{
		UserID:          in.UserID,
		RequestID:       in.RequestID,
		CampaignID:      in.CampaignID,
		DonationType:    in.DonationType,
		DonationAmount:  in.DonationAmount,
		ItemDescription: in.ItemDescription,
		DigitalMethod:   in.DigitalMethod,
		ServiceDetails:  in.ServiceDetails,
		ResourceDetails: in.ResourceDetails,
		MeetupLocation:  in.MeetupLocation,
	}
	if err := s.donationRepo.Create(ctx, donation); err != nil {
		return nil, err
	}

	return donation, nil
}

func (s *DonationService) ListDonationsByUser(ctx context.Context, userID uint) ([]*models.Donation, error) {
	return s.donationRepo.ListByUser(ctx, userID)
}

func (s *DonationService) ListDonationsByCampaign(ctx context.Context, campaignID uint) ([]*models.Donation, error) {
	return s.donationRepo.ListByCampaign(ctx, campaignID)
}

// CampaignProgress returns the sum donated toward a campaign alongside its
// target.
func (s *DonationService) CampaignProgress(ctx context.Context, campaignID uint) (raised, target float64, err error) {
	campaign, err := s.campaignRepo.GetByID(ctx, campaignID)
	if err != nil {
		return 0, 0, err
	}
	raised, err = s.donationRepo.TotalForCampaign(ctx, campaignID)
	if err != nil {
		return 0, 0, err
	}
	return raised, campaign.TargetAmount, nil
}
