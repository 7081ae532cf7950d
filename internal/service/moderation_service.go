package service

import (
	"context"

	"trailfund/internal/models"
	"trailfund/internal/repository"
)

// ModerationService handles user-filed reports and admin actions on them.
type ModerationService struct {
	reportRepo repository.ReportRepository
	userRepo   repository.UserRepository
}

// CreateReportInput is the payload for filing a report. Exactly one target
// reference should be set.
type CreateReportInput struct {
	UserID      uint
	PostID      *uint
	RequestID   *uint
	CampaignID  *uint
	Reason      string
	Description string
}

// NewModerationService returns a new ModerationService.
func NewModerationService(reportRepo repository.ReportRepository, userRepo repository.UserRepository) *ModerationService {
	return &ModerationService{
		reportRepo: reportRepo,
		userRepo:   userRepo,
	}
}

func (s *ModerationService) CreateReport(ctx context.Context, in CreateReportInput) (*models.Report, error) {
	if in.Reason == "" {
		return nil, models.NewValidationError("Reason is required")
	}

	targets := 0
	for _, ref := range []*uint{in.PostID, in.RequestID, in.CampaignID} {
		if ref != nil {
			targets++
		}
	}
	if targets != 1 {
		return nil, models.NewValidationError("Exactly one of post_id, request_id, or campaign_id is required")
	}

	report := &models.Report{
		UserID:      in.UserID,
		PostID:      in.PostID,
		RequestID:   in.RequestID,
		CampaignID:  in.CampaignID,
		Reason:      in.Reason,
		Description: in.Description,
	}
	if err := s.reportRepo.Create(ctx, report); err != nil {
		return nil, err
	}

	return report, nil
}

// ListReports returns filed reports for admin review. Only admins may list.
func (s *ModerationService) ListReports(ctx context.Context, adminID uint, limit, offset int) ([]*models.Report, error) {
	if err := s.requireAdmin(ctx, adminID); err != nil {
		return nil, err
	}
	return s.reportRepo.List(ctx, limit, offset)
}

// ResolveReport records the action taken on a report.
func (s *ModerationService) ResolveReport(ctx context.Context, adminID, reportID uint, action string) error {
	if err := s.requireAdmin(ctx, adminID); err != nil {
		return err
	}
	if action == "" {
		return models.NewValidationError("Action is required")
	}
	return s.reportRepo.UpdateAction(ctx, reportID, action)
}

func (s *ModerationService) requireAdmin(ctx context.Context, userID uint) error {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if user.Role != models.RoleAdmin {
		return models.NewForbiddenError("Only admins can moderate reports")
	}
	return nil
}
