package service

import (
	"context"

	"trailfund/internal/models"
	"trailfund/internal/repository"
)

// OrganizationService manages campus organization registration and review.
type OrganizationService struct {
	organizationRepo repository.OrganizationRepository
	userRepo         repository.UserRepository
}

// NewOrganizationService returns a new OrganizationService.
func NewOrganizationService(organizationRepo repository.OrganizationRepository, userRepo repository.UserRepository) *OrganizationService {
	return &OrganizationService{
		organizationRepo: organizationRepo,
		userRepo:         userRepo,
	}
}

func (s *OrganizationService) RegisterOrganization(ctx context.Context, representativeID uint, name, description string) (*models.Organization, error) {
	if name == "" {
		return nil, models.NewValidationError("Name is required")
	}
	if _, err := s.userRepo.GetByID(ctx, representativeID); err != nil {
		return nil, err
	}

	org := &models.Organization{
		RepresentativeUserID: representativeID,
		Name:                 name,
		Description:          description,
		Status:               models.OrganizationStatusPending,
	}
	if err := s.organizationRepo.Create(ctx, org); err != nil {
		return nil, err
	}

	return org, nil
}

func (s *OrganizationService) GetOrganization(ctx context.Context, id uint) (*models.Organization, error) {
	return s.organizationRepo.GetByID(ctx, id)
}

func (s *OrganizationService) ListOrganizations(ctx context.Context, status models.OrganizationStatus) ([]*models.Organization, error) {
	return s.organizationRepo.List(ctx, status)
}

// ReviewOrganization sets the review outcome. Faculty and admins may review.
func (s *OrganizationService) ReviewOrganization(ctx context.Context, reviewerID, orgID uint, status models.OrganizationStatus) error {
	switch status {
	case models.OrganizationStatusApproved, models.OrganizationStatusRejected:
		// valid
	default:
		return models.NewValidationError("Invalid status")
	}

	reviewer, err := s.userRepo.GetByID(ctx, reviewerID)
	if err != nil {
		return err
	}
	if reviewer.Role != models.RoleFaculty && reviewer.Role != models.RoleAdmin {
		return models.NewForbiddenError("Only faculty or admins can review organizations")
	}

	return s.organizationRepo.UpdateStatus(ctx, orgID, status)
}
