// Package repository implements the data access layer for the application.
package repository

import (
	"context"
	"errors"

	"trailfund/internal/models"

	"gorm.io/gorm"
)

// OrganizationRepository defines persistence operations for campus organizations.
type OrganizationRepository interface {
	Create(ctx context.Context, org *models.Organization) error
	GetByID(ctx context.Context, id uint) (*models.Organization, error)
	List(ctx context.Context, status models.OrganizationStatus) ([]*models.Organization, error)
	UpdateStatus(ctx context.Context, id uint, status models.OrganizationStatus) error
}

type organizationRepository struct {
	db *gorm.DB
}

// NewOrganizationRepository creates a new organization repository
func NewOrganizationRepository(db *gorm.DB) OrganizationRepository {
	return &organizationRepository{db: db}
}

func (r *organizationRepository) Create(ctx context.Context, org *models.Organization) error {
	if err := r.db.WithContext(ctx).Create(org).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *organizationRepository) GetByID(ctx context.Context, id uint) (*models.Organization, error) {
	var org models.Organization
	if err := readDB(r.db).WithContext(ctx).First(&org, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Organization", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &org, nil
}

func (r *organizationRepository) List(ctx context.Context, status models.OrganizationStatus) ([]*models.Organization, error) {
	var orgs []*models.Organization
	q := readDB(r.db).WithContext(ctx)
	if status != "" {
		q = q.Where("status = ?", status)
	}
	if err := q.Order("created_at DESC").Find(&orgs).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return orgs, nil
}

func (r *organizationRepository) UpdateStatus(ctx context.Context, id uint, status models.OrganizationStatus) error {
	result := r.db.WithContext(ctx).
		Model(&models.Organization{}).
		Where("id = ?", id).
		Update("status", status)
	if result.Error != nil {
		return models.NewInternalError(result.Error)
	}
	if result.RowsAffected == 0 {
		return models.NewNotFoundError("Organization", id)
	}
	return nil
}
