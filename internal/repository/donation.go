// Package repository implements the data access layer for the application.
package repository

import (
	"context"

	"trailfund/internal/models"

	"gorm.io/gorm"
)

// DonationRepository defines persistence operations for donation records.
type DonationRepository interface {
	Create(ctx context.Context, donation *models.Donation) error
	ListByUser(ctx context.Context, userID uint) ([]*models.Donation, error)
	ListByCampaign(ctx context.Context, campaignID uint) ([]*models.Donation, error)
	ListByRequest(ctx context.Context, requestID uint) ([]*models.Donation, error)
	TotalForCampaign(ctx context.Context, campaignID uint) (float64, error)
}

type donationRepository struct {
	db *gorm.DB
}

// NewDonationRepository creates a new donation repository
func NewDonationRepository(db *gorm.DB) DonationRepository {
	return &donationRepository{db: db}
}

func (r *donationRepository) Create(ctx context.Context, donation *models.Donation) error {
	if err := r.db.WithContext(ctx).Create(donation).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *donationRepository) ListByUser(ctx context.Context, userID uint) ([]*models.Donation, error) {
	var donations []*models.Donation
	if err := readDB(r.db).WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&donations).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return donations, nil
}

func (r *donationRepository) ListByCampaign(ctx context.Context, campaignID uint) ([]*models.Donation, error) {
	var donations []*models.Donation
	if err := readDB(r.db).WithContext(ctx).
		Preload("User").
		Where("campaign_id = ?", campaignID).
		Order("created_at DESC").
		Find(&donations).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return donations, nil
}

func (r *donationRepository) ListByRequest(ctx context.Context, requestID uint) ([]*models.Donation, error) {
	var donations []*models.Donation
	if err := readDB(r.db).WithContext(ctx).
		Preload("User").
		Where("request_id = ?", requestID).
		Order("created_at DESC").
		Find(&donations).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return donations, nil
}

func (r *donationRepository) TotalForCampaign(ctx context.Context, campaignID uint) (float64, error) {
	var total float64
	if err := readDB(r.db).WithContext(ctx).
		Model(&models.Donation{}).
		Where("campaign_id = ?", campaignID).
		Select("COALESCE(SUM(donation_amount), 0)").
		Scan(&total).Error; err != nil {
		return 0, models.NewInternalError(err)
	}
	return total, nil
}
