// Package repository implements the data access layer for the application.
package repository

import (
	"context"
	"errors"
	"time"

	"trailfund/internal/cache"
	"trailfund/internal/models"

	"gorm.io/gorm"
)

// CampaignRepository defines persistence operations for campaigns and their
// approval lifecycle.
type CampaignRepository interface {
	Create(ctx context.Context, campaign *models.Campaign) error
	GetByID(ctx context.Context, id uint) (*models.Campaign, error)
	List(ctx context.Context, status models.CampaignStatus, limit, offset int) ([]*models.Campaign, error)
	ListByUser(ctx context.Context, userID uint) ([]*models.Campaign, error)
	Update(ctx context.Context, campaign *models.Campaign) error
	Delete(ctx context.Context, id uint) error
	Decide(ctx context.Context, campaignID, reviewerID uint, decision models.ApprovalDecision, feedback string) (*models.Campaign, error)
	ApprovalHistory(ctx context.Context, campaignID uint) ([]models.ApprovalHistory, error)
}

type campaignRepository struct {
	db *gorm.DB
}

// NewCampaignRepository creates a new campaign repository
func NewCampaignRepository(db *gorm.DB) CampaignRepository {
	return &campaignRepository{db: db}
}

func (r *campaignRepository) Create(ctx context.Context, campaign *models.Campaign) error {
	if err := r.db.WithContext(ctx).Create(campaign).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.Invalidate(ctx, cache.CampaignListKey)
	return nil
}

func (r *campaignRepository) GetByID(ctx context.Context, id uint) (*models.Campaign, error) {
	var campaign models.Campaign
	if err := readDB(r.db).WithContext(ctx).
		Preload("User").
		First(&campaign, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Campaign", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &campaign, nil
}

// List returns campaigns newest first, optionally filtered by status.
func (r *campaignRepository) List(ctx context.Context, status models.CampaignStatus, limit, offset int) ([]*models.Campaign, error) {
	var campaigns []*models.Campaign
	q := readDB(r.db).WithContext(ctx).Preload("User")
	if status != "" {
		q = q.Where("status = ?", status)
	}
	if err := q.Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&campaigns).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return campaigns, nil
}

func (r *campaignRepository) ListByUser(ctx context.Context, userID uint) ([]*models.Campaign, error) {
	var campaigns []*models.Campaign
	if err := readDB(r.db).WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&campaigns).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return campaigns, nil
}

func (r *campaignRepository) Update(ctx context.Context, campaign *models.Campaign) error {
	if err := r.db.WithContext(ctx).Save(campaign).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateCampaign(ctx, campaign.ID)
	return nil
}

func (r *campaignRepository) Delete(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Delete(&models.Campaign{}, id).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateCampaign(ctx, id)
	return nil
}

// Decide records a faculty review outcome. The status update and the
// approval-history insert run in one transaction; only pending campaigns can
// be decided, so a second reviewer racing on the same campaign gets not found.
func (r *campaignRepository) Decide(ctx context.Context, campaignID, reviewerID uint, decision models.ApprovalDecision, feedback string) (*models.Campaign, error) {
	var campaign models.Campaign
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		newStatus := models.CampaignStatusApproved
		if decision == models.ApprovalDecisionRejected {
			newStatus = models.CampaignStatusRejected
		}

		now := time.Now()
		updates := map[string]any{
			"status":         string(newStatus),
			"admin_feedback": feedback,
			"approved_by_id": reviewerID,
			"date_approved":  now,
		}
		if decision == models.ApprovalDecisionRejected {
			updates["approved_by_id"] = nil
			updates["date_approved"] = nil
		}

		result := tx.Model(&models.Campaign{}).
			Where("id = ? AND status = ?", campaignID, models.CampaignStatusPending).
			Updates(updates)
		if result.Error != nil {
			return models.NewInternalError(result.Error)
		}
		if result.RowsAffected == 0 {
			return models.NewNotFoundMessage("No pending campaign with this id")
		}

		history := models.ApprovalHistory{
			UserID:     reviewerID,
			CampaignID: campaignID,
			Decision:   decision,
			Feedback:   feedback,
		}
		if err := tx.Create(&history).Error; err != nil {
			return models.NewInternalError(err)
		}

		return tx.Preload("User").First(&campaign, campaignID).Error
	})
	if err != nil {
		return nil, err
	}
	cache.InvalidateCampaign(ctx, campaignID)
	return &campaign, nil
}

func (r *campaignRepository) ApprovalHistory(ctx context.Context, campaignID uint) ([]models.ApprovalHistory, error) {
	var history []models.ApprovalHistory
	if err := readDB(r.db).WithContext(ctx).
		Where("campaign_id = ?", campaignID).
		Order("created_at DESC").
		Find(&history).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return history, nil
}
