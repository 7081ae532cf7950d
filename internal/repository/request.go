// Package repository implements the data access layer for the application.
package repository

import (
	"context"
	"errors"

	"trailfund/internal/cache"
	"trailfund/internal/models"

	"gorm.io/gorm"
)

// RequestRepository defines persistence operations for aid requests and
// their fulfillment registrations.
type RequestRepository interface {
	Create(ctx context.Context, request *models.Request) error
	GetByID(ctx context.Context, id uint) (*models.Request, error)
	List(ctx context.Context, status models.RequestStatus, limit, offset int) ([]*models.Request, error)
	ListByUser(ctx context.Context, userID uint) ([]*models.Request, error)
	Update(ctx context.Context, request *models.Request) error
	Delete(ctx context.Context, id uint) error
	AddFulfillment(ctx context.Context, fulfillment *models.RequestFulfillment) error
	Flag(ctx context.Context, flag *models.RequestFlag) error
}

type requestRepository struct {
	db *gorm.DB
}

// NewRequestRepository creates a new request repository
func NewRequestRepository(db *gorm.DB) RequestRepository {
	return &requestRepository{db: db}
}

func (r *requestRepository) Create(ctx context.Context, request *models.Request) error {
	if err := r.db.WithContext(ctx).Create(request).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.Invalidate(ctx, cache.RequestListKey)
	return nil
}

func (r *requestRepository) GetByID(ctx context.Context, id uint) (*models.Request, error) {
	var request models.Request
	if err := readDB(r.db).WithContext(ctx).
		Preload("User").
		Preload("Fulfillments").
		Preload("Fulfillments.User").
		First(&request, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Request", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &request, nil
}

func (r *requestRepository) List(ctx context.Context, status models.RequestStatus, limit, offset int) ([]*models.Request, error) {
	var requests []*models.Request
	q := readDB(r.db).WithContext(ctx).Preload("User").Preload("Fulfillments")
	if status != "" {
		q = q.Where("status = ?", status)
	}
	if err := q.Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&requests).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return requests, nil
}

func (r *requestRepository) ListByUser(ctx context.Context, userID uint) ([]*models.Request, error) {
	var requests []*models.Request
	if err := readDB(r.db).WithContext(ctx).
		Preload("Fulfillments").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&requests).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return requests, nil
}

func (r *requestRepository) Update(ctx context.Context, request *models.Request) error {
	if err := r.db.WithContext(ctx).Save(request).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateRequest(ctx, request.ID)
	return nil
}

func (r *requestRepository) Delete(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Delete(&models.Request{}, id).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateRequest(ctx, id)
	return nil
}

// AddFulfillment registers a user's offer against a request. The unique
// (request_id, user_id) index is the arbiter under concurrency: the second
// insert for the same pair surfaces as a conflict, never a duplicate row.
func (r *requestRepository) AddFulfillment(ctx context.Context, fulfillment *models.RequestFulfillment) error {
	if err := r.db.WithContext(ctx).Create(fulfillment).Error; err != nil {
		if isUniqueConstraintError(err) {
			return models.NewConflictError("You have already contacted this request.")
		}
		return models.NewInternalError(err)
	}
	cache.InvalidateRequest(ctx, fulfillment.RequestID)
	return nil
}

// Flag records a moderation flag and marks the request flagged in the same
// transaction.
func (r *requestRepository) Flag(ctx context.Context, flag *models.RequestFlag) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(flag).Error; err != nil {
			return models.NewInternalError(err)
		}
		result := tx.Model(&models.Request{}).
			Where("id = ?", flag.RequestID).
			Update("status", models.RequestStatusFlagged)
		if result.Error != nil {
			return models.NewInternalError(result.Error)
		}
		if result.RowsAffected == 0 {
			return models.NewNotFoundError("Request", flag.RequestID)
		}
		return nil
	})
	if err != nil {
		return err
	}
	cache.InvalidateRequest(ctx, flag.RequestID)
	return nil
}
