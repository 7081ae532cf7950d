// Package repository implements the data access layer for the application.
package repository

import (
	"context"

	"trailfund/internal/cache"
	"trailfund/internal/models"

	"gorm.io/gorm"
)

// AnnouncementRepository defines persistence operations for announcements.
type AnnouncementRepository interface {
	Create(ctx context.Context, announcement *models.Announcement) error
	List(ctx context.Context) ([]*models.Announcement, error)
	Delete(ctx context.Context, id uint) error
}

type announcementRepository struct {
	db *gorm.DB
}

// NewAnnouncementRepository creates a new announcement repository
func NewAnnouncementRepository(db *gorm.DB) AnnouncementRepository {
	return &announcementRepository{db: db}
}

func (r *announcementRepository) Create(ctx context.Context, announcement *models.Announcement) error {
	if err := r.db.WithContext(ctx).Create(announcement).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.Invalidate(ctx, cache.AnnouncementsListKey)
	return nil
}

// List returns announcements with pinned entries first, newest first within
// each group.
func (r *announcementRepository) List(ctx context.Context) ([]*models.Announcement, error) {
	var announcements []*models.Announcement
	err := cache.Aside(ctx, cache.AnnouncementsListKey, &announcements, cache.AnnouncementsTTL, func() error {
		if err := readDB(r.db).WithContext(ctx).
			Preload("User").
			Order("is_pinned DESC, created_at DESC").
			Find(&announcements).Error; err != nil {
			return models.NewInternalError(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return announcements, nil
}

func (r *announcementRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.Announcement{}, id)
	if result.Error != nil {
		return models.NewInternalError(result.Error)
	}
	if result.RowsAffected == 0 {
		return models.NewNotFoundError("Announcement", id)
	}
	cache.Invalidate(ctx, cache.AnnouncementsListKey)
	return nil
}
