package service

import (
	"context"

	"trailfund/internal/models"
	"trailfund/internal/repository"
)

// AnnouncementService manages staff notices on the community feed.
type AnnouncementService struct {
	announcementRepo repository.AnnouncementRepository
	userRepo         repository.UserRepository
}

// NewAnnouncementService returns a new AnnouncementService.
func NewAnnouncementService(announcementRepo repository.AnnouncementRepository, userRepo repository.UserRepository) *AnnouncementService {
	return &AnnouncementService{
		announcementRepo: announcementRepo,
		userRepo:         userRepo,
	}
}

// PostAnnouncement creates an announcement. Only faculty and admins may
// post.
func (s *AnnouncementService) PostAnnouncement(ctx context.Context, authorID uint, title, content string, pinned bool) (*models.Announcement, error) {
	if title == "" {
		return nil, models.NewValidationError("Title is required")
	}
	if content == "" {
		return nil, models.NewValidationError("Content is required")
	}

	author, err := s.userRepo.GetByID(ctx, authorID)
	if err != nil {
		return nil, err
	}
	if author.Role != models.RoleFaculty && author.Role != models.RoleAdmin {
		return nil, models.NewForbiddenError("Only faculty or admins can post announcements")
	}

	announcement := &models.Announcement{
		UserID:   authorID,
		Title:    title,
		Content:  content,
		IsPinned: pinned,
	}
	if err := s.announcementRepo.Create(ctx, announcement); err != nil {
		return nil, err
	}

	return announcement, nil
}

// ListAnnouncements returns announcements with pinned entries first.
func (s *AnnouncementService) ListAnnouncements(ctx context.Context) ([]*models.Announcement, error) {
	return s.announcementRepo.List(ctx)
}

// DeleteAnnouncement removes an announcement. Admin only.
func (s *AnnouncementService) DeleteAnnouncement(ctx context.Context, adminID, announcementID uint) error {
	admin, err := s.userRepo.GetByID(ctx, adminID)
	if err != nil {
		return err
	}
	if admin.Role != models.RoleAdmin {
		return models.NewForbiddenError("Only admins can delete announcements")
	}
	return s.announcementRepo.Delete(ctx, announcementID)
}
