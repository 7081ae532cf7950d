// Package repository implements the data access layer for the application.
package repository

import (
	"context"
	"errors"

	"trailfund/internal/models"

	"gorm.io/gorm"
)

// FriendRepository defines the interface for friendship data operations.
// A friendship pair is stored as exactly one row regardless of direction.
type FriendRepository interface {
	Create(ctx context.Context, friendship *models.Friendship) error
	GetByID(ctx context.Context, id uint) (*models.Friendship, error)
	GetByUsers(ctx context.Context, userID1, userID2 uint) (*models.Friendship, error)
	ListFriends(ctx context.Context, userID uint) ([]models.User, error)
	PendingFor(ctx context.Context, userID uint) ([]models.Friendship, error)
	SentBy(ctx context.Context, userID uint) ([]models.Friendship, error)
	Accept(ctx context.Context, requesterID, addresseeID uint) error
	Remove(ctx context.Context, userID1, userID2 uint) error
}

type friendRepository struct {
	db *gorm.DB
}

// NewFriendRepository creates a new friend repository
func NewFriendRepository(db *gorm.DB) FriendRepository {
	return &friendRepository{db: db}
}

func (r *friendRepository) Create(ctx context.Context, friendship *models.Friendship) error {
	if err := r.db.WithContext(ctx).Create(friendship).Error; err != nil {
		if isUniqueConstraintError(err) {
			return models.NewConflictError("Friend request already sent")
		}
		return models.NewInternalError(err)
	}
	return nil
}

func (r *friendRepository) GetByID(ctx context.Context, id uint) (*models.Friendship, error) {
	var friendship models.Friendship
	if err := readDB(r.db).WithContext(ctx).
		Preload("Requester").Preload("Addressee").
		First(&friendship, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Friendship", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &friendship, nil
}

// GetByUsers finds the friendship row for a pair in either direction.
// Returns nil, nil when no relationship exists.
func (r *friendRepository) GetByUsers(ctx context.Context, userID1, userID2 uint) (*models.Friendship, error) {
	var friendship models.Friendship
	if err := readDB(r.db).WithContext(ctx).
		Where("(requester_id = ? AND addressee_id = ?) OR (requester_id = ? AND addressee_id = ?)",
			userID1, userID2, userID2, userID1).
		First(&friendship).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &friendship, nil
}

func (r *friendRepository) ListFriends(ctx context.Context, userID uint) ([]models.User, error) {
	var users []models.User
	if err := readDB(r.db).WithContext(ctx).
		Table("users").
		Joins("JOIN friendships f ON (users.id = f.requester_id OR users.id = f.addressee_id)").
		Where("f.status = ? AND (f.requester_id = ? OR f.addressee_id = ?) AND users.id != ?",
			models.FriendshipStatusAccepted, userID, userID, userID).
		Find(&users).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return users, nil
}

// PendingFor returns pending requests where the user is the addressee.
func (r *friendRepository) PendingFor(ctx context.Context, userID uint) ([]models.Friendship, error) {
	var friendships []models.Friendship
	if err := readDB(r.db).WithContext(ctx).
		Where("addressee_id = ? AND status = ?", userID, models.FriendshipStatusPending).
		Preload("Requester").
		Find(&friendships).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return friendships, nil
}

// SentBy returns pending requests where the user is the requester.
func (r *friendRepository) SentBy(ctx context.Context, userID uint) ([]models.Friendship, error) {
	var friendships []models.Friendship
	if err := readDB(r.db).WithContext(ctx).
		Where("requester_id = ? AND status = ?", userID, models.FriendshipStatusPending).
		Preload("Addressee").
		Find(&friendships).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return friendships, nil
}

// Accept flips a pending request to accepted. The WHERE clause pins the
// direction and the pending status so a request can only be accepted by its
// addressee and only once; zero rows affected maps to not found.
func (r *friendRepository) Accept(ctx context.Context, requesterID, addresseeID uint) error {
	result := r.db.WithContext(ctx).
		Model(&models.Friendship{}).
		Where("requester_id = ? AND addressee_id = ? AND status = ?",
			requesterID, addresseeID, models.FriendshipStatusPending).
		Update("status", models.FriendshipStatusAccepted)
	if result.Error != nil {
		return models.NewInternalError(result.Error)
	}
	if result.RowsAffected == 0 {
		return models.NewNotFoundMessage("No pending friend request from this user")
	}
	return nil
}

// Remove deletes the friendship row for the pair in either direction. It
// serves both unfriending and rejecting a pending request.
func (r *friendRepository) Remove(ctx context.Context, userID1, userID2 uint) error {
	result := r.db.WithContext(ctx).
		Where("(requester_id = ? AND addressee_id = ?) OR (requester_id = ? AND addressee_id = ?)",
			userID1, userID2, userID2, userID1).
		Delete(&models.Friendship{})
	if result.Error != nil {
		return models.NewInternalError(result.Error)
	}
	if result.RowsAffected == 0 {
		return models.NewNotFoundMessage("No friendship with this user")
	}
	return nil
}
