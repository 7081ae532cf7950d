package service

import (
	"context"
	"fmt"

	"trailfund/internal/featureflags"
	"trailfund/internal/models"
	"trailfund/internal/repository"
)

// FriendService provides friend-request and friendship business logic.
type FriendService struct {
	friendRepo    repository.FriendRepository
	userRepo      repository.UserRepository
	notifications *NotificationService
	flags         *featureflags.Manager
}

// NewFriendService returns a new FriendService. notifications and flags may
// be nil; friend-request notifications are only emitted when the
// friend_request_notifications flag is enabled.
func NewFriendService(
	friendRepo repository.FriendRepository,
	userRepo repository.UserRepository,
	notifications *NotificationService,
	flags *featureflags.Manager,
) *FriendService {
	return &FriendService{
		friendRepo:    friendRepo,
		userRepo:      userRepo,
		notifications: notifications,
		flags:         flags,
	}
}

// SendFriendRequest sends a friend request from requesterID to targetID.
func (s *FriendService) SendFriendRequest(ctx context.Context, requesterID, targetID uint) (*models.Friendship, error) {
	if requesterID == targetID {
		return nil, models.NewValidationError("Cannot send friend request to yourself")
	}

	if _, err := s.userRepo.GetByID(ctx, targetID); err != nil {
		return nil, err
	}

	existing, err := s.friendRepo.GetByUsers(ctx, requesterID, targetID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		switch existing.Status {
		case models.FriendshipStatusAccepted:
			return nil, models.NewConflictError("You are already friends")
		case models.FriendshipStatusPending:
			if existing.RequesterID == requesterID {
				return nil, models.NewConflictError("Friend request already sent")
			}
			return nil, models.NewConflictError("You already have a pending friend request from this user")
		}
	}

	friendship := &models.Friendship{
		RequesterID: requesterID,
		AddresseeID: targetID,
		Status:      models.FriendshipStatusPending,
	}
	if err := s.friendRepo.Create(ctx, friendship); err != nil {
		return nil, err
	}

	s.notifyFriendRequest(ctx, requesterID, targetID, friendship.ID)

	return s.friendRepo.GetByID(ctx, friendship.ID)
}

// notifyFriendRequest emits a friend_request notification only when the
// feature flag is on. The baseline behavior emits nothing; the flag exists
// because the notification type is declared in the schema but unused.
func (s *FriendService) notifyFriendRequest(ctx context.Context, requesterID, targetID, friendshipID uint) {
	if s.notifications == nil || s.flags == nil {
		return
	}
	if !s.flags.Enabled(featureflags.FriendRequestNotifications, targetID) {
		return
	}

	requester, err := s.userRepo.GetByID(ctx, requesterID)
	if err != nil {
		return
	}

	// Notification failure must not fail the friend request itself.
	_ = s.notifications.Notify(ctx, &models.Notification{
		RecipientID: targetID,
		SenderID:    &requesterID,
		Type:        models.NotificationTypeFriendRequest,
		Message:     fmt.Sprintf("%s sent you a friend request", requester.Username),
		RelatedID:   &friendshipID,
	})
}

// AcceptFriendRequest accepts the pending request from requesterID addressed
// to addresseeID. Both users see each other as friends once the single
// friendship row flips to accepted.
func (s *FriendService) AcceptFriendRequest(ctx context.Context, addresseeID, requesterID uint) (*models.Friendship, error) {
	if err := s.friendRepo.Accept(ctx, requesterID, addresseeID); err != nil {
		return nil, err
	}
	return s.friendRepo.GetByUsers(ctx, requesterID, addresseeID)
}

// RejectFriendRequest removes the pending request from requesterID addressed
// to addresseeID. Rejecting an already-removed request returns NotFound.
func (s *FriendService) RejectFriendRequest(ctx context.Context, addresseeID, requesterID uint) (*models.Friendship, error) {
	existing, err := s.friendRepo.GetByUsers(ctx, requesterID, addresseeID)
	if err != nil {
		return nil, err
	}
	if existing == nil || existing.Status != models.FriendshipStatusPending || existing.RequesterID != requesterID {
		return nil, models.NewNotFoundMessage("No pending friend request from this user")
	}

	if err := s.friendRepo.Remove(ctx, requesterID, addresseeID); err != nil {
		return nil, err
	}
	return existing, nil
}

// GetFriends returns the accepted friends of the user.
func (s *FriendService) GetFriends(ctx context.Context, userID uint) ([]models.User, error) {
	return s.friendRepo.ListFriends(ctx, userID)
}

// GetPendingRequests returns pending requests addressed to the user.
func (s *FriendService) GetPendingRequests(ctx context.Context, userID uint) ([]models.Friendship, error) {
	return s.friendRepo.PendingFor(ctx, userID)
}

// GetSentRequests returns pending requests the user has sent.
func (s *FriendService) GetSentRequests(ctx context.Context, userID uint) ([]models.Friendship, error) {
	return s.friendRepo.SentBy(ctx, userID)
}
