package service

import (
	"context"

	"trailfund/internal/models"
	"trailfund/internal/repository"
	"trailfund/internal/validation"
)

// UserService provides user profile business logic.
type UserService struct {
	userRepo   repository.UserRepository
	friendRepo repository.FriendRepository
}

// UpdateProfileInput is the payload for profile edits. Empty fields are left
// unchanged.
type UpdateProfileInput struct {
	UserID         uint
	Username       string
	Name           string
	Age            int
	College        string
	Department     string
	YearLevel      string
	Bio            string
	ProfilePicture string
}

// NewUserService returns a new UserService.
func NewUserService(userRepo repository.UserRepository, friendRepo repository.FriendRepository) *UserService {
	return &UserService{
		userRepo:   userRepo,
		friendRepo: friendRepo,
	}
}

func (s *UserService) ListUsers(ctx context.Context, limit, offset int) ([]models.User, error) {
	return s.userRepo.List(ctx, limit, offset)
}

func (s *UserService) GetUserByID(ctx context.Context, id uint) (*models.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

// GetFullProfile returns the user with friends, pending friend requests,
// and recent posts populated.
func (s *UserService) GetFullProfile(ctx context.Context, id uint) (*models.UserProfile, error) {
	const recentPostsLimit = 20

	user, err := s.userRepo.GetByIDWithPosts(ctx, id, recentPostsLimit)
	if err != nil {
		return nil, err
	}

	friends, err := s.friendRepo.ListFriends(ctx, id)
	if err != nil {
		return nil, err
	}

	pending, err := s.friendRepo.PendingFor(ctx, id)
	if err != nil {
		return nil, err
	}

	return &models.UserProfile{
		User:           *user,
		Friends:        friends,
		FriendRequests: pending,
	}, nil
}

func (s *UserService) UpdateProfile(ctx context.Context, in UpdateProfileInput) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, in.UserID)
	if err != nil {
		return nil, err
	}

	const maxBioLen = 500

	if in.Username != "" && in.Username != user.Username {
		if err := validation.ValidateUsername(in.Username); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		existing, err := s.userRepo.GetByUsername(ctx, in.Username)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, models.NewConflictError("Username already taken")
		}
		user.Username = in.Username
	}
	if in.Name != "" {
		user.Name = in.Name
	}
	if in.Age > 0 {
		user.Age = in.Age
	}
	if in.College != "" {
		user.College = in.College
	}
	if in.Department != "" {
		user.Department = in.Department
	}
	if in.YearLevel != "" {
		user.YearLevel = in.YearLevel
	}
	if in.Bio != "" {
		if len(in.Bio) > maxBioLen {
			return nil, models.NewValidationError("Bio too long (max 500 characters)")
		}
		user.Bio = in.Bio
	}
	if in.ProfilePicture != "" {
		user.ProfilePicture = in.ProfilePicture
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// UpdatePhoto stores the profile picture as an opaque base64 blob. No
// decoding or transcoding happens server side.
func (s *UserService) UpdatePhoto(ctx context.Context, userID uint, photo string) (*models.User, error) {
	if photo == "" {
		return nil, models.NewValidationError("Photo is required")
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	user.ProfilePicture = photo
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}
