package service

import (
	"context"
	"fmt"

	"trailfund/internal/models"
	"trailfund/internal/observability"
	"trailfund/internal/repository"
)

// RequestService provides aid-request business logic, including fulfillment
// registration and moderation flagging.
type RequestService struct {
	requestRepo   repository.RequestRepository
	userRepo      repository.UserRepository
	notifications *NotificationService
}

// CreateRequestInput is the payload for posting an aid request.
type CreateRequestInput struct {
	UserID        uint
	Title         string
	Description   string
	RequestType   models.RequestType
	ItemType      string
	Location      string
	MeetupTime    string
	MinDonation   float64
	MaxDonation   float64
	DigitalType   string
	AccountNumber string
	ServiceType   string
	ResourceType  string
	Urgency       models.Urgency
	Hashtags      string
}

// NewRequestService returns a new RequestService.
func NewRequestService(
	requestRepo repository.RequestRepository,
	userRepo repository.UserRepository,
	notifications *NotificationService,
) *RequestService {
	return &RequestService{
		requestRepo:   requestRepo,
		userRepo:      userRepo,
		notifications: notifications,
	}
}

func (s *RequestService) CreateRequest(ctx context.Context, in CreateRequestInput) (*models.Request, error) {
	if in.Title == "" {
		return nil, models.NewValidationError("Title is required")
	}
	if in.Description == "" {
		return nil, models.NewValidationError("Description is required")
	}

	switch in.RequestType {
	case models.RequestTypeCash:
		if in.MaxDonation > 0 && in.MinDonation > in.MaxDonation {
			return nil, models.NewValidationError("Minimum donation cannot exceed maximum donation")
		}
	case models.RequestTypeItem:
		if in.ItemType == "" {
			return nil, models.NewValidationError("Item type is required for item requests")
		}
	case models.RequestTypeDigital:
		if in.DigitalType == "" {
			return nil, models.NewValidationError("Digital type is required for digital requests")
		}
	case models.RequestTypeGift:
		// free-form
	case models.RequestTypeService:
		if in.ServiceType == "" {
			return nil, models.NewValidationError("Service type is required for service requests")
		}
	case models.RequestTypeResource:
		if in.ResourceType == "" {
			return nil, models.NewValidationError("Resource type is required for resource requests")
		}
	default:
		return nil, models.NewValidationError("Invalid request_type")
	}

	urgency := in.Urgency
	if urgency == "" {
		urgency = models.UrgencyGreen
	}
	switch urgency {
	case models.UrgencyGreen, models.UrgencyYellow, models.UrgencyRed:
		// valid
	default:
		return nil, models.NewValidationError("Invalid urgency")
	}

	if _, err := s.userRepo.GetByID(ctx, in.UserID); err != nil {
		return nil, err
	}

	request := &models.Request{
		UserID:        in.UserID,
		Title:         in.Title,
		Description:   in.Description,
		RequestType:   in.RequestType,
		ItemType:      in.ItemType,
		Location:      in.Location,
		MeetupTime:    in.MeetupTime,
		MinDonation:   in.MinDonation,
		MaxDonation:   in.MaxDonation,
		DigitalType:   in.DigitalType,
		AccountNumber: in.AccountNumber,
		ServiceType:   in.ServiceType,
		ResourceType:  in.ResourceType,
		Urgency:       urgency,
		Hashtags:      in.Hashtags,
		Status:        models.RequestStatusActive,
	}
	if err := s.requestRepo.Create(ctx, request); err != nil {
		return nil, err
	}

	return s.requestRepo.GetByID(ctx, request.ID)
}

func (s *RequestService) GetRequest(ctx context.Context, requestID uint) (*models.Request, error) {
	return s.requestRepo.GetByID(ctx, requestID)
}

func (s *RequestService) ListRequests(ctx context.Context, status models.RequestStatus, limit, offset int) ([]*models.Request, error) {
	return s.requestRepo.List(ctx, status, limit, offset)
}

func (s *RequestService) ListRequestsByUser(ctx context.Context, userID uint) ([]*models.Request, error) {
	return s.requestRepo.ListByUser(ctx, userID)
}

// RegisterFulfillment records userID's interest in satisfying the request.
// At most one registration per (request, user) pair; owners cannot register
// on their own request. The owner is notified when someone else registers.
func (s *RequestService) RegisterFulfillment(ctx context.Context, requestID, userID uint) (*models.Request, error) {
	request, err := s.requestRepo.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if request.UserID == userID {
		return nil, models.NewValidationError("You cannot fulfill your own request")
	}

	actor, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	fulfillment := &models.RequestFulfillment{
		RequestID: requestID,
		UserID:    userID,
		Status:    models.FulfillmentStatusPending,
	}
	if err := s.requestRepo.AddFulfillment(ctx, fulfillment); err != nil {
		observability.RequestFulfillments.WithLabelValues("rejected").Inc()
		return nil, err
	}
	observability.RequestFulfillments.WithLabelValues("registered").Inc()

	if s.notifications != nil {
		// Notification failure must not fail the registration itself.
		_ = s.notifications.Notify(ctx, &models.Notification{
			RecipientID: request.UserID,
			SenderID:    &actor.ID,
			Type:        models.NotificationTypeRequestFulfillment,
			Message:     fmt.Sprintf("%s wants to help with your request %q", actor.Username, request.Title),
			RelatedID:   &request.ID,
		})
	}

	return s.requestRepo.GetByID(ctx, requestID)
}

// FlagRequest files a moderation flag and moves the request to flagged
// status.
func (s *RequestService) FlagRequest(ctx context.Context, requestID, userID uint, reason string) error {
	if reason == "" {
		return models.NewValidationError("Reason is required")
	}
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return err
	}

	return s.requestRepo.Flag(ctx, &models.RequestFlag{
		RequestID: requestID,
		UserID:    userID,
		Reason:    reason,
	})
}
