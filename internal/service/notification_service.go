package service

import (
	"context"

	"trailfund/internal/middleware"
	"trailfund/internal/models"
	"trailfund/internal/observability"
	"trailfund/internal/repository"
)

// Publisher pushes a notification to any live delivery channel (redis
// pub/sub feeding the websocket hub). The persisted row is the source of
// truth; publish failures are logged, never surfaced to the caller.
type Publisher interface {
	PublishUser(ctx context.Context, userID uint, payload any) error
}

// NotificationService persists notifications and fans them out to
// connected clients.
type NotificationService struct {
	notificationRepo repository.NotificationRepository
	publisher        Publisher
}

// NewNotificationService returns a new NotificationService. publisher may be
// nil, in which case notifications are persisted but not pushed.
func NewNotificationService(notificationRepo repository.NotificationRepository, publisher Publisher) *NotificationService {
	return &NotificationService{
		notificationRepo: notificationRepo,
		publisher:        publisher,
	}
}

// Notify persists the notification and publishes it to the recipient's
// channel.
func (s *NotificationService) Notify(ctx context.Context, notification *models.Notification) error {
	if err := s.notificationRepo.Create(ctx, notification); err != nil {
		return err
	}

	observability.NotificationsPublished.WithLabelValues(string(notification.Type)).Inc()

	if s.publisher != nil {
		if err := s.publisher.PublishUser(ctx, notification.RecipientID, notification); err != nil {
			middleware.Logger.WarnContext(ctx, "notification publish failed",
				"recipient_id", notification.RecipientID,
				"type", notification.Type,
				"error", err)
		}
	}

	return nil
}

// ListNotifications returns the recipient's notifications, newest first.
func (s *NotificationService) ListNotifications(ctx context.Context, recipientID uint, limit, offset int) ([]*models.Notification, error) {
	return s.notificationRepo.ListByRecipient(ctx, recipientID, limit, offset)
}

// UnreadCount returns the number of unread notifications for the recipient.
func (s *NotificationService) UnreadCount(ctx context.Context, recipientID uint) (int64, error) {
	return s.notificationRepo.UnreadCount(ctx, recipientID)
}

// MarkRead marks a single notification as read and returns it.
func (s *NotificationService) MarkRead(ctx context.Context, notificationID uint) (*models.Notification, error) {
	return s.notificationRepo.MarkRead(ctx, notificationID)
}

// MarkAllRead marks every notification for the recipient as read.
func (s *NotificationService) MarkAllRead(ctx context.Context, recipientID uint) error {
	return s.notificationRepo.MarkAllRead(ctx, recipientID)
}
