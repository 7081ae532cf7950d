// Package models contains data structures for the application's domain models.
package models

import (
	"time"
)

// NotificationType enumerates the events that produce a notification.
type NotificationType string

const (
	// NotificationTypeRequestFulfillment is sent to a request owner when
	// another user registers to fulfill the request.
	NotificationTypeRequestFulfillment NotificationType = "request_fulfillment"
	// NotificationTypeCampaignApproved is sent to a campaign owner when a
	// faculty reviewer approves the campaign.
	NotificationTypeCampaignApproved NotificationType = "campaign_approved"
	// NotificationTypeFriendRequest is declared in the schema but only
	// emitted when the friend_request_notifications feature flag is on;
	// the baseline behavior sends no notification for friend requests.
	NotificationTypeFriendRequest NotificationType = "friend_request"
)

// Notification is a persisted, per-recipient event record. IsRead moves
// false→true once and never back.
type Notification struct {
	ID          uint             `gorm:"primaryKey" json:"id"`
	RecipientID uint             `gorm:"not null;index" json:"recipient_id"`
	SenderID    *uint            `json:"sender_id,omitempty"`
	Type        NotificationType `gorm:"type:varchar(30);not null" json:"type"`
	Message     string           `gorm:"not null" json:"message"`
	RelatedID   *uint            `json:"related_id,omitempty"`
	IsRead      bool             `gorm:"not null;default:false" json:"is_read"`
	CreatedAt   time.Time        `json:"date"`

	Sender *User `gorm:"foreignKey:SenderID" json:"sender,omitempty"`
}
