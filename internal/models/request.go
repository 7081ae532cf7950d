// Package models contains data structures for the application's domain models.
package models

import (
	"time"
)

// RequestType enumerates the kinds of aid a request can ask for.
type RequestType string

const (
	RequestTypeCash     RequestType = "Cash"
	RequestTypeItem     RequestType = "Item"
	RequestTypeDigital  RequestType = "Digital"
	RequestTypeGift     RequestType = "Gift"
	RequestTypeService  RequestType = "Service"
	RequestTypeResource RequestType = "Resource"
)

// Urgency is the traffic-light urgency indicator on a request.
type Urgency string

const (
	UrgencyGreen  Urgency = "Green"
	UrgencyYellow Urgency = "Yellow"
	UrgencyRed    Urgency = "Red"
)

// RequestStatus tracks the lifecycle of an aid request.
type RequestStatus string

const (
	RequestStatusActive    RequestStatus = "active"
	RequestStatusCompleted RequestStatus = "completed"
	RequestStatusFlagged   RequestStatus = "flagged"
)

// Request represents an individual aid ask posted by a user.
type Request struct {
	ID            uint          `gorm:"primaryKey" json:"id"`
	UserID        uint          `gorm:"not null;index" json:"user_id"`
	User          User          `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Title         string        `gorm:"not null" json:"title"`
	Description   string        `gorm:"type:text;not null" json:"description"`
	RequestType   RequestType   `gorm:"type:varchar(20);not null" json:"request_type"`
	ItemType      string        `json:"item_type,omitempty"`
	Location      string        `json:"location,omitempty"`
	MeetupTime    string        `json:"meetup_time,omitempty"`
	MinDonation   float64       `json:"min_donation,omitempty"`
	MaxDonation   float64       `json:"max_donation,omitempty"`
	DigitalType   string        `json:"digital_type,omitempty"`
	AccountNumber string        `json:"account_number,omitempty"`
	ServiceType   string        `json:"service_type,omitempty"`
	ResourceType  string        `json:"resource_type,omitempty"`
	Urgency       Urgency       `gorm:"type:varchar(10);default:'Green'" json:"urgency"`
	Hashtags      string        `json:"hashtags,omitempty"`
	Status        RequestStatus `gorm:"type:varchar(20);default:'active';index" json:"status"`
	CreatedAt     time.Time     `json:"date_created"`
	UpdatedAt     time.Time     `json:"-"`

	Fulfillments []RequestFulfillment `gorm:"foreignKey:RequestID" json:"fulfillments"`
}

// FulfillmentStatus tracks a registered fulfillment offer.
type FulfillmentStatus string

const (
	FulfillmentStatusPending   FulfillmentStatus = "pending"
	FulfillmentStatusCompleted FulfillmentStatus = "completed"
)

// RequestFulfillment records a user's registered interest in satisfying a
// request. At most one row may exist per (request, user) pair.
type RequestFulfillment struct {
	ID        uint              `gorm:"primaryKey" json:"id"`
	RequestID uint              `gorm:"not null;uniqueIndex:idx_request_user" json:"request_id"`
	UserID    uint              `gorm:"not null;uniqueIndex:idx_request_user" json:"user_id"`
	Status    FulfillmentStatus `gorm:"type:varchar(20);default:'pending'" json:"status"`
	CreatedAt time.Time         `json:"date"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}

// TableName specifies the table name for GORM
func (RequestFulfillment) TableName() string {
	return "request_fulfillments"
}
