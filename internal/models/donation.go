package models

import (
	"time"
)

// Donation records a completed contribution toward a request or campaign.
// Exactly one of RequestID / CampaignID is expected to be set.
type Donation struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	UserID          uint      `gorm:"not null;index" json:"user_id"`
	RequestID       *uint     `gorm:"index" json:"request_id,omitempty"`
	CampaignID      *uint     `gorm:"index" json:"campaign_id,omitempty"`
	DonationType    string    `gorm:"type:varchar(20);not null" json:"donation_type"`
	DonationAmount  float64   `json:"donation_amount,omitempty"`
	ItemDescription string    `json:"item_description,omitempty"`
	DigitalMethod   string    `json:"digital_method,omitempty"`
	ServiceDetails  string    `json:"service_details,omitempty"`
	ResourceDetails string    `json:"resource_details,omitempty"`
	MeetupLocation  string    `json:"meetup_location,omitempty"`
	CreatedAt       time.Time `json:"date_donated"`

	User User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}
