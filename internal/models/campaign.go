// Package models contains data structures for the application's domain models.
package models

import (
	"time"
)

// DonationType enumerates the accepted donation kinds for a campaign.
type DonationType string

const (
	DonationTypeCash    DonationType = "Cash"
	DonationTypeDigital DonationType = "Digital"
	DonationTypeItems   DonationType = "Items"
)

// CampaignStatus tracks the approval lifecycle of a campaign.
type CampaignStatus string

const (
	// CampaignStatusPending is the state of every newly created campaign.
	CampaignStatusPending CampaignStatus = "pending"
	// CampaignStatusApproved is set by a faculty-role reviewer.
	CampaignStatusApproved CampaignStatus = "approved"
	// CampaignStatusRejected is set by a faculty-role reviewer.
	CampaignStatusRejected CampaignStatus = "rejected"
	// CampaignStatusCompleted marks a campaign that has reached its goal.
	CampaignStatusCompleted CampaignStatus = "completed"
)

// Campaign represents an organized fundraising effort owned by a user.
// Campaigns are created pending and require faculty approval before they
// are visible as active.
type Campaign struct {
	ID             uint           `gorm:"primaryKey" json:"id"`
	UserID         uint           `gorm:"not null;index" json:"user_id"`
	User           User           `gorm:"foreignKey:UserID" json:"user,omitempty"`
	OrganizationID *uint          `gorm:"index" json:"organization_id,omitempty"`
	Name           string         `gorm:"not null" json:"name"`
	Description    string         `gorm:"type:text;not null" json:"description"`
	TargetAmount   float64        `gorm:"not null" json:"target_amount"`
	MinDonation    float64        `json:"min_donation,omitempty"`
	MaxDonation    float64        `json:"max_donation,omitempty"`
	DonationType   DonationType   `gorm:"type:varchar(20);default:'Cash'" json:"donation_type"`
	DesignatedSite string         `json:"designated_site,omitempty"`
	Status         CampaignStatus `gorm:"type:varchar(20);default:'pending';index" json:"status"`
	AdminFeedback  string         `json:"admin_feedback,omitempty"`
	ApprovedByID   *uint          `json:"approved_by,omitempty"`
	DateApproved   *time.Time     `json:"date_approved,omitempty"`
	Image          string         `gorm:"type:text" json:"image,omitempty"`
	CreatedAt      time.Time      `json:"date_created"`
	UpdatedAt      time.Time      `json:"-"`
}
