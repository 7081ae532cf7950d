package models

import (
	"time"
)

// OrganizationStatus tracks the review state of an organization.
type OrganizationStatus string

const (
	OrganizationStatusPending  OrganizationStatus = "pending"
	OrganizationStatusApproved OrganizationStatus = "approved"
	OrganizationStatusRejected OrganizationStatus = "rejected"
)

// Organization is a campus group that can run campaigns, registered by a
// representative user.
type Organization struct {
	ID                   uint               `gorm:"primaryKey" json:"id"`
	RepresentativeUserID uint               `gorm:"not null;index" json:"representative_user_id"`
	Name                 string             `gorm:"not null" json:"name"`
	Description          string             `json:"description,omitempty"`
	Status               OrganizationStatus `gorm:"type:varchar(20);default:'pending'" json:"status"`
	CreatedAt            time.Time          `json:"date_created"`
}
