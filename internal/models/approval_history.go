package models

import (
	"time"
)

// ApprovalDecision is the outcome of a campaign review.
type ApprovalDecision string

const (
	ApprovalDecisionApproved ApprovalDecision = "approved"
	ApprovalDecisionRejected ApprovalDecision = "rejected"
)

// ApprovalHistory records each faculty decision on a campaign.
type ApprovalHistory struct {
	ID         uint             `gorm:"primaryKey" json:"id"`
	UserID     uint             `gorm:"not null;index" json:"user_id"`
	CampaignID uint             `gorm:"not null;index" json:"campaign_id"`
	Decision   ApprovalDecision `gorm:"type:varchar(20);not null" json:"decision"`
	Feedback   string           `json:"feedback,omitempty"`
	CreatedAt  time.Time        `json:"date_of_decision"`
}

// TableName specifies the table name for GORM
func (ApprovalHistory) TableName() string {
	return "approval_history"
}
