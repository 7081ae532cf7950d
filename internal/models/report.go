package models

import (
	"time"
)

// Report is a user-filed complaint against a post, request, or campaign.
type Report struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      uint      `gorm:"not null;index" json:"user_id"`
	PostID      *uint     `gorm:"index" json:"post_id,omitempty"`
	RequestID   *uint     `gorm:"index" json:"request_id,omitempty"`
	CampaignID  *uint     `gorm:"index" json:"campaign_id,omitempty"`
	Reason      string    `gorm:"not null" json:"reason"`
	Description string    `json:"description,omitempty"`
	ActionTaken string    `gorm:"type:varchar(20);default:'none'" json:"action_taken"`
	CreatedAt   time.Time `json:"date_reported"`
}

// RequestFlag marks an aid request for moderation review.
type RequestFlag struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      uint      `gorm:"not null;index" json:"user_id"`
	RequestID   uint      `gorm:"not null;index" json:"request_id"`
	Reason      string    `gorm:"not null" json:"reason"`
	ActionTaken string    `gorm:"type:varchar(20);default:'no_action'" json:"action_taken"`
	CreatedAt   time.Time `json:"date_flagged"`
}
