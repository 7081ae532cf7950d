package models

import (
	"time"
)

// LoginLog records a login attempt, successful or not.
type LoginLog struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	IPAddress string    `json:"ip_address,omitempty"`
	Status    string    `gorm:"type:varchar(10);not null" json:"status"`
	CreatedAt time.Time `json:"timestamp"`
}
