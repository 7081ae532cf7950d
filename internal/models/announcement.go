package models

import (
	"time"
)

// Announcement is a staff-authored notice shown on the community feed.
type Announcement struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	Title     string    `gorm:"not null" json:"title"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	IsPinned  bool      `gorm:"not null;default:false" json:"is_pinned"`
	CreatedAt time.Time `json:"date_posted"`

	User User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}
