// Package models contains data structures for the application's domain models.
package models

import (
	"time"
)

// Post represents a community feed post.
type Post struct {
	ID      uint   `gorm:"primaryKey" json:"id"`
	UserID  uint   `gorm:"not null;index" json:"user_id"`
	User    User   `gorm:"foreignKey:UserID" json:"user"`
	Content string `gorm:"type:text;not null" json:"content"`
	Media   string `gorm:"type:text" json:"media,omitempty"`
	// CommentsCount is a denormalized counter maintained by atomic increment
	// in the same transaction as each comment insert.
	CommentsCount int `gorm:"not null;default:0" json:"comments"`
	// Likes is the set of user IDs who liked this post; computed from the
	// likes table at query time, never persisted on the post row.
	Likes     []uint    `gorm:"-" json:"likes"`
	CreatedAt time.Time `json:"date_posted"`
	UpdatedAt time.Time `json:"-"`
}
