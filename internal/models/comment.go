// Package models contains data structures for the application's domain models.
package models

import (
	"time"
)

// Comment represents a comment on a post. ParentCommentID is nil for
// root-level comments; when set it must reference a comment on the same post.
type Comment struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	UserID          uint      `gorm:"not null" json:"user_id"`
	PostID          uint      `gorm:"not null;index" json:"post_id"`
	Content         string    `gorm:"not null" json:"content"`
	ParentCommentID *uint     `gorm:"index" json:"parent_comment_id"`
	User            User      `gorm:"foreignKey:UserID" json:"user"`
	CreatedAt       time.Time `json:"date_posted"`
	UpdatedAt       time.Time `json:"-"`
}

// CommentThread is one node of the reply tree returned by comment listing:
// a comment plus its direct replies in creation order. The structure nests
// to arbitrary depth even though the UI renders only two levels.
type CommentThread struct {
	Comment
	Replies []*CommentThread `json:"replies"`
}
