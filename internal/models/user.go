// Package models contains data structures for the application's domain models.
package models

import (
	"time"
)

// UserRole represents the platform role of a user.
type UserRole string

const (
	// RoleStudent is the default role for new signups.
	RoleStudent UserRole = "student"
	// RoleFaculty can approve and reject campaigns.
	RoleFaculty UserRole = "faculty"
	// RoleAdmin has moderation privileges.
	RoleAdmin UserRole = "admin"
)

// UserStatus represents the account standing of a user.
type UserStatus string

const (
	// UserStatusActive is a user in good standing.
	UserStatusActive UserStatus = "active"
	// UserStatusRestricted is a user with limited privileges.
	UserStatusRestricted UserStatus = "restricted"
	// UserStatusBanned is a user barred from the platform.
	UserStatusBanned UserStatus = "banned"
)

// User represents a user in the TrailFund application.
type User struct {
	ID             uint       `gorm:"primaryKey" json:"id"`
	Username       string     `gorm:"unique;not null" json:"username"`
	Email          string     `gorm:"unique;not null" json:"email"`
	Password       string     `gorm:"not null" json:"-"`
	Role           UserRole   `gorm:"type:varchar(20);default:'student'" json:"role"`
	Name           string     `gorm:"not null" json:"name"`
	Age            int        `json:"age,omitempty"`
	College        string     `json:"college,omitempty"`
	Department     string     `json:"department,omitempty"`
	YearLevel      string     `json:"year_level,omitempty"`
	Bio            string     `json:"bio,omitempty"`
	ProfilePicture string     `gorm:"type:text" json:"profile_picture,omitempty"`
	Status         UserStatus `gorm:"type:varchar(20);default:'active'" json:"status"`
	CreatedAt      time.Time  `json:"date_created"`
	UpdatedAt      time.Time  `json:"-"`

	Posts []Post `gorm:"foreignKey:UserID" json:"posts,omitempty"`
}

// UserProfile is the fully populated profile view served by
// GET /api/users/:id/full: the user plus derived friendship state.
type UserProfile struct {
	User
	Friends        []User       `json:"friends"`
	FriendRequests []Friendship `json:"friend_requests"`
}
