package database

import "trailfund/internal/models"

// PersistentModels returns the authoritative set of schema-managed GORM models.
func PersistentModels() []interface{} {
	return []interface{}{
		&models.User{},
		&models.Friendship{},
		&models.Post{},
		&models.Like{},
		&models.Comment{},
		&models.Campaign{},
		&models.Request{},
		&models.RequestFulfillment{},
		&models.Notification{},
		&models.Donation{},
		&models.Organization{},
		&models.Announcement{},
		&models.Report{},
		&models.RequestFlag{},
		&models.ApprovalHistory{},
		&models.LoginLog{},
	}
}
