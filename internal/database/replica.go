package database

import (
	"fmt"
	"time"

	"trailfund/internal/config"
	"trailfund/internal/middleware"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var readDB *gorm.DB

// GetReadDB returns the read-replica connection, or nil when no replica is
// configured. Callers fall back to the primary when this returns nil.
func GetReadDB() *gorm.DB {
	return readDB
}

// SetReadDB overrides the read replica, for tests.
func SetReadDB(db *gorm.DB) {
	readDB = db
}

// ConnectReadReplica opens the read-replica connection when DB_READ_HOST is
// configured. Absence of a replica is not an error.
func ConnectReadReplica(cfg *config.Config) error {
	if cfg.DBReadHost == "" {
		return nil
	}

	port := cfg.DBReadPort
	if port == "" {
		port = cfg.DBPort
	}
	sslMode := cfg.DBSSLMode
	if sslMode == "" {
		sslMode = "disable"
	}
	dsn := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		cfg.DBReadHost,
		port,
		cfg.DBUser,
		cfg.DBPassword,
		cfg.DBName,
		sslMode,
	)

	gormLogger := &CustomGormLogger{
		logger: middleware.Logger,
		Config: logger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
		},
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{Logger: gormLogger})
	if err != nil {
		return fmt.Errorf("failed to connect to read replica: %w", err)
	}

	if err := configurePool(db, cfg); err != nil {
		middleware.Logger.Warn("Failed to configure read replica pool", "error", err.Error())
	}

	readDB = db
	middleware.Logger.Info("Read replica connected successfully")
	return nil
}
