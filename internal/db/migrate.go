package db

import (
	"travlog/internal/domain" // Importing domain models

	"github.com/sirupsen/logrus"

	"gorm.io/driver/mysql" // MySQL driver for GORM
	"gorm.io/gorm"         // GORM ORM library
)

// Migrate performs automatic migration for the database schema
func Migrate(dsn string) {
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{}) // Open a connection to the database
	if err != nil {
		logrus.Fatalf("failed to connect database: %v", err)
	}
	// AutoMigrate creates the users and entries tables, indexes included.
	// The historical schema variants (entries with and without images or
	// structured expenses) collapse into this single canonical schema;
	// optional columns are simply null/empty for old-style rows.
	err = db.AutoMigrate(&domain.User{}, &domain.Entry{})
	if err != nil {
		logrus.Fatalf("migration failed: %v", err)
	}
	logrus.Info("Migration completed.")
}
