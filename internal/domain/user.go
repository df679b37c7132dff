package domain

import "time"

// User Model
type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`            // Primary key
	Name         string    `gorm:"not null" json:"name"`            // Display name
	Email        string    `gorm:"unique;not null" json:"email"`    // Unique lookup key; entries reference it by value
	PasswordHash string    `gorm:"not null" json:"-"`               // bcrypt hash, never serialized
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"createdAt"` // Registration time
}
