package models

import (
	"time"

	"github.com/google/uuid"
)

// User is an admin account able to manage the catalog.
type User struct {
	ID           uuid.UUID  `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Email        string     `gorm:"column:email;not null;uniqueIndex"`
	Name         string     `gorm:"column:name;not null;default:''"`
	PasswordHash string     `gorm:"column:password_hash;not null"`
	IsActive     bool       `gorm:"column:is_active;not null;default:true"`
	LastLoginAt  *time.Time `gorm:"column:last_login_at"`
	CreatedAt    time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}
