package models

import "time"

// Category is a catalog section. The ID is a URL-safe slug ("electronics")
// because the storefront routes on it directly.
type Category struct {
	ID          string    `gorm:"column:id;primaryKey"`
	Name        string    `gorm:"column:name;not null"`
	Description string    `gorm:"column:description;not null;default:''"`
	ImageURL    string    `gorm:"column:image_url;not null;default:''"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
