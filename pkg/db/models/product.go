package models

import (
	"time"

	"github.com/lib/pq"
)

// Product is the canonical catalog listing. Price is stored as integer cents;
// in_stock is the canonical availability column (the legacy inStock spelling
// survives only as a response alias, never in storage).
type Product struct {
	ID          int64          `gorm:"column:id;primaryKey;autoIncrement"`
	Name        string         `gorm:"column:name;not null"`
	Description string         `gorm:"column:description;not null;default:''"`
	CategoryID  string         `gorm:"column:category_id;not null"`
	PriceCents  int64          `gorm:"column:price_cents;not null"`
	ImageURL    string         `gorm:"column:image_url;not null;default:''"`
	InStock     bool           `gorm:"column:in_stock;not null;default:true"`
	Rating      float64        `gorm:"column:rating;not null;default:0"`
	ReviewCount int            `gorm:"column:review_count;not null;default:0"`
	Features    pq.StringArray `gorm:"column:features;type:text[]"`
	CreatedAt   time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time      `gorm:"column:updated_at;autoUpdateTime"`
}
