package models

import (
	"time"

	"github.com/google/uuid"
)

// Type is the finest taxonomy level, nested under a brand.
type Type struct {
	ID            uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name          string    `gorm:"column:name;not null"`
	Slug          string    `gorm:"column:slug;not null"`
	Image         *string   `gorm:"column:image"`
	SubCategoryID uuid.UUID `gorm:"column:sub_category_id;type:uuid;not null;index"`
	CreatedAt     time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
