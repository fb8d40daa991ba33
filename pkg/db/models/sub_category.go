package models

import (
	"time"

	"github.com/google/uuid"
)

// SubCategory is a brand grouping nested under a category.
type SubCategory struct {
	ID          uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name        string    `gorm:"column:name;not null"`
	Slug        string    `gorm:"column:slug;not null"`
	Description *string   `gorm:"column:description"`
	Image       *string   `gorm:"column:image"`
	CategoryID  uuid.UUID `gorm:"column:category_id;type:uuid;not null;index"`
	Types       []Type    `gorm:"foreignKey:SubCategoryID;constraint:OnDelete:CASCADE"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
