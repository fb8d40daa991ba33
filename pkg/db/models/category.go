package models

import (
	"time"

	"github.com/google/uuid"
)

// Category is the top level of the storefront taxonomy.
type Category struct {
	ID          uuid.UUID     `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name        string        `gorm:"column:name;not null"`
	NameAr      *string       `gorm:"column:name_ar"`
	Slug        *string       `gorm:"column:slug;uniqueIndex"`
	Description *string       `gorm:"column:description"`
	Image       *string       `gorm:"column:image"`
	IsFeatured  bool          `gorm:"column:is_featured;not null;default:false"`
	Brands      []SubCategory `gorm:"foreignKey:CategoryID;constraint:OnDelete:CASCADE"`
	CreatedAt   time.Time     `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time     `gorm:"column:updated_at;autoUpdateTime"`
}
