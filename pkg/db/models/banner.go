package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/velora-shop/velora-backend/pkg/enums"
)

// Banner is a storefront hero or strip promotion.
type Banner struct {
	ID         uuid.UUID             `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Title      string                `gorm:"column:title;not null"`
	TitleAr    *string               `gorm:"column:title_ar"`
	Subtitle   *string               `gorm:"column:subtitle"`
	SubtitleAr *string               `gorm:"column:subtitle_ar"`
	Image      string                `gorm:"column:image;not null"`
	ButtonText *string               `gorm:"column:button_text"`
	Link       *string               `gorm:"column:link"`
	Placement  enums.BannerPlacement `gorm:"column:placement;type:text;not null;default:'hero'"`
	SortOrder  int                   `gorm:"column:sort_order;not null;default:0"`
	IsActive   bool                  `gorm:"column:is_active;not null;default:true"`
	CreatedAt  time.Time             `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt  time.Time             `gorm:"column:updated_at;autoUpdateTime"`
}
