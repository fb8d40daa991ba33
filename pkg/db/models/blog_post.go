package models

import (
	"time"

	"github.com/google/uuid"
)

// BlogPost is a bilingual CMS article. SlugAr is optional; the Arabic
// reading path falls back to the English slug when absent.
type BlogPost struct {
	ID            uuid.UUID  `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Title         string     `gorm:"column:title;not null"`
	TitleAr       *string    `gorm:"column:title_ar"`
	Slug          string     `gorm:"column:slug;not null;uniqueIndex"`
	SlugAr        *string    `gorm:"column:slug_ar"`
	Content       string     `gorm:"column:content;not null"`
	ContentAr     *string    `gorm:"column:content_ar"`
	Excerpt       *string    `gorm:"column:excerpt"`
	ExcerptAr     *string    `gorm:"column:excerpt_ar"`
	Image         *string    `gorm:"column:image"`
	IsPublished   bool       `gorm:"column:is_published;not null;default:false"`
	PublishedAt   *time.Time `gorm:"column:published_at"`
	MetaTitle     *string    `gorm:"column:meta_title"`
	MetaDesc      *string    `gorm:"column:meta_desc"`
	Keywords      *string    `gorm:"column:keywords"`
	CreatedAt     time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}
