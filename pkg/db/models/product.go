package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/velora-shop/velora-backend/pkg/enums"
)

// Product represents the canonical storefront listing. Images holds the raw
// stored value, either a JSON array or a comma separated list; callers go
// through the catalog transformer to get servable paths.
type Product struct {
	ID            uuid.UUID           `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name          string              `gorm:"column:name;not null"`
	NameAr        *string             `gorm:"column:name_ar"`
	Slug          string              `gorm:"column:slug;not null;uniqueIndex"`
	SKU           *string             `gorm:"column:sku"`
	Description   *string             `gorm:"column:description"`
	DescriptionAr *string             `gorm:"column:description_ar"`
	Price         decimal.Decimal     `gorm:"column:price;type:numeric(10,2);not null"`
	DiscountPrice *decimal.Decimal    `gorm:"column:discount_price;type:numeric(10,2)"`
	DiscountType  *string             `gorm:"column:discount_type"`
	DiscountValue *decimal.Decimal    `gorm:"column:discount_value;type:numeric(10,2)"`
	Stock         int                 `gorm:"column:stock;not null;default:0"`
	Status        enums.ProductStatus `gorm:"column:status;type:text;not null;default:'active'"`
	IsTrending    bool                `gorm:"column:is_trending;not null;default:false"`
	BestSeller    bool                `gorm:"column:best_seller;not null;default:false"`
	Badge         *string             `gorm:"column:badge"`
	Images        *string             `gorm:"column:images"`
	SupImage1     *string             `gorm:"column:sup_image1"`
	SupImage2     *string             `gorm:"column:sup_image2"`
	CategoryID    uuid.UUID           `gorm:"column:category_id;type:uuid;not null;index"`
	SubCategoryID *uuid.UUID          `gorm:"column:sub_category_id;type:uuid;index"`
	TypeID        *uuid.UUID          `gorm:"column:type_id;type:uuid;index"`
	Category      *Category           `gorm:"foreignKey:CategoryID"`
	SubCategory   *SubCategory        `gorm:"foreignKey:SubCategoryID"`
	Type          *Type               `gorm:"foreignKey:TypeID"`
	CreatedAt     time.Time           `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time           `gorm:"column:updated_at;autoUpdateTime"`
}
