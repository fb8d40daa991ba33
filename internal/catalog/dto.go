package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/velora-shop/velora-backend/pkg/db/models"
	"github.com/velora-shop/velora-backend/pkg/enums"
	"github.com/velora-shop/velora-backend/pkg/i18n"
	"github.com/velora-shop/velora-backend/pkg/imagepath"
	"github.com/velora-shop/velora-backend/pkg/pagination"
)

// ProductDTO is the storefront product payload. Price is the effective
// price after any active discount; OriginalPrice is present only when
// the listing is discounted below it.
type ProductDTO struct {
	ID            uuid.UUID        `json:"id"`
	Name          string           `json:"name"`
	Slug          string           `json:"slug"`
	Description   *string          `json:"description,omitempty"`
	Price         decimal.Decimal  `json:"price"`
	OriginalPrice *decimal.Decimal `json:"originalPrice,omitempty"`
	Stock         int              `json:"stock"`
	Status        string           `json:"status"`
	IsTrending    bool             `json:"isTrending"`
	BestSeller    bool             `json:"bestSeller"`
	Badge         *string          `json:"badge,omitempty"`
	Images        []string         `json:"images"`
	SupImage1     *string          `json:"supImage1,omitempty"`
	SupImage2     *string          `json:"supImage2,omitempty"`
	CategoryID    uuid.UUID        `json:"categoryId"`
	SubCategoryID *uuid.UUID       `json:"subCategoryId,omitempty"`
	TypeID        *uuid.UUID       `json:"typeId,omitempty"`
	CreatedAt     string           `json:"createdAt"`
	UpdatedAt     string           `json:"updatedAt"`
}

// CategoryDTO is the storefront category payload with localized name.
type CategoryDTO struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description *string   `json:"description,omitempty"`
	Image       *string   `json:"image,omitempty"`
	IsFeatured  bool      `json:"isFeatured"`
}

// BrandDTO is the storefront brand (sub-category) payload.
type BrandDTO struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description *string   `json:"description,omitempty"`
	Image       *string   `json:"image,omitempty"`
}

// TypeDTO is the storefront type payload.
type TypeDTO struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Slug  string    `json:"slug"`
	Image *string   `json:"image,omitempty"`
}

// DrilldownResult is the category browse response. Exactly one of Brands,
// Types or Products carries rows; the other levels stay empty so the
// storefront renders the next drill step.
type DrilldownResult struct {
	CategoryName string          `json:"categoryName"`
	CategorySlug string          `json:"categorySlug,omitempty"`
	Brand        *BrandDTO       `json:"brand,omitempty"`
	Type         *TypeDTO        `json:"type,omitempty"`
	Brands       []BrandDTO      `json:"brands"`
	Types        []TypeDTO       `json:"types"`
	Products     []ProductDTO    `json:"products"`
	Pagination   pagination.Page `json:"pagination"`
}

// ProductListResult pairs a page of products with its metadata.
type ProductListResult struct {
	Products   []ProductDTO    `json:"products"`
	Pagination pagination.Page `json:"pagination"`
}

// NewCategoryDTO localizes and normalizes a category row.
func NewCategoryDTO(category *models.Category, locale enums.Locale) CategoryDTO {
	slug := ""
	if category.Slug != nil {
		slug = *category.Slug
	}
	return CategoryDTO{
		ID:          category.ID,
		Name:        i18n.Pick(locale, category.Name, category.NameAr),
		Slug:        slug,
		Description: category.Description,
		Image:       normalizedImagePtr(category.Image),
		IsFeatured:  category.IsFeatured,
	}
}

// NewBrandDTO normalizes a brand row.
func NewBrandDTO(brand *models.SubCategory) BrandDTO {
	return BrandDTO{
		ID:          brand.ID,
		Name:        brand.Name,
		Slug:        brand.Slug,
		Description: brand.Description,
		Image:       normalizedImagePtr(brand.Image),
	}
}

// NewTypeDTO normalizes a type row.
func NewTypeDTO(t *models.Type) TypeDTO {
	return TypeDTO{
		ID:    t.ID,
		Name:  t.Name,
		Slug:  t.Slug,
		Image: normalizedImagePtr(t.Image),
	}
}

func normalizedImagePtr(raw *string) *string {
	if raw == nil {
		return nil
	}
	normalized := imagepath.Normalize(*raw)
	if normalized == "" {
		return nil
	}
	return &normalized
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}
