package catalog

import (
	"encoding/json"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/velora-shop/velora-backend/pkg/db/models"
	"github.com/velora-shop/velora-backend/pkg/pagination"
)

// CategoryInput is the admin create/update payload for a category.
type CategoryInput struct {
	Name        string  `json:"name" validate:"required,min=1,max=120"`
	NameAr      *string `json:"nameAr" validate:"omitempty,max=120"`
	Description *string `json:"description" validate:"omitempty,max=2000"`
	Image       *string `json:"image" validate:"omitempty,max=500"`
	IsFeatured  bool    `json:"isFeatured"`
}

// BrandInput is the admin create/update payload for a brand.
type BrandInput struct {
	Name        string    `json:"name" validate:"required,min=1,max=120"`
	Description *string   `json:"description" validate:"omitempty,max=2000"`
	Image       *string   `json:"image" validate:"omitempty,max=500"`
	CategoryID  uuid.UUID `json:"categoryId" validate:"required"`
}

// TypeInput is the admin create/update payload for a type.
type TypeInput struct {
	Name          string    `json:"name" validate:"required,min=1,max=120"`
	Image         *string   `json:"image" validate:"omitempty,max=500"`
	SubCategoryID uuid.UUID `json:"subCategoryId" validate:"required"`
}

// ProductInput is the admin create/update payload for a product. Images
// arrive as a list and are persisted in the raw JSON column.
type ProductInput struct {
	Name          string           `json:"name" validate:"required,min=1,max=200"`
	NameAr        *string          `json:"nameAr" validate:"omitempty,max=200"`
	SKU           *string          `json:"sku" validate:"omitempty,max=64"`
	Description   *string          `json:"description" validate:"omitempty,max=10000"`
	DescriptionAr *string          `json:"descriptionAr" validate:"omitempty,max=10000"`
	Price         decimal.Decimal  `json:"price" validate:"required"`
	DiscountPrice *decimal.Decimal `json:"discountPrice"`
	Stock         int              `json:"stock" validate:"gte=0"`
	Status        string           `json:"status" validate:"omitempty,oneof=active draft archived"`
	IsTrending    bool             `json:"isTrending"`
	BestSeller    bool             `json:"bestSeller"`
	Badge         *string          `json:"badge" validate:"omitempty,max=60"`
	Images        []string         `json:"images" validate:"omitempty,max=12,dive,max=500"`
	SupImage1     *string          `json:"supImage1" validate:"omitempty,max=500"`
	SupImage2     *string          `json:"supImage2" validate:"omitempty,max=500"`
	CategoryID    uuid.UUID        `json:"categoryId" validate:"required"`
	SubCategoryID *uuid.UUID       `json:"subCategoryId"`
	TypeID        *uuid.UUID       `json:"typeId"`
}

// BulkIDsInput carries the target set for bulk product operations.
type BulkIDsInput struct {
	IDs []uuid.UUID `json:"ids" validate:"required,min=1,max=200"`
}

// BulkFlagInput carries the target set plus the flag value to apply.
type BulkFlagInput struct {
	IDs   []uuid.UUID `json:"ids" validate:"required,min=1,max=200"`
	Value bool        `json:"value"`
}

// BulkDeleteResult reports the split between removed products and the
// ones skipped for having order history.
type BulkDeleteResult struct {
	Deleted []uuid.UUID `json:"deleted"`
	Skipped []uuid.UUID `json:"skipped"`
}

// AdminProductDTO is the panel-facing product payload with both locales
// and the raw taxonomy references intact.
type AdminProductDTO struct {
	ID            uuid.UUID        `json:"id"`
	Name          string           `json:"name"`
	NameAr        *string          `json:"nameAr,omitempty"`
	Slug          string           `json:"slug"`
	SKU           *string          `json:"sku,omitempty"`
	Description   *string          `json:"description,omitempty"`
	DescriptionAr *string          `json:"descriptionAr,omitempty"`
	Price         decimal.Decimal  `json:"price"`
	DiscountPrice *decimal.Decimal `json:"discountPrice,omitempty"`
	Stock         int              `json:"stock"`
	Status        string           `json:"status"`
	IsTrending    bool             `json:"isTrending"`
	BestSeller    bool             `json:"bestSeller"`
	Badge         *string          `json:"badge,omitempty"`
	Images        []string         `json:"images"`
	SupImage1     *string          `json:"supImage1,omitempty"`
	SupImage2     *string          `json:"supImage2,omitempty"`
	CategoryID    uuid.UUID        `json:"categoryId"`
	CategoryName  string           `json:"categoryName,omitempty"`
	SubCategoryID *uuid.UUID       `json:"subCategoryId,omitempty"`
	BrandName     string           `json:"brandName,omitempty"`
	TypeID        *uuid.UUID       `json:"typeId,omitempty"`
	TypeName      string           `json:"typeName,omitempty"`
	CreatedAt     string           `json:"createdAt"`
	UpdatedAt     string           `json:"updatedAt"`
}

// AdminProductListResult pages the panel product table.
type AdminProductListResult struct {
	Products   []AdminProductDTO `json:"products"`
	Pagination pagination.Page   `json:"pagination"`
}

// NewAdminProductDTO keeps the stored image list as-is apart from a parse;
// the panel edits raw paths rather than the storefront view.
func NewAdminProductDTO(product *models.Product) AdminProductDTO {
	images := []string{}
	if product.Images != nil {
		if parsed, err := ParseImageList(*product.Images); err == nil && parsed != nil {
			images = parsed
		}
	}
	dto := AdminProductDTO{
		ID:            product.ID,
		Name:          product.Name,
		NameAr:        product.NameAr,
		Slug:          product.Slug,
		SKU:           product.SKU,
		Description:   product.Description,
		DescriptionAr: product.DescriptionAr,
		Price:         product.Price,
		DiscountPrice: product.DiscountPrice,
		Stock:         product.Stock,
		Status:        string(product.Status),
		IsTrending:    product.IsTrending,
		BestSeller:    product.BestSeller,
		Badge:         product.Badge,
		Images:        images,
		SupImage1:     product.SupImage1,
		SupImage2:     product.SupImage2,
		CategoryID:    product.CategoryID,
		SubCategoryID: product.SubCategoryID,
		TypeID:        product.TypeID,
		CreatedAt:     formatTime(product.CreatedAt),
		UpdatedAt:     formatTime(product.UpdatedAt),
	}
	if product.Category != nil {
		dto.CategoryName = product.Category.Name
	}
	if product.SubCategory != nil {
		dto.BrandName = product.SubCategory.Name
	}
	if product.Type != nil {
		dto.TypeName = product.Type.Name
	}
	return dto
}

// encodeImages stores the list as a JSON array string, nil when empty.
func encodeImages(images []string) (*string, error) {
	cleaned := make([]string, 0, len(images))
	for _, image := range images {
		image = strings.TrimSpace(image)
		if image != "" {
			cleaned = append(cleaned, image)
		}
	}
	if len(cleaned) == 0 {
		return nil, nil
	}
	raw, err := json.Marshal(cleaned)
	if err != nil {
		return nil, err
	}
	encoded := string(raw)
	return &encoded, nil
}
