package catalog

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/velora-shop/velora-backend/pkg/db/models"
	"github.com/velora-shop/velora-backend/pkg/enums"
	"github.com/velora-shop/velora-backend/pkg/i18n"
	"github.com/velora-shop/velora-backend/pkg/imagepath"
)

// ParseImageList splits the raw stored images value into entries. Values
// starting with a JSON bracket are parsed as a JSON string array; anything
// else is treated as a comma separated list with blanks dropped.
func ParseImageList(raw string) ([]string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil, nil
	}

	if strings.HasPrefix(trimmed, "[") || strings.HasPrefix(trimmed, "{") {
		var entries []string
		if err := json.Unmarshal([]byte(trimmed), &entries); err != nil {
			return nil, fmt.Errorf("parse image list: %w", err)
		}
		return entries, nil
	}

	var entries []string
	for _, part := range strings.Split(trimmed, ",") {
		if p := strings.TrimSpace(part); p != "" {
			entries = append(entries, p)
		}
	}
	return entries, nil
}

// Transformer shapes product rows into storefront DTOs. FallbackImageURL
// replaces image lists that end up empty after normalization so clients
// never render a product without an image.
type Transformer struct {
	FallbackImageURL string
}

// Product builds the storefront DTO for one product row. A malformed
// stored image list degrades to the fallback image rather than failing
// the whole listing.
func (t Transformer) Product(product *models.Product, locale enums.Locale) ProductDTO {
	images := t.images(product)

	price := product.Price
	var original *decimal.Decimal
	if product.DiscountPrice != nil && product.DiscountPrice.LessThan(product.Price) {
		price = *product.DiscountPrice
		orig := product.Price
		original = &orig
	}

	return ProductDTO{
		ID:            product.ID,
		Name:          i18n.Pick(locale, product.Name, product.NameAr),
		Slug:          product.Slug,
		Description:   i18n.PickPtr(locale, product.Description, product.DescriptionAr),
		Price:         price,
		OriginalPrice: original,
		Stock:         product.Stock,
		Status:        string(product.Status),
		IsTrending:    product.IsTrending,
		BestSeller:    product.BestSeller,
		Badge:         product.Badge,
		Images:        images,
		SupImage1:     normalizedImagePtr(product.SupImage1),
		SupImage2:     normalizedImagePtr(product.SupImage2),
		CategoryID:    product.CategoryID,
		SubCategoryID: product.SubCategoryID,
		TypeID:        product.TypeID,
		CreatedAt:     formatTime(product.CreatedAt),
		UpdatedAt:     formatTime(product.UpdatedAt),
	}
}

// Products maps a slice of rows.
func (t Transformer) Products(products []models.Product, locale enums.Locale) []ProductDTO {
	out := make([]ProductDTO, 0, len(products))
	for i := range products {
		out = append(out, t.Product(&products[i], locale))
	}
	return out
}

func (t Transformer) images(product *models.Product) []string {
	raw := ""
	if product.Images != nil {
		raw = *product.Images
	}

	entries, err := ParseImageList(raw)
	if err != nil {
		return t.fallback()
	}

	seen := make(map[string]struct{}, len(entries))
	images := make([]string, 0, len(entries))
	for _, entry := range entries {
		normalized := imagepath.Normalize(entry)
		if normalized == "" || !imagepath.Servable(normalized) {
			continue
		}
		if _, ok := seen[normalized]; ok {
			continue
		}
		seen[normalized] = struct{}{}
		images = append(images, normalized)
	}

	if len(images) == 0 {
		return t.fallback()
	}
	return images
}

func (t Transformer) fallback() []string {
	if t.FallbackImageURL == "" {
		return []string{}
	}
	return []string{t.FallbackImageURL}
}
