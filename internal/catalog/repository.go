package catalog

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/velora-shop/velora-backend/pkg/db/models"
	"github.com/velora-shop/velora-backend/pkg/enums"
	"github.com/velora-shop/velora-backend/pkg/pagination"
)

// Repository wires together the taxonomy and product read paths.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// FindCategory resolves a category from a URL segment, trying slug first,
// then exact name ignoring case, then the segment with hyphens read as
// spaces, and finally the raw id. Returns nil without error when nothing
// matches.
func (r *Repository) FindCategory(ctx context.Context, segment string) (*models.Category, error) {
	segment = strings.TrimSpace(segment)
	if segment == "" {
		return nil, nil
	}

	tx := r.db.WithContext(ctx)
	var category models.Category

	err := tx.First(&category, "slug = ?", segment).Error
	if err == nil {
		return &category, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	err = tx.First(&category, "LOWER(name) = LOWER(?)", segment).Error
	if err == nil {
		return &category, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	spaced := strings.ReplaceAll(segment, "-", " ")
	err = tx.First(&category, "LOWER(name) = LOWER(?)", spaced).Error
	if err == nil {
		return &category, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	if id, parseErr := uuid.Parse(segment); parseErr == nil {
		err = tx.First(&category, "id = ?", id).Error
		if err == nil {
			return &category, nil
		}
		if err != gorm.ErrRecordNotFound {
			return nil, err
		}
	}

	return nil, nil
}

// ListCategories returns all categories, featured first.
func (r *Repository) ListCategories(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	err := r.db.WithContext(ctx).
		Order("is_featured DESC, name ASC").
		Find(&categories).Error
	return categories, err
}

// ListFeaturedCategories returns only the featured categories.
func (r *Repository) ListFeaturedCategories(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	err := r.db.WithContext(ctx).
		Where("is_featured = ?", true).
		Order("name ASC").
		Find(&categories).Error
	return categories, err
}

// SearchCategories matches category names case-insensitively.
func (r *Repository) SearchCategories(ctx context.Context, query string) ([]models.Category, error) {
	var categories []models.Category
	pattern := "%" + strings.ToLower(strings.TrimSpace(query)) + "%"
	err := r.db.WithContext(ctx).
		Where("LOWER(name) LIKE ?", pattern).
		Order("name ASC").
		Find(&categories).Error
	return categories, err
}

// ListBrands returns the brands registered under a category.
func (r *Repository) ListBrands(ctx context.Context, categoryID uuid.UUID) ([]models.SubCategory, error) {
	var brands []models.SubCategory
	err := r.db.WithContext(ctx).
		Where("category_id = ?", categoryID).
		Order("name ASC").
		Find(&brands).Error
	return brands, err
}

// FindBrand matches a brand within the category by slug or id.
func (r *Repository) FindBrand(ctx context.Context, categoryID uuid.UUID, segment string) (*models.SubCategory, error) {
	tx := r.db.WithContext(ctx)
	var brand models.SubCategory

	err := tx.First(&brand, "category_id = ? AND slug = ?", categoryID, segment).Error
	if err == nil {
		return &brand, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	if id, parseErr := uuid.Parse(segment); parseErr == nil {
		err = tx.First(&brand, "category_id = ? AND id = ?", categoryID, id).Error
		if err == nil {
			return &brand, nil
		}
		if err != gorm.ErrRecordNotFound {
			return nil, err
		}
	}

	return nil, nil
}

// ListTypes returns the types registered under a brand.
func (r *Repository) ListTypes(ctx context.Context, brandID uuid.UUID) ([]models.Type, error) {
	var types []models.Type
	err := r.db.WithContext(ctx).
		Where("sub_category_id = ?", brandID).
		Order("name ASC").
		Find(&types).Error
	return types, err
}

// FindType matches a type within the brand by slug or id.
func (r *Repository) FindType(ctx context.Context, brandID uuid.UUID, segment string) (*models.Type, error) {
	tx := r.db.WithContext(ctx)
	var typ models.Type

	err := tx.First(&typ, "sub_category_id = ? AND slug = ?", brandID, segment).Error
	if err == nil {
		return &typ, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	if id, parseErr := uuid.Parse(segment); parseErr == nil {
		err = tx.First(&typ, "sub_category_id = ? AND id = ?", brandID, id).Error
		if err == nil {
			return &typ, nil
		}
		if err != gorm.ErrRecordNotFound {
			return nil, err
		}
	}

	return nil, nil
}

// ProductFilter narrows product list queries.
type ProductFilter struct {
	CategoryID    *uuid.UUID
	SubCategoryID *uuid.UUID
	TypeID        *uuid.UUID
	OnlyActive    bool
	OnlyTrending  bool
	OnlyBestSell  bool
	OnlyOnSale    bool
	Search        string
}

// ListProducts returns a page of products plus the total row count for the
// filter.
func (r *Repository) ListProducts(ctx context.Context, filter ProductFilter, params pagination.Params) ([]models.Product, int64, error) {
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.Product{}), filter)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var products []models.Product
	err := query.
		Order("created_at DESC").
		Offset(params.Offset()).
		Limit(params.Limit).
		Find(&products).Error
	if err != nil {
		return nil, 0, err
	}
	return products, total, nil
}

func (r *Repository) applyFilter(query *gorm.DB, filter ProductFilter) *gorm.DB {
	if filter.CategoryID != nil {
		query = query.Where("category_id = ?", *filter.CategoryID)
	}
	if filter.SubCategoryID != nil {
		query = query.Where("sub_category_id = ?", *filter.SubCategoryID)
	}
	if filter.TypeID != nil {
		query = query.Where("type_id = ?", *filter.TypeID)
	}
	if filter.OnlyActive {
		query = query.Where("status = ?", string(enums.ProductStatusActive))
	}
	if filter.OnlyTrending {
		query = query.Where("is_trending = ?", true)
	}
	if filter.OnlyBestSell {
		query = query.Where("best_seller = ?", true)
	}
	if filter.OnlyOnSale {
		query = query.Where("discount_price IS NOT NULL AND discount_price < price")
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(slug) LIKE ?", pattern, pattern)
	}
	return query
}

// FindProductByID loads a product row, nil when absent.
func (r *Repository) FindProductByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	var product models.Product
	err := r.db.WithContext(ctx).First(&product, "id = ?", id).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// FindProductBySlug loads a product row by its unique slug.
func (r *Repository) FindProductBySlug(ctx context.Context, slug string) (*models.Product, error) {
	var product models.Product
	err := r.db.WithContext(ctx).First(&product, "slug = ?", slug).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// ListRelatedProducts returns other active products from the same category.
func (r *Repository) ListRelatedProducts(ctx context.Context, product *models.Product, limit int) ([]models.Product, error) {
	var products []models.Product
	err := r.db.WithContext(ctx).
		Where("category_id = ? AND id <> ? AND status = ?", product.CategoryID, product.ID, string(enums.ProductStatusActive)).
		Order("created_at DESC").
		Limit(limit).
		Find(&products).Error
	return products, err
}
