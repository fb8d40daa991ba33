package catalog

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/velora-shop/velora-backend/pkg/db/models"
	"github.com/velora-shop/velora-backend/pkg/pagination"
)

// Admin write paths. These live on the same repository so controllers get
// one seam per domain; the public read paths above never mutate.

func (r *Repository) CategorySlugExists(ctx context.Context, slug string, excludeID *uuid.UUID) (bool, error) {
	query := r.db.WithContext(ctx).Model(&models.Category{}).Where("slug = ?", slug)
	if excludeID != nil {
		query = query.Where("id <> ?", *excludeID)
	}
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *Repository) FindCategoryByID(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	var category models.Category
	err := r.db.WithContext(ctx).First(&category, "id = ?", id).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *Repository) CreateCategory(ctx context.Context, category *models.Category) error {
	return r.db.WithContext(ctx).Create(category).Error
}

func (r *Repository) SaveCategory(ctx context.Context, category *models.Category) error {
	return r.db.WithContext(ctx).Save(category).Error
}

func (r *Repository) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.Category{}, "id = ?", id).Error
}

// CountProductsInCategory backs the delete guard on non-empty categories.
func (r *Repository) CountProductsInCategory(ctx context.Context, categoryID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Product{}).
		Where("category_id = ?", categoryID).
		Count(&count).Error
	return count, err
}

func (r *Repository) FindBrandByID(ctx context.Context, id uuid.UUID) (*models.SubCategory, error) {
	var brand models.SubCategory
	err := r.db.WithContext(ctx).First(&brand, "id = ?", id).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &brand, nil
}

func (r *Repository) BrandSlugExists(ctx context.Context, categoryID uuid.UUID, slug string, excludeID *uuid.UUID) (bool, error) {
	query := r.db.WithContext(ctx).Model(&models.SubCategory{}).
		Where("category_id = ? AND slug = ?", categoryID, slug)
	if excludeID != nil {
		query = query.Where("id <> ?", *excludeID)
	}
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *Repository) CreateBrand(ctx context.Context, brand *models.SubCategory) error {
	return r.db.WithContext(ctx).Create(brand).Error
}

func (r *Repository) SaveBrand(ctx context.Context, brand *models.SubCategory) error {
	return r.db.WithContext(ctx).Save(brand).Error
}

func (r *Repository) DeleteBrand(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.SubCategory{}, "id = ?", id).Error
}

func (r *Repository) FindTypeByID(ctx context.Context, id uuid.UUID) (*models.Type, error) {
	var typ models.Type
	err := r.db.WithContext(ctx).First(&typ, "id = ?", id).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &typ, nil
}

func (r *Repository) TypeSlugExists(ctx context.Context, brandID uuid.UUID, slug string, excludeID *uuid.UUID) (bool, error) {
	query := r.db.WithContext(ctx).Model(&models.Type{}).
		Where("sub_category_id = ? AND slug = ?", brandID, slug)
	if excludeID != nil {
		query = query.Where("id <> ?", *excludeID)
	}
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *Repository) CreateType(ctx context.Context, typ *models.Type) error {
	return r.db.WithContext(ctx).Create(typ).Error
}

func (r *Repository) SaveType(ctx context.Context, typ *models.Type) error {
	return r.db.WithContext(ctx).Save(typ).Error
}

func (r *Repository) DeleteType(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.Type{}, "id = ?", id).Error
}

func (r *Repository) ProductSlugExists(ctx context.Context, slug string, excludeID *uuid.UUID) (bool, error) {
	query := r.db.WithContext(ctx).Model(&models.Product{}).Where("slug = ?", slug)
	if excludeID != nil {
		query = query.Where("id <> ?", *excludeID)
	}
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// ListProductsForAdmin preloads the taxonomy so the panel renders names
// without extra round trips. Unlike the storefront listing it returns
// drafts and archived rows too.
func (r *Repository) ListProductsForAdmin(ctx context.Context, filter ProductFilter, params pagination.Params) ([]models.Product, int64, error) {
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.Product{}), filter)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var products []models.Product
	err := query.
		Preload("Category").
		Preload("SubCategory").
		Preload("Type").
		Order("created_at DESC").
		Offset(params.Offset()).
		Limit(params.Limit).
		Find(&products).Error
	if err != nil {
		return nil, 0, err
	}
	return products, total, nil
}

func (r *Repository) CreateProduct(ctx context.Context, product *models.Product) error {
	return r.db.WithContext(ctx).Create(product).Error
}

func (r *Repository) SaveProduct(ctx context.Context, product *models.Product) error {
	return r.db.WithContext(ctx).Save(product).Error
}

func (r *Repository) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.Product{}, "id = ?", id).Error
}

// ProductOrderedCount reports how many order lines reference the product.
// Products with history are skipped by bulk delete instead of breaking
// order snapshots.
func (r *Repository) ProductOrderedCount(ctx context.Context, productID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.OrderItem{}).
		Where("product_id = ?", productID).
		Count(&count).Error
	return count, err
}

func (r *Repository) SetTrending(ctx context.Context, ids []uuid.UUID, trending bool) (int64, error) {
	res := r.db.WithContext(ctx).Model(&models.Product{}).
		Where("id IN ?", ids).
		Update("is_trending", trending)
	return res.RowsAffected, res.Error
}

func (r *Repository) SetBestSeller(ctx context.Context, ids []uuid.UUID, bestSeller bool) (int64, error) {
	res := r.db.WithContext(ctx).Model(&models.Product{}).
		Where("id IN ?", ids).
		Update("best_seller", bestSeller)
	return res.RowsAffected, res.Error
}

// ClearSale drops the discount columns in one statement.
func (r *Repository) ClearSale(ctx context.Context, ids []uuid.UUID) (int64, error) {
	res := r.db.WithContext(ctx).Model(&models.Product{}).
		Where("id IN ?", ids).
		Updates(map[string]any{
			"discount_price": nil,
			"discount_type":  nil,
			"discount_value": nil,
		})
	return res.RowsAffected, res.Error
}
