package catalog

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/velora-shop/velora-backend/pkg/config"
	"github.com/velora-shop/velora-backend/pkg/db/models"
	"github.com/velora-shop/velora-backend/pkg/enums"
	"github.com/velora-shop/velora-backend/pkg/errors"
	"github.com/velora-shop/velora-backend/pkg/logger"
	"github.com/velora-shop/velora-backend/pkg/pagination"
	"github.com/velora-shop/velora-backend/pkg/slug"
)

// AdminService covers the panel's taxonomy and product management.
type AdminService interface {
	CreateCategory(ctx context.Context, input CategoryInput) (*models.Category, error)
	UpdateCategory(ctx context.Context, id uuid.UUID, input CategoryInput) (*models.Category, error)
	DeleteCategory(ctx context.Context, id uuid.UUID) error

	CreateBrand(ctx context.Context, input BrandInput) (*models.SubCategory, error)
	UpdateBrand(ctx context.Context, id uuid.UUID, input BrandInput) (*models.SubCategory, error)
	DeleteBrand(ctx context.Context, id uuid.UUID) error

	CreateType(ctx context.Context, input TypeInput) (*models.Type, error)
	UpdateType(ctx context.Context, id uuid.UUID, input TypeInput) (*models.Type, error)
	DeleteType(ctx context.Context, id uuid.UUID) error

	ListProducts(ctx context.Context, search string, params pagination.Params) (*AdminProductListResult, error)
	GetProduct(ctx context.Context, id uuid.UUID) (*AdminProductDTO, error)
	CreateProduct(ctx context.Context, input ProductInput) (*AdminProductDTO, error)
	UpdateProduct(ctx context.Context, id uuid.UUID, input ProductInput) (*AdminProductDTO, error)
	DeleteProduct(ctx context.Context, id uuid.UUID) error
	BulkSetTrending(ctx context.Context, input BulkFlagInput) (int64, error)
	BulkSetBestSeller(ctx context.Context, input BulkFlagInput) (int64, error)
	BulkRemoveSale(ctx context.Context, input BulkIDsInput) (int64, error)
	BulkDeleteProducts(ctx context.Context, input BulkIDsInput) (*BulkDeleteResult, error)
}

type adminService struct {
	repo *Repository
	cfg  config.CatalogConfig
	logg *logger.Logger
}

// NewAdminService wires the catalog write service.
func NewAdminService(repo *Repository, cfg config.CatalogConfig, logg *logger.Logger) (AdminService, error) {
	if repo == nil {
		return nil, fmt.Errorf("catalog admin service requires a repository")
	}
	if logg == nil {
		return nil, fmt.Errorf("catalog admin service requires a logger")
	}
	return &adminService{repo: repo, cfg: cfg, logg: logg}, nil
}

// uniqueCategorySlug regenerates from the name and appends a random
// suffix when the plain slug is taken by another row.
func (s *adminService) uniqueCategorySlug(ctx context.Context, name string, excludeID *uuid.UUID) (string, error) {
	candidate := slug.Make(name)
	taken, err := s.repo.CategorySlugExists(ctx, candidate, excludeID)
	if err != nil {
		return "", errors.Wrap(errors.CodeDependency, err, "check category slug")
	}
	if taken {
		candidate = slug.WithRandomSuffix(candidate)
	}
	return candidate, nil
}

func (s *adminService) CreateCategory(ctx context.Context, input CategoryInput) (*models.Category, error) {
	categorySlug, err := s.uniqueCategorySlug(ctx, input.Name, nil)
	if err != nil {
		return nil, err
	}
	category := &models.Category{
		Name:        input.Name,
		NameAr:      input.NameAr,
		Slug:        &categorySlug,
		Description: input.Description,
		Image:       input.Image,
		IsFeatured:  input.IsFeatured,
	}
	if err := s.repo.CreateCategory(ctx, category); err != nil {
		return nil, errors.Wrap(errors.CodeDependency, err, "create category")
	}
	s.logg.Info(s.logg.WithField(ctx, "category_id", category.ID.String()), "admin.category.created")
	return category, nil
}

func (s *adminService) UpdateCategory(ctx context.Context, id uuid.UUID, input CategoryInput) (*models.Category, error) {
	category, err := s.repo.FindCategoryByID(ctx, id)
	if err != nil {
		return nil, errors.Wrap(errors.CodeDependency, err, "load category")
	}
	if category == nil {
		return nil, errors.New(errors.CodeNotFound, "category not found")
	}
	if category.Name != input.Name {
		categorySlug, err := s.uniqueCategorySlug(ctx, input.Name, &id)
		if err != nil {
			return nil, err
		}
		category.Slug = &categorySlug
	}
	category.Name = input.Name
	category.NameAr = input.NameAr
	category.Description = input.Description
	category.Image = input.Image
	category.IsFeatured = input.IsFeatured
	if err := s.repo.SaveCategory(ctx, category); err != nil {
		return nil, errors.Wrap(errors.CodeDependency, err, "update category")
	}
	return category, nil
}

func (s *adminService) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	category, err := s.repo.FindCategoryByID(ctx, id)
	if err != nil {
		return errors.Wrap(errors.CodeDependency, err, "load category")
	}
	if category == nil {
		return errors.New(errors.CodeNotFound, "category not found")
	}
	count, err := s.repo.CountProductsInCategory(ctx, id)
	if err != nil {
		return errors.Wrap(errors.CodeDependency, err, "count category products")
	}
	if count > 0 {
		return errors.New(errors.CodeConflict, "category still has products")
	}
	if err := s.repo.DeleteCategory(ctx, id); err != nil {
		return errors.Wrap(errors.CodeDependency, err, "delete category")
	}
	s.logg.Info(s.logg.WithField(ctx, "category_id", id.String()), "admin.category.deleted")
	return nil
}

func (s *adminService) CreateBrand(ctx context.Context, input BrandInput) (*models.SubCategory, error) {
	category, err := s.repo.FindCategoryByID(ctx, input.CategoryID)
	if err != nil {
		return nil, errors.Wrap(errors.CodeDependency, err, "load category")
	}
	if category == nil {
		return nil, errors.New(errors.CodeValidation, "category does not exist")
	}
	brandSlug := slug.Make(input.Name)
	taken, err := s.repo.BrandSlugExists(ctx, input.CategoryID, brandSlug, nil)
	if err != nil {
		return nil, errors.Wrap(errors.CodeDependency, err, "check brand slug")
	}
	if taken {
		brandSlug = slug.WithRandomSuffix(brandSlug)
	}
	brand := &models.SubCategory{
		Name:        input.Name,
		Slug:        brandSlug,
		Description: input.Description,
		Image:       input.Image,
		CategoryID:  input.CategoryID,
	}
	if err := s.repo.CreateBrand(ctx, brand); err != nil {
		return nil, errors.Wrap(errors.CodeDependency, err, "create brand")
	}
	return brand, nil
}

func (s *adminService) UpdateBrand(ctx context.Context, id uuid.UUID, input BrandInput) (*models.SubCategory, error) {
	brand, err := s.repo.FindBrandByID(ctx, id)
	if err != nil {
		return nil, errors.Wrap(errors.CodeDependency, err, "load brand")
	}
	if brand == nil {
		return nil, errors.New(errors.CodeNotFound, "brand not found")
	}
	if brand.Name != input.Name || brand.CategoryID != input.CategoryID {
		brandSlug := slug.Make(input.Name)
		taken, err := s.repo.BrandSlugExists(ctx, input.CategoryID, brandSlug, &id)
		if err != nil {
			return nil, errors.Wrap(errors.CodeDependency, err, "check brand slug")
		}
		if taken {
			brandSlug = slug.WithRandomSuffix(brandSlug)
		}
		brand.Slug = brandSlug
	}
	brand.Name = input.Name
	brand.Description = input.Description
	brand.Image = input.Image
	brand.CategoryID = input.CategoryID
	if err := s.repo.SaveBrand(ctx, brand); err != nil {
		return nil, errors.Wrap(errors.CodeDependency, err, "update brand")
	}
	return brand, nil
}

func (s *adminService) DeleteBrand(ctx context.Context, id uuid.UUID) error {
	brand, err := s.repo.FindBrandByID(ctx, id)
	if err != nil {
		return errors.Wrap(errors.CodeDependency, err, "load brand")
	}
	if brand == nil {
		return errors.New(errors.CodeNotFound, "brand not found")
	}
	if err := s.repo.DeleteBrand(ctx, id); err != nil {
		return errors.Wrap(errors.CodeDependency, err, "delete brand")
	}
	return nil
}

func (s *adminService) CreateType(ctx context.Context, input TypeInput) (*models.Type, error) {
	brand, err := s.repo.FindBrandByID(ctx, input.SubCategoryID)
	if err != nil {
		return nil, errors.Wrap(errors.CodeDependency, err, "load brand")
	}
	if brand == nil {
		return nil, errors.New(errors.CodeValidation, "brand does not exist")
	}
	typeSlug := slug.Make(input.Name)
	taken, err := s.repo.TypeSlugExists(ctx, input.SubCategoryID, typeSlug, nil)
	if err != nil {
		return nil, errors.Wrap(errors.CodeDependency, err, "check type slug")
	}
	if taken {
		typeSlug = slug.WithRandomSuffix(typeSlug)
	}
	typ := &models.Type{
		Name:          input.Name,
		Slug:          typeSlug,
		Image:         input.Image,
		SubCategoryID: input.SubCategoryID,
	}
	if err := s.repo.CreateType(ctx, typ); err != nil {
		return nil, errors.Wrap(errors.CodeDependency, err, "create type")
	}
	return typ, nil
}

func (s *adminService) UpdateType(ctx context.Context, id uuid.UUID, input TypeInput) (*models.Type, error) {
	typ, err := s.repo.FindTypeByID(ctx, id)
	if err != nil {
		return nil, errors.Wrap(errors.CodeDependency, err, "load type")
	}
	if typ == nil {
		return nil, errors.New(errors.CodeNotFound, "type not found")
	}
	if typ.Name != input.Name || typ.SubCategoryID != input.SubCategoryID {
		typeSlug := slug.Make(input.Name)
		taken, err := s.repo.TypeSlugExists(ctx, input.SubCategoryID, typeSlug, &id)
		if err != nil {
			return nil, errors.Wrap(errors.CodeDependency, err, "check type slug")
		}
		if taken {
			typeSlug = slug.WithRandomSuffix(typeSlug)
		}
		typ.Slug = typeSlug
	}
	typ.Name = input.Name
	typ.Image = input.Image
	typ.SubCategoryID = input.SubCategoryID
	if err := s.repo.SaveType(ctx, typ); err != nil {
		return nil, errors.Wrap(errors.CodeDependency, err, "update type")
	}
	return typ, nil
}

func (s *adminService) DeleteType(ctx context.Context, id uuid.UUID) error {
	typ, err := s.repo.FindTypeByID(ctx, id)
	if err != nil {
		return errors.Wrap(errors.CodeDependency, err, "load type")
	}
	if typ == nil {
		return errors.New(errors.CodeNotFound, "type not found")
	}
	if err := s.repo.DeleteType(ctx, id); err != nil {
		return errors.Wrap(errors.CodeDependency, err, "delete type")
	}
	return nil
}

func (s *adminService) ListProducts(ctx context.Context, search string, params pagination.Params) (*AdminProductListResult, error) {
	params = pagination.Normalize(params, s.cfg.MaxPageSize)
	products, total, err := s.repo.ListProductsForAdmin(ctx, ProductFilter{Search: search}, params)
	if err != nil {
		return nil, errors.Wrap(errors.CodeDependency, err, "list products")
	}
	dtos := make([]AdminProductDTO, 0, len(products))
	for i := range products {
		dtos = append(dtos, NewAdminProductDTO(&products[i]))
	}
	return &AdminProductListResult{Products: dtos, Pagination: pagination.Build(params, total)}, nil
}

func (s *adminService) GetProduct(ctx context.Context, id uuid.UUID) (*AdminProductDTO, error) {
	product, err := s.repo.FindProductByID(ctx, id)
	if err != nil {
		return nil, errors.Wrap(errors.CodeDependency, err, "load product")
	}
	if product == nil {
		return nil, errors.New(errors.CodeNotFound, "product not found")
	}
	dto := NewAdminProductDTO(product)
	return &dto, nil
}

func (s *adminService) applyProductInput(ctx context.Context, product *models.Product, input ProductInput) error {
	if input.DiscountPrice != nil && !input.DiscountPrice.LessThan(input.Price) {
		return errors.New(errors.CodeValidation, "discount price must be below the price")
	}
	category, err := s.repo.FindCategoryByID(ctx, input.CategoryID)
	if err != nil {
		return errors.Wrap(errors.CodeDependency, err, "load category")
	}
	if category == nil {
		return errors.New(errors.CodeValidation, "category does not exist")
	}
	if input.SubCategoryID != nil {
		brand, err := s.repo.FindBrandByID(ctx, *input.SubCategoryID)
		if err != nil {
			return errors.Wrap(errors.CodeDependency, err, "load brand")
		}
		if brand == nil || brand.CategoryID != input.CategoryID {
			return errors.New(errors.CodeValidation, "brand does not belong to the category")
		}
	}
	if input.TypeID != nil {
		if input.SubCategoryID == nil {
			return errors.New(errors.CodeValidation, "type requires a brand")
		}
		typ, err := s.repo.FindTypeByID(ctx, *input.TypeID)
		if err != nil {
			return errors.Wrap(errors.CodeDependency, err, "load type")
		}
		if typ == nil || typ.SubCategoryID != *input.SubCategoryID {
			return errors.New(errors.CodeValidation, "type does not belong to the brand")
		}
	}
	images, err := encodeImages(input.Images)
	if err != nil {
		return errors.Wrap(errors.CodeValidation, err, "encode images")
	}

	status := enums.ProductStatusActive
	if input.Status != "" {
		parsed, err := enums.ParseProductStatus(input.Status)
		if err != nil {
			return errors.New(errors.CodeValidation, "unknown product status")
		}
		status = parsed
	}

	product.Name = input.Name
	product.NameAr = input.NameAr
	product.SKU = input.SKU
	product.Description = input.Description
	product.DescriptionAr = input.DescriptionAr
	product.Price = input.Price
	product.DiscountPrice = input.DiscountPrice
	product.Stock = input.Stock
	product.Status = status
	product.IsTrending = input.IsTrending
	product.BestSeller = input.BestSeller
	product.Badge = input.Badge
	product.Images = images
	product.SupImage1 = input.SupImage1
	product.SupImage2 = input.SupImage2
	product.CategoryID = input.CategoryID
	product.SubCategoryID = input.SubCategoryID
	product.TypeID = input.TypeID
	return nil
}

func (s *adminService) CreateProduct(ctx context.Context, input ProductInput) (*AdminProductDTO, error) {
	if !input.Price.IsPositive() {
		return nil, errors.New(errors.CodeValidation, "price must be positive")
	}
	product := &models.Product{}
	if err := s.applyProductInput(ctx, product, input); err != nil {
		return nil, err
	}
	productSlug := slug.Make(input.Name)
	taken, err := s.repo.ProductSlugExists(ctx, productSlug, nil)
	if err != nil {
		return nil, errors.Wrap(errors.CodeDependency, err, "check product slug")
	}
	if taken {
		productSlug = slug.WithRandomSuffix(productSlug)
	}
	product.Slug = productSlug
	if err := s.repo.CreateProduct(ctx, product); err != nil {
		return nil, errors.Wrap(errors.CodeDependency, err, "create product")
	}
	s.logg.Info(s.logg.WithField(ctx, "product_id", product.ID.String()), "admin.product.created")
	dto := NewAdminProductDTO(product)
	return &dto, nil
}

func (s *adminService) UpdateProduct(ctx context.Context, id uuid.UUID, input ProductInput) (*AdminProductDTO, error) {
	if !input.Price.IsPositive() {
		return nil, errors.New(errors.CodeValidation, "price must be positive")
	}
	product, err := s.repo.FindProductByID(ctx, id)
	if err != nil {
		return nil, errors.Wrap(errors.CodeDependency, err, "load product")
	}
	if product == nil {
		return nil, errors.New(errors.CodeNotFound, "product not found")
	}
	renamed := product.Name != input.Name
	if err := s.applyProductInput(ctx, product, input); err != nil {
		return nil, err
	}
	if renamed {
		productSlug := slug.Make(input.Name)
		taken, err := s.repo.ProductSlugExists(ctx, productSlug, &id)
		if err != nil {
			return nil, errors.Wrap(errors.CodeDependency, err, "check product slug")
		}
		if taken {
			productSlug = slug.WithRandomSuffix(productSlug)
		}
		product.Slug = productSlug
	}
	if err := s.repo.SaveProduct(ctx, product); err != nil {
		return nil, errors.Wrap(errors.CodeDependency, err, "update product")
	}
	dto := NewAdminProductDTO(product)
	return &dto, nil
}

func (s *adminService) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	count, err := s.repo.ProductOrderedCount(ctx, id)
	if err != nil {
		return errors.Wrap(errors.CodeDependency, err, "check product orders")
	}
	if count > 0 {
		return errors.New(errors.CodeConflict, "product is referenced by orders")
	}
	if err := s.repo.DeleteProduct(ctx, id); err != nil {
		return errors.Wrap(errors.CodeDependency, err, "delete product")
	}
	s.logg.Info(s.logg.WithField(ctx, "product_id", id.String()), "admin.product.deleted")
	return nil
}

func (s *adminService) BulkSetTrending(ctx context.Context, input BulkFlagInput) (int64, error) {
	affected, err := s.repo.SetTrending(ctx, input.IDs, input.Value)
	if err != nil {
		return 0, errors.Wrap(errors.CodeDependency, err, "bulk set trending")
	}
	return affected, nil
}

func (s *adminService) BulkSetBestSeller(ctx context.Context, input BulkFlagInput) (int64, error) {
	affected, err := s.repo.SetBestSeller(ctx, input.IDs, input.Value)
	if err != nil {
		return 0, errors.Wrap(errors.CodeDependency, err, "bulk set best seller")
	}
	return affected, nil
}

func (s *adminService) BulkRemoveSale(ctx context.Context, input BulkIDsInput) (int64, error) {
	affected, err := s.repo.ClearSale(ctx, input.IDs)
	if err != nil {
		return 0, errors.Wrap(errors.CodeDependency, err, "bulk remove sale")
	}
	return affected, nil
}

// BulkDeleteProducts removes what it can and reports the rest. A product
// referenced by order lines is skipped so order snapshots stay intact.
func (s *adminService) BulkDeleteProducts(ctx context.Context, input BulkIDsInput) (*BulkDeleteResult, error) {
	result := &BulkDeleteResult{Deleted: []uuid.UUID{}, Skipped: []uuid.UUID{}}
	for _, id := range input.IDs {
		count, err := s.repo.ProductOrderedCount(ctx, id)
		if err != nil {
			return nil, errors.Wrap(errors.CodeDependency, err, "check product orders")
		}
		if count > 0 {
			result.Skipped = append(result.Skipped, id)
			continue
		}
		if err := s.repo.DeleteProduct(ctx, id); err != nil {
			return nil, errors.Wrap(errors.CodeDependency, err, "delete product")
		}
		result.Deleted = append(result.Deleted, id)
	}
	s.logg.Info(s.logg.WithFields(ctx, map[string]any{
		"deleted": len(result.Deleted),
		"skipped": len(result.Skipped),
	}), "admin.product.bulk_delete")
	return result, nil
}
