package catalog

import (
	"context"
	"fmt"

	"github.com/velora-shop/velora-backend/pkg/config"
	"github.com/velora-shop/velora-backend/pkg/db/models"
	"github.com/velora-shop/velora-backend/pkg/errors"
	"github.com/velora-shop/velora-backend/pkg/i18n"
	"github.com/velora-shop/velora-backend/pkg/logger"
	"github.com/velora-shop/velora-backend/pkg/pagination"
)

const relatedProductLimit = 8

// Service exposes the public storefront read paths: the category
// drill-down plus the curated product shelves.
type Service interface {
	ProductsByCategory(ctx context.Context, segment string, brandSegment string, typeSegment string, params pagination.Params) (*DrilldownResult, error)
	Categories(ctx context.Context) ([]CategoryDTO, error)
	FeaturedCategories(ctx context.Context) ([]CategoryDTO, error)
	SearchCategories(ctx context.Context, query string) ([]CategoryDTO, error)
	Products(ctx context.Context, params pagination.Params) (*ProductListResult, error)
	TrendingProducts(ctx context.Context, params pagination.Params) (*ProductListResult, error)
	BestSellers(ctx context.Context, params pagination.Params) (*ProductListResult, error)
	OnSaleProducts(ctx context.Context, params pagination.Params) (*ProductListResult, error)
	SearchProducts(ctx context.Context, query string, params pagination.Params) (*ProductListResult, error)
	ProductBySlug(ctx context.Context, slug string) (*ProductDTO, error)
	RelatedProducts(ctx context.Context, slug string) ([]ProductDTO, error)
}

type service struct {
	repo        *Repository
	transformer Transformer
	cfg         config.CatalogConfig
	logg        *logger.Logger
}

// NewService wires the catalog read service.
func NewService(repo *Repository, cfg config.CatalogConfig, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("catalog service requires a repository")
	}
	if logg == nil {
		return nil, fmt.Errorf("catalog service requires a logger")
	}
	return &service{
		repo:        repo,
		transformer: Transformer{FallbackImageURL: cfg.FallbackImageURL},
		cfg:         cfg,
		logg:        logg,
	}, nil
}

// ProductsByCategory walks the drill-down one level at a time. A category
// with brands and no brand filter answers with the brand list; a brand
// with types and no type filter answers with its types; otherwise the
// matching products are paged out. An unknown category is an empty result
// rather than an error so stale storefront links degrade quietly, and an
// unmatched brand filter is ignored outright unless strict matching is on.
func (s *service) ProductsByCategory(ctx context.Context, segment string, brandSegment string, typeSegment string, params pagination.Params) (*DrilldownResult, error) {
	params = pagination.Normalize(params, s.cfg.MaxPageSize)

	category, err := s.repo.FindCategory(ctx, segment)
	if err != nil {
		return nil, errors.Wrap(errors.CodeDependency, err, "look up category")
	}
	if category == nil {
		s.logg.Warn(s.logg.WithField(ctx, "category_segment", segment), "catalog.category.miss")
		return s.emptyDrilldown(params), nil
	}

	locale := i18n.LocaleFromContext(ctx)
	result := &DrilldownResult{
		CategoryName: i18n.Pick(locale, category.Name, category.NameAr),
		Brands:       []BrandDTO{},
		Types:        []TypeDTO{},
		Products:     []ProductDTO{},
	}
	if category.Slug != nil {
		result.CategorySlug = *category.Slug
	}

	brands, err := s.repo.ListBrands(ctx, category.ID)
	if err != nil {
		return nil, errors.Wrap(errors.CodeDependency, err, "load brands for category")
	}

	var brand *models.SubCategory
	if brandSegment != "" {
		brand, err = s.repo.FindBrand(ctx, category.ID, brandSegment)
		if err != nil {
			return nil, errors.Wrap(errors.CodeDependency, err, "look up brand")
		}
		if brand == nil && s.cfg.StrictBrandMatch {
			return nil, errors.New(errors.CodeNotFound, "brand not found in category")
		}
	}

	if brand == nil && len(brands) > 0 && brandSegment == "" {
		for i := range brands {
			result.Brands = append(result.Brands, NewBrandDTO(&brands[i]))
		}
		result.Pagination = pagination.Build(params, 0)
		return result, nil
	}

	var typ *models.Type
	if brand != nil {
		brandDTO := NewBrandDTO(brand)
		result.Brand = &brandDTO

		types, err := s.repo.ListTypes(ctx, brand.ID)
		if err != nil {
			return nil, errors.Wrap(errors.CodeDependency, err, "load types for brand")
		}

		if typeSegment != "" {
			typ, err = s.repo.FindType(ctx, brand.ID, typeSegment)
			if err != nil {
				return nil, errors.Wrap(errors.CodeDependency, err, "look up type")
			}
		}

		if typ == nil && len(types) > 0 && typeSegment == "" {
			for i := range types {
				result.Types = append(result.Types, NewTypeDTO(&types[i]))
			}
			result.Pagination = pagination.Build(params, 0)
			return result, nil
		}
		if typ != nil {
			typeDTO := NewTypeDTO(typ)
			result.Type = &typeDTO
		}
	}

	filter := ProductFilter{CategoryID: &category.ID, OnlyActive: true}
	if brand != nil {
		filter.SubCategoryID = &brand.ID
	}
	if typ != nil {
		filter.TypeID = &typ.ID
	}

	products, total, err := s.repo.ListProducts(ctx, filter, params)
	if err != nil {
		return nil, errors.Wrap(errors.CodeDependency, err, "list products for category")
	}
	result.Products = s.transformer.Products(products, locale)
	result.Pagination = pagination.Build(params, total)
	return result, nil
}

func (s *service) emptyDrilldown(params pagination.Params) *DrilldownResult {
	return &DrilldownResult{
		CategoryName: "",
		Brands:       []BrandDTO{},
		Types:        []TypeDTO{},
		Products:     []ProductDTO{},
		Pagination:   pagination.Build(params, 0),
	}
}

func (s *service) Categories(ctx context.Context) ([]CategoryDTO, error) {
	categories, err := s.repo.ListCategories(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.CodeDependency, err, "list categories")
	}
	return s.categoryDTOs(ctx, categories), nil
}

func (s *service) FeaturedCategories(ctx context.Context) ([]CategoryDTO, error) {
	categories, err := s.repo.ListFeaturedCategories(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.CodeDependency, err, "list featured categories")
	}
	return s.categoryDTOs(ctx, categories), nil
}

func (s *service) SearchCategories(ctx context.Context, query string) ([]CategoryDTO, error) {
	if query == "" {
		return []CategoryDTO{}, nil
	}
	categories, err := s.repo.SearchCategories(ctx, query)
	if err != nil {
		return nil, errors.Wrap(errors.CodeDependency, err, "search categories")
	}
	return s.categoryDTOs(ctx, categories), nil
}

func (s *service) categoryDTOs(ctx context.Context, categories []models.Category) []CategoryDTO {
	locale := i18n.LocaleFromContext(ctx)
	dtos := make([]CategoryDTO, 0, len(categories))
	for i := range categories {
		dtos = append(dtos, NewCategoryDTO(&categories[i], locale))
	}
	return dtos
}

func (s *service) Products(ctx context.Context, params pagination.Params) (*ProductListResult, error) {
	return s.listProducts(ctx, ProductFilter{OnlyActive: true}, params, "list products")
}

func (s *service) TrendingProducts(ctx context.Context, params pagination.Params) (*ProductListResult, error) {
	return s.listProducts(ctx, ProductFilter{OnlyActive: true, OnlyTrending: true}, params, "list trending products")
}

func (s *service) BestSellers(ctx context.Context, params pagination.Params) (*ProductListResult, error) {
	return s.listProducts(ctx, ProductFilter{OnlyActive: true, OnlyBestSell: true}, params, "list best sellers")
}

func (s *service) OnSaleProducts(ctx context.Context, params pagination.Params) (*ProductListResult, error) {
	return s.listProducts(ctx, ProductFilter{OnlyActive: true, OnlyOnSale: true}, params, "list sale products")
}

func (s *service) SearchProducts(ctx context.Context, query string, params pagination.Params) (*ProductListResult, error) {
	if query == "" {
		params = pagination.Normalize(params, s.cfg.MaxPageSize)
		return &ProductListResult{Products: []ProductDTO{}, Pagination: pagination.Build(params, 0)}, nil
	}
	return s.listProducts(ctx, ProductFilter{OnlyActive: true, Search: query}, params, "search products")
}

func (s *service) listProducts(ctx context.Context, filter ProductFilter, params pagination.Params, action string) (*ProductListResult, error) {
	params = pagination.Normalize(params, s.cfg.MaxPageSize)
	products, total, err := s.repo.ListProducts(ctx, filter, params)
	if err != nil {
		return nil, errors.Wrap(errors.CodeDependency, err, action)
	}
	locale := i18n.LocaleFromContext(ctx)
	return &ProductListResult{
		Products:   s.transformer.Products(products, locale),
		Pagination: pagination.Build(params, total),
	}, nil
}

func (s *service) ProductBySlug(ctx context.Context, slug string) (*ProductDTO, error) {
	product, err := s.repo.FindProductBySlug(ctx, slug)
	if err != nil {
		return nil, errors.Wrap(errors.CodeDependency, err, "look up product")
	}
	if product == nil {
		return nil, errors.New(errors.CodeNotFound, "product not found")
	}
	dto := s.transformer.Product(product, i18n.LocaleFromContext(ctx))
	return &dto, nil
}

func (s *service) RelatedProducts(ctx context.Context, slug string) ([]ProductDTO, error) {
	product, err := s.repo.FindProductBySlug(ctx, slug)
	if err != nil {
		return nil, errors.Wrap(errors.CodeDependency, err, "look up product")
	}
	if product == nil {
		return nil, errors.New(errors.CodeNotFound, "product not found")
	}
	related, err := s.repo.ListRelatedProducts(ctx, product, relatedProductLimit)
	if err != nil {
		return nil, errors.Wrap(errors.CodeDependency, err, "list related products")
	}
	return s.transformer.Products(related, i18n.LocaleFromContext(ctx)), nil
}
