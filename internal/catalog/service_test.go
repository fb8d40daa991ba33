package catalog

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/velora-shop/velora-backend/pkg/config"
	"github.com/velora-shop/velora-backend/pkg/db/models"
	"github.com/velora-shop/velora-backend/pkg/enums"
	pkgerrors "github.com/velora-shop/velora-backend/pkg/errors"
	"github.com/velora-shop/velora-backend/pkg/i18n"
	"github.com/velora-shop/velora-backend/pkg/logger"
	"github.com/velora-shop/velora-backend/pkg/pagination"
)

func setupCatalogTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	conn, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)

	statements := []string{
		`CREATE TABLE categories (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  name_ar TEXT,
  slug TEXT,
  description TEXT,
  image TEXT,
  is_featured INTEGER NOT NULL DEFAULT 0,
  created_at DATETIME,
  updated_at DATETIME
);`,
		`CREATE TABLE sub_categories (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  slug TEXT NOT NULL,
  description TEXT,
  image TEXT,
  category_id TEXT NOT NULL,
  created_at DATETIME,
  updated_at DATETIME
);`,
		`CREATE TABLE types (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  slug TEXT NOT NULL,
  image TEXT,
  sub_category_id TEXT NOT NULL,
  created_at DATETIME,
  updated_at DATETIME
);`,
		`CREATE TABLE products (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  name_ar TEXT,
  slug TEXT NOT NULL,
  sku TEXT,
  description TEXT,
  description_ar TEXT,
  price NUMERIC NOT NULL,
  discount_price NUMERIC,
  discount_type TEXT,
  discount_value NUMERIC,
  stock INTEGER NOT NULL DEFAULT 0,
  status TEXT NOT NULL DEFAULT 'active',
  is_trending INTEGER NOT NULL DEFAULT 0,
  best_seller INTEGER NOT NULL DEFAULT 0,
  badge TEXT,
  images TEXT,
  sup_image1 TEXT,
  sup_image2 TEXT,
  category_id TEXT NOT NULL,
  sub_category_id TEXT,
  type_id TEXT,
  created_at DATETIME,
  updated_at DATETIME
);`,
	}
	for _, stmt := range statements {
		require.NoError(t, conn.Exec(stmt).Error)
	}
	return conn
}

func newCatalogTestService(t *testing.T, conn *gorm.DB, strict bool) Service {
	t.Helper()

	svc, err := NewService(NewRepository(conn), config.CatalogConfig{
		StrictBrandMatch: strict,
		FallbackImageURL: "/images/placeholder.png",
		DefaultPageSize:  20,
		MaxPageSize:      100,
	}, logger.New(logger.Options{ServiceName: "test"}))
	require.NoError(t, err)
	return svc
}

func seedCategory(t *testing.T, conn *gorm.DB, name, slug string) *models.Category {
	t.Helper()

	category := &models.Category{ID: uuid.New(), Name: name}
	if slug != "" {
		category.Slug = &slug
	}
	require.NoError(t, conn.Create(category).Error)
	return category
}

func seedBrand(t *testing.T, conn *gorm.DB, categoryID uuid.UUID, name, slug string) *models.SubCategory {
	t.Helper()

	brand := &models.SubCategory{ID: uuid.New(), Name: name, Slug: slug, CategoryID: categoryID}
	require.NoError(t, conn.Create(brand).Error)
	return brand
}

func seedType(t *testing.T, conn *gorm.DB, brandID uuid.UUID, name, slug string) *models.Type {
	t.Helper()

	typ := &models.Type{ID: uuid.New(), Name: name, Slug: slug, SubCategoryID: brandID}
	require.NoError(t, conn.Create(typ).Error)
	return typ
}

func seedProduct(t *testing.T, conn *gorm.DB, category *models.Category, mutate func(*models.Product)) *models.Product {
	t.Helper()

	product := &models.Product{
		ID:         uuid.New(),
		Name:       "Product " + uuid.NewString()[:8],
		Slug:       "product-" + uuid.NewString()[:8],
		Price:      decimal.NewFromInt(100),
		Status:     enums.ProductStatusActive,
		CategoryID: category.ID,
	}
	if mutate != nil {
		mutate(product)
	}
	require.NoError(t, conn.Create(product).Error)
	return product
}

func TestProductsByCategoryUnknownCategory(t *testing.T) {
	conn := setupCatalogTestDB(t)
	svc := newCatalogTestService(t, conn, false)

	result, err := svc.ProductsByCategory(context.Background(), "no-such-category", "", "", pagination.Params{})
	require.NoError(t, err)
	assert.Empty(t, result.CategoryName)
	assert.Empty(t, result.Brands)
	assert.Empty(t, result.Types)
	assert.Empty(t, result.Products)
}

func TestProductsByCategorySegmentResolution(t *testing.T) {
	conn := setupCatalogTestDB(t)
	svc := newCatalogTestService(t, conn, false)
	category := seedCategory(t, conn, "Hair Care", "hair-care")

	t.Run("bySlug", func(t *testing.T) {
		result, err := svc.ProductsByCategory(context.Background(), "hair-care", "", "", pagination.Params{})
		require.NoError(t, err)
		assert.Equal(t, "Hair Care", result.CategoryName)
	})

	t.Run("byNameCaseInsensitive", func(t *testing.T) {
		result, err := svc.ProductsByCategory(context.Background(), "HAIR CARE", "", "", pagination.Params{})
		require.NoError(t, err)
		assert.Equal(t, "Hair Care", result.CategoryName)
	})

	t.Run("byHyphenatedName", func(t *testing.T) {
		noSlug := seedCategory(t, conn, "Mom and Baby", "")
		result, err := svc.ProductsByCategory(context.Background(), "mom-and-baby", "", "", pagination.Params{})
		require.NoError(t, err)
		assert.Equal(t, noSlug.Name, result.CategoryName)
	})

	t.Run("byID", func(t *testing.T) {
		result, err := svc.ProductsByCategory(context.Background(), category.ID.String(), "", "", pagination.Params{})
		require.NoError(t, err)
		assert.Equal(t, "Hair Care", result.CategoryName)
	})
}

func TestProductsByCategoryDrilldownLevels(t *testing.T) {
	conn := setupCatalogTestDB(t)
	svc := newCatalogTestService(t, conn, false)

	category := seedCategory(t, conn, "Hair Care", "hair-care")
	brand := seedBrand(t, conn, category.ID, "Velora", "velora")
	otherBrand := seedBrand(t, conn, category.ID, "Pure", "pure")
	typ := seedType(t, conn, brand.ID, "Shampoo", "shampoo")

	seedProduct(t, conn, category, func(p *models.Product) {
		p.SubCategoryID = &brand.ID
		p.TypeID = &typ.ID
	})
	seedProduct(t, conn, category, func(p *models.Product) {
		p.SubCategoryID = &otherBrand.ID
	})

	t.Run("noBrandFilterListsBrands", func(t *testing.T) {
		result, err := svc.ProductsByCategory(context.Background(), "hair-care", "", "", pagination.Params{})
		require.NoError(t, err)
		assert.Len(t, result.Brands, 2)
		assert.Empty(t, result.Types)
		assert.Empty(t, result.Products)
	})

	t.Run("brandWithTypesListsTypes", func(t *testing.T) {
		result, err := svc.ProductsByCategory(context.Background(), "hair-care", "velora", "", pagination.Params{})
		require.NoError(t, err)
		require.NotNil(t, result.Brand)
		assert.Equal(t, "Velora", result.Brand.Name)
		assert.Len(t, result.Types, 1)
		assert.Empty(t, result.Products)
	})

	t.Run("brandWithoutTypesListsProducts", func(t *testing.T) {
		result, err := svc.ProductsByCategory(context.Background(), "hair-care", "pure", "", pagination.Params{})
		require.NoError(t, err)
		require.NotNil(t, result.Brand)
		assert.Empty(t, result.Types)
		assert.Len(t, result.Products, 1)
	})

	t.Run("brandAndTypeListsProducts", func(t *testing.T) {
		result, err := svc.ProductsByCategory(context.Background(), "hair-care", "velora", "shampoo", pagination.Params{})
		require.NoError(t, err)
		require.NotNil(t, result.Type)
		assert.Equal(t, "Shampoo", result.Type.Name)
		assert.Len(t, result.Products, 1)
	})
}

func TestProductsByCategoryBrandMatching(t *testing.T) {
	conn := setupCatalogTestDB(t)
	category := seedCategory(t, conn, "Hair Care", "hair-care")
	brand := seedBrand(t, conn, category.ID, "Velora", "velora")
	seedProduct(t, conn, category, func(p *models.Product) { p.SubCategoryID = &brand.ID })
	seedProduct(t, conn, category, nil)

	t.Run("lenientIgnoresUnknownBrandFilter", func(t *testing.T) {
		svc := newCatalogTestService(t, conn, false)
		result, err := svc.ProductsByCategory(context.Background(), "hair-care", "unknown-brand", "", pagination.Params{})
		require.NoError(t, err)
		assert.Nil(t, result.Brand)
		assert.Empty(t, result.Brands, "an unmatched brand must not re-open the brand list")
		assert.Len(t, result.Products, 2, "all category products page out as if no brand were given")
	})

	t.Run("strictRejectsUnknownBrand", func(t *testing.T) {
		svc := newCatalogTestService(t, conn, true)
		_, err := svc.ProductsByCategory(context.Background(), "hair-care", "unknown-brand", "", pagination.Params{})
		require.Error(t, err)
		typed := pkgerrors.As(err)
		require.NotNil(t, typed)
		assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())
	})
}

func TestProductsByCategoryNoBrandsGoesStraightToProducts(t *testing.T) {
	conn := setupCatalogTestDB(t)
	svc := newCatalogTestService(t, conn, false)
	category := seedCategory(t, conn, "Fragrance", "fragrance")
	seedProduct(t, conn, category, nil)
	seedProduct(t, conn, category, func(p *models.Product) { p.Status = enums.ProductStatusDraft })

	result, err := svc.ProductsByCategory(context.Background(), "fragrance", "", "", pagination.Params{})
	require.NoError(t, err)
	assert.Empty(t, result.Brands)
	assert.Len(t, result.Products, 1, "drafts must stay hidden")
	assert.EqualValues(t, 1, result.Pagination.Total)
}

func TestProductsByCategoryLocalizedNames(t *testing.T) {
	conn := setupCatalogTestDB(t)
	svc := newCatalogTestService(t, conn, false)

	nameAr := "العناية بالشعر"
	category := seedCategory(t, conn, "Hair Care", "hair-care")
	require.NoError(t, conn.Model(&models.Category{}).Where("id = ?", category.ID).Update("name_ar", nameAr).Error)

	ctx := i18n.WithLocale(context.Background(), enums.LocaleArabic)
	result, err := svc.ProductsByCategory(ctx, "hair-care", "", "", pagination.Params{})
	require.NoError(t, err)
	assert.Equal(t, nameAr, result.CategoryName)
}

func TestProductShelves(t *testing.T) {
	conn := setupCatalogTestDB(t)
	svc := newCatalogTestService(t, conn, false)
	category := seedCategory(t, conn, "Skin Care", "skin-care")

	seedProduct(t, conn, category, func(p *models.Product) { p.IsTrending = true })
	seedProduct(t, conn, category, func(p *models.Product) { p.BestSeller = true })
	discounted := decimal.NewFromInt(50)
	seedProduct(t, conn, category, func(p *models.Product) { p.DiscountPrice = &discounted })
	seedProduct(t, conn, category, nil)

	trending, err := svc.TrendingProducts(context.Background(), pagination.Params{})
	require.NoError(t, err)
	assert.Len(t, trending.Products, 1)

	best, err := svc.BestSellers(context.Background(), pagination.Params{})
	require.NoError(t, err)
	assert.Len(t, best.Products, 1)

	sale, err := svc.OnSaleProducts(context.Background(), pagination.Params{})
	require.NoError(t, err)
	require.Len(t, sale.Products, 1)
	assert.True(t, sale.Products[0].Price.Equal(discounted))
	require.NotNil(t, sale.Products[0].OriginalPrice)

	all, err := svc.Products(context.Background(), pagination.Params{})
	require.NoError(t, err)
	assert.Len(t, all.Products, 4)
}

func TestSearchProducts(t *testing.T) {
	conn := setupCatalogTestDB(t)
	svc := newCatalogTestService(t, conn, false)
	category := seedCategory(t, conn, "Skin Care", "skin-care")
	seedProduct(t, conn, category, func(p *models.Product) { p.Name = "Rose Water Toner" })
	seedProduct(t, conn, category, func(p *models.Product) { p.Name = "Clay Mask" })

	found, err := svc.SearchProducts(context.Background(), "rose", pagination.Params{})
	require.NoError(t, err)
	require.Len(t, found.Products, 1)
	assert.Equal(t, "Rose Water Toner", found.Products[0].Name)

	empty, err := svc.SearchProducts(context.Background(), "", pagination.Params{})
	require.NoError(t, err)
	assert.Empty(t, empty.Products)
}

func TestProductBySlugAndRelated(t *testing.T) {
	conn := setupCatalogTestDB(t)
	svc := newCatalogTestService(t, conn, false)
	category := seedCategory(t, conn, "Skin Care", "skin-care")
	product := seedProduct(t, conn, category, func(p *models.Product) { p.Slug = "rose-water-toner" })
	seedProduct(t, conn, category, nil)
	seedProduct(t, conn, category, func(p *models.Product) { p.Status = enums.ProductStatusArchived })

	dto, err := svc.ProductBySlug(context.Background(), "rose-water-toner")
	require.NoError(t, err)
	assert.Equal(t, product.ID, dto.ID)

	_, err = svc.ProductBySlug(context.Background(), "missing-slug")
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())

	related, err := svc.RelatedProducts(context.Background(), "rose-water-toner")
	require.NoError(t, err)
	require.Len(t, related, 1, "only the active sibling qualifies")
	assert.NotEqual(t, product.ID, related[0].ID)
}

func TestCategoryListingAndSearch(t *testing.T) {
	conn := setupCatalogTestDB(t)
	svc := newCatalogTestService(t, conn, false)

	plain := seedCategory(t, conn, "Fragrance", "fragrance")
	featured := seedCategory(t, conn, "Hair Care", "hair-care")
	require.NoError(t, conn.Model(&models.Category{}).Where("id = ?", featured.ID).Update("is_featured", true).Error)

	all, err := svc.Categories(context.Background())
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, featured.ID, all[0].ID, "featured categories sort first")

	onlyFeatured, err := svc.FeaturedCategories(context.Background())
	require.NoError(t, err)
	require.Len(t, onlyFeatured, 1)
	assert.Equal(t, featured.ID, onlyFeatured[0].ID)

	matched, err := svc.SearchCategories(context.Background(), "frag")
	require.NoError(t, err)
	require.Len(t, matched, 1)
	assert.Equal(t, plain.ID, matched[0].ID)

	none, err := svc.SearchCategories(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, none)
}
