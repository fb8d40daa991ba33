package promo

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/velora-shop/velora-backend/pkg/db/models"
	pkgerrors "github.com/velora-shop/velora-backend/pkg/errors"
	"github.com/velora-shop/velora-backend/pkg/logger"
)

func setupPromoTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	conn, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)

	statements := []string{
		`CREATE TABLE promo_codes (
  id TEXT PRIMARY KEY DEFAULT (lower(hex(randomblob(16)))),
  code TEXT NOT NULL UNIQUE,
  discount_percentage NUMERIC NOT NULL,
  delegate_name TEXT,
  is_active INTEGER NOT NULL DEFAULT 1,
  total_sales NUMERIC NOT NULL DEFAULT 0,
  created_at DATETIME,
  updated_at DATETIME
);`,
		`CREATE TABLE orders (
  id TEXT PRIMARY KEY DEFAULT (lower(hex(randomblob(16)))),
  customer_name TEXT NOT NULL,
  email TEXT,
  phone TEXT NOT NULL,
  national_id TEXT,
  street_address TEXT NOT NULL,
  city TEXT NOT NULL,
  postal_code TEXT,
  total_amount NUMERIC NOT NULL,
  discount NUMERIC NOT NULL DEFAULT 0,
  status TEXT NOT NULL DEFAULT 'pending',
  promo_code_id TEXT,
  created_at DATETIME,
  updated_at DATETIME
);`,
	}
	for _, stmt := range statements {
		require.NoError(t, conn.Exec(stmt).Error)
	}
	return conn
}

func newPromoTestService(t *testing.T, conn *gorm.DB) *service {
	t.Helper()

	svc, err := NewService(NewRepository(conn), logger.New(logger.Options{ServiceName: "test"}))
	require.NoError(t, err)
	return svc.(*service)
}

func seedPromoRow(t *testing.T, conn *gorm.DB, code string, active bool) *models.PromoCode {
	t.Helper()

	promo := &models.PromoCode{
		ID:                 uuid.New(),
		Code:               code,
		DiscountPercentage: decimal.NewFromInt(10),
		IsActive:           active,
		TotalSales:         decimal.Zero,
	}
	require.NoError(t, conn.Create(promo).Error)
	return promo
}

func seedOrderForPromo(t *testing.T, conn *gorm.DB, promoID uuid.UUID, total int64, createdAt time.Time) {
	t.Helper()

	order := map[string]any{
		"id":             uuid.NewString(),
		"customer_name":  "Test Customer",
		"phone":          "+20100000000",
		"street_address": "1 Test St",
		"city":           "Cairo",
		"total_amount":   decimal.NewFromInt(total),
		"promo_code_id":  promoID.String(),
		"created_at":     createdAt,
		"updated_at":     createdAt,
	}
	require.NoError(t, conn.Table("orders").Create(order).Error)
}

func TestPromoCreate(t *testing.T) {
	conn := setupPromoTestDB(t)
	svc := newPromoTestService(t, conn)

	dto, err := svc.Create(context.Background(), PromoInput{
		Code:               "  summer10 ",
		DiscountPercentage: decimal.NewFromInt(10),
		IsActive:           true,
	})
	require.NoError(t, err)
	assert.Equal(t, "SUMMER10", dto.Code, "codes normalize to uppercase")
	assert.True(t, dto.TotalSales.IsZero())

	t.Run("duplicateCode", func(t *testing.T) {
		_, err := svc.Create(context.Background(), PromoInput{
			Code:               "SUMMER10",
			DiscountPercentage: decimal.NewFromInt(5),
		})
		require.Error(t, err)
		typed := pkgerrors.As(err)
		require.NotNil(t, typed)
		assert.Equal(t, pkgerrors.CodeConflict, typed.Code())
	})

	t.Run("percentageBounds", func(t *testing.T) {
		for _, pct := range []int64{0, -5, 101} {
			_, err := svc.Create(context.Background(), PromoInput{
				Code:               "BOUNDS",
				DiscountPercentage: decimal.NewFromInt(pct),
			})
			require.Error(t, err, "pct %d", pct)
			typed := pkgerrors.As(err)
			require.NotNil(t, typed)
			assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
		}
	})

	t.Run("fullDiscountAllowed", func(t *testing.T) {
		_, err := svc.Create(context.Background(), PromoInput{
			Code:               "FREE100",
			DiscountPercentage: decimal.NewFromInt(100),
		})
		require.NoError(t, err)
	})
}

func TestPromoUpdate(t *testing.T) {
	conn := setupPromoTestDB(t)
	svc := newPromoTestService(t, conn)
	promo := seedPromoRow(t, conn, "SUMMER10", true)
	seedPromoRow(t, conn, "WINTER20", true)

	t.Run("renameToFreeCode", func(t *testing.T) {
		dto, err := svc.Update(context.Background(), promo.ID, PromoInput{
			Code:               "spring15",
			DiscountPercentage: decimal.NewFromInt(15),
			IsActive:           true,
		})
		require.NoError(t, err)
		assert.Equal(t, "SPRING15", dto.Code)
		assert.True(t, dto.DiscountPercentage.Equal(decimal.NewFromInt(15)))
	})

	t.Run("renameToTakenCode", func(t *testing.T) {
		_, err := svc.Update(context.Background(), promo.ID, PromoInput{
			Code:               "WINTER20",
			DiscountPercentage: decimal.NewFromInt(15),
		})
		require.Error(t, err)
		typed := pkgerrors.As(err)
		require.NotNil(t, typed)
		assert.Equal(t, pkgerrors.CodeConflict, typed.Code())
	})

	t.Run("unknownID", func(t *testing.T) {
		_, err := svc.Update(context.Background(), uuid.New(), PromoInput{
			Code:               "NEW",
			DiscountPercentage: decimal.NewFromInt(5),
		})
		require.Error(t, err)
		typed := pkgerrors.As(err)
		require.NotNil(t, typed)
		assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())
	})
}

func TestPromoToggleAndDelete(t *testing.T) {
	conn := setupPromoTestDB(t)
	svc := newPromoTestService(t, conn)
	promo := seedPromoRow(t, conn, "SUMMER10", true)

	dto, err := svc.Toggle(context.Background(), promo.ID)
	require.NoError(t, err)
	assert.False(t, dto.IsActive)

	dto, err = svc.Toggle(context.Background(), promo.ID)
	require.NoError(t, err)
	assert.True(t, dto.IsActive)

	require.NoError(t, svc.Delete(context.Background(), promo.ID))

	err = svc.Delete(context.Background(), promo.ID)
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())
}

func TestPromoSalesRollups(t *testing.T) {
	conn := setupPromoTestDB(t)
	svc := newPromoTestService(t, conn)
	svc.now = func() time.Time { return time.Date(2026, time.August, 15, 12, 0, 0, 0, time.UTC) }

	promo := seedPromoRow(t, conn, "SUMMER10", true)
	require.NoError(t, conn.Model(&models.PromoCode{}).
		Where("id = ?", promo.ID).
		Update("total_sales", decimal.NewFromInt(900)).Error)

	// two orders inside the month, one before it
	seedOrderForPromo(t, conn, promo.ID, 200, time.Date(2026, time.August, 2, 10, 0, 0, 0, time.UTC))
	seedOrderForPromo(t, conn, promo.ID, 100, time.Date(2026, time.August, 10, 10, 0, 0, 0, time.UTC))
	seedOrderForPromo(t, conn, promo.ID, 600, time.Date(2026, time.July, 20, 10, 0, 0, 0, time.UTC))

	dto, err := svc.Get(context.Background(), promo.ID)
	require.NoError(t, err)
	assert.True(t, dto.TotalSales.Equal(decimal.NewFromInt(900)), "total sales %s", dto.TotalSales)
	assert.True(t, dto.MonthToDateSales.Equal(decimal.NewFromInt(300)), "mtd %s", dto.MonthToDateSales)
	assert.EqualValues(t, 3, dto.OrderCount)
}

func TestPromoList(t *testing.T) {
	conn := setupPromoTestDB(t)
	svc := newPromoTestService(t, conn)
	seedPromoRow(t, conn, "A10", true)
	seedPromoRow(t, conn, "B20", false)

	dtos, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, dtos, 2)
}
