package promo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/velora-shop/velora-backend/pkg/db/models"
)

// Repository covers promo code administration.
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

// List returns every promo code, newest first.
func (r *Repository) List(ctx context.Context) ([]models.PromoCode, error) {
	var codes []models.PromoCode
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&codes).Error
	return codes, err
}

// FindByID loads one promo code, nil when absent.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.PromoCode, error) {
	var promo models.PromoCode
	err := r.db.WithContext(ctx).First(&promo, "id = ?", id).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &promo, nil
}

// CodeExists checks the uppercase code against other rows.
func (r *Repository) CodeExists(ctx context.Context, code string, excludeID *uuid.UUID) (bool, error) {
	query := r.db.WithContext(ctx).Model(&models.PromoCode{}).Where("code = ?", code)
	if excludeID != nil {
		query = query.Where("id <> ?", *excludeID)
	}
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *Repository) Create(ctx context.Context, promo *models.PromoCode) error {
	return r.db.WithContext(ctx).Create(promo).Error
}

func (r *Repository) Save(ctx context.Context, promo *models.PromoCode) error {
	return r.db.WithContext(ctx).Save(promo).Error
}

func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.PromoCode{}, "id = ?", id).Error
}

// SalesSince sums order totals captured with the code at or after the
// cutoff. Backs the month-to-date rollup.
func (r *Repository) SalesSince(ctx context.Context, promoID uuid.UUID, since time.Time) (decimal.Decimal, error) {
	var raw struct {
		Sales decimal.Decimal
	}
	err := r.db.WithContext(ctx).Model(&models.Order{}).
		Select("COALESCE(SUM(total_amount), 0) AS sales").
		Where("promo_code_id = ? AND created_at >= ?", promoID, since).
		Scan(&raw).Error
	if err != nil {
		return decimal.Zero, err
	}
	return raw.Sales, nil
}

// OrderCount counts orders captured with the code.
func (r *Repository) OrderCount(ctx context.Context, promoID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Order{}).
		Where("promo_code_id = ?", promoID).
		Count(&count).Error
	return count, err
}
