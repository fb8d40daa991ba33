package checkout

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/velora-shop/velora-backend/pkg/db/models"
)

// Repository covers the checkout write path plus promo lookups.
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

// FindActivePromo matches the trimmed code exactly against the stored
// form; admin writes store codes uppercase, so a lowercase entry simply
// misses. Inactive codes are treated as absent.
func (r *Repository) FindActivePromo(ctx context.Context, code string) (*models.PromoCode, error) {
	trimmed := strings.TrimSpace(code)
	if trimmed == "" {
		return nil, nil
	}
	var promo models.PromoCode
	err := r.db.WithContext(ctx).
		First(&promo, "code = ? AND is_active = ?", trimmed, true).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &promo, nil
}

// FindProduct loads the live product row for line validation, nil when
// absent.
func (r *Repository) FindProduct(ctx context.Context, id uuid.UUID) (*models.Product, error) {
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

// CreateOrder inserts the order and its items in one statement batch;
// gorm cascades the Items association.
func (r *Repository) CreateOrder(ctx context.Context, order *models.Order) error {
	return r.db.WithContext(ctx).Create(order).Error
}

// AddPromoSales bumps the promo's running sales total.
func (r *Repository) AddPromoSales(ctx context.Context, promoID uuid.UUID, amount decimal.Decimal) error {
	return r.db.WithContext(ctx).Model(&models.PromoCode{}).
		Where("id = ?", promoID).
		Update("total_sales", gorm.Expr("total_sales + ?", amount)).Error
}
