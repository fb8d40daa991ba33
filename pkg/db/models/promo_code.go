package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PromoCode is a delegate discount code. Code is stored uppercase and
// TotalSales accumulates the order totals captured with the code.
type PromoCode struct {
	ID                 uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Code               string          `gorm:"column:code;not null;uniqueIndex"`
	DiscountPercentage decimal.Decimal `gorm:"column:discount_percentage;type:numeric(5,2);not null"`
	DelegateName       *string         `gorm:"column:delegate_name"`
	IsActive           bool            `gorm:"column:is_active;not null;default:true"`
	TotalSales         decimal.Decimal `gorm:"column:total_sales;type:numeric(12,2);not null;default:0"`
	CreatedAt          time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt          time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}
