package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/velora-shop/velora-backend/pkg/enums"
)

// Order captures a storefront checkout with its customer snapshot.
type Order struct {
	ID            uuid.UUID         `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	CustomerName  string            `gorm:"column:customer_name;not null"`
	Email         *string           `gorm:"column:email"`
	Phone         string            `gorm:"column:phone;not null"`
	NationalID    *string           `gorm:"column:national_id"`
	StreetAddress string            `gorm:"column:street_address;not null"`
	City          string            `gorm:"column:city;not null"`
	PostalCode    *string           `gorm:"column:postal_code"`
	TotalAmount   decimal.Decimal   `gorm:"column:total_amount;type:numeric(12,2);not null"`
	Discount      decimal.Decimal   `gorm:"column:discount;type:numeric(12,2);not null;default:0"`
	Status        enums.OrderStatus `gorm:"column:status;type:text;not null;default:'pending'"`
	PromoCodeID   *uuid.UUID        `gorm:"column:promo_code_id;type:uuid;index"`
	PromoCode     *PromoCode        `gorm:"foreignKey:PromoCodeID"`
	Items         []OrderItem       `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CreatedAt     time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}
