package checkout

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CartItemInput is one checkout line as submitted by the storefront. The
// price is what the customer saw; the service re-validates it against the
// live product row before anything is persisted.
type CartItemInput struct {
	ProductID uuid.UUID       `json:"productId" validate:"required"`
	Quantity  int             `json:"quantity" validate:"required,gte=1"`
	Price     decimal.Decimal `json:"price" validate:"required"`
}

// PromoValidationInput carries the code to check.
type PromoValidationInput struct {
	Code string `json:"code" validate:"required,min=1,max=40"`
}

// PromoSummary is the public view of a usable promo code.
type PromoSummary struct {
	ID                 uuid.UUID       `json:"id"`
	Code               string          `json:"code"`
	DiscountPercentage decimal.Decimal `json:"discountPercentage"`
}

// QuoteInput prices a cart without capturing it.
type QuoteInput struct {
	Items     []CartItemInput `json:"items" validate:"required,min=1,dive"`
	PromoCode string          `json:"promoCode" validate:"omitempty,max=40"`
}

// Quote is the priced cart. All figures are decimals in store currency.
type Quote struct {
	Subtotal      decimal.Decimal `json:"subtotal"`
	PromoDiscount decimal.Decimal `json:"promoDiscount"`
	Shipping      decimal.Decimal `json:"shipping"`
	Total         decimal.Decimal `json:"total"`
	TotalSavings  decimal.Decimal `json:"totalSavings"`
	PromoCode     *PromoSummary   `json:"promoCode,omitempty"`
}

// OrderInput is the storefront checkout payload.
type OrderInput struct {
	CustomerName  string          `json:"customerName" validate:"required,min=1,max=200"`
	Email         *string         `json:"email" validate:"omitempty,email,max=254"`
	Phone         string          `json:"phone" validate:"required,min=5,max=30"`
	NationalID    *string         `json:"nationalId" validate:"omitempty,max=30"`
	StreetAddress string          `json:"streetAddress" validate:"required,min=1,max=500"`
	City          string          `json:"city" validate:"required,min=1,max=120"`
	PostalCode    *string         `json:"postalCode" validate:"omitempty,max=20"`
	PromoCode     string          `json:"promoCode" validate:"omitempty,max=40"`
	Items         []CartItemInput `json:"items" validate:"required,min=1,dive"`
}

// OrderResult confirms a captured order.
type OrderResult struct {
	OrderID       uuid.UUID       `json:"orderId"`
	Status        string          `json:"status"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	PromoDiscount decimal.Decimal `json:"promoDiscount"`
	Shipping      decimal.Decimal `json:"shipping"`
	Total         decimal.Decimal `json:"total"`
}
