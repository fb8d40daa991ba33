package checkout

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/velora-shop/velora-backend/pkg/config"
	"github.com/velora-shop/velora-backend/pkg/db"
	"github.com/velora-shop/velora-backend/pkg/db/models"
	"github.com/velora-shop/velora-backend/pkg/enums"
	"github.com/velora-shop/velora-backend/pkg/errors"
	"github.com/velora-shop/velora-backend/pkg/logger"
)

var oneHundred = decimal.NewFromInt(100)

// Service prices carts and captures orders.
type Service interface {
	ValidatePromoCode(ctx context.Context, input PromoValidationInput) (*PromoSummary, error)
	QuoteCart(ctx context.Context, input QuoteInput) (*Quote, error)
	CreateOrder(ctx context.Context, input OrderInput) (*OrderResult, error)
}

type service struct {
	dbc  *db.Client
	repo *Repository
	cfg  config.CheckoutConfig
	logg *logger.Logger

	shipping decimal.Decimal
}

// NewService wires the checkout service. The flat shipping fee is parsed
// once at startup so a bad configuration fails fast.
func NewService(dbc *db.Client, repo *Repository, cfg config.CheckoutConfig, logg *logger.Logger) (Service, error) {
	if dbc == nil {
		return nil, fmt.Errorf("checkout service requires a db client")
	}
	if repo == nil {
		return nil, fmt.Errorf("checkout service requires a repository")
	}
	if logg == nil {
		return nil, fmt.Errorf("checkout service requires a logger")
	}
	shipping, err := decimal.NewFromString(cfg.ShippingCost)
	if err != nil {
		return nil, fmt.Errorf("invalid shipping cost %q: %w", cfg.ShippingCost, err)
	}
	if shipping.IsNegative() {
		return nil, fmt.Errorf("shipping cost must not be negative")
	}
	return &service{dbc: dbc, repo: repo, cfg: cfg, logg: logg, shipping: shipping}, nil
}

// ValidatePromoCode answers with the discount for an active code. An
// unknown or disabled code is a validation failure, not a lookup error,
// so the storefront shows the same message for both.
func (s *service) ValidatePromoCode(ctx context.Context, input PromoValidationInput) (*PromoSummary, error) {
	promo, err := s.repo.FindActivePromo(ctx, input.Code)
	if err != nil {
		return nil, errors.Wrap(errors.CodeDependency, err, "look up promo code")
	}
	if promo == nil {
		return nil, errors.New(errors.CodeValidation, "invalid or inactive promo code")
	}
	return &PromoSummary{
		ID:                 promo.ID,
		Code:               promo.Code,
		DiscountPercentage: promo.DiscountPercentage,
	}, nil
}

// pricedCart is the result of validating lines against live products.
type pricedCart struct {
	subtotal decimal.Decimal
	savings  decimal.Decimal
	lines    []models.OrderItem
}

// priceLines re-checks every submitted line against the live product row:
// the product must exist and be active, the quantity positive, and the
// submitted unit price within (0, product price]. The submitted price is
// what gets snapshotted, so an undercut listing price still honors what
// the customer was shown.
func (s *service) priceLines(ctx context.Context, items []CartItemInput) (*pricedCart, error) {
	if len(items) > s.cfg.MaxItemsPerOrder {
		return nil, errors.New(errors.CodeValidation, "too many items in order")
	}
	cart := &pricedCart{subtotal: decimal.Zero, savings: decimal.Zero}
	for i, item := range items {
		product, err := s.findProduct(ctx, item)
		if err != nil {
			return nil, err
		}
		if product == nil || product.Status != enums.ProductStatusActive {
			return nil, errors.New(errors.CodeValidation, fmt.Sprintf("item %d: product is unavailable", i+1))
		}
		if item.Quantity < 1 {
			return nil, errors.New(errors.CodeValidation, fmt.Sprintf("item %d: quantity must be at least 1", i+1))
		}
		if !item.Price.IsPositive() {
			return nil, errors.New(errors.CodeValidation, fmt.Sprintf("item %d: price must be positive", i+1))
		}
		if item.Price.GreaterThan(product.Price) {
			return nil, errors.New(errors.CodeValidation, fmt.Sprintf("item %d: price exceeds the listed price", i+1))
		}
		qty := decimal.NewFromInt(int64(item.Quantity))
		cart.subtotal = cart.subtotal.Add(item.Price.Mul(qty))
		if product.Price.GreaterThan(item.Price) {
			cart.savings = cart.savings.Add(product.Price.Sub(item.Price).Mul(qty))
		}
		cart.lines = append(cart.lines, models.OrderItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     item.Price,
		})
	}
	return cart, nil
}

func (s *service) findProduct(ctx context.Context, item CartItemInput) (*models.Product, error) {
	product, err := s.repo.FindProduct(ctx, item.ProductID)
	if err != nil {
		return nil, errors.Wrap(errors.CodeDependency, err, "load product")
	}
	return product, nil
}

// QuoteCart prices the cart without persisting anything. The promo code
// is optional; an invalid one fails the quote the same way the dedicated
// validation endpoint would.
func (s *service) QuoteCart(ctx context.Context, input QuoteInput) (*Quote, error) {
	cart, err := s.priceLines(ctx, input.Items)
	if err != nil {
		return nil, err
	}

	quote := &Quote{
		Subtotal:      cart.subtotal,
		PromoDiscount: decimal.Zero,
		Shipping:      s.shipping,
	}
	if strings.TrimSpace(input.PromoCode) != "" {
		summary, err := s.ValidatePromoCode(ctx, PromoValidationInput{Code: input.PromoCode})
		if err != nil {
			return nil, err
		}
		quote.PromoCode = summary
		quote.PromoDiscount = cart.subtotal.Mul(summary.DiscountPercentage).Div(oneHundred).Round(2)
	}
	quote.Total = cart.subtotal.Sub(quote.PromoDiscount).Add(s.shipping)
	quote.TotalSavings = cart.savings.Add(quote.PromoDiscount)
	return quote, nil
}

// CreateOrder captures the order. The order row, its lines and the promo
// sales rollup commit in one transaction; a failure anywhere leaves no
// partial order behind.
func (s *service) CreateOrder(ctx context.Context, input OrderInput) (*OrderResult, error) {
	cart, err := s.priceLines(ctx, input.Items)
	if err != nil {
		return nil, err
	}

	var promo *models.PromoCode
	if strings.TrimSpace(input.PromoCode) != "" {
		promo, err = s.repo.FindActivePromo(ctx, input.PromoCode)
		if err != nil {
			return nil, errors.Wrap(errors.CodeDependency, err, "look up promo code")
		}
		if promo == nil {
			return nil, errors.New(errors.CodeValidation, "invalid or inactive promo code")
		}
	}

	promoDiscount := decimal.Zero
	if promo != nil {
		promoDiscount = cart.subtotal.Mul(promo.DiscountPercentage).Div(oneHundred).Round(2)
	}
	total := cart.subtotal.Sub(promoDiscount).Add(s.shipping)

	order := &models.Order{
		CustomerName:  input.CustomerName,
		Email:         input.Email,
		Phone:         input.Phone,
		NationalID:    input.NationalID,
		StreetAddress: input.StreetAddress,
		City:          input.City,
		PostalCode:    input.PostalCode,
		TotalAmount:   total,
		Discount:      promoDiscount,
		Status:        enums.OrderStatusPending,
		Items:         cart.lines,
	}
	if promo != nil {
		order.PromoCodeID = &promo.ID
	}

	err = s.dbc.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)
		if err := txRepo.CreateOrder(ctx, order); err != nil {
			return err
		}
		if promo != nil {
			if err := txRepo.AddPromoSales(ctx, promo.ID, total); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		s.logg.Error(s.logg.WithFields(ctx, map[string]any{
			"customer_name": input.CustomerName,
			"item_count":    len(input.Items),
			"promo_code":    input.PromoCode,
		}), "checkout.order.failed", err)
		return nil, errors.Wrap(errors.CodeDependency, err, "capture order")
	}

	s.logg.Info(s.logg.WithFields(ctx, map[string]any{
		"order_id": order.ID.String(),
		"total":    total.String(),
	}), "checkout.order.created")

	return &OrderResult{
		OrderID:       order.ID,
		Status:        string(order.Status),
		Subtotal:      cart.subtotal,
		PromoDiscount: promoDiscount,
		Shipping:      s.shipping,
		Total:         total,
	}, nil
}
