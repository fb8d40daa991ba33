package orders

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/velora-shop/velora-backend/pkg/db/models"
	"github.com/velora-shop/velora-backend/pkg/pagination"
)

// OrderItemDTO is one order line with a product summary for the panel.
type OrderItemDTO struct {
	ID          uuid.UUID       `json:"id"`
	ProductID   uuid.UUID       `json:"productId"`
	ProductName string          `json:"productName,omitempty"`
	ProductSlug string          `json:"productSlug,omitempty"`
	Quantity    int             `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
	LineTotal   decimal.Decimal `json:"lineTotal"`
}

// OrderDTO is the panel order payload.
type OrderDTO struct {
	ID            uuid.UUID       `json:"id"`
	CustomerName  string          `json:"customerName"`
	Email         *string         `json:"email,omitempty"`
	Phone         string          `json:"phone"`
	NationalID    *string         `json:"nationalId,omitempty"`
	StreetAddress string          `json:"streetAddress"`
	City          string          `json:"city"`
	PostalCode    *string         `json:"postalCode,omitempty"`
	TotalAmount   decimal.Decimal `json:"totalAmount"`
	Discount      decimal.Decimal `json:"discount"`
	Status        string          `json:"status"`
	PromoCode     *string         `json:"promoCode,omitempty"`
	Items         []OrderItemDTO  `json:"items"`
	CreatedAt     string          `json:"createdAt"`
	UpdatedAt     string          `json:"updatedAt"`
}

// OrderListResult pages the panel order table.
type OrderListResult struct {
	Orders     []OrderDTO      `json:"orders"`
	Pagination pagination.Page `json:"pagination"`
}

// StatusUpdateInput changes an order's fulfillment state.
type StatusUpdateInput struct {
	Status string `json:"status" validate:"required,oneof=pending processing shipped delivered cancelled"`
}

// DashboardStats is the panel landing summary. Revenue counts delivered
// orders only.
type DashboardStats struct {
	TotalOrders     int64           `json:"totalOrders"`
	PendingOrders   int64           `json:"pendingOrders"`
	DeliveredOrders int64           `json:"deliveredOrders"`
	TotalRevenue    decimal.Decimal `json:"totalRevenue"`
	TotalProducts   int64           `json:"totalProducts"`
	TotalCategories int64           `json:"totalCategories"`
	RecentOrders    []OrderDTO      `json:"recentOrders"`
}

// NewOrderDTO flattens an order row with its preloaded lines.
func NewOrderDTO(order *models.Order) OrderDTO {
	items := make([]OrderItemDTO, 0, len(order.Items))
	for i := range order.Items {
		item := &order.Items[i]
		dto := OrderItemDTO{
			ID:        item.ID,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     item.Price,
			LineTotal: item.Price.Mul(decimal.NewFromInt(int64(item.Quantity))),
		}
		if item.Product != nil {
			dto.ProductName = item.Product.Name
			dto.ProductSlug = item.Product.Slug
		}
		items = append(items, dto)
	}
	dto := OrderDTO{
		ID:            order.ID,
		CustomerName:  order.CustomerName,
		Email:         order.Email,
		Phone:         order.Phone,
		NationalID:    order.NationalID,
		StreetAddress: order.StreetAddress,
		City:          order.City,
		PostalCode:    order.PostalCode,
		TotalAmount:   order.TotalAmount,
		Discount:      order.Discount,
		Status:        string(order.Status),
		Items:         items,
		CreatedAt:     order.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:     order.UpdatedAt.UTC().Format(time.RFC3339),
	}
	if order.PromoCode != nil {
		dto.PromoCode = &order.PromoCode.Code
	}
	return dto
}
