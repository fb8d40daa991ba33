package orders

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/velora-shop/velora-backend/pkg/config"
	"github.com/velora-shop/velora-backend/pkg/enums"
	"github.com/velora-shop/velora-backend/pkg/errors"
	"github.com/velora-shop/velora-backend/pkg/logger"
	"github.com/velora-shop/velora-backend/pkg/pagination"
)

const recentOrderLimit = 10

// Service covers the panel's order management and dashboard.
type Service interface {
	ListOrders(ctx context.Context, status string, params pagination.Params) (*OrderListResult, error)
	GetOrder(ctx context.Context, id uuid.UUID) (*OrderDTO, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, input StatusUpdateInput) (*OrderDTO, error)
	DeleteOrder(ctx context.Context, id uuid.UUID) error
	DashboardStats(ctx context.Context) (*DashboardStats, error)
}

type service struct {
	repo *Repository
	cfg  config.CatalogConfig
	logg *logger.Logger
}

// NewService wires the admin order service.
func NewService(repo *Repository, cfg config.CatalogConfig, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("orders service requires a repository")
	}
	if logg == nil {
		return nil, fmt.Errorf("orders service requires a logger")
	}
	return &service{repo: repo, cfg: cfg, logg: logg}, nil
}

func (s *service) ListOrders(ctx context.Context, status string, params pagination.Params) (*OrderListResult, error) {
	var filter enums.OrderStatus
	if status != "" {
		parsed, err := enums.ParseOrderStatus(status)
		if err != nil {
			return nil, errors.New(errors.CodeValidation, "unknown order status")
		}
		filter = parsed
	}
	params = pagination.Normalize(params, s.cfg.MaxPageSize)
	rows, total, err := s.repo.ListOrders(ctx, filter, params)
	if err != nil {
		return nil, errors.Wrap(errors.CodeDependency, err, "list orders")
	}
	dtos := make([]OrderDTO, 0, len(rows))
	for i := range rows {
		dtos = append(dtos, NewOrderDTO(&rows[i]))
	}
	return &OrderListResult{Orders: dtos, Pagination: pagination.Build(params, total)}, nil
}

func (s *service) GetOrder(ctx context.Context, id uuid.UUID) (*OrderDTO, error) {
	order, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.Wrap(errors.CodeDependency, err, "load order")
	}
	if order == nil {
		return nil, errors.New(errors.CodeNotFound, "order not found")
	}
	dto := NewOrderDTO(order)
	return &dto, nil
}

func (s *service) UpdateStatus(ctx context.Context, id uuid.UUID, input StatusUpdateInput) (*OrderDTO, error) {
	status, err := enums.ParseOrderStatus(input.Status)
	if err != nil {
		return nil, errors.New(errors.CodeValidation, "unknown order status")
	}
	affected, err := s.repo.UpdateStatus(ctx, id, status)
	if err != nil {
		return nil, errors.Wrap(errors.CodeDependency, err, "update order status")
	}
	if affected == 0 {
		return nil, errors.New(errors.CodeNotFound, "order not found")
	}
	s.logg.Info(s.logg.WithFields(ctx, map[string]any{
		"order_id": id.String(),
		"status":   string(status),
	}), "admin.order.status_updated")
	return s.GetOrder(ctx, id)
}

func (s *service) DeleteOrder(ctx context.Context, id uuid.UUID) error {
	order, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return errors.Wrap(errors.CodeDependency, err, "load order")
	}
	if order == nil {
		return errors.New(errors.CodeNotFound, "order not found")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return errors.Wrap(errors.CodeDependency, err, "delete order")
	}
	s.logg.Info(s.logg.WithField(ctx, "order_id", id.String()), "admin.order.deleted")
	return nil
}

func (s *service) DashboardStats(ctx context.Context) (*DashboardStats, error) {
	stats := &DashboardStats{RecentOrders: []OrderDTO{}}

	var err error
	if stats.TotalOrders, err = s.repo.CountByStatus(ctx, ""); err != nil {
		return nil, errors.Wrap(errors.CodeDependency, err, "count orders")
	}
	if stats.PendingOrders, err = s.repo.CountByStatus(ctx, enums.OrderStatusPending); err != nil {
		return nil, errors.Wrap(errors.CodeDependency, err, "count pending orders")
	}
	if stats.DeliveredOrders, err = s.repo.CountByStatus(ctx, enums.OrderStatusDelivered); err != nil {
		return nil, errors.Wrap(errors.CodeDependency, err, "count delivered orders")
	}
	if stats.TotalRevenue, err = s.repo.DeliveredRevenue(ctx); err != nil {
		return nil, errors.Wrap(errors.CodeDependency, err, "sum delivered revenue")
	}
	if stats.TotalProducts, err = s.repo.CountProducts(ctx); err != nil {
		return nil, errors.Wrap(errors.CodeDependency, err, "count products")
	}
	if stats.TotalCategories, err = s.repo.CountCategories(ctx); err != nil {
		return nil, errors.Wrap(errors.CodeDependency, err, "count categories")
	}

	recent, err := s.repo.RecentOrders(ctx, recentOrderLimit)
	if err != nil {
		return nil, errors.Wrap(errors.CodeDependency, err, "load recent orders")
	}
	for i := range recent {
		stats.RecentOrders = append(stats.RecentOrders, NewOrderDTO(&recent[i]))
	}
	return stats, nil
}
