package promo

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/velora-shop/velora-backend/pkg/db/models"
	"github.com/velora-shop/velora-backend/pkg/errors"
	"github.com/velora-shop/velora-backend/pkg/logger"
)

// PromoInput is the admin create/update payload. Codes are normalized to
// uppercase before storage.
type PromoInput struct {
	Code               string          `json:"code" validate:"required,min=2,max=40"`
	DiscountPercentage decimal.Decimal `json:"discountPercentage" validate:"required"`
	DelegateName       *string         `json:"delegateName" validate:"omitempty,max=120"`
	IsActive           bool            `json:"isActive"`
}

// PromoDTO is the panel promo payload with its sales rollups.
type PromoDTO struct {
	ID                 uuid.UUID       `json:"id"`
	Code               string          `json:"code"`
	DiscountPercentage decimal.Decimal `json:"discountPercentage"`
	DelegateName       *string         `json:"delegateName,omitempty"`
	IsActive           bool            `json:"isActive"`
	TotalSales         decimal.Decimal `json:"totalSales"`
	MonthToDateSales   decimal.Decimal `json:"monthToDateSales"`
	OrderCount         int64           `json:"orderCount"`
	CreatedAt          string          `json:"createdAt"`
}

// Service covers promo code administration.
type Service interface {
	List(ctx context.Context) ([]PromoDTO, error)
	Get(ctx context.Context, id uuid.UUID) (*PromoDTO, error)
	Create(ctx context.Context, input PromoInput) (*PromoDTO, error)
	Update(ctx context.Context, id uuid.UUID, input PromoInput) (*PromoDTO, error)
	Toggle(ctx context.Context, id uuid.UUID) (*PromoDTO, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo *Repository
	logg *logger.Logger
	now  func() time.Time
}

// NewService wires the promo admin service.
func NewService(repo *Repository, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("promo service requires a repository")
	}
	if logg == nil {
		return nil, fmt.Errorf("promo service requires a logger")
	}
	return &service{repo: repo, logg: logg, now: time.Now}, nil
}

func normalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

func validatePercentage(pct decimal.Decimal) error {
	if !pct.IsPositive() || pct.GreaterThan(decimal.NewFromInt(100)) {
		return errors.New(errors.CodeValidation, "discount percentage must be between 0 and 100")
	}
	return nil
}

func (s *service) monthStart() time.Time {
	now := s.now().UTC()
	return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
}

func (s *service) toDTO(ctx context.Context, promo *models.PromoCode) (*PromoDTO, error) {
	monthSales, err := s.repo.SalesSince(ctx, promo.ID, s.monthStart())
	if err != nil {
		return nil, errors.Wrap(errors.CodeDependency, err, "roll up promo sales")
	}
	count, err := s.repo.OrderCount(ctx, promo.ID)
	if err != nil {
		return nil, errors.Wrap(errors.CodeDependency, err, "count promo orders")
	}
	return &PromoDTO{
		ID:                 promo.ID,
		Code:               promo.Code,
		DiscountPercentage: promo.DiscountPercentage,
		DelegateName:       promo.DelegateName,
		IsActive:           promo.IsActive,
		TotalSales:         promo.TotalSales,
		MonthToDateSales:   monthSales,
		OrderCount:         count,
		CreatedAt:          promo.CreatedAt.UTC().Format(time.RFC3339),
	}, nil
}

func (s *service) List(ctx context.Context) ([]PromoDTO, error) {
	rows, err := s.repo.List(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.CodeDependency, err, "list promo codes")
	}
	dtos := make([]PromoDTO, 0, len(rows))
	for i := range rows {
		dto, err := s.toDTO(ctx, &rows[i])
		if err != nil {
			return nil, err
		}
		dtos = append(dtos, *dto)
	}
	return dtos, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*PromoDTO, error) {
	promo, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.Wrap(errors.CodeDependency, err, "load promo code")
	}
	if promo == nil {
		return nil, errors.New(errors.CodeNotFound, "promo code not found")
	}
	return s.toDTO(ctx, promo)
}

func (s *service) Create(ctx context.Context, input PromoInput) (*PromoDTO, error) {
	if err := validatePercentage(input.DiscountPercentage); err != nil {
		return nil, err
	}
	code := normalizeCode(input.Code)
	taken, err := s.repo.CodeExists(ctx, code, nil)
	if err != nil {
		return nil, errors.Wrap(errors.CodeDependency, err, "check promo code")
	}
	if taken {
		return nil, errors.New(errors.CodeConflict, "promo code already exists")
	}
	promo := &models.PromoCode{
		Code:               code,
		DiscountPercentage: input.DiscountPercentage,
		DelegateName:       input.DelegateName,
		IsActive:           input.IsActive,
		TotalSales:         decimal.Zero,
	}
	if err := s.repo.Create(ctx, promo); err != nil {
		return nil, errors.Wrap(errors.CodeDependency, err, "create promo code")
	}
	s.logg.Info(s.logg.WithField(ctx, "promo_code", code), "admin.promo.created")
	return s.toDTO(ctx, promo)
}

func (s *service) Update(ctx context.Context, id uuid.UUID, input PromoInput) (*PromoDTO, error) {
	if err := validatePercentage(input.DiscountPercentage); err != nil {
		return nil, err
	}
	promo, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.Wrap(errors.CodeDependency, err, "load promo code")
	}
	if promo == nil {
		return nil, errors.New(errors.CodeNotFound, "promo code not found")
	}
	code := normalizeCode(input.Code)
	if code != promo.Code {
		taken, err := s.repo.CodeExists(ctx, code, &id)
		if err != nil {
			return nil, errors.Wrap(errors.CodeDependency, err, "check promo code")
		}
		if taken {
			return nil, errors.New(errors.CodeConflict, "promo code already exists")
		}
	}
	promo.Code = code
	promo.DiscountPercentage = input.DiscountPercentage
	promo.DelegateName = input.DelegateName
	promo.IsActive = input.IsActive
	if err := s.repo.Save(ctx, promo); err != nil {
		return nil, errors.Wrap(errors.CodeDependency, err, "update promo code")
	}
	return s.toDTO(ctx, promo)
}

func (s *service) Toggle(ctx context.Context, id uuid.UUID) (*PromoDTO, error) {
	promo, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.Wrap(errors.CodeDependency, err, "load promo code")
	}
	if promo == nil {
		return nil, errors.New(errors.CodeNotFound, "promo code not found")
	}
	promo.IsActive = !promo.IsActive
	if err := s.repo.Save(ctx, promo); err != nil {
		return nil, errors.Wrap(errors.CodeDependency, err, "toggle promo code")
	}
	s.logg.Info(s.logg.WithFields(ctx, map[string]any{
		"promo_code": promo.Code,
		"is_active":  promo.IsActive,
	}), "admin.promo.toggled")
	return s.toDTO(ctx, promo)
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	promo, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return errors.Wrap(errors.CodeDependency, err, "load promo code")
	}
	if promo == nil {
		return errors.New(errors.CodeNotFound, "promo code not found")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return errors.Wrap(errors.CodeDependency, err, "delete promo code")
	}
	s.logg.Info(s.logg.WithField(ctx, "promo_code", promo.Code), "admin.promo.deleted")
	return nil
}
