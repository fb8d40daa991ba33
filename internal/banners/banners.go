// Package banners manages the storefront promotion slots.
package banners

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/velora-shop/velora-backend/pkg/db/models"
	"github.com/velora-shop/velora-backend/pkg/enums"
	"github.com/velora-shop/velora-backend/pkg/errors"
	"github.com/velora-shop/velora-backend/pkg/i18n"
	"github.com/velora-shop/velora-backend/pkg/imagepath"
	"github.com/velora-shop/velora-backend/pkg/logger"
)

// BannerInput is the admin create/update payload.
type BannerInput struct {
	Title      string  `json:"title" validate:"required,min=1,max=200"`
	TitleAr    *string `json:"titleAr" validate:"omitempty,max=200"`
	Subtitle   *string `json:"subtitle" validate:"omitempty,max=500"`
	SubtitleAr *string `json:"subtitleAr" validate:"omitempty,max=500"`
	Image      string  `json:"image" validate:"required,max=500"`
	ButtonText *string `json:"buttonText" validate:"omitempty,max=60"`
	Link       *string `json:"link" validate:"omitempty,max=500"`
	Placement  string  `json:"placement" validate:"omitempty,oneof=hero promo_strip sidebar"`
	SortOrder  int     `json:"sortOrder" validate:"gte=0"`
	IsActive   bool    `json:"isActive"`
}

// BannerDTO is the localized public banner.
type BannerDTO struct {
	ID         uuid.UUID `json:"id"`
	Title      string    `json:"title"`
	Subtitle   *string   `json:"subtitle,omitempty"`
	Image      string    `json:"image"`
	ButtonText *string   `json:"buttonText,omitempty"`
	Link       *string   `json:"link,omitempty"`
	Placement  string    `json:"placement"`
	SortOrder  int       `json:"sortOrder"`
}

// AdminBannerDTO exposes both locales plus the active flag.
type AdminBannerDTO struct {
	ID         uuid.UUID `json:"id"`
	Title      string    `json:"title"`
	TitleAr    *string   `json:"titleAr,omitempty"`
	Subtitle   *string   `json:"subtitle,omitempty"`
	SubtitleAr *string   `json:"subtitleAr,omitempty"`
	Image      string    `json:"image"`
	ButtonText *string   `json:"buttonText,omitempty"`
	Link       *string   `json:"link,omitempty"`
	Placement  string    `json:"placement"`
	SortOrder  int       `json:"sortOrder"`
	IsActive   bool      `json:"isActive"`
	CreatedAt  string    `json:"createdAt"`
}

// Repository covers banner reads and writes.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// ListActive returns the live banners for one placement, or all
// placements when empty, in display order.
func (r *Repository) ListActive(ctx context.Context, placement enums.BannerPlacement) ([]models.Banner, error) {
	query := r.db.WithContext(ctx).Where("is_active = ?", true)
	if placement != "" {
		query = query.Where("placement = ?", string(placement))
	}
	var banners []models.Banner
	err := query.Order("sort_order ASC, created_at DESC").Find(&banners).Error
	return banners, err
}

// ListAll returns every banner for the panel.
func (r *Repository) ListAll(ctx context.Context) ([]models.Banner, error) {
	var banners []models.Banner
	err := r.db.WithContext(ctx).
		Order("placement ASC, sort_order ASC").
		Find(&banners).Error
	return banners, err
}

// FindByID loads one banner, nil when absent.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Banner, error) {
	var banner models.Banner
	err := r.db.WithContext(ctx).First(&banner, "id = ?", id).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &banner, nil
}

func (r *Repository) Create(ctx context.Context, banner *models.Banner) error {
	return r.db.WithContext(ctx).Create(banner).Error
}

func (r *Repository) Save(ctx context.Context, banner *models.Banner) error {
	return r.db.WithContext(ctx).Save(banner).Error
}

func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.Banner{}, "id = ?", id).Error
}

// Service covers the public banner feed plus panel management.
type Service interface {
	ActiveBanners(ctx context.Context, placement string) ([]BannerDTO, error)

	ListAll(ctx context.Context) ([]AdminBannerDTO, error)
	Create(ctx context.Context, input BannerInput) (*AdminBannerDTO, error)
	Update(ctx context.Context, id uuid.UUID, input BannerInput) (*AdminBannerDTO, error)
	Toggle(ctx context.Context, id uuid.UUID) (*AdminBannerDTO, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo *Repository
	logg *logger.Logger
}

// NewService wires the banner service.
func NewService(repo *Repository, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("banners service requires a repository")
	}
	if logg == nil {
		return nil, fmt.Errorf("banners service requires a logger")
	}
	return &service{repo: repo, logg: logg}, nil
}

func (s *service) ActiveBanners(ctx context.Context, placement string) ([]BannerDTO, error) {
	var filter enums.BannerPlacement
	if placement != "" {
		parsed, err := enums.ParseBannerPlacement(placement)
		if err != nil {
			return nil, errors.New(errors.CodeValidation, "unknown banner placement")
		}
		filter = parsed
	}
	rows, err := s.repo.ListActive(ctx, filter)
	if err != nil {
		return nil, errors.Wrap(errors.CodeDependency, err, "list banners")
	}
	locale := i18n.LocaleFromContext(ctx)
	dtos := make([]BannerDTO, 0, len(rows))
	for i := range rows {
		banner := &rows[i]
		dtos = append(dtos, BannerDTO{
			ID:         banner.ID,
			Title:      i18n.Pick(locale, banner.Title, banner.TitleAr),
			Subtitle:   i18n.PickPtr(locale, banner.Subtitle, banner.SubtitleAr),
			Image:      imagepath.Normalize(banner.Image),
			ButtonText: banner.ButtonText,
			Link:       banner.Link,
			Placement:  string(banner.Placement),
			SortOrder:  banner.SortOrder,
		})
	}
	return dtos, nil
}

func newAdminBannerDTO(banner *models.Banner) AdminBannerDTO {
	return AdminBannerDTO{
		ID:         banner.ID,
		Title:      banner.Title,
		TitleAr:    banner.TitleAr,
		Subtitle:   banner.Subtitle,
		SubtitleAr: banner.SubtitleAr,
		Image:      banner.Image,
		ButtonText: banner.ButtonText,
		Link:       banner.Link,
		Placement:  string(banner.Placement),
		SortOrder:  banner.SortOrder,
		IsActive:   banner.IsActive,
		CreatedAt:  banner.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func (s *service) ListAll(ctx context.Context) ([]AdminBannerDTO, error) {
	rows, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.CodeDependency, err, "list banners")
	}
	dtos := make([]AdminBannerDTO, 0, len(rows))
	for i := range rows {
		dtos = append(dtos, newAdminBannerDTO(&rows[i]))
	}
	return dtos, nil
}

func (s *service) applyInput(banner *models.Banner, input BannerInput) error {
	placement := enums.BannerPlacementHero
	if input.Placement != "" {
		parsed, err := enums.ParseBannerPlacement(input.Placement)
		if err != nil {
			return errors.New(errors.CodeValidation, "unknown banner placement")
		}
		placement = parsed
	}
	banner.Title = input.Title
	banner.TitleAr = input.TitleAr
	banner.Subtitle = input.Subtitle
	banner.SubtitleAr = input.SubtitleAr
	banner.Image = input.Image
	banner.ButtonText = input.ButtonText
	banner.Link = input.Link
	banner.Placement = placement
	banner.SortOrder = input.SortOrder
	banner.IsActive = input.IsActive
	return nil
}

func (s *service) Create(ctx context.Context, input BannerInput) (*AdminBannerDTO, error) {
	banner := &models.Banner{}
	if err := s.applyInput(banner, input); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, banner); err != nil {
		return nil, errors.Wrap(errors.CodeDependency, err, "create banner")
	}
	s.logg.Info(s.logg.WithField(ctx, "banner_id", banner.ID.String()), "admin.banner.created")
	dto := newAdminBannerDTO(banner)
	return &dto, nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, input BannerInput) (*AdminBannerDTO, error) {
	banner, err := s.loadBanner(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.applyInput(banner, input); err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, banner); err != nil {
		return nil, errors.Wrap(errors.CodeDependency, err, "update banner")
	}
	dto := newAdminBannerDTO(banner)
	return &dto, nil
}

func (s *service) Toggle(ctx context.Context, id uuid.UUID) (*AdminBannerDTO, error) {
	banner, err := s.loadBanner(ctx, id)
	if err != nil {
		return nil, err
	}
	banner.IsActive = !banner.IsActive
	if err := s.repo.Save(ctx, banner); err != nil {
		return nil, errors.Wrap(errors.CodeDependency, err, "toggle banner")
	}
	dto := newAdminBannerDTO(banner)
	return &dto, nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.loadBanner(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return errors.Wrap(errors.CodeDependency, err, "delete banner")
	}
	return nil
}

func (s *service) loadBanner(ctx context.Context, id uuid.UUID) (*models.Banner, error) {
	banner, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.Wrap(errors.CodeDependency, err, "load banner")
	}
	if banner == nil {
		return nil, errors.New(errors.CodeNotFound, "banner not found")
	}
	return banner, nil
}
