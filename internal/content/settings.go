// Package content manages the singleton storefront copy record.
package content

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/velora-shop/velora-backend/pkg/db/models"
	"github.com/velora-shop/velora-backend/pkg/errors"
	"github.com/velora-shop/velora-backend/pkg/logger"
)

// settingsID keys the single settings row.
const settingsID = "site"

// SettingsInput is the admin upsert payload. Every field is optional;
// omitted fields clear their stored value.
type SettingsInput struct {
	HeroCTA          *string `json:"heroCta" validate:"omitempty,max=300"`
	HeroCTAAr        *string `json:"heroCtaAr" validate:"omitempty,max=300"`
	ShippingPolicy   *string `json:"shippingPolicy" validate:"omitempty,max=5000"`
	ShippingPolicyAr *string `json:"shippingPolicyAr" validate:"omitempty,max=5000"`
	ReturnsPolicy    *string `json:"returnsPolicy" validate:"omitempty,max=5000"`
	ReturnsPolicyAr  *string `json:"returnsPolicyAr" validate:"omitempty,max=5000"`
	HygieneNotice    *string `json:"hygieneNotice" validate:"omitempty,max=5000"`
	HygieneNoticeAr  *string `json:"hygieneNoticeAr" validate:"omitempty,max=5000"`
	SupportEmail     *string `json:"supportEmail" validate:"omitempty,email,max=254"`
	SupportPhone     *string `json:"supportPhone" validate:"omitempty,max=30"`
	InstagramURL     *string `json:"instagramUrl" validate:"omitempty,url,max=500"`
	TikTokURL        *string `json:"tiktokUrl" validate:"omitempty,url,max=500"`
	WhatsAppNumber   *string `json:"whatsappNumber" validate:"omitempty,max=30"`
}

// SettingsDTO mirrors the stored row.
type SettingsDTO struct {
	HeroCTA          *string `json:"heroCta,omitempty"`
	HeroCTAAr        *string `json:"heroCtaAr,omitempty"`
	ShippingPolicy   *string `json:"shippingPolicy,omitempty"`
	ShippingPolicyAr *string `json:"shippingPolicyAr,omitempty"`
	ReturnsPolicy    *string `json:"returnsPolicy,omitempty"`
	ReturnsPolicyAr  *string `json:"returnsPolicyAr,omitempty"`
	HygieneNotice    *string `json:"hygieneNotice,omitempty"`
	HygieneNoticeAr  *string `json:"hygieneNoticeAr,omitempty"`
	SupportEmail     *string `json:"supportEmail,omitempty"`
	SupportPhone     *string `json:"supportPhone,omitempty"`
	InstagramURL     *string `json:"instagramUrl,omitempty"`
	TikTokURL        *string `json:"tiktokUrl,omitempty"`
	WhatsAppNumber   *string `json:"whatsappNumber,omitempty"`
}

// Repository reads and upserts the settings row.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Get loads the settings row, nil when it was never written.
func (r *Repository) Get(ctx context.Context) (*models.SiteSetting, error) {
	var setting models.SiteSetting
	err := r.db.WithContext(ctx).First(&setting, "id = ?", settingsID).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &setting, nil
}

// Upsert writes the row, inserting on first save.
func (r *Repository) Upsert(ctx context.Context, setting *models.SiteSetting) error {
	setting.ID = settingsID
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			UpdateAll: true,
		}).
		Create(setting).Error
}

// Service covers the public settings read and the admin upsert.
type Service interface {
	Get(ctx context.Context) (*SettingsDTO, error)
	Update(ctx context.Context, input SettingsInput) (*SettingsDTO, error)
}

type service struct {
	repo *Repository
	logg *logger.Logger
}

// NewService wires the settings service.
func NewService(repo *Repository, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("content service requires a repository")
	}
	if logg == nil {
		return nil, fmt.Errorf("content service requires a logger")
	}
	return &service{repo: repo, logg: logg}, nil
}

func toDTO(setting *models.SiteSetting) *SettingsDTO {
	return &SettingsDTO{
		HeroCTA:          setting.HeroCTA,
		HeroCTAAr:        setting.HeroCTAAr,
		ShippingPolicy:   setting.ShippingPolicy,
		ShippingPolicyAr: setting.ShippingPolicyAr,
		ReturnsPolicy:    setting.ReturnsPolicy,
		ReturnsPolicyAr:  setting.ReturnsPolicyAr,
		HygieneNotice:    setting.HygieneNotice,
		HygieneNoticeAr:  setting.HygieneNoticeAr,
		SupportEmail:     setting.SupportEmail,
		SupportPhone:     setting.SupportPhone,
		InstagramURL:     setting.InstagramURL,
		TikTokURL:        setting.TikTokURL,
		WhatsAppNumber:   setting.WhatsAppNumber,
	}
}

// Get returns the stored settings, or an empty record before the first
// save so the storefront always gets a stable shape.
func (s *service) Get(ctx context.Context) (*SettingsDTO, error) {
	setting, err := s.repo.Get(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.CodeDependency, err, "load site settings")
	}
	if setting == nil {
		return &SettingsDTO{}, nil
	}
	return toDTO(setting), nil
}

func (s *service) Update(ctx context.Context, input SettingsInput) (*SettingsDTO, error) {
	setting := &models.SiteSetting{
		HeroCTA:          input.HeroCTA,
		HeroCTAAr:        input.HeroCTAAr,
		ShippingPolicy:   input.ShippingPolicy,
		ShippingPolicyAr: input.ShippingPolicyAr,
		ReturnsPolicy:    input.ReturnsPolicy,
		ReturnsPolicyAr:  input.ReturnsPolicyAr,
		HygieneNotice:    input.HygieneNotice,
		HygieneNoticeAr:  input.HygieneNoticeAr,
		SupportEmail:     input.SupportEmail,
		SupportPhone:     input.SupportPhone,
		InstagramURL:     input.InstagramURL,
		TikTokURL:        input.TikTokURL,
		WhatsAppNumber:   input.WhatsAppNumber,
	}
	if err := s.repo.Upsert(ctx, setting); err != nil {
		return nil, errors.Wrap(errors.CodeDependency, err, "save site settings")
	}
	s.logg.Info(ctx, "admin.settings.updated")
	return toDTO(setting), nil
}
