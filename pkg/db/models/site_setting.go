package models

import "time"

// SiteSetting is the singleton storefront copy row, keyed by a fixed id so
// reads and upserts target one record.
type SiteSetting struct {
	ID                string    `gorm:"column:id;primaryKey"`
	HeroCTA           *string   `gorm:"column:hero_cta"`
	HeroCTAAr         *string   `gorm:"column:hero_cta_ar"`
	ShippingPolicy    *string   `gorm:"column:shipping_policy"`
	ShippingPolicyAr  *string   `gorm:"column:shipping_policy_ar"`
	ReturnsPolicy     *string   `gorm:"column:returns_policy"`
	ReturnsPolicyAr   *string   `gorm:"column:returns_policy_ar"`
	HygieneNotice     *string   `gorm:"column:hygiene_notice"`
	HygieneNoticeAr   *string   `gorm:"column:hygiene_notice_ar"`
	SupportEmail      *string   `gorm:"column:support_email"`
	SupportPhone      *string   `gorm:"column:support_phone"`
	InstagramURL      *string   `gorm:"column:instagram_url"`
	TikTokURL         *string   `gorm:"column:tiktok_url"`
	WhatsAppNumber    *string   `gorm:"column:whatsapp_number"`
	CreatedAt         time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt         time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
