package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/velora-shop/velora-backend/pkg/enums"
)

// User represents a back-office account. Permissions are granular booleans
// so individual resources can be granted without a role change.
type User struct {
	ID           uuid.UUID  `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Username     string     `gorm:"column:username;not null;uniqueIndex"`
	PasswordHash string     `gorm:"column:password_hash;not null"`
	DisplayName  *string    `gorm:"column:display_name"`
	Role         enums.Role `gorm:"column:role;type:text;not null;default:'staff'"`
	IsActive     bool       `gorm:"column:is_active;not null;default:true"`
	LastLoginAt  *time.Time `gorm:"column:last_login_at"`

	CanManageProducts   bool `gorm:"column:can_manage_products;not null;default:false"`
	CanDeleteProducts   bool `gorm:"column:can_delete_products;not null;default:false"`
	CanManageCategories bool `gorm:"column:can_manage_categories;not null;default:false"`
	CanDeleteCategories bool `gorm:"column:can_delete_categories;not null;default:false"`
	CanManageOrders     bool `gorm:"column:can_manage_orders;not null;default:false"`
	CanDeleteOrders     bool `gorm:"column:can_delete_orders;not null;default:false"`
	CanManageBanners    bool `gorm:"column:can_manage_banners;not null;default:false"`
	CanDeleteBanners    bool `gorm:"column:can_delete_banners;not null;default:false"`
	CanManagePromoCodes bool `gorm:"column:can_manage_promo_codes;not null;default:false"`
	CanDeletePromoCodes bool `gorm:"column:can_delete_promo_codes;not null;default:false"`
	CanManageBlogs      bool `gorm:"column:can_manage_blogs;not null;default:false"`
	CanDeleteBlogs      bool `gorm:"column:can_delete_blogs;not null;default:false"`
	CanManageUsers      bool `gorm:"column:can_manage_users;not null;default:false"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
