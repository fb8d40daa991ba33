package auth

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/velora-shop/velora-backend/pkg/db/models"
	"github.com/velora-shop/velora-backend/pkg/enums"
)

// Permissions mirrors the per-resource grant booleans carried on the user row.
type Permissions struct {
	ManageProducts   bool `json:"manage_products"`
	DeleteProducts   bool `json:"delete_products"`
	ManageCategories bool `json:"manage_categories"`
	DeleteCategories bool `json:"delete_categories"`
	ManageOrders     bool `json:"manage_orders"`
	DeleteOrders     bool `json:"delete_orders"`
	ManageBanners    bool `json:"manage_banners"`
	DeleteBanners    bool `json:"delete_banners"`
	ManagePromoCodes bool `json:"manage_promo_codes"`
	DeletePromoCodes bool `json:"delete_promo_codes"`
	ManageBlogs      bool `json:"manage_blogs"`
	DeleteBlogs      bool `json:"delete_blogs"`
	ManageUsers      bool `json:"manage_users"`
}

// PermissionsFromUser lifts the grant columns off a user row. Owners get
// every grant regardless of the stored booleans.
func PermissionsFromUser(user *models.User) Permissions {
	if user == nil {
		return Permissions{}
	}
	if user.Role == enums.RoleOwner {
		return Permissions{
			ManageProducts:   true,
			DeleteProducts:   true,
			ManageCategories: true,
			DeleteCategories: true,
			ManageOrders:     true,
			DeleteOrders:     true,
			ManageBanners:    true,
			DeleteBanners:    true,
			ManagePromoCodes: true,
			DeletePromoCodes: true,
			ManageBlogs:      true,
			DeleteBlogs:      true,
			ManageUsers:      true,
		}
	}
	return Permissions{
		ManageProducts:   user.CanManageProducts,
		DeleteProducts:   user.CanDeleteProducts,
		ManageCategories: user.CanManageCategories,
		DeleteCategories: user.CanDeleteCategories,
		ManageOrders:     user.CanManageOrders,
		DeleteOrders:     user.CanDeleteOrders,
		ManageBanners:    user.CanManageBanners,
		DeleteBanners:    user.CanDeleteBanners,
		ManagePromoCodes: user.CanManagePromoCodes,
		DeletePromoCodes: user.CanDeletePromoCodes,
		ManageBlogs:      user.CanManageBlogs,
		DeleteBlogs:      user.CanDeleteBlogs,
		ManageUsers:      user.CanManageUsers,
	}
}

// AccessTokenPayload captures the data available when minting a JWT.
type AccessTokenPayload struct {
	UserID      uuid.UUID
	Username    string
	Role        enums.Role
	Permissions Permissions
	JTI         string
}

// AccessTokenClaims represents the typed JWT issued to back-office clients.
type AccessTokenClaims struct {
	UserID      uuid.UUID   `json:"user_id"`
	Username    string      `json:"username"`
	Role        enums.Role  `json:"role"`
	Permissions Permissions `json:"permissions"`
	jwt.RegisteredClaims
}
