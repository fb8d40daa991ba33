package middleware

import (
	"net/http"

	"github.com/velora-shop/velora-backend/api/responses"
	pkgAuth "github.com/velora-shop/velora-backend/pkg/auth"
	pkgerrors "github.com/velora-shop/velora-backend/pkg/errors"
	"github.com/velora-shop/velora-backend/pkg/logger"
)

// Grant selects one permission boolean off the actor's grants.
type Grant func(pkgAuth.Permissions) bool

var (
	GrantManageProducts   Grant = func(p pkgAuth.Permissions) bool { return p.ManageProducts }
	GrantDeleteProducts   Grant = func(p pkgAuth.Permissions) bool { return p.DeleteProducts }
	GrantManageCategories Grant = func(p pkgAuth.Permissions) bool { return p.ManageCategories }
	GrantDeleteCategories Grant = func(p pkgAuth.Permissions) bool { return p.DeleteCategories }
	GrantManageOrders     Grant = func(p pkgAuth.Permissions) bool { return p.ManageOrders }
	GrantDeleteOrders     Grant = func(p pkgAuth.Permissions) bool { return p.DeleteOrders }
	GrantManageBanners    Grant = func(p pkgAuth.Permissions) bool { return p.ManageBanners }
	GrantDeleteBanners    Grant = func(p pkgAuth.Permissions) bool { return p.DeleteBanners }
	GrantManagePromoCodes Grant = func(p pkgAuth.Permissions) bool { return p.ManagePromoCodes }
	GrantDeletePromoCodes Grant = func(p pkgAuth.Permissions) bool { return p.DeletePromoCodes }
	GrantManageBlogs      Grant = func(p pkgAuth.Permissions) bool { return p.ManageBlogs }
	GrantDeleteBlogs      Grant = func(p pkgAuth.Permissions) bool { return p.DeleteBlogs }
	GrantManageUsers      Grant = func(p pkgAuth.Permissions) bool { return p.ManageUsers }
)

// RequireGrant rejects requests whose actor lacks the selected permission.
// Runs after Auth, which seeds the context with the token's grants.
func RequireGrant(grant Grant, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			if UserIDFromContext(ctx) == "" {
				responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "user context missing"))
				return
			}
			if grant == nil || !grant(PermissionsFromContext(ctx)) {
				responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeForbidden, "permission required"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
