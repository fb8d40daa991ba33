package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	pkgAuth "github.com/velora-shop/velora-backend/pkg/auth"
)

func TestRequireGrant(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	t.Run("allowsGrantedActor", func(t *testing.T) {
		handler := RequireGrant(GrantManageProducts, nil)(next)
		req := httptest.NewRequest(http.MethodPost, "/", nil)
		ctx := WithUserID(req.Context(), "user-1")
		ctx = WithPermissions(ctx, pkgAuth.Permissions{ManageProducts: true})
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req.WithContext(ctx))

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200 got %d", rec.Code)
		}
	})

	t.Run("forbidsMissingGrant", func(t *testing.T) {
		handler := RequireGrant(GrantDeleteProducts, nil)(next)
		req := httptest.NewRequest(http.MethodDelete, "/", nil)
		ctx := WithUserID(req.Context(), "user-1")
		ctx = WithPermissions(ctx, pkgAuth.Permissions{ManageProducts: true})
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req.WithContext(ctx))

		if rec.Code != http.StatusForbidden {
			t.Fatalf("expected 403 got %d", rec.Code)
		}
	})

	t.Run("unauthorizedWithoutActor", func(t *testing.T) {
		handler := RequireGrant(GrantManageProducts, nil)(next)
		req := httptest.NewRequest(http.MethodPost, "/", nil)
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401 got %d", rec.Code)
		}
	})

	t.Run("nilGrantDeniesEveryone", func(t *testing.T) {
		handler := RequireGrant(nil, nil)(next)
		req := httptest.NewRequest(http.MethodPost, "/", nil)
		ctx := WithUserID(req.Context(), "user-1")
		ctx = WithPermissions(ctx, pkgAuth.Permissions{ManageUsers: true})
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req.WithContext(ctx))

		if rec.Code != http.StatusForbidden {
			t.Fatalf("expected 403 got %d", rec.Code)
		}
	})
}
