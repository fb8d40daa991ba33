package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/velora-shop/velora-backend/api/responses"
	"github.com/velora-shop/velora-backend/api/validators"
	catalogsvc "github.com/velora-shop/velora-backend/internal/catalog"
	pkgerrors "github.com/velora-shop/velora-backend/pkg/errors"
	"github.com/velora-shop/velora-backend/pkg/logger"
)

// CategoryDrilldown is the storefront browse endpoint. The category path
// segment resolves leniently; brand and type narrow via query params.
func CategoryDrilldown(svc catalogsvc.Service, maxLimit int, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}
		segment := strings.TrimSpace(chi.URLParam(r, "category"))
		if segment == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "category is required"))
			return
		}
		params, err := validators.ParsePagination(r, maxLimit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		brand := strings.TrimSpace(r.URL.Query().Get("brand"))
		typeSegment := strings.TrimSpace(r.URL.Query().Get("type"))

		result, err := svc.ProductsByCategory(r.Context(), segment, brand, typeSegment, params)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

// ListCategories returns the full category list, featured first.
func ListCategories(svc catalogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}
		var (
			result any
			err    error
		)
		switch {
		case r.URL.Query().Get("q") != "":
			result, err = svc.SearchCategories(r.Context(), r.URL.Query().Get("q"))
		case r.URL.Query().Get("featured") == "true":
			result, err = svc.FeaturedCategories(r.Context())
		default:
			result, err = svc.Categories(r.Context())
		}
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}
