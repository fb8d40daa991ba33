package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/velora-shop/velora-backend/api/responses"
	"github.com/velora-shop/velora-backend/api/validators"
	catalogsvc "github.com/velora-shop/velora-backend/internal/catalog"
	"github.com/velora-shop/velora-backend/pkg/errors"
	"github.com/velora-shop/velora-backend/pkg/logger"
	"github.com/velora-shop/velora-backend/pkg/pagination"
)

type productListFn func(r *http.Request, svc catalogsvc.Service, params pagination.Params) (*catalogsvc.ProductListResult, error)

func productList(svc catalogsvc.Service, maxLimit int, logg *logger.Logger, list productListFn) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, errors.New(errors.CodeInternal, "catalog service unavailable"))
			return
		}
		params, err := validators.ParsePagination(r, maxLimit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		result, err := list(r, svc, params)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

func ListProducts(svc catalogsvc.Service, maxLimit int, logg *logger.Logger) http.HandlerFunc {
	return productList(svc, maxLimit, logg, func(r *http.Request, svc catalogsvc.Service, params pagination.Params) (*catalogsvc.ProductListResult, error) {
		return svc.Products(r.Context(), params)
	})
}

func TrendingProducts(svc catalogsvc.Service, maxLimit int, logg *logger.Logger) http.HandlerFunc {
	return productList(svc, maxLimit, logg, func(r *http.Request, svc catalogsvc.Service, params pagination.Params) (*catalogsvc.ProductListResult, error) {
		return svc.TrendingProducts(r.Context(), params)
	})
}

func BestSellerProducts(svc catalogsvc.Service, maxLimit int, logg *logger.Logger) http.HandlerFunc {
	return productList(svc, maxLimit, logg, func(r *http.Request, svc catalogsvc.Service, params pagination.Params) (*catalogsvc.ProductListResult, error) {
		return svc.BestSellers(r.Context(), params)
	})
}

func OnSaleProducts(svc catalogsvc.Service, maxLimit int, logg *logger.Logger) http.HandlerFunc {
	return productList(svc, maxLimit, logg, func(r *http.Request, svc catalogsvc.Service, params pagination.Params) (*catalogsvc.ProductListResult, error) {
		return svc.OnSaleProducts(r.Context(), params)
	})
}

func SearchProducts(svc catalogsvc.Service, maxLimit int, logg *logger.Logger) http.HandlerFunc {
	return productList(svc, maxLimit, logg, func(r *http.Request, svc catalogsvc.Service, params pagination.Params) (*catalogsvc.ProductListResult, error) {
		return svc.SearchProducts(r.Context(), strings.TrimSpace(r.URL.Query().Get("q")), params)
	})
}

// ProductBySlug returns one storefront product.
func ProductBySlug(svc catalogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, errors.New(errors.CodeInternal, "catalog service unavailable"))
			return
		}
		slug := strings.TrimSpace(chi.URLParam(r, "slug"))
		if slug == "" {
			responses.WriteError(r.Context(), logg, w, errors.New(errors.CodeValidation, "slug is required"))
			return
		}
		product, err := svc.ProductBySlug(r.Context(), slug)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, product)
	}
}

// RelatedProducts returns active products sharing the category.
func RelatedProducts(svc catalogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, errors.New(errors.CodeInternal, "catalog service unavailable"))
			return
		}
		slug := strings.TrimSpace(chi.URLParam(r, "slug"))
		if slug == "" {
			responses.WriteError(r.Context(), logg, w, errors.New(errors.CodeValidation, "slug is required"))
			return
		}
		related, err := svc.RelatedProducts(r.Context(), slug)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, related)
	}
}
