package controllers

import (
	"net/http"

	"github.com/velora-shop/velora-backend/api/responses"
	"github.com/velora-shop/velora-backend/api/validators"
	checkoutsvc "github.com/velora-shop/velora-backend/internal/checkout"
	pkgerrors "github.com/velora-shop/velora-backend/pkg/errors"
	"github.com/velora-shop/velora-backend/pkg/logger"
)

// ValidatePromoCode checks a code for the storefront cart page.
func ValidatePromoCode(svc checkoutsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "checkout service unavailable"))
			return
		}
		var payload checkoutsvc.PromoValidationInput
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		summary, err := svc.ValidatePromoCode(r.Context(), payload)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, summary)
	}
}

// QuoteCart prices the cart without capturing it.
func QuoteCart(svc checkoutsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "checkout service unavailable"))
			return
		}
		var payload checkoutsvc.QuoteInput
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		quote, err := svc.QuoteCart(r.Context(), payload)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, quote)
	}
}

// CreateOrder captures a storefront order. The route sits behind the
// idempotency middleware so a replayed Idempotency-Key returns the stored
// confirmation instead of a second order.
func CreateOrder(svc checkoutsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "checkout service unavailable"))
			return
		}
		var payload checkoutsvc.OrderInput
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		payload.CustomerName = validators.SanitizeString(payload.CustomerName, 120)
		if payload.Email != nil {
			sanitized := validators.SanitizeString(*payload.Email, 254)
			payload.Email = &sanitized
		}
		payload.Phone = validators.SanitizeString(payload.Phone, 32)
		if payload.NationalID != nil {
			sanitized := validators.SanitizeString(*payload.NationalID, 32)
			payload.NationalID = &sanitized
		}
		payload.StreetAddress = validators.SanitizeString(payload.StreetAddress, 255)
		payload.City = validators.SanitizeString(payload.City, 120)
		if payload.PostalCode != nil {
			sanitized := validators.SanitizeString(*payload.PostalCode, 16)
			payload.PostalCode = &sanitized
		}
		result, err := svc.CreateOrder(r.Context(), payload)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, result)
	}
}
