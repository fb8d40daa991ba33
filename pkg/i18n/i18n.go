// Package i18n selects bilingual copy for the requested locale.
package i18n

import (
	"context"

	"github.com/velora-shop/velora-backend/pkg/enums"
)

type ctxKey struct{}

// WithLocale stores the resolved locale on the request context.
func WithLocale(ctx context.Context, locale enums.Locale) context.Context {
	return context.WithValue(ctx, ctxKey{}, locale)
}

// LocaleFromContext returns the request locale, defaulting to English.
func LocaleFromContext(ctx context.Context) enums.Locale {
	if ctx == nil {
		return enums.LocaleEnglish
	}
	if locale, ok := ctx.Value(ctxKey{}).(enums.Locale); ok {
		return locale
	}
	return enums.LocaleEnglish
}

// Pick returns the Arabic variant when the locale is Arabic and the variant
// is present, otherwise the English value.
func Pick(locale enums.Locale, en string, ar *string) string {
	if locale == enums.LocaleArabic && ar != nil && *ar != "" {
		return *ar
	}
	return en
}

// PickPtr is Pick for optional English values.
func PickPtr(locale enums.Locale, en *string, ar *string) *string {
	if locale == enums.LocaleArabic && ar != nil && *ar != "" {
		return ar
	}
	return en
}
