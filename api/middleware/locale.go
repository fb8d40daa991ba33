package middleware

import (
	"net/http"
	"strings"

	"github.com/velora-shop/velora-backend/pkg/enums"
	"github.com/velora-shop/velora-backend/pkg/i18n"
	"github.com/velora-shop/velora-backend/pkg/logger"
)

const localeCookie = "locale"

// Locale resolves the display language for the request. The `locale` cookie
// wins, then the Accept-Language header; anything unrecognized falls back
// to English. The result rides the request context only, nothing global.
func Locale(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			locale := resolveLocale(r)

			ctx := i18n.WithLocale(r.Context(), locale)
			if logg != nil {
				ctx = logg.WithLocale(ctx, string(locale))
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func resolveLocale(r *http.Request) enums.Locale {
	if cookie, err := r.Cookie(localeCookie); err == nil && cookie.Value != "" {
		return enums.ParseLocale(cookie.Value)
	}

	header := r.Header.Get("Accept-Language")
	for _, part := range strings.Split(header, ",") {
		lang := strings.TrimSpace(strings.SplitN(part, ";", 2)[0])
		if lang == "" {
			continue
		}
		if base := strings.SplitN(lang, "-", 2)[0]; strings.EqualFold(base, string(enums.LocaleArabic)) {
			return enums.LocaleArabic
		}
		if base := strings.SplitN(lang, "-", 2)[0]; strings.EqualFold(base, string(enums.LocaleEnglish)) {
			return enums.LocaleEnglish
		}
	}
	return enums.LocaleEnglish
}
