package enums

import "strings"

// Locale identifies the storefront display language.
type Locale string

const (
	LocaleEnglish Locale = "en"
	LocaleArabic  Locale = "ar"
)

// ParseLocale normalizes the raw value, falling back to English for
// anything unrecognized.
func ParseLocale(value string) Locale {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case string(LocaleArabic):
		return LocaleArabic
	default:
		return LocaleEnglish
	}
}

// IsRTL reports whether the locale renders right to left.
func (l Locale) IsRTL() bool {
	return l == LocaleArabic
}
