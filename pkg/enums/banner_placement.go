package enums

import "fmt"

// BannerPlacement describes the allowed values for the `placement` column in banners.
type BannerPlacement string

const (
	BannerPlacementHero       BannerPlacement = "hero"
	BannerPlacementPromoStrip BannerPlacement = "promo_strip"
	BannerPlacementSidebar    BannerPlacement = "sidebar"
)

var validBannerPlacements = []BannerPlacement{
	BannerPlacementHero,
	BannerPlacementPromoStrip,
	BannerPlacementSidebar,
}

// IsValid reports whether the value matches the canonical banner placement enum.
func (p BannerPlacement) IsValid() bool {
	for _, candidate := range validBannerPlacements {
		if candidate == p {
			return true
		}
	}
	return false
}

// ParseBannerPlacement converts the raw string to BannerPlacement.
func ParseBannerPlacement(value string) (BannerPlacement, error) {
	for _, candidate := range validBannerPlacements {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid banner placement %q", value)
}
