package domain

import "strings"

// Platform identifies a supported marketplace.
type Platform string

const (
	Amazon      Platform = "amazon"
	Shopify     Platform = "shopify"
	Etsy        Platform = "etsy"
	Ebay        Platform = "ebay"
	Walmart     Platform = "walmart"
	WooCommerce Platform = "woocommerce"
)

var platforms = []Platform{Amazon, Shopify, Etsy, Ebay, Walmart, WooCommerce}

// Platforms returns every supported platform in a stable order.
func Platforms() []Platform {
	return append([]Platform(nil), platforms...)
}

// ParsePlatform normalizes s and returns the matching platform.
func ParsePlatform(s string) (Platform, error) {
	p := Platform(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range platforms {
		if p == known {
			return p, nil
		}
	}
	return "", &UnsupportedPlatformError{Platform: s}
}

func (p Platform) String() string {
	return string(p)
}

// Mode is the kind of work requested from the generator.
type Mode string

const (
	ModeOptimize Mode = "optimize"
	ModeCreate   Mode = "create"
	ModeAnalyze  Mode = "analyze"
)

// ParseMode validates a generation mode.
func ParseMode(s string) (Mode, bool) {
	switch m := Mode(strings.ToLower(strings.TrimSpace(s))); m {
	case ModeOptimize, ModeCreate, ModeAnalyze:
		return m, true
	default:
		return "", false
	}
}
