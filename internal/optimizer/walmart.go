package optimizer

import (
	"strings"

	"listingpilot/internal/domain"
)

const (
	walmartMinFeatures = 3
	walmartMaxFeatures = 10
	walmartShelfItems  = 3
)

type walmartEngine struct{ base }

// OptimizeForPlatform keeps between three and ten key features, topping up
// from specifications, and derives the shelf description from the first
// features.
func (e walmartEngine) OptimizeForPlatform(d domain.ListingDraft) domain.PlatformOptimizedContent {
	c := e.enrich(d)

	features := make([]string, 0, walmartMaxFeatures)
	for _, b := range c.Bullets {
		features = append(features, capitalize(b))
	}
	if len(features) < walmartMinFeatures {
		features = append(features, specBullets(c.Specifications, sortedKeys(c.Specifications))...)
	}
	c.Bullets = limit(cleanList(features), walmartMaxFeatures)
	c.Extras["shelfDescription"] = strings.Join(limit(c.Bullets, walmartShelfItems), "\n")
	return c
}

func (e walmartEngine) FormatForPlatform(c domain.PlatformOptimizedContent) domain.FormattedListing {
	f := e.format(c, ", ")
	f.Attributes["shelfDescription"] = c.Extras["shelfDescription"]
	return f
}
