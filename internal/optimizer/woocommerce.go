package optimizer

import (
	"listingpilot/internal/domain"
)

const wooShortDescription = 300

type wooCommerceEngine struct{ base }

func (e wooCommerceEngine) OptimizeForPlatform(d domain.ListingDraft) domain.PlatformOptimizedContent {
	c := e.enrich(d)
	c.Extras["shortDescription"] = summarize(firstParagraph(c.Description), wooShortDescription)
	c.Extras["slug"] = slugify(c.Title)
	return c
}

func (e wooCommerceEngine) FormatForPlatform(c domain.PlatformOptimizedContent) domain.FormattedListing {
	f := e.format(c, ", ")
	f.Attributes["shortDescription"] = c.Extras["shortDescription"]
	f.Attributes["slug"] = c.Extras["slug"]
	return f
}
