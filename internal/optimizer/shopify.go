package optimizer

import (
	"listingpilot/internal/domain"
)

const (
	shopifyMetaTitle       = 70
	shopifyMetaDescription = 160
)

type shopifyEngine struct{ base }

// OptimizeForPlatform adds the SEO meta title, meta description and URL
// handle used by the storefront theme.
func (e shopifyEngine) OptimizeForPlatform(d domain.ListingDraft) domain.PlatformOptimizedContent {
	c := e.enrich(d)
	c.Extras["metaTitle"] = summarize(c.Title, shopifyMetaTitle)
	c.Extras["metaDescription"] = summarize(firstParagraph(c.Description), shopifyMetaDescription)
	c.Extras["handle"] = slugify(c.Title)
	return c
}

func (e shopifyEngine) FormatForPlatform(c domain.PlatformOptimizedContent) domain.FormattedListing {
	f := e.format(c, ", ")
	for _, k := range []string{"metaTitle", "metaDescription", "handle"} {
		f.Attributes[k] = c.Extras[k]
	}
	return f
}
