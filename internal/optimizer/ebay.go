package optimizer

import (
	"strings"

	"listingpilot/internal/domain"
)

const ebayDefaultCondition = "New"

var ebayTitleNoise = strings.NewReplacer("!", "", "*", "", "~", "")

type ebayEngine struct{ base }

// OptimizeForPlatform strips decorative punctuation from the title, keeps
// capitals (eBay shoppers search brand names in caps) and turns
// specifications into item specifics with a condition.
func (e ebayEngine) OptimizeForPlatform(d domain.ListingDraft) domain.PlatformOptimizedContent {
	d.Title = ebayTitleNoise.Replace(d.Title)
	c := e.enrich(d)

	if cond, ok := c.Specifications["condition"]; ok {
		c.Extras["condition"] = cond
	} else {
		c.Extras["condition"] = ebayDefaultCondition
	}
	return c
}

func (e ebayEngine) FormatForPlatform(c domain.PlatformOptimizedContent) domain.FormattedListing {
	f := e.format(c, ", ")
	f.Attributes["condition"] = c.Extras["condition"]
	return f
}
