package optimizer

import (
	"regexp"
	"strings"

	"listingpilot/internal/domain"
	"listingpilot/internal/keywords"
)

const etsyTagMaxLength = 20

var etsyTagStripRe = regexp.MustCompile(`[^\p{L}\p{N} ]+`)

type etsyEngine struct{ base }

// OptimizeForPlatform produces up to 13 lowercase tags of at most 20
// characters, topping up from keywords, and records materials when known.
func (e etsyEngine) OptimizeForPlatform(d domain.ListingDraft) domain.PlatformOptimizedContent {
	c := e.enrich(d)

	var tags []string
	for _, t := range append(append([]string{}, d.Tags...), d.Keywords...) {
		t = collapseSpaces(etsyTagStripRe.ReplaceAllString(strings.ToLower(t), " "))
		tags = append(tags, keywords.CapTitle(t, etsyTagMaxLength))
	}
	c.Tags = limit(cleanList(tags), e.rules.MaxTags)
	c.Extras["tags"] = strings.Join(c.Tags, "|")

	if m, ok := c.Specifications["material"]; ok {
		c.Extras["materials"] = m
	} else if m, ok := c.Specifications["materials"]; ok {
		c.Extras["materials"] = m
	}
	return c
}

func (e etsyEngine) FormatForPlatform(c domain.PlatformOptimizedContent) domain.FormattedListing {
	return e.format(c, "|")
}
