// Package optimizer adapts listing content to a marketplace. One Engine
// exists per platform; each call is a pure transformation of its arguments.
package optimizer

import (
	"strings"

	"listingpilot/internal/compliance"
	"listingpilot/internal/domain"
	"listingpilot/internal/keywords"
	"listingpilot/internal/rules"
)

// Engine is the per-platform optimization strategy.
type Engine interface {
	Platform() domain.Platform
	Rules() domain.PlatformRules
	OptimizeForPlatform(draft domain.ListingDraft) domain.PlatformOptimizedContent
	ValidatePlatformCompliance(content domain.PlatformOptimizedContent) domain.ComplianceResult
	AlgorithmFactors() []domain.AlgorithmFactor
	FormatForPlatform(content domain.PlatformOptimizedContent) domain.FormattedListing
}

// ForPlatform returns the strategy for p, configured from table.
func ForPlatform(p domain.Platform, table *rules.Table) (Engine, error) {
	r, err := table.Get(p)
	if err != nil {
		return nil, err
	}
	b := base{rules: r, factors: table.AlgorithmFactors(p)}

	switch p {
	case domain.Amazon:
		return amazonEngine{b}, nil
	case domain.Shopify:
		return shopifyEngine{b}, nil
	case domain.Etsy:
		return etsyEngine{b}, nil
	case domain.Ebay:
		return ebayEngine{b}, nil
	case domain.Walmart:
		return walmartEngine{b}, nil
	case domain.WooCommerce:
		return wooCommerceEngine{b}, nil
	default:
		return nil, &domain.UnsupportedPlatformError{Platform: string(p)}
	}
}

// base carries the behaviour shared by every platform strategy.
type base struct {
	rules   domain.PlatformRules
	factors []domain.AlgorithmFactor
}

func (b base) Platform() domain.Platform { return b.rules.Platform }

func (b base) Rules() domain.PlatformRules { return b.rules }

func (b base) AlgorithmFactors() []domain.AlgorithmFactor {
	return append([]domain.AlgorithmFactor(nil), b.factors...)
}

func (b base) ValidatePlatformCompliance(c domain.PlatformOptimizedContent) domain.ComplianceResult {
	return compliance.Validate(compliance.Content{
		Title:       c.Title,
		Description: c.Description,
		Tags:        c.Tags,
	}, b.rules)
}

// enrich applies the steps every platform needs: title cap, mobile title,
// mobile description, cleaned bullets, tag limit and specification map.
func (b base) enrich(d domain.ListingDraft) domain.PlatformOptimizedContent {
	title := keywords.CapTitle(collapseSpaces(d.Title), b.rules.TitleRange.Max)
	return domain.PlatformOptimizedContent{
		Platform:       b.rules.Platform,
		Title:          title,
		MobileTitle:    OptimizeTitleForMobile(title, DefaultFrontLoad),
		Bullets:        cleanList(d.Bullets),
		Description:    FormatDescriptionForMobile(d.Description),
		Tags:           limit(normalizeTags(d.Tags), b.rules.MaxTags),
		Keywords:       cleanList(d.Keywords),
		Specifications: ExtractKeySpecifications(d.Specifications),
		Extras:         map[string]string{},
	}
}

func (b base) format(c domain.PlatformOptimizedContent, tagSeparator string) domain.FormattedListing {
	return domain.FormattedListing{
		Platform:    c.Platform,
		Title:       c.Title,
		Bullets:     append([]string{}, c.Bullets...),
		Description: c.Description,
		Tags:        append([]string{}, c.Tags...),
		TagLine:     strings.Join(c.Tags, tagSeparator),
		Attributes:  copyMap(c.Specifications),
	}
}
