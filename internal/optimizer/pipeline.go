package optimizer

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"listingpilot/internal/domain"
	"listingpilot/internal/keywords"
	"listingpilot/internal/seo"
)

// Result is everything the pipeline derives from one generated candidate.
type Result struct {
	Keywords   domain.KeywordSet
	Content    domain.OptimizedContent
	Platform   domain.PlatformOptimizedContent
	Listing    domain.FormattedListing
	Compliance domain.ComplianceResult
	Notes      []string
}

// Optimize runs keyword research and integration on candidate, hands the
// result to the platform strategy, validates it and scores the final copy.
// The same inputs always produce the same Result.
func Optimize(e Engine, product domain.ProductInfo, candidate domain.GeneratedListing) Result {
	r := e.Rules()
	set := keywords.Research(product, r.Platform)

	integrated := keywords.Integrate(domain.BaseContent{
		Title:       candidate.Title,
		Description: candidate.Description,
	}, set)

	draft := domain.ListingDraft{
		Title:          integrated.OptimizedTitle,
		Bullets:        candidate.Bullets,
		Description:    integrated.OptimizedDescription,
		Keywords:       cleanList(concat(candidate.Keywords, product.Keywords, set.Primary)),
		Tags:           BuildTags(candidate.Keywords, product.Keywords, set, r.MaxTags),
		Specifications: product.Specifications,
	}

	pc := e.OptimizeForPlatform(draft)
	comp := e.ValidatePlatformCompliance(pc)
	score := seo.Calculate(seo.Input{
		Title:       pc.Title,
		Description: pc.Description,
		Keywords:    pc.Keywords,
		Tags:        pc.Tags,
	}, r)

	integrated.OptimizedTitle = pc.Title
	integrated.OptimizedDescription = pc.Description
	integrated.KeywordDensity = keywords.Density(pc.Title+" "+pc.Description, set.All())

	var notes []string
	if n := utf8.RuneCountInString(pc.Title); n < utf8.RuneCountInString(collapseSpaces(candidate.Title)) {
		notes = append(notes, fmt.Sprintf("title shortened to %d characters for %s", n, r.Name))
	}
	if n := len(draft.Tags); n > len(pc.Tags) {
		notes = append(notes, fmt.Sprintf("%d tag(s) dropped to fit %s limits", n-len(pc.Tags), r.Name))
	}

	return Result{
		Keywords: set,
		Content: domain.OptimizedContent{
			KeywordOptimizedContent: integrated,
			Tags:                    pc.Tags,
			SEOScore:                score,
			Improvements:            seo.Improvements(score, r, comp),
		},
		Platform:   pc,
		Listing:    e.FormatForPlatform(pc),
		Compliance: comp,
		Notes:      notes,
	}
}

// BuildTags collects tag candidates from generated keywords, product
// keywords and the researched set, lowercased and deduplicated, capped at maxTags.
func BuildTags(generated, product []string, set domain.KeywordSet, maxTags int) []string {
	tags := normalizeTags(concat(generated, product, set.LongTail, set.Primary, set.Secondary, set.Synonyms))
	return limit(tags, maxTags)
}

func concat(lists ...[]string) []string {
	var out []string
	for _, l := range lists {
		out = append(out, l...)
	}
	return out
}

// Summary renders a formatted listing as plain text for copy and paste.
func Summary(f domain.FormattedListing) string {
	var b strings.Builder
	b.WriteString(f.Title)
	b.WriteString("\n\n")
	for _, bullet := range f.Bullets {
		b.WriteString("- ")
		b.WriteString(bullet)
		b.WriteString("\n")
	}
	if len(f.Bullets) > 0 {
		b.WriteString("\n")
	}
	b.WriteString(f.Description)
	if f.TagLine != "" {
		b.WriteString("\n\n")
		b.WriteString(f.TagLine)
	}
	return b.String()
}
