package seo

import (
	"fmt"

	"listingpilot/internal/domain"
)

const weakScore = 70

// Improvements lists concrete suggestions for weak sub-scores followed by the
// high-priority compliance actions.
func Improvements(s domain.SEOScore, r domain.PlatformRules, c domain.ComplianceResult) []string {
	out := []string{}
	if s.KeywordRelevance < weakScore {
		out = append(out, "Work more of the target keywords into the title and description")
	}
	if s.TitleOptimization < weakScore {
		out = append(out, fmt.Sprintf("Keep the title between %d and %d characters and include a concrete detail such as size or quantity", r.OptimalTitle.Min, r.OptimalTitle.Max))
	}
	if s.DescriptionQuality < weakScore {
		out = append(out, "Expand the description with bullet points, numbers and sentences of 10 to 20 words")
	}
	if s.TagEffectiveness < weakScore {
		out = append(out, "Use at least 7 descriptive tags, several of them multi-word phrases")
	}
	if s.MobileOptimization < weakScore {
		out = append(out, "Break the description into three or more short paragraphs and keep the title under 80 characters")
	}
	for _, rec := range c.Recommendations {
		if rec.Priority == domain.PriorityHigh {
			out = append(out, rec.Action)
		}
	}
	return out
}
