package seo

import (
	"strings"
	"unicode/utf8"

	"listingpilot/internal/domain"
	"listingpilot/internal/keywords"
)

// QuickScore is the simplified pre-optimization score and its components.
type QuickScore struct {
	Total                   int `json:"total"`
	KeywordDensity          int `json:"keywordDensity"`
	TitleLength             int `json:"titleLength"`
	DescriptionCompleteness int `json:"descriptionCompleteness"`
	Readability             int `json:"readability"`
	Compliance              int `json:"compliance"`
}

// Quick scores content that has not been through the optimization pipeline,
// such as a scraped listing. When no keywords are given the leading
// significant title words stand in for them.
func Quick(in Input, r domain.PlatformRules) QuickScore {
	kws := in.Keywords
	if len(kws) == 0 {
		kws = firstWords(keywords.SignificantWords(in.Title), 3)
	}

	q := QuickScore{
		KeywordDensity:          densityPoints(in.Title+" "+in.Description, kws),
		TitleLength:             titleLengthPoints(in.Title, r),
		DescriptionCompleteness: completenessPoints(in.Description, r.MinDescription),
		Readability:             readabilityPoints(in.Description),
		Compliance:              compliancePoints(in.Title, in.Tags, r),
	}
	q.Total = clamp(q.KeywordDensity + q.TitleLength + q.DescriptionCompleteness + q.Readability + q.Compliance)
	return q
}

func densityPoints(text string, kws []string) int {
	if len(kws) == 0 {
		return 0
	}
	density := keywords.Density(text, kws)
	var sum float64
	for _, kw := range kws {
		sum += density[kw]
	}
	switch avg := sum / float64(len(kws)); {
	case avg == 0:
		return 0
	case avg >= 1 && avg <= 3:
		return 25
	case avg >= 0.5 && avg <= 5:
		return 15
	default:
		return 8
	}
}

func titleLengthPoints(title string, r domain.PlatformRules) int {
	n := utf8.RuneCountInString(strings.TrimSpace(title))
	switch {
	case n == 0:
		return 0
	case r.OptimalTitle.Contains(n):
		return 20
	case r.TitleRange.Contains(n):
		return 12
	default:
		return 5
	}
}

func completenessPoints(description string, minLength int) int {
	n := utf8.RuneCountInString(strings.TrimSpace(description))
	switch {
	case n >= minLength:
		return 20
	case n >= minLength/2:
		return 12
	case n > 0:
		return 5
	default:
		return 0
	}
}

func readabilityPoints(description string) int {
	avg, ok := AverageSentenceLength(description)
	switch {
	case !ok:
		return 0
	case avg <= 20:
		return 15
	case avg <= 25:
		return 10
	default:
		return 5
	}
}

func compliancePoints(title string, tags []string, r domain.PlatformRules) int {
	points := 0
	switch n := len(tags); {
	case n == 0:
		points += 5
	case n <= r.MaxTags:
		points += 10
	}
	if r.TitleRange.Contains(utf8.RuneCountInString(strings.TrimSpace(title))) {
		points += 10
	}
	return points
}

func firstWords(words []string, n int) []string {
	if len(words) > n {
		return words[:n]
	}
	return words
}
