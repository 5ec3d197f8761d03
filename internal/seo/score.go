// Package seo scores listing content. Every function is pure: the same input
// always yields the same score.
package seo

import (
	"math"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"listingpilot/internal/domain"
)

// Sub-score weights in percent. They must sum to 100.
const (
	WeightKeywordRelevance   = 30
	WeightTitleOptimization  = 25
	WeightDescriptionQuality = 20
	WeightTagEffectiveness   = 15
	WeightMobileOptimization = 10
)

var (
	sentenceSplitRe  = regexp.MustCompile(`[.!?]+`)
	paragraphSplitRe = regexp.MustCompile(`\n\s*\n`)
)

// Input is the content being scored.
type Input struct {
	Title       string
	Description string
	Keywords    []string
	Tags        []string
}

// Calculate computes the full weighted SEO score for content on the platform
// described by r.
func Calculate(in Input, r domain.PlatformRules) domain.SEOScore {
	s := domain.SEOScore{
		KeywordRelevance:   KeywordRelevance(in.Title, in.Description, in.Keywords),
		TitleOptimization:  TitleOptimization(in.Title, r),
		DescriptionQuality: DescriptionQuality(in.Description),
		TagEffectiveness:   TagEffectiveness(in.Tags),
		MobileOptimization: MobileOptimization(in.Title, in.Description),
	}
	s.Overall = Overall(s.KeywordRelevance, s.TitleOptimization, s.DescriptionQuality, s.TagEffectiveness, s.MobileOptimization)
	return s
}

// Overall combines sub-scores with the fixed weights.
func Overall(keywordRelevance, titleOptimization, descriptionQuality, tagEffectiveness, mobileOptimization int) int {
	sum := WeightKeywordRelevance*keywordRelevance +
		WeightTitleOptimization*titleOptimization +
		WeightDescriptionQuality*descriptionQuality +
		WeightTagEffectiveness*tagEffectiveness +
		WeightMobileOptimization*mobileOptimization
	return clamp(int(math.Round(float64(sum) / 100)))
}

// KeywordRelevance is the share of keywords that appear in title or description.
func KeywordRelevance(title, description string, keywords []string) int {
	text := strings.ToLower(title + " " + description)
	found, total := 0, 0
	for _, kw := range keywords {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if kw == "" {
			continue
		}
		total++
		if strings.Contains(text, kw) {
			found++
		}
	}
	return clamp(int(math.Round(float64(found) / float64(max(total, 1)) * 100)))
}

// TitleOptimization penalizes titles outside the optimal range, without digits,
// or written entirely in capitals (except on eBay).
func TitleOptimization(title string, r domain.PlatformRules) int {
	score := 100
	n := utf8.RuneCountInString(title)
	if n < r.OptimalTitle.Min {
		score -= 20
	}
	if n > r.OptimalTitle.Max {
		score -= 30
	}
	if !strings.ContainsFunc(title, unicode.IsDigit) {
		score -= 10
	}
	if r.Platform != domain.Ebay && isAllUpper(title) {
		score -= 15
	}
	return clamp(score)
}

// DescriptionQuality rewards length, structure and readable sentence length.
func DescriptionQuality(description string) int {
	n := utf8.RuneCountInString(description)
	var length int
	switch {
	case n >= 800:
		length = 40
	case n >= 400:
		length = 30
	case n >= 200:
		length = 20
	default:
		length = 10
	}

	structure := 0
	if strings.Contains(description, "\n") {
		structure += 10
	}
	if strings.ContainsAny(description, "•-*") {
		structure += 10
	}
	if strings.ContainsFunc(description, unicode.IsDigit) {
		structure += 10
	}

	readability := 10
	if avg, ok := AverageSentenceLength(description); ok {
		switch {
		case avg >= 10 && avg <= 20:
			readability = 30
		case avg >= 8 && avg <= 25:
			readability = 20
		}
	}

	return clamp(length + structure + readability)
}

// TagEffectiveness rewards tag count, moderate tag length and multi-word tags.
func TagEffectiveness(tags []string) int {
	var quantity int
	switch n := len(tags); {
	case n >= 7:
		quantity = 40
	case n >= 5:
		quantity = 30
	case n >= 3:
		quantity = 20
	default:
		quantity = 10
	}

	totalLen, multiWord := 0, 0
	for _, tag := range tags {
		totalLen += utf8.RuneCountInString(tag)
		if len(strings.Fields(tag)) > 1 {
			multiWord++
		}
	}
	lengthBonus := 15
	if len(tags) > 0 {
		if mean := float64(totalLen) / float64(len(tags)); mean >= 5 && mean <= 15 {
			lengthBonus = 30
		}
	}

	return clamp(quantity + lengthBonus + min(30, multiWord*10))
}

// MobileOptimization penalizes long titles and descriptions that are not
// broken into short paragraphs.
func MobileOptimization(title, description string) int {
	score := 100
	if utf8.RuneCountInString(title) > 80 {
		score -= 20
	}
	paragraphs := Paragraphs(description)
	if len(paragraphs) < 3 {
		score -= 15
	}
	for _, p := range paragraphs {
		if utf8.RuneCountInString(p) > 500 {
			score -= 10
		}
	}
	return clamp(score)
}

// Paragraphs splits text on blank lines and drops empty paragraphs.
func Paragraphs(text string) []string {
	var out []string
	for _, p := range paragraphSplitRe.Split(text, -1) {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// AverageSentenceLength returns words per sentence, or false when text has no sentences.
func AverageSentenceLength(text string) (float64, bool) {
	sentences := 0
	for _, s := range sentenceSplitRe.Split(text, -1) {
		if strings.TrimSpace(s) != "" {
			sentences++
		}
	}
	if sentences == 0 {
		return 0, false
	}
	return float64(len(strings.Fields(text))) / float64(sentences), true
}

func isAllUpper(s string) bool {
	hasLetter := false
	for _, r := range s {
		if unicode.IsLetter(r) {
			hasLetter = true
			if unicode.IsLower(r) {
				return false
			}
		}
	}
	return hasLetter
}

func clamp(v int) int {
	return max(0, min(100, v))
}
