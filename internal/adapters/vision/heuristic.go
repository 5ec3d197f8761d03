// Package vision guesses product attributes from an image reference. It
// reads the URL only; no pixels are fetched or decoded.
package vision

import (
	"context"
	"net/url"
	"slices"
	"strings"
	"unicode"

	"listingpilot/internal/domain"
)

const (
	maxFeatures    = 5
	baseConfidence = 0.2
	hitConfidence  = 0.1
	maxConfidence  = 0.6
)

var colorWords = map[string]bool{
	"black": true, "white": true, "red": true, "blue": true, "green": true, "yellow": true,
	"orange": true, "purple": true, "pink": true, "brown": true, "gray": true, "grey": true,
	"silver": true, "gold": true, "beige": true, "navy": true, "teal": true, "cream": true,
}

var styleWords = map[string]string{
	"minimal": "minimalist", "minimalist": "minimalist", "vintage": "vintage", "retro": "vintage",
	"modern": "modern", "rustic": "rustic", "luxury": "luxury", "premium": "luxury",
	"handmade": "handmade", "industrial": "industrial", "boho": "bohemian", "bohemian": "bohemian",
	"classic": "classic", "sport": "sporty", "sporty": "sporty",
}

// noise is URL vocabulary that says nothing about the product.
var noise = map[string]bool{
	"http": true, "https": true, "www": true, "com": true, "net": true, "cdn": true, "static": true,
	"images": true, "image": true, "img": true, "photo": true, "photos": true, "media": true,
	"assets": true, "uploads": true, "files": true, "product": true, "products": true, "large": true,
	"small": true, "thumb": true, "thumbnail": true, "main": true, "jpg": true, "jpeg": true,
	"png": true, "webp": true, "gif": true, "data": true, "base64": true, "the": true, "and": true,
	"with": true, "for": true,
}

// HeuristicAnalyzer derives features, colors and a style from words in the
// image URL.
type HeuristicAnalyzer struct{}

func NewHeuristicAnalyzer() *HeuristicAnalyzer {
	return &HeuristicAnalyzer{}
}

func (a *HeuristicAnalyzer) Analyze(ctx context.Context, imageURL string) (domain.ImageAnalysis, error) {
	if err := ctx.Err(); err != nil {
		return domain.ImageAnalysis{}, err
	}

	var (
		features []string
		colors   []string
		style    string
		hits     int
	)
	for _, w := range words(imageURL) {
		switch {
		case colorWords[w]:
			if !slices.Contains(colors, w) {
				colors = append(colors, w)
				hits++
			}
		case styleWords[w] != "":
			if style == "" {
				style = styleWords[w]
				hits++
			}
		case noise[w] || len(w) < 3:
		default:
			if len(features) < maxFeatures && !slices.Contains(features, w) {
				features = append(features, w)
				hits++
			}
		}
	}

	if hits == 0 {
		return Fallback(), nil
	}
	if features == nil {
		features = []string{"product"}
	}
	if colors == nil {
		colors = []string{}
	}
	if style == "" {
		style = "standard"
	}
	return domain.ImageAnalysis{
		Features:   features,
		Colors:     colors,
		Style:      style,
		Confidence: min(baseConfidence+hitConfidence*float64(hits), maxConfidence),
	}, nil
}

// Fallback is the generic result used when nothing could be derived.
func Fallback() domain.ImageAnalysis {
	return domain.ImageAnalysis{
		Features: []string{"product"},
		Colors:   []string{},
		Style:    "standard",
		Fallback: true,
	}
}

// words splits the URL path into lowercase alphabetic tokens. Data URLs
// carry no useful words.
func words(raw string) []string {
	if strings.HasPrefix(raw, "data:") {
		return nil
	}
	text := raw
	if u, err := url.Parse(raw); err == nil && u.Host != "" {
		text = u.Path
	}
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r)
	})
}
