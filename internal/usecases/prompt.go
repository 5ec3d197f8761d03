package usecases

import (
	"fmt"
	"strings"

	"listingpilot/internal/domain"
)

var modeInstructions = map[domain.Mode]string{
	domain.ModeOptimize: "Improve the existing listing below. Keep every product fact, fix weak wording and work in relevant search terms.",
	domain.ModeCreate:   "Write a new listing from the product details below.",
	domain.ModeAnalyze:  "Review the listing below, return an improved version and summarize its main weaknesses in platform_notes.",
}

// buildSystemPrompt states the output contract and the platform's rules.
func buildSystemPrompt(r domain.PlatformRules) string {
	var b strings.Builder
	fmt.Fprintf(&b, "You are an e-commerce copywriter who writes product listings for %s.\n", r.Name)
	b.WriteString("Reply with one JSON object and nothing else, using exactly these keys:\n")
	b.WriteString(`{"title": string, "bullets": [string], "description": string, "keywords": [string], "platform_notes": string}`)
	b.WriteString("\n\nPlatform rules:\n")
	fmt.Fprintf(&b, "- Title length between %d and %d characters, ideally %d to %d.\n",
		r.TitleRange.Min, r.TitleRange.Max, r.OptimalTitle.Min, r.OptimalTitle.Max)
	fmt.Fprintf(&b, "- Description of at least %d characters.\n", r.MinDescription)
	fmt.Fprintf(&b, "- At most %d keywords.\n", r.MaxTags)
	if r.TagFormat != "" {
		fmt.Fprintf(&b, "- Keyword format: %s.\n", r.TagFormat)
	}
	for _, g := range r.Guidelines {
		fmt.Fprintf(&b, "- %s\n", g)
	}
	if len(r.ProhibitedWords) > 0 {
		fmt.Fprintf(&b, "- Never use these phrases: %s.\n", strings.Join(r.ProhibitedWords, ", "))
	}
	return b.String()
}

// buildUserPrompt renders the request. Empty product fields are left out.
func buildUserPrompt(mode domain.Mode, p domain.ProductInfo, img *domain.ImageAnalysis, images []string, deep bool) string {
	var b strings.Builder
	b.WriteString(modeInstructions[mode])
	b.WriteString("\n\nProduct:\n")

	line := func(label, value string) {
		if value = strings.TrimSpace(value); value != "" {
			fmt.Fprintf(&b, "%s: %s\n", label, value)
		}
	}
	line("Title", p.Title)
	line("Description", p.Description)
	if p.Category != "" {
		line("Category", p.Category)
	} else {
		line("Category", "unspecified, infer a suitable one")
	}
	line("Brand", p.Brand)
	if p.Price != nil {
		line("Price", fmt.Sprintf("%.2f", *p.Price))
	}
	line("Target audience", p.TargetAudience)
	line("Features", strings.Join(p.Features, "; "))
	line("Seed keywords", strings.Join(p.Keywords, ", "))
	for _, s := range p.Specifications {
		line("Spec "+s.Name, strings.TrimSpace(s.Value+" "+s.Unit))
	}

	if img != nil && !img.Fallback {
		b.WriteString("\nImage analysis (low confidence):\n")
		line("Visible features", strings.Join(img.Features, ", "))
		line("Colors", strings.Join(img.Colors, ", "))
		line("Style", img.Style)
	}
	if len(images) > 0 {
		fmt.Fprintf(&b, "\nThe listing has %d product image(s).\n", len(images))
	}
	if deep {
		b.WriteString("\nGo deeper than usual: cover buyer objections, use cases and care instructions where relevant.\n")
	}
	return b.String()
}
