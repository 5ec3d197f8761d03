package optimizer

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"listingpilot/internal/domain"
	"listingpilot/internal/seo"
)

const (
	// DefaultFrontLoad is the number of title characters visible on most phone layouts.
	DefaultFrontLoad = 60

	mobileParagraphMax = 200
)

var nonAlnumRe = regexp.MustCompile(`[^a-z0-9]+`)

// OptimizeTitleForMobile packs whole words from the start of title into
// frontLoad characters. A word is only cut, with an ellipsis, when even the
// first word does not fit.
func OptimizeTitleForMobile(title string, frontLoad int) string {
	title = strings.TrimSpace(title)
	if utf8.RuneCountInString(title) <= frontLoad {
		return title
	}
	if frontLoad <= 0 {
		return ""
	}

	var words []string
	n := 0
	for _, w := range strings.Fields(title) {
		next := n + utf8.RuneCountInString(w)
		if len(words) > 0 {
			next++
		}
		if next > frontLoad {
			break
		}
		words = append(words, w)
		n = next
	}
	if len(words) == 0 {
		runes := []rune(title)
		return string(runes[:frontLoad-1]) + "…"
	}
	return strings.Join(words, " ")
}

// FormatDescriptionForMobile splits description on blank lines and re-wraps
// any paragraph over 200 characters into chunks of whole sentences.
func FormatDescriptionForMobile(description string) string {
	var out []string
	for _, p := range seo.Paragraphs(description) {
		if utf8.RuneCountInString(p) <= mobileParagraphMax {
			out = append(out, p)
			continue
		}
		out = append(out, packSentences(p, mobileParagraphMax)...)
	}
	return strings.Join(out, "\n\n")
}

func packSentences(paragraph string, limit int) []string {
	parts := strings.Split(paragraph, ". ")
	var chunks []string
	current := ""
	for i, s := range parts {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		if i < len(parts)-1 {
			s += "."
		}
		switch {
		case current == "":
			current = s
		case utf8.RuneCountInString(current)+1+utf8.RuneCountInString(s) <= limit:
			current += " " + s
		default:
			chunks = append(chunks, current)
			current = s
		}
	}
	if current != "" {
		chunks = append(chunks, current)
	}
	return chunks
}

// ExtractKeySpecifications flattens specs into lower_snake_case keys mapped to
// "value unit".
func ExtractKeySpecifications(specs []domain.Specification) map[string]string {
	out := make(map[string]string, len(specs))
	for _, s := range specs {
		key := snakeCase(s.Name)
		if key == "" {
			continue
		}
		out[key] = strings.TrimSpace(strings.TrimSpace(s.Value) + " " + strings.TrimSpace(s.Unit))
	}
	return out
}

func snakeCase(name string) string {
	var b strings.Builder
	var prev rune
	for i, r := range strings.TrimSpace(name) {
		if i > 0 && unicode.IsUpper(r) && (unicode.IsLower(prev) || unicode.IsDigit(prev)) {
			b.WriteRune('_')
		}
		b.WriteRune(unicode.ToLower(r))
		prev = r
	}
	return strings.Trim(nonAlnumRe.ReplaceAllString(b.String(), "_"), "_")
}

// slugify turns text into a lowercase, hyphen separated URL handle.
func slugify(text string) string {
	return strings.Trim(nonAlnumRe.ReplaceAllString(strings.ToLower(text), "-"), "-")
}
