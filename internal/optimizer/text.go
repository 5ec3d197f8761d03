package optimizer

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"listingpilot/internal/keywords"
)

var minorWords = map[string]bool{
	"a": true, "an": true, "and": true, "as": true, "at": true, "by": true,
	"for": true, "in": true, "of": true, "on": true, "or": true, "the": true,
	"to": true, "with": true,
}

func collapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// titleCase upper-cases the first letter of every word except minor words
// after the first. Existing capitals are kept so model numbers survive.
func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		if i > 0 && minorWords[strings.ToLower(w)] {
			words[i] = strings.ToLower(w)
			continue
		}
		r, size := utf8.DecodeRuneInString(w)
		words[i] = string(unicode.ToUpper(r)) + w[size:]
	}
	return strings.Join(words, " ")
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + s[size:]
}

// cleanList trims entries, drops blanks and removes case-insensitive duplicates.
func cleanList(in []string) []string {
	out := make([]string, 0, len(in))
	seen := make(map[string]bool, len(in))
	for _, s := range in {
		s = collapseSpaces(s)
		key := strings.ToLower(s)
		if s == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, s)
	}
	return out
}

func normalizeTags(in []string) []string {
	lowered := make([]string, len(in))
	for i, t := range in {
		lowered[i] = strings.ToLower(t)
	}
	return cleanList(lowered)
}

func limit(in []string, n int) []string {
	if n >= 0 && len(in) > n {
		return in[:n]
	}
	return in
}

func copyMap(in map[string]string) map[string]string {
	out := make(map[string]string, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

// firstParagraph returns the first blank-line separated block of text.
func firstParagraph(text string) string {
	text = strings.TrimSpace(text)
	if i := strings.Index(text, "\n\n"); i >= 0 {
		return strings.TrimSpace(text[:i])
	}
	return text
}

// summarize flattens text to one line of at most n characters.
func summarize(text string, n int) string {
	return keywords.CapTitle(collapseSpaces(text), n)
}

// specBullets renders specifications as "Name: value" lines in key order.
func specBullets(specs map[string]string, keys []string) []string {
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		v := specs[k]
		if v == "" {
			continue
		}
		out = append(out, capitalize(strings.ReplaceAll(k, "_", " "))+": "+v)
	}
	return out
}
