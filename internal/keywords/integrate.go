package keywords

import (
	"fmt"
	"math"
	"slices"
	"strings"
	"unicode/utf8"

	"listingpilot/internal/domain"
)

const (
	// MaxTitleLength is the exclusive upper bound on integrated title length.
	MaxTitleLength = 200

	titleKeywords          = 2
	descriptionKeywordsMax = 5
	sentenceTemplate       = "This %s provides excellent value and performance."
)

// Integrate works missing keywords into the title and description.
// Keywords already present (case-insensitive substring) are never appended
// again, so Integrate is stable when applied to its own output.
func Integrate(content domain.BaseContent, set domain.KeywordSet) domain.KeywordOptimizedContent {
	var integrated []string

	title := content.Title
	for _, kw := range firstN(set.Primary, titleKeywords) {
		if containsFold(title, kw) {
			continue
		}
		candidate := joinWords(title, kw)
		if utf8.RuneCountInString(candidate) >= MaxTitleLength {
			continue
		}
		title = candidate
		integrated = appendUnique(integrated, kw)
	}
	title = CapTitle(title, MaxTitleLength-1)

	var candidates []string
	candidates = append(candidates, set.Primary...)
	candidates = append(candidates, firstN(set.Secondary, 3)...)
	candidates = append(candidates, firstN(set.LongTail, 2)...)
	candidates = unique(candidates)

	description := content.Description
	added := 0
	for _, kw := range candidates {
		if added == descriptionKeywordsMax {
			break
		}
		if containsFold(description, kw) {
			continue
		}
		description = joinSentences(description, fmt.Sprintf(sentenceTemplate, kw))
		integrated = appendUnique(integrated, kw)
		added++
	}

	if integrated == nil {
		integrated = []string{}
	}

	return domain.KeywordOptimizedContent{
		BaseContent:          content,
		OptimizedTitle:       title,
		OptimizedDescription: description,
		IntegratedKeywords:   integrated,
		KeywordDensity:       Density(title+" "+description, set.All()),
	}
}

// Density returns, for each keyword, its share of the words in text as a
// percentage rounded to two decimals. Matches are case-insensitive and
// whole-word, using the same tokenisation as Words.
func Density(text string, keywords []string) map[string]float64 {
	tokens := Words(text)
	density := make(map[string]float64, len(keywords))
	for _, kw := range keywords {
		phrase := Words(kw)
		if len(tokens) == 0 || len(phrase) == 0 {
			density[kw] = 0
			continue
		}
		count := countPhrase(tokens, phrase)
		density[kw] = math.Round(float64(count)/float64(len(tokens))*100*100) / 100
	}
	return density
}

func countPhrase(tokens, phrase []string) int {
	count := 0
	for i := 0; i+len(phrase) <= len(tokens); i++ {
		if slices.Equal(tokens[i:i+len(phrase)], phrase) {
			count++
		}
	}
	return count
}

// CapTitle trims title to at most limit characters, cutting at a word boundary
// when one exists.
func CapTitle(title string, limit int) string {
	runes := []rune(title)
	if len(runes) <= limit {
		return title
	}
	cut := string(runes[:limit])
	if runes[limit] != ' ' {
		if i := strings.LastIndex(cut, " "); i > 0 {
			cut = cut[:i]
		}
	}
	return strings.TrimSpace(cut)
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

func joinWords(a, b string) string {
	a = strings.TrimRight(a, " ")
	if a == "" {
		return b
	}
	return a + " " + b
}

func joinSentences(text, sentence string) string {
	text = strings.TrimRight(text, " ")
	if text == "" {
		return sentence
	}
	return text + " " + sentence
}
