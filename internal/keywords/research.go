// Package keywords researches listing keywords and works them into content.
// Everything here is deterministic and free of I/O.
package keywords

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"listingpilot/internal/domain"
)

const (
	primaryCount     = 3
	secondaryCount   = 5
	longTailWindow   = 3
	longTailMaxChars = 50
	longTailMax      = 10
)

var wordRe = regexp.MustCompile(`[\p{L}\p{N}]+(?:['-][\p{L}\p{N}]+)*`)

// Words splits text into lowercase words.
func Words(text string) []string {
	return wordRe.FindAllString(strings.ToLower(text), -1)
}

// SignificantWords returns the lowercase words of text that are longer than
// three characters and not stop words, in order of appearance.
func SignificantWords(text string) []string {
	var out []string
	for _, w := range Words(text) {
		if utf8.RuneCountInString(w) <= 3 {
			continue
		}
		if _, stop := stopWords[w]; stop {
			continue
		}
		out = append(out, w)
	}
	return out
}

// Research derives the keyword set for a product on a platform.
func Research(p domain.ProductInfo, platform domain.Platform) domain.KeywordSet {
	titleWords := unique(SignificantWords(p.Title))
	descWords := unique(SignificantWords(p.Description))

	secondary := append(firstN(descWords, secondaryCount), platformBoilerplate[platform]...)

	return domain.KeywordSet{
		Primary:     firstN(titleWords, primaryCount),
		Secondary:   unique(secondary),
		LongTail:    longTail(p),
		Synonyms:    synonyms(p.Title + " " + p.Description),
		Competitors: []string{},
	}
}

func longTail(p domain.ProductInfo) []string {
	words := SignificantWords(p.Title + " " + p.Description)
	var phrases []string
	for i := 0; i+longTailWindow <= len(words) && len(phrases) < longTailMax; i++ {
		phrase := strings.Join(words[i:i+longTailWindow], " ")
		if utf8.RuneCountInString(phrase) > longTailMaxChars {
			continue
		}
		phrases = appendUnique(phrases, phrase)
	}

	if category := strings.ToLower(strings.TrimSpace(p.Category)); category != "" {
		phrases = appendUnique(phrases, category+" for sale")
		phrases = appendUnique(phrases, "best "+category)
		phrases = appendUnique(phrases, category+" online")
	}
	if phrases == nil {
		return []string{}
	}
	return phrases
}

func synonyms(text string) []string {
	lower := strings.ToLower(text)
	out := []string{}
	for _, entry := range synonymTable {
		if !strings.Contains(lower, entry.noun) {
			continue
		}
		for _, s := range entry.synonyms {
			out = appendUnique(out, s)
		}
	}
	return out
}

func unique(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		out = appendUnique(out, s)
	}
	return out
}

func appendUnique(list []string, s string) []string {
	for _, existing := range list {
		if existing == s {
			return list
		}
	}
	return append(list, s)
}

func firstN(in []string, n int) []string {
	if len(in) > n {
		in = in[:n]
	}
	return append([]string{}, in...)
}
