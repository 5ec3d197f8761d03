package optimizer

import (
	"sort"
	"strings"

	"listingpilot/internal/domain"
)

const (
	amazonBullets        = 5
	amazonBackendMaxSize = 249
)

type amazonEngine struct{ base }

// OptimizeForPlatform title-cases the title, fills five feature bullets
// (topping up from specifications) and builds backend search terms from
// keywords that do not already appear in the visible copy.
func (e amazonEngine) OptimizeForPlatform(d domain.ListingDraft) domain.PlatformOptimizedContent {
	c := e.enrich(d)
	c.Title = titleCase(c.Title)
	c.MobileTitle = OptimizeTitleForMobile(c.Title, DefaultFrontLoad)

	bullets := make([]string, 0, amazonBullets)
	for _, b := range c.Bullets {
		bullets = append(bullets, capitalize(b))
	}
	if len(bullets) < amazonBullets {
		bullets = append(bullets, specBullets(c.Specifications, sortedKeys(c.Specifications))...)
	}
	c.Bullets = limit(bullets, amazonBullets)

	visible := strings.ToLower(c.Title + " " + strings.Join(c.Bullets, " "))
	c.BackendSearchTerms = backendTerms(append(append([]string{}, c.Keywords...), c.Tags...), visible)
	return c
}

func (e amazonEngine) FormatForPlatform(c domain.PlatformOptimizedContent) domain.FormattedListing {
	f := e.format(c, " ")
	f.TagLine = c.BackendSearchTerms
	return f
}

// backendTerms joins lowercase terms absent from visible, stopping before the
// result would pass the byte limit.
func backendTerms(candidates []string, visible string) string {
	var b strings.Builder
	seen := map[string]bool{}
	for _, t := range candidates {
		t = strings.ToLower(collapseSpaces(t))
		if t == "" || seen[t] || strings.Contains(visible, t) {
			continue
		}
		seen[t] = true
		extra := len(t)
		if b.Len() > 0 {
			extra++
		}
		if b.Len()+extra > amazonBackendMaxSize {
			continue
		}
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(t)
	}
	return b.String()
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
