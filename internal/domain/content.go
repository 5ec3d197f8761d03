package domain

// KeywordSet groups the keywords researched for a single request.
type KeywordSet struct {
	Primary     []string `json:"primary"`
	Secondary   []string `json:"secondary"`
	LongTail    []string `json:"longTail"`
	Synonyms    []string `json:"synonyms"`
	Competitors []string `json:"competitors"`
}

// All returns primary, secondary and long-tail keywords in that order without duplicates.
func (k KeywordSet) All() []string {
	seen := make(map[string]struct{})
	var out []string
	for _, group := range [][]string{k.Primary, k.Secondary, k.LongTail} {
		for _, kw := range group {
			if _, ok := seen[kw]; ok {
				continue
			}
			seen[kw] = struct{}{}
			out = append(out, kw)
		}
	}
	return out
}

// BaseContent is the starting point of the optimization pipeline.
type BaseContent struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// KeywordOptimizedContent is BaseContent after keyword integration.
type KeywordOptimizedContent struct {
	BaseContent
	OptimizedTitle       string             `json:"optimizedTitle"`
	OptimizedDescription string             `json:"optimizedDescription"`
	IntegratedKeywords   []string           `json:"integratedKeywords"`
	KeywordDensity       map[string]float64 `json:"keywordDensity"`
}

// OptimizedContent is the final scored content record.
type OptimizedContent struct {
	KeywordOptimizedContent
	Tags         []string `json:"tags"`
	SEOScore     SEOScore `json:"seoScore"`
	Improvements []string `json:"improvements"`
}

// SEOScore is the weighted composite listing score. All values are 0-100.
type SEOScore struct {
	Overall            int `json:"overall"`
	KeywordRelevance   int `json:"keywordRelevance"`
	TitleOptimization  int `json:"titleOptimization"`
	DescriptionQuality int `json:"descriptionQuality"`
	TagEffectiveness   int `json:"tagEffectiveness"`
	MobileOptimization int `json:"mobileOptimization"`
}

// GeneratedListing is the parsed output of the content generator.
type GeneratedListing struct {
	Title         string   `json:"title"`
	Bullets       []string `json:"bullets"`
	Description   string   `json:"description"`
	Keywords      []string `json:"keywords"`
	PlatformNotes string   `json:"platform_notes"`
}

// ListingDraft is a candidate listing handed to a platform strategy.
type ListingDraft struct {
	Title          string
	Bullets        []string
	Description    string
	Keywords       []string
	Tags           []string
	Specifications []Specification
}

// PlatformOptimizedContent is a draft enriched by a platform strategy.
type PlatformOptimizedContent struct {
	Platform           Platform          `json:"platform"`
	Title              string            `json:"title"`
	MobileTitle        string            `json:"mobileTitle"`
	Bullets            []string          `json:"bullets"`
	Description        string            `json:"description"`
	Tags               []string          `json:"tags"`
	Keywords           []string          `json:"keywords"`
	Specifications     map[string]string `json:"specifications,omitempty"`
	BackendSearchTerms string            `json:"backendSearchTerms,omitempty"`
	Extras             map[string]string `json:"extras,omitempty"`
}

// FormattedListing is the final shape ready for display or export.
type FormattedListing struct {
	Platform    Platform          `json:"platform"`
	Title       string            `json:"title"`
	Bullets     []string          `json:"bullets"`
	Description string            `json:"description"`
	Tags        []string          `json:"tags"`
	TagLine     string            `json:"tagLine"`
	Attributes  map[string]string `json:"attributes,omitempty"`
}
