// Package rules holds the per-platform rule table. The table is built once at
// startup and never mutated, so it is safe for concurrent readers.
package rules

import (
	"fmt"
	"os"

	"listingpilot/internal/domain"

	"gopkg.in/yaml.v3"
)

// Table maps each supported platform to its rules and ranking factors.
type Table struct {
	rules   map[domain.Platform]domain.PlatformRules
	factors map[domain.Platform][]domain.AlgorithmFactor
}

// Default returns the built-in rule table.
func Default() *Table {
	return &Table{
		rules:   defaultRules(),
		factors: defaultFactors(),
	}
}

// rawRules represents one platform entry of the YAML override file.
// Nil fields keep the built-in value.
type rawRules struct {
	Name            *string       `yaml:"name"`
	TitleRange      *domain.Range `yaml:"title_range"`
	OptimalTitle    *domain.Range `yaml:"optimal_title"`
	MinDescription  *int          `yaml:"min_description"`
	MaxTags         *int          `yaml:"max_tags"`
	TagFormat       *string       `yaml:"tag_format"`
	Guidelines      []string      `yaml:"guidelines"`
	ProhibitedWords []string      `yaml:"prohibited_words"`
}

// rawConfig represents the YAML structure.
type rawConfig struct {
	Platforms map[string]rawRules `yaml:"platforms"`
}

// Load reads a YAML file and overlays it onto the built-in table.
func Load(filePath string) (*Table, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("read rules file: %w", err)
	}
	return Parse(data)
}

// Parse overlays YAML rule overrides onto the built-in table.
// Unknown platform keys are rejected.
func Parse(data []byte) (*Table, error) {
	var raw rawConfig
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode rules: %w", err)
	}

	t := Default()
	for key, override := range raw.Platforms {
		p, err := domain.ParsePlatform(key)
		if err != nil {
			return nil, err
		}
		r := t.rules[p]
		if override.Name != nil {
			r.Name = *override.Name
		}
		if override.TitleRange != nil {
			r.TitleRange = *override.TitleRange
		}
		if override.OptimalTitle != nil {
			r.OptimalTitle = *override.OptimalTitle
		}
		if override.MinDescription != nil {
			r.MinDescription = *override.MinDescription
		}
		if override.MaxTags != nil {
			r.MaxTags = *override.MaxTags
		}
		if override.TagFormat != nil {
			r.TagFormat = *override.TagFormat
		}
		if override.Guidelines != nil {
			r.Guidelines = override.Guidelines
		}
		if override.ProhibitedWords != nil {
			r.ProhibitedWords = override.ProhibitedWords
		}
		if err := validate(r); err != nil {
			return nil, err
		}
		t.rules[p] = r
	}
	return t, nil
}

func validate(r domain.PlatformRules) error {
	if r.TitleRange.Max <= 0 || r.TitleRange.Min > r.TitleRange.Max {
		return fmt.Errorf("%s: invalid title range %d-%d", r.Platform, r.TitleRange.Min, r.TitleRange.Max)
	}
	if r.OptimalTitle.Min > r.OptimalTitle.Max || r.OptimalTitle.Max > r.TitleRange.Max {
		return fmt.Errorf("%s: optimal title range %d-%d must sit inside the hard range", r.Platform, r.OptimalTitle.Min, r.OptimalTitle.Max)
	}
	if r.MaxTags < 0 || r.MinDescription < 0 {
		return fmt.Errorf("%s: tag and description limits must not be negative", r.Platform)
	}
	return nil
}

// Get returns a copy of the rules for p.
func (t *Table) Get(p domain.Platform) (domain.PlatformRules, error) {
	r, ok := t.rules[p]
	if !ok {
		return domain.PlatformRules{}, &domain.UnsupportedPlatformError{Platform: string(p)}
	}
	r.Guidelines = append([]string(nil), r.Guidelines...)
	r.ProhibitedWords = append([]string(nil), r.ProhibitedWords...)
	return r, nil
}

// Lookup parses a platform key and returns its rules.
func (t *Table) Lookup(key string) (domain.PlatformRules, error) {
	p, err := domain.ParsePlatform(key)
	if err != nil {
		return domain.PlatformRules{}, err
	}
	return t.Get(p)
}

// AlgorithmFactors returns the ranking-factor weights for p, or nil if unknown.
func (t *Table) AlgorithmFactors(p domain.Platform) []domain.AlgorithmFactor {
	return append([]domain.AlgorithmFactor(nil), t.factors[p]...)
}

// Platforms lists the platforms present in the table in stable order.
func (t *Table) Platforms() []domain.Platform {
	var out []domain.Platform
	for _, p := range domain.Platforms() {
		if _, ok := t.rules[p]; ok {
			out = append(out, p)
		}
	}
	return out
}
