package domain

// Range is an inclusive character-count range.
type Range struct {
	Min int `json:"min" yaml:"min"`
	Max int `json:"max" yaml:"max"`
}

// Contains reports whether n lies within the range.
func (r Range) Contains(n int) bool {
	return n >= r.Min && n <= r.Max
}

// PlatformRules are the structural constraints of one marketplace.
type PlatformRules struct {
	Platform        Platform `json:"platform"`
	Name            string   `json:"name"`
	TitleRange      Range    `json:"titleRange"`
	OptimalTitle    Range    `json:"optimalTitle"`
	MinDescription  int      `json:"minDescription"`
	MaxTags         int      `json:"maxTags"`
	TagFormat       string   `json:"tagFormat"`
	Guidelines      []string `json:"guidelines"`
	ProhibitedWords []string `json:"prohibitedWords"`
}

// AlgorithmFactor is one weighted input of a marketplace ranking algorithm.
type AlgorithmFactor struct {
	Name   string  `json:"name"`
	Weight float64 `json:"weight"`
}
