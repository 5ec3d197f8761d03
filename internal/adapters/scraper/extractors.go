package scraper

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"regexp"
	"sync"
	"time"

	"gopkg.in/yaml.v3"

	"listingpilot/internal/domain"
	"listingpilot/pkg/log"
)

const defaultKey = "default"

//go:embed extractors.yaml
var defaultExtractorsYAML []byte

// Rule extracts one value. Exactly one of Selector or Pattern is set.
type Rule struct {
	Selector string `yaml:"selector"`
	Attr     string `yaml:"attr"`
	Pattern  string `yaml:"pattern"`

	re *regexp.Regexp
}

// FieldRules is the ordered rule chain for each scraped field.
type FieldRules struct {
	Title       []Rule `yaml:"title"`
	Description []Rule `yaml:"description"`
	Price       []Rule `yaml:"price"`
	Images      []Rule `yaml:"images"`
}

// Extractors holds the rule chains keyed by platform, plus the default
// chain. It can be reloaded from disk while in use.
type Extractors struct {
	mu          sync.RWMutex
	rules       map[string]FieldRules
	filePath    string
	lastModTime time.Time
}

// DefaultExtractors returns the built-in rules.
func DefaultExtractors() *Extractors {
	rules, err := parseExtractors(defaultExtractorsYAML)
	if err != nil {
		panic(fmt.Sprintf("built-in extractors: %v", err))
	}
	return &Extractors{rules: rules}
}

// LoadExtractors overlays the file at filePath onto the built-in rules. A
// platform present in the file replaces that platform's built-in chain.
// An empty path returns the built-in rules.
func LoadExtractors(filePath string) (*Extractors, error) {
	e := DefaultExtractors()
	if filePath == "" {
		return e, nil
	}
	e.filePath = filePath
	if err := e.reload(); err != nil {
		return nil, err
	}
	return e, nil
}

func (e *Extractors) reload() error {
	info, err := os.Stat(e.filePath)
	if err != nil {
		return fmt.Errorf("stat extractors: %w", err)
	}
	data, err := os.ReadFile(e.filePath)
	if err != nil {
		return fmt.Errorf("read extractors: %w", err)
	}
	overrides, err := parseExtractors(data)
	if err != nil {
		return fmt.Errorf("%s: %w", e.filePath, err)
	}
	merged, err := parseExtractors(defaultExtractorsYAML)
	if err != nil {
		return err
	}
	for key, fr := range overrides {
		merged[key] = fr
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.rules = merged
	e.lastModTime = info.ModTime()
	return nil
}

// Watch reloads the file whenever its modification time changes, until ctx
// is done. A file that fails to parse keeps the previous rules.
func (e *Extractors) Watch(ctx context.Context, interval time.Duration) {
	if e.filePath == "" {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			info, err := os.Stat(e.filePath)
			if err != nil {
				continue
			}
			e.mu.RLock()
			changed := info.ModTime().After(e.lastModTime)
			e.mu.RUnlock()
			if !changed {
				continue
			}
			if err := e.reload(); err != nil {
				log.GlobalWarn("extractor reload failed", "path", e.filePath, "error", err)
				continue
			}
			log.GlobalInfo("extractors reloaded", "path", e.filePath)
		}
	}
}

// chain returns the platform's rules followed by the default rules.
func (e *Extractors) chain(platform domain.Platform) FieldRules {
	e.mu.RLock()
	defer e.mu.RUnlock()

	def := e.rules[defaultKey]
	own, ok := e.rules[string(platform)]
	if !ok {
		return def
	}
	return FieldRules{
		Title:       concat(own.Title, def.Title),
		Description: concat(own.Description, def.Description),
		Price:       concat(own.Price, def.Price),
		Images:      concat(own.Images, def.Images),
	}
}

func concat(a, b []Rule) []Rule {
	out := make([]Rule, 0, len(a)+len(b))
	return append(append(out, a...), b...)
}

func parseExtractors(data []byte) (map[string]FieldRules, error) {
	var raw map[string]FieldRules
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse extractors: %w", err)
	}
	var errs []error
	for key, fr := range raw {
		if key != defaultKey {
			if _, err := domain.ParsePlatform(key); err != nil {
				errs = append(errs, err)
				continue
			}
		}
		for _, rules := range [][]Rule{fr.Title, fr.Description, fr.Price, fr.Images} {
			for i := range rules {
				if err := rules[i].compile(); err != nil {
					errs = append(errs, fmt.Errorf("%s: %w", key, err))
				}
			}
		}
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return raw, nil
}

func (r *Rule) compile() error {
	switch {
	case r.Selector != "" && r.Pattern != "":
		return fmt.Errorf("rule %q sets both selector and pattern", r.Selector)
	case r.Selector == "" && r.Pattern == "":
		return errors.New("rule needs a selector or a pattern")
	case r.Pattern != "":
		re, err := regexp.Compile(r.Pattern)
		if err != nil {
			return fmt.Errorf("pattern %q: %w", r.Pattern, err)
		}
		r.re = re
	}
	return nil
}
