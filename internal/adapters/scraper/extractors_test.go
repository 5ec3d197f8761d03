package scraper

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"listingpilot/internal/domain"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
}

func TestDefaultExtractors_CoverEveryPlatform(t *testing.T) {
	e := DefaultExtractors()

	for _, p := range domain.Platforms() {
		chain := e.chain(p)
		if len(chain.Title) == 0 || len(chain.Description) == 0 || len(chain.Price) == 0 || len(chain.Images) == 0 {
			t.Errorf("%s: incomplete chain %+v", p, chain)
		}
	}
}

func TestLoadExtractors_OverridesOnePlatform(t *testing.T) {
	// Arrange
	path := filepath.Join(t.TempDir(), "extractors.yaml")
	writeFile(t, path, `
etsy:
  title:
    - selector: "h2.custom"
`)

	// Act
	e, err := LoadExtractors(path)

	// Assert
	if err != nil {
		t.Fatal(err)
	}
	etsy := e.chain(domain.Etsy)
	if etsy.Title[0].Selector != "h2.custom" {
		t.Errorf("etsy title chain should start with the override, got %+v", etsy.Title[0])
	}
	if len(etsy.Description) != len(e.chain("").Description) {
		t.Error("etsy description should fall back to the default chain only")
	}
	if e.chain(domain.Amazon).Title[0].Selector != "#productTitle" {
		t.Error("other platforms must keep their built-in rules")
	}
}

func TestLoadExtractors_RejectsBadRules(t *testing.T) {
	testCases := map[string]string{
		"unknown platform": "aliexpress:\n  title:\n    - selector: h1\n",
		"bad pattern":      "default:\n  price:\n    - pattern: '([0-9'\n",
		"empty rule":       "default:\n  title:\n    - attr: content\n",
		"both kinds":       "default:\n  title:\n    - selector: h1\n      pattern: x\n",
	}

	for name, content := range testCases {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "extractors.yaml")
			writeFile(t, path, content)

			if _, err := LoadExtractors(path); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestLoadExtractors_EmptyPathIsDefault(t *testing.T) {
	e, err := LoadExtractors("")

	if err != nil {
		t.Fatal(err)
	}
	if e.chain(domain.Amazon).Title[0].Selector != "#productTitle" {
		t.Error("expected built-in rules")
	}
}

func TestExtractors_WatchReloadsChangedFile(t *testing.T) {
	// Arrange
	path := filepath.Join(t.TempDir(), "extractors.yaml")
	writeFile(t, path, "etsy:\n  title:\n    - selector: h2.before\n")
	e, err := LoadExtractors(path)
	if err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go e.Watch(ctx, 5*time.Millisecond)

	// Act
	writeFile(t, path, "etsy:\n  title:\n    - selector: h2.after\n")
	future := time.Now().Add(time.Minute)
	if err := os.Chtimes(path, future, future); err != nil {
		t.Fatal(err)
	}

	// Assert
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if e.chain(domain.Etsy).Title[0].Selector == "h2.after" {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Errorf("rules were not reloaded, title chain starts with %q", e.chain(domain.Etsy).Title[0].Selector)
}

func TestExtractors_WatchKeepsRulesOnBadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "extractors.yaml")
	writeFile(t, path, "etsy:\n  title:\n    - selector: h2.good\n")
	e, err := LoadExtractors(path)
	if err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	go e.Watch(ctx, 5*time.Millisecond)

	writeFile(t, path, "etsy: [not, a, map")
	future := time.Now().Add(time.Minute)
	_ = os.Chtimes(path, future, future)
	time.Sleep(50 * time.Millisecond)
	cancel()

	if got := e.chain(domain.Etsy).Title[0].Selector; !strings.Contains(got, "good") {
		t.Errorf("rules changed to %q after a bad reload", got)
	}
}
