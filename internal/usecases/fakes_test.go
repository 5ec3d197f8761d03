package usecases_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"listingpilot/internal/domain"
	"listingpilot/internal/usecases"
)

const validResponse = `{
  "title": "Gooseneck Pour Over Kettle 1L Stainless Steel",
  "bullets": ["Precise gooseneck spout", "Stainless steel body"],
  "description": "Brew better coffee every morning.\n\nThe body heats evenly on gas and induction stoves.",
  "keywords": ["pour over kettle", "gooseneck kettle", "Pour Over Kettle"],
  "platform_notes": "Add a lifestyle photo."
}`

type reply struct {
	raw string
	err error
}

// fakeGenerator returns replies in order, repeating the last one. With
// block set it waits for the attempt deadline instead.
type fakeGenerator struct {
	mu      sync.Mutex
	calls   atomic.Int32
	replies []reply
	block   bool
	last    usecases.GenerationRequest
}

func (f *fakeGenerator) Generate(ctx context.Context, req usecases.GenerationRequest) (string, error) {
	n := int(f.calls.Add(1))
	f.mu.Lock()
	f.last = req
	f.mu.Unlock()
	if f.block {
		<-ctx.Done()
		return "", ctx.Err()
	}
	r := f.replies[min(n, len(f.replies))-1]
	return r.raw, r.err
}

func (f *fakeGenerator) Model() string { return "fake-model" }

func (f *fakeGenerator) Calls() int { return int(f.calls.Load()) }

type memCounter struct {
	mu     sync.Mutex
	values map[string]int64
	err    error
}

func newMemCounter() *memCounter { return &memCounter{values: map[string]int64{}} }

func (c *memCounter) Get(_ context.Context, key string) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.values[key], c.err
}

func (c *memCounter) Increment(_ context.Context, key string, _ time.Time) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.err != nil {
		return 0, c.err
	}
	c.values[key]++
	return c.values[key], nil
}

type policy struct {
	limits map[domain.Tier]int
	admins map[string]bool
}

func (p policy) TierLimit(t domain.Tier) int {
	if l, ok := p.limits[t]; ok {
		return l
	}
	return p.limits[domain.TierFree]
}

func (p policy) IsAdmin(email string) bool { return p.admins[email] }

func defaultPolicy() policy {
	return policy{
		limits: map[domain.Tier]int{domain.TierFree: 2, domain.TierPro: 100, domain.TierBusiness: -1},
		admins: map[string]bool{"ops@example.com": true},
	}
}

type memHistory struct {
	mu        sync.Mutex
	records   []domain.OptimizationRecord
	saveErr   error
	lastLimit int
}

func (h *memHistory) Save(_ context.Context, rec domain.OptimizationRecord) error {
	if h.saveErr != nil {
		return h.saveErr
	}
	h.mu.Lock()
	h.records = append(h.records, rec)
	h.mu.Unlock()
	return nil
}

func (h *memHistory) ListByUser(_ context.Context, userID string, limit int) ([]domain.OptimizationRecord, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.lastLimit = limit
	var out []domain.OptimizationRecord
	for _, r := range h.records {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	return out, nil
}

type fakeScraper struct {
	listing *domain.ScrapedListing
	err     error
}

func (s fakeScraper) Scrape(context.Context, string, domain.Platform) (*domain.ScrapedListing, error) {
	if s.err != nil {
		return nil, s.err
	}
	copied := *s.listing
	return &copied, nil
}

type fakeAnalyzer struct {
	result domain.ImageAnalysis
	err    error
}

func (a fakeAnalyzer) Analyze(context.Context, string) (domain.ImageAnalysis, error) {
	return a.result, a.err
}

var errBoom = errors.New("boom")
