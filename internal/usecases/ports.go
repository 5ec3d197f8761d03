package usecases

import (
	"context"
	"time"

	"listingpilot/internal/domain"
)

// GenerationRequest is what the content generator receives for one attempt.
type GenerationRequest struct {
	SystemPrompt string
	UserPrompt   string
	Platform     domain.Platform
	Mode         domain.Mode
}

// ContentGenerator produces the raw, JSON-shaped listing text. Failures are
// wrapped around one of the domain.ErrUpstream* kinds.
type ContentGenerator interface {
	Generate(ctx context.Context, req GenerationRequest) (string, error)
	Model() string
}

// ListingScraper reads a marketplace product page.
type ListingScraper interface {
	Scrape(ctx context.Context, url string, platform domain.Platform) (*domain.ScrapedListing, error)
}

// ImageAnalyzer guesses product attributes from an image reference.
type ImageAnalyzer interface {
	Analyze(ctx context.Context, imageURL string) (domain.ImageAnalysis, error)
}

// HistoryStore persists optimization results per user.
type HistoryStore interface {
	Save(ctx context.Context, rec domain.OptimizationRecord) error
	ListByUser(ctx context.Context, userID string, limit int) ([]domain.OptimizationRecord, error)
}

// UsageCounter is an atomic per-key counter whose keys expire at a given time.
type UsageCounter interface {
	Get(ctx context.Context, key string) (int64, error)
	Increment(ctx context.Context, key string, expireAt time.Time) (int64, error)
}

// QuotaPolicy supplies per-tier allowances and the admin list.
type QuotaPolicy interface {
	TierLimit(tier domain.Tier) int
	IsAdmin(email string) bool
}
