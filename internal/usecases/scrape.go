package usecases

import (
	"context"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"listingpilot/internal/domain"
	"listingpilot/internal/observability"
	"listingpilot/internal/rules"
	"listingpilot/internal/seo"
	"listingpilot/pkg/log"
)

// NoDescription is the description of a scraped listing when none was found.
const NoDescription = "No description found"

// ScrapeResult is a scraped listing with its pre-optimization score. Score
// is nil when the page's platform could not be determined.
type ScrapeResult struct {
	Listing *domain.ScrapedListing
	Score   *seo.QuickScore
}

// ScrapeListingUseCase reads an existing marketplace listing.
type ScrapeListingUseCase struct {
	scraper ListingScraper
	rules   *rules.Table
}

func NewScrapeListingUseCase(scraper ListingScraper, table *rules.Table) *ScrapeListingUseCase {
	return &ScrapeListingUseCase{scraper: scraper, rules: table}
}

// Execute scrapes url. platform may be empty when the host is not a known
// marketplace.
func (uc *ScrapeListingUseCase) Execute(ctx context.Context, url string, platform domain.Platform) (*ScrapeResult, error) {
	ctx, span := observability.Tracer().Start(ctx, "ScrapeListing")
	defer span.End()
	span.SetAttributes(attribute.String("url", url), attribute.String("platform", string(platform)))

	label := string(platform)
	if label == "" {
		label = "unknown"
	}

	listing, err := uc.scraper.Scrape(ctx, url, platform)
	if err != nil {
		observability.ScrapesTotal.WithLabelValues(label, "error").Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, "scrape failed")
		return nil, err
	}
	observability.ScrapesTotal.WithLabelValues(label, "success").Inc()

	listing.URL = url
	listing.Platform = platform
	if strings.TrimSpace(listing.Description) == "" {
		listing.Description = NoDescription
	}
	if listing.Images == nil {
		listing.Images = []string{}
	}
	if listing.Title == "" {
		log.GlobalWarnCtx(ctx, "scraped listing has no title", "url", url)
	}

	res := &ScrapeResult{Listing: listing}
	if platform != "" {
		r, err := uc.rules.Get(platform)
		if err == nil {
			description := listing.Description
			if description == NoDescription {
				description = ""
			}
			q := seo.Quick(seo.Input{Title: listing.Title, Description: description}, r)
			res.Score = &q
		}
	}
	return res, nil
}
