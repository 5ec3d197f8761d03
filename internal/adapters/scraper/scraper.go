// Package scraper reads marketplace product pages into scraped listings.
// Pages are fetched over plain HTTP or through a headless Chrome pool and
// then run through an ordered chain of extraction rules.
package scraper

import (
	"context"
	"fmt"

	"listingpilot/internal/domain"
	"listingpilot/pkg/log"
)

// Fetcher returns the HTML of a page.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

// MarketplaceScraper implements usecases.ListingScraper.
type MarketplaceScraper struct {
	fetcher    Fetcher
	extractors *Extractors
}

func NewMarketplaceScraper(fetcher Fetcher, extractors *Extractors) *MarketplaceScraper {
	if extractors == nil {
		extractors = DefaultExtractors()
	}
	return &MarketplaceScraper{fetcher: fetcher, extractors: extractors}
}

// Scrape fetches url and extracts the listing. Fields that cannot be found
// are left empty; a page with neither title nor description is an error.
func (s *MarketplaceScraper) Scrape(ctx context.Context, url string, platform domain.Platform) (*domain.ScrapedListing, error) {
	page, err := s.fetcher.Fetch(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrScrapingFailed, err)
	}

	listing := extract(page, url, s.extractors.chain(platform))
	if listing.Title == "" && listing.Description == "" {
		return nil, fmt.Errorf("%w: no listing content on page", domain.ErrScrapingFailed)
	}

	log.GlobalDebugCtx(ctx, "listing scraped",
		"url", url,
		"platform", platform,
		"has_description", listing.Description != "",
		"images", len(listing.Images),
	)
	return listing, nil
}
