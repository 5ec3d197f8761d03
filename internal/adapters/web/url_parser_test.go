package web_test

import (
	"testing"

	"listingpilot/internal/adapters/web"
	"listingpilot/internal/domain"
)

func TestParseListingURL_DetectsMarketplace(t *testing.T) {
	testCases := []struct {
		name string
		url  string
		want domain.Platform
	}{
		{name: "amazon us", url: "https://www.amazon.com/dp/B0TEST", want: domain.Amazon},
		{name: "amazon uk", url: "https://amazon.co.uk/dp/B0TEST", want: domain.Amazon},
		{name: "amazon smile", url: "https://smile.amazon.de/dp/B0TEST", want: domain.Amazon},
		{name: "ebay", url: "https://www.ebay.com/itm/1234", want: domain.Ebay},
		{name: "ebay uk", url: "https://www.ebay.co.uk/itm/1234", want: domain.Ebay},
		{name: "etsy", url: "https://www.etsy.com/listing/1/mug?ref=shop", want: domain.Etsy},
		{name: "walmart", url: "http://walmart.com/ip/123", want: domain.Walmart},
		{name: "shopify", url: "https://fieldgoods.myshopify.com/products/apron", want: domain.Shopify},
		{name: "upper case host", url: "https://WWW.ETSY.COM/listing/1", want: domain.Etsy},
		{name: "unknown store", url: "https://shop.example.com/product/apron", want: ""},
		{name: "lookalike host", url: "https://amazon.com.evil.example/dp/1", want: ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// Act
			_, platform, err := web.ParseListingURL(tc.url)

			// Assert
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if platform != tc.want {
				t.Errorf("platform: got %q, want %q", platform, tc.want)
			}
		})
	}
}

func TestParseListingURL_DropsFragment(t *testing.T) {
	got, _, err := web.ParseListingURL("  https://www.etsy.com/listing/1/mug#reviews ")

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "https://www.etsy.com/listing/1/mug" {
		t.Errorf("url: got %q", got)
	}
}

func TestParseListingURL_InvalidURL_ReturnsError(t *testing.T) {
	testCases := []struct {
		name string
		url  string
	}{
		{name: "empty string", url: ""},
		{name: "not a url", url: "not a url"},
		{name: "ftp scheme", url: "ftp://www.amazon.com/dp/1"},
		{name: "javascript scheme", url: "javascript:alert(1)"},
		{name: "file scheme", url: "file:///etc/passwd"},
		{name: "missing host", url: "https:///dp/1"},
		{name: "localhost", url: "http://localhost:3000/api/usage"},
		{name: "loopback ip", url: "http://127.0.0.1/"},
		{name: "private ip", url: "http://10.0.0.8/admin"},
		{name: "metadata ip", url: "http://169.254.169.254/latest/meta-data"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// Act
			_, _, err := web.ParseListingURL(tc.url)

			// Assert
			if err != domain.ErrInvalidURL {
				t.Errorf("URL %q: expected ErrInvalidURL, got %v", tc.url, err)
			}
		})
	}
}
