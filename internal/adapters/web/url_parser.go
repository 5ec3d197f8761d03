package web

import (
	"net/url"
	"regexp"
	"strings"

	"listingpilot/internal/domain"
	"listingpilot/pkg/netguard"
)

// marketplaceHosts maps a host pattern to its platform. Hosts are matched
// without a leading "www.".
var marketplaceHosts = []struct {
	re       *regexp.Regexp
	platform domain.Platform
}{
	{regexp.MustCompile(`(^|\.)amazon\.[a-z]{2,3}(\.[a-z]{2})?$`), domain.Amazon},
	{regexp.MustCompile(`(^|\.)ebay\.[a-z]{2,3}(\.[a-z]{2})?$`), domain.Ebay},
	{regexp.MustCompile(`(^|\.)etsy\.com$`), domain.Etsy},
	{regexp.MustCompile(`(^|\.)walmart\.(com|ca)$`), domain.Walmart},
	{regexp.MustCompile(`\.myshopify\.com$`), domain.Shopify},
}

// ParseListingURL validates a product page URL and detects its marketplace.
// The platform is empty for hosts that are not recognized, which includes
// every WooCommerce store. Returns domain.ErrInvalidURL for anything that
// is not an http(s) URL or names an internal host. Names that only resolve
// to internal addresses are refused by the fetcher when it dials.
func ParseListingURL(raw string) (string, domain.Platform, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", "", domain.ErrInvalidURL
	}
	u, err := url.Parse(raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		return "", "", domain.ErrInvalidURL
	}
	host := strings.ToLower(u.Hostname())
	if host == "" || netguard.IsInternalHost(host) {
		return "", "", domain.ErrInvalidURL
	}
	u.Fragment = ""

	host = strings.TrimPrefix(host, "www.")
	for _, m := range marketplaceHosts {
		if m.re.MatchString(host) {
			return u.String(), m.platform, nil
		}
	}
	return u.String(), "", nil
}
