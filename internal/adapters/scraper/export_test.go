package scraper

import (
	"net/netip"
	"slices"
	"time"

	"listingpilot/pkg/netguard"
)

// NewLoopbackHTTPFetcher admits loopback test servers listening on ports.
func NewLoopbackHTTPFetcher(timeout time.Duration, ports ...uint16) *HTTPFetcher {
	return newHTTPFetcher(timeout, netguard.Policy{Allow: func(ap netip.AddrPort) bool {
		return ap.Addr().Unmap().IsLoopback() && slices.Contains(ports, ap.Port())
	}})
}
