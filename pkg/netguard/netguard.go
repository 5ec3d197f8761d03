// Package netguard keeps outbound fetches away from internal networks.
// Hostnames are checked by name before a request is built and again by
// resolved address when the connection is dialed, so DNS names that point
// at loopback or private ranges and redirects into them are refused.
package netguard

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/netip"
	"net/url"
	"strings"
	"syscall"
	"time"
)

const maxRedirects = 10

// ErrBlockedAddress is returned when a destination is not a public address.
var ErrBlockedAddress = errors.New("destination address is not public")

// sharedAddressSpace is the carrier-grade NAT range, internal to providers.
var sharedAddressSpace = netip.MustParsePrefix("100.64.0.0/10")

// IsPublic reports whether addr may be reached by outbound fetches.
func IsPublic(addr netip.Addr) bool {
	addr = addr.Unmap()
	return addr.IsValid() &&
		!sharedAddressSpace.Contains(addr) &&
		!addr.IsLoopback() &&
		!addr.IsPrivate() &&
		!addr.IsUnspecified() &&
		!addr.IsLinkLocalUnicast() &&
		!addr.IsLinkLocalMulticast() &&
		!addr.IsInterfaceLocalMulticast() &&
		!addr.IsMulticast()
}

// IsInternalHost reports whether host is an internal name or a literal
// non-public IP. Other names are left to the dial-time check.
func IsInternalHost(host string) bool {
	host = strings.ToLower(strings.TrimSuffix(host, "."))
	if host == "localhost" || strings.HasSuffix(host, ".localhost") || strings.HasSuffix(host, ".internal") {
		return true
	}
	addr, err := netip.ParseAddr(strings.Trim(host, "[]"))
	if err != nil {
		return false
	}
	return !IsPublic(addr)
}

// Policy decides which endpoints outbound fetches may reach. The zero value
// allows public addresses only.
type Policy struct {
	// Allow admits specific endpoints that would otherwise be refused.
	Allow func(netip.AddrPort) bool
}

func (p Policy) permits(ap netip.AddrPort) bool {
	if p.Allow != nil && p.Allow(ap) {
		return true
	}
	return IsPublic(ap.Addr())
}

// Control is a net.Dialer control hook. It runs after name resolution for
// every address the dialer tries.
func (p Policy) Control(network, address string, _ syscall.RawConn) error {
	ap, err := netip.ParseAddrPort(address)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrBlockedAddress, address)
	}
	if !p.permits(ap) {
		return fmt.Errorf("%w: %s", ErrBlockedAddress, ap)
	}
	return nil
}

// CheckRedirect re-validates every redirect hop.
func (p Policy) CheckRedirect(req *http.Request, via []*http.Request) error {
	if len(via) >= maxRedirects {
		return fmt.Errorf("stopped after %d redirects", maxRedirects)
	}
	if req.URL.Scheme != "http" && req.URL.Scheme != "https" {
		return fmt.Errorf("%w: redirect to %s scheme", ErrBlockedAddress, req.URL.Scheme)
	}
	return p.checkName(req.URL)
}

func (p Policy) checkName(u *url.URL) error {
	host := u.Hostname()
	if !IsInternalHost(host) {
		return nil
	}
	if addr, err := netip.ParseAddr(host); err == nil && p.Allow != nil {
		if ap, ok := addrPort(addr, portOf(u)); ok && p.Allow(ap) {
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrBlockedAddress, host)
}

func portOf(u *url.URL) string {
	if port := u.Port(); port != "" {
		return port
	}
	if u.Scheme == "https" {
		return "443"
	}
	return "80"
}

// CheckURL resolves the host of u and fails unless every address is
// permitted. It serves fetchers that cannot hook the dialer, such as a
// remote browser.
func (p Policy) CheckURL(ctx context.Context, u *url.URL) error {
	host, port := u.Hostname(), portOf(u)
	if addr, err := netip.ParseAddr(host); err == nil {
		return p.checkAddrs([]netip.Addr{addr}, port)
	}
	if IsInternalHost(host) {
		return fmt.Errorf("%w: %s", ErrBlockedAddress, host)
	}
	addrs, err := net.DefaultResolver.LookupNetIP(ctx, "ip", host)
	if err != nil {
		return fmt.Errorf("resolve %s: %w", host, err)
	}
	return p.checkAddrs(addrs, port)
}

func (p Policy) checkAddrs(addrs []netip.Addr, port string) error {
	for _, addr := range addrs {
		ap, ok := addrPort(addr, port)
		if !ok || !p.permits(ap) {
			return fmt.Errorf("%w: %s", ErrBlockedAddress, addr)
		}
	}
	return nil
}

func addrPort(addr netip.Addr, port string) (netip.AddrPort, bool) {
	ap, err := netip.ParseAddrPort(net.JoinHostPort(addr.Unmap().String(), port))
	return ap, err == nil
}

// Client returns an http.Client whose connections and redirects follow p.
func (p Policy) Client(timeout time.Duration) *http.Client {
	dialer := &net.Dialer{
		Timeout:   10 * time.Second,
		KeepAlive: 30 * time.Second,
		Control:   p.Control,
	}
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.Proxy = nil
	transport.DialContext = dialer.DialContext
	return &http.Client{
		Timeout:       timeout,
		Transport:     transport,
		CheckRedirect: p.CheckRedirect,
	}
}
