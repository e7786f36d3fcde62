package ratelimit

import (
	"net"
	"net/http"
	"net/netip"
	"strings"
)

// KeyFunc derives the rate limit key for a request. An empty key
// exempts the request from limiting.
type KeyFunc func(*http.Request) string

// ClientIP keys requests by originating IP address. Proxy headers are
// consulted before the socket address so limits follow the real client
// behind a load balancer: X-Forwarded-For first (leftmost valid
// entry), then X-Real-IP, then RemoteAddr. Returns an empty string
// when no valid address is found.
func ClientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		for entry := range strings.SplitSeq(fwd, ",") {
			if ip := canonicalIP(entry); ip != "" {
				return ip
			}
		}
	}
	if ip := canonicalIP(r.Header.Get("X-Real-IP")); ip != "" {
		return ip
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		// No port present, treat the whole string as the address.
		return canonicalIP(r.RemoteAddr)
	}
	return canonicalIP(host)
}

// canonicalIP parses and normalizes an address so textual variants of
// the same IP share one bucket.
func canonicalIP(s string) string {
	addr, err := netip.ParseAddr(strings.TrimSpace(s))
	if err != nil {
		return ""
	}
	return addr.String()
}
