// Package fetcher retrieves full article text for entries whose feed body
// is too thin, using the Mozilla Readability algorithm.
package fetcher

import (
	"fmt"
	"net"
	"net/url"
)

// validateURL rejects URLs unsafe to fetch server-side. Only http/https
// schemes are allowed, and with denyPrivateIPs set, hostnames resolving to
// loopback, private, or link-local addresses are blocked to prevent SSRF.
func validateURL(urlStr string, denyPrivateIPs bool) error {
	u, err := url.Parse(urlStr)
	if err != nil {
		return fmt.Errorf("%w: parse error: %v", ErrInvalidURL, err)
	}

	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%w: scheme '%s' not allowed (only http/https)", ErrInvalidURL, u.Scheme)
	}

	hostname := u.Hostname()
	if hostname == "" {
		return fmt.Errorf("%w: empty hostname", ErrInvalidURL)
	}

	if !denyPrivateIPs {
		return nil
	}

	// Resolve before fetching so attacker-controlled hostnames cannot
	// point the request at the internal network.
	ips, err := net.LookupIP(hostname)
	if err != nil {
		return fmt.Errorf("%w: DNS lookup failed for %s: %v", ErrInvalidURL, hostname, err)
	}

	for _, ip := range ips {
		if isPrivateIP(ip) {
			return fmt.Errorf("%w: hostname '%s' resolves to %s", ErrPrivateIP, hostname, ip.String())
		}
	}

	return nil
}

// isPrivateIP reports whether ip is loopback, private (RFC 1918 / fc00::/7),
// or link-local.
func isPrivateIP(ip net.IP) bool {
	return ip.IsLoopback() || ip.IsPrivate() || ip.IsLinkLocalUnicast()
}
