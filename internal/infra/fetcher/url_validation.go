// Package fetcher downloads news article pages and extracts their readable text.
package fetcher

import (
	"fmt"
	"net"
	"net/url"

	"fiji-news/internal/usecase/harvest"
)

// ValidateURL checks that urlStr is an http(s) URL with a host. When
// denyPrivateIPs is set, the host is resolved and rejected if any address
// is loopback, private or link-local.
func ValidateURL(urlStr string, denyPrivateIPs bool) error {
	u, err := url.Parse(urlStr)
	if err != nil {
		return fmt.Errorf("%w: parse error: %v", harvest.ErrInvalidURL, err)
	}

	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%w: scheme '%s' not allowed (only http/https)", harvest.ErrInvalidURL, u.Scheme)
	}

	hostname := u.Hostname()
	if hostname == "" {
		return fmt.Errorf("%w: empty hostname", harvest.ErrInvalidURL)
	}

	if !denyPrivateIPs {
		return nil
	}

	ips, err := net.LookupIP(hostname)
	if err != nil {
		return fmt.Errorf("%w: DNS lookup failed for %s: %v", harvest.ErrInvalidURL, hostname, err)
	}
	for _, ip := range ips {
		if isPrivateIP(ip) {
			return fmt.Errorf("%w: hostname '%s' resolves to private IP %s", harvest.ErrPrivateIP, hostname, ip.String())
		}
	}

	return nil
}

// isPrivateIP reports whether ip is loopback (127.0.0.0/8, ::1), private
// (RFC 1918, fc00::/7) or link-local (169.254.0.0/16, fe80::/10).
func isPrivateIP(ip net.IP) bool {
	return ip.IsLoopback() || ip.IsPrivate() || ip.IsLinkLocalUnicast()
}
