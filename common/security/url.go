package security

import (
	"fmt"
	"net"
	"net/url"
	"strings"
)

// URLValidator checks URLs supplied by users before they are persisted, such
// as the cover-art URL stored with song media. Only http/https URLs pointing
// at public hosts pass; anything that could be turned into an internal fetch
// by a later consumer is rejected.
type URLValidator struct {
	blockedHostnames map[string]bool
}

// NewURLValidator creates a validator with the default blocklist
func NewURLValidator() *URLValidator {
	return &URLValidator{
		blockedHostnames: map[string]bool{
			"localhost":        true,
			"127.0.0.1":        true,
			"::1":              true,
			"0.0.0.0":          true,
			"::":               true,
			"::ffff:127.0.0.1": true,
		},
	}
}

// Validate parses the URL and checks scheme and host
func (v *URLValidator) Validate(rawURL string) error {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("invalid URL: %w", err)
	}

	scheme := strings.ToLower(parsed.Scheme)
	if scheme != "http" && scheme != "https" {
		return fmt.Errorf("scheme %q is not allowed (only http/https permitted)", parsed.Scheme)
	}

	hostname := strings.ToLower(strings.TrimSpace(parsed.Hostname()))
	if hostname == "" {
		return fmt.Errorf("hostname is required")
	}
	if v.blockedHostnames[hostname] {
		return fmt.Errorf("hostname %q is blocked", hostname)
	}

	// Literal IPs can be checked without a lookup. Hostnames are not resolved
	// here: stored URLs are fetched by browsers, not by this service, and DNS
	// answers at validation time would not bind later fetches anyway.
	if ip := net.ParseIP(hostname); ip != nil {
		if err := validateIP(ip); err != nil {
			return err
		}
	}

	return nil
}

// validateIP blocks loopback, private, link-local, multicast and unspecified
// addresses
func validateIP(ip net.IP) error {
	switch {
	case ip.IsLoopback():
		return fmt.Errorf("IP %s is blocked (loopback address)", ip)
	case ip.IsPrivate():
		return fmt.Errorf("IP %s is blocked (private network)", ip)
	case ip.IsLinkLocalUnicast():
		return fmt.Errorf("IP %s is blocked (link-local address)", ip)
	case ip.IsMulticast():
		return fmt.Errorf("IP %s is blocked (multicast address)", ip)
	case ip.IsUnspecified():
		return fmt.Errorf("IP %s is blocked (unspecified address)", ip)
	}
	return nil
}
