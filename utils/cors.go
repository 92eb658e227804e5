package utils

import (
	"net/netip"
	"net/url"
	"strings"
)

// CORSPolicy decides which browser origins may call the JSON API. Origins
// listed in configuration are trusted verbatim; otherwise only local and
// private-network origins are.
type CORSPolicy struct {
	any     bool
	origins map[string]struct{}
}

func NewCORSPolicy(origins []string) CORSPolicy {
	p := CORSPolicy{origins: make(map[string]struct{}, len(origins))}
	for _, o := range origins {
		o = strings.TrimRight(strings.TrimSpace(o), "/")
		switch o {
		case "":
		case "*":
			p.any = true
		default:
			p.origins[strings.ToLower(o)] = struct{}{}
		}
	}
	return p
}

// Allows reports whether origin may read responses.
func (p CORSPolicy) Allows(origin string) bool {
	if origin == "" {
		return false
	}
	if p.any {
		return true
	}
	if _, ok := p.origins[strings.ToLower(origin)]; ok {
		return true
	}
	return IsLocalOrigin(origin)
}

// IsLocalOrigin accepts localhost, .local and single-label hostnames, and
// loopback, private or link-local addresses.
func IsLocalOrigin(origin string) bool {
	parsed, err := url.Parse(origin)
	if err != nil || parsed.Host == "" {
		return false
	}
	hostname := parsed.Hostname()

	if hostname == "localhost" || strings.HasSuffix(hostname, ".local") {
		return true
	}
	if addr, err := netip.ParseAddr(hostname); err == nil {
		return addr.IsLoopback() || addr.IsPrivate() || addr.IsLinkLocalUnicast()
	}
	// single-label LAN names
	return !strings.Contains(hostname, ".")
}
