// Package clientip derives a best-effort client identifier from request metadata.
package clientip

import (
	"net"
	"net/http"
	"strings"
)

// ProxyHeaders are consulted in order when proxy headers are trusted.
var ProxyHeaders = []string{"CF-Connecting-IP", "X-Real-IP", "X-Forwarded-For"}

// FromRequest returns the client IP for rate limiting purposes.
// Proxy headers are only honoured when trustProxy is set, since any client can forge them.
// Returns "" when nothing parses as an IP address.
func FromRequest(h http.Header, remoteAddr string, trustProxy bool) string {
	if trustProxy {
		for _, name := range ProxyHeaders {
			if ip := firstValidIP(h.Get(name)); ip != "" {
				return ip
			}
		}
	}
	return parseIP(hostOnly(remoteAddr))
}

// firstValidIP returns the first parseable address of a comma separated list.
func firstValidIP(value string) string {
	for _, part := range strings.Split(value, ",") {
		if ip := parseIP(part); ip != "" {
			return ip
		}
	}
	return ""
}

func parseIP(s string) string {
	ip := net.ParseIP(strings.TrimSpace(s))
	if ip == nil {
		return ""
	}
	return ip.String()
}

func hostOnly(addr string) string {
	host, _, err := net.SplitHostPort(strings.TrimSpace(addr))
	if err != nil {
		return addr
	}
	return host
}
