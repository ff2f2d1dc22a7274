package ipfilter

import (
	"net/http"
	"net/netip"
	"strings"
)

// ClientIP extracts the caller address: first entry of X-Forwarded-For when
// present, else the remote address, truncated to 100 characters to match the
// column it is stored in.
func ClientIP(r *http.Request) string {
	ip := strings.TrimSpace(strings.Split(r.Header.Get("X-Forwarded-For"), ",")[0])
	if ip == "" {
		ip = strings.TrimSpace(r.RemoteAddr)
		// RemoteAddr is host:port; keep the host.
		if addrPort, err := netip.ParseAddrPort(ip); err == nil {
			ip = addrPort.Addr().String()
		}
	}
	if len(ip) > 100 {
		ip = ip[:100]
	}
	return ip
}

// Allowed reports whether clientIP matches the allowlist. Entries may be
// exact addresses ("200.1.2.3") or CIDR blocks ("192.168.1.0/24").
// An empty allowlist allows everything. Malformed entries are skipped;
// an unparseable client IP against a non-empty allowlist is rejected.
func Allowed(clientIP string, allowlist []string) bool {
	if len(allowlist) == 0 {
		return true
	}

	addr, err := netip.ParseAddr(clientIP)
	if err != nil {
		return false
	}

	for _, item := range allowlist {
		entry := strings.TrimSpace(item)
		if entry == "" {
			continue
		}
		if strings.Contains(entry, "/") {
			prefix, err := netip.ParsePrefix(entry)
			if err != nil {
				continue
			}
			if prefix.Contains(addr) {
				return true
			}
			continue
		}
		allowed, err := netip.ParseAddr(entry)
		if err != nil {
			continue
		}
		if addr == allowed {
			return true
		}
	}

	return false
}
