package middleware

import (
	"fmt"
	"net"
	"net/http"
	"net/netip"
	"strings"

	chimw "github.com/go-chi/chi/v5/middleware"
)

// TrustedRealIP applies chi RealIP only when the direct peer is one of proxies,
// so clients cannot pick their own rate limit bucket with X-Forwarded-For
// entries are IPs or CIDRs; no entries leaves RemoteAddr untouched.
// Panics on an entry that parses as neither
func TrustedRealIP(proxies []string) func(http.Handler) http.Handler {
	nets := make([]netip.Prefix, 0, len(proxies))
	for _, p := range proxies {
		pfx, err := parsePrefix(strings.TrimSpace(p))
		if err != nil {
			panic(fmt.Sprintf("middleware: trusted proxy %q: %v", p, err))
		}
		nets = append(nets, pfx)
	}
	return func(next http.Handler) http.Handler {
		if len(nets) == 0 {
			return next
		}
		forwarded := chimw.RealIP(next)
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if trusted(nets, r.RemoteAddr) {
				forwarded.ServeHTTP(w, r)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func parsePrefix(s string) (netip.Prefix, error) {
	if strings.Contains(s, "/") {
		return netip.ParsePrefix(s)
	}
	a, err := netip.ParseAddr(s)
	if err != nil {
		return netip.Prefix{}, err
	}
	return netip.PrefixFrom(a, a.BitLen()), nil
}

func trusted(nets []netip.Prefix, remote string) bool {
	host, _, err := net.SplitHostPort(remote)
	if err != nil {
		host = remote
	}
	a, err := netip.ParseAddr(host)
	if err != nil {
		return false
	}
	a = a.Unmap()
	for _, n := range nets {
		if n.Contains(a) {
			return true
		}
	}
	return false
}
