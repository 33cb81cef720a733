package realip

import (
	"net"
	"net/netip"
	"strings"
)

// parseHeaderValue extracts a candidate address from a single header value.
// It handles:
//   - Leading/trailing whitespace: "  203.0.113.1  "
//   - Hop lists, keeping the first entry: "203.0.113.1, 10.0.0.1"
//   - Port suffixes when allowPort is set: "203.0.113.1:443" or "[2001:db8::1]:443"
//
// Values that are not visible ASCII text yield no address, and so do IPv6
// addresses carrying a zone. A failed parse is reported as absence, never as
// an error.
func parseHeaderValue(value string, allowPort bool) (netip.Addr, bool) {
	if !isHeaderText(value) {
		return netip.Addr{}, false
	}

	first, _, _ := strings.Cut(strings.TrimSpace(value), ",")
	first = strings.TrimSpace(first)
	if first == "" {
		return netip.Addr{}, false
	}

	if allowPort {
		if addrPort, err := netip.ParseAddrPort(first); err == nil {
			if addrPort.Addr().Zone() != "" {
				return netip.Addr{}, false
			}
			return addrPort.Addr(), true
		}
	}

	addr, err := netip.ParseAddr(first)
	if err != nil || addr.Zone() != "" {
		return netip.Addr{}, false
	}
	return addr, true
}

// parseRemoteAddr extracts the peer address from a "host:port" remote
// address, accepting a bare address as well. A link-local zone is dropped.
func parseRemoteAddr(remoteAddr string) (netip.Addr, bool) {
	remoteAddr = strings.TrimSpace(remoteAddr)
	if remoteAddr == "" {
		return netip.Addr{}, false
	}

	if addrPort, err := netip.ParseAddrPort(remoteAddr); err == nil {
		return addrPort.Addr().WithZone(""), true
	}

	host := remoteAddr
	if h, _, err := net.SplitHostPort(remoteAddr); err == nil {
		host = h
	}

	addr, err := netip.ParseAddr(trimMatchedPair(host, '[', ']'))
	if err != nil {
		return netip.Addr{}, false
	}
	return addr.WithZone(""), true
}

// isHeaderText reports whether s only holds visible ASCII, spaces and tabs.
func isHeaderText(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '\t' {
			continue
		}
		if c < ' ' || c > '~' {
			return false
		}
	}
	return true
}

// trimMatchedPair removes one leading and trailing delimiter when both match.
func trimMatchedPair(s string, start, end byte) string {
	if len(s) < 2 {
		return s
	}

	if s[0] != start || s[len(s)-1] != end {
		return s
	}

	return s[1 : len(s)-1]
}
