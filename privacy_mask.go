package realip

import "net/netip"

// MaskAddr coarsens addr for privacy-sensitive storage.
//
// IPv6 addresses keep their upper 64 bits (the /64 network prefix) and have
// the interface identifier zeroed. IPv4 addresses and the zero Addr are
// returned unchanged. Masking is idempotent and cannot be reversed.
func MaskAddr(addr netip.Addr) netip.Addr {
	if !addr.Is6() {
		return addr
	}

	b := addr.As16()
	for i := 8; i < 16; i++ {
		b[i] = 0
	}
	return netip.AddrFrom16(b)
}
