package realip

import (
	"net/http"
	"net/netip"
	"strings"
)

// RealIP is the client address resolved for a request.
//
// The zero value is not a valid address. RealIP is comparable and can be used
// as a map key.
type RealIP struct {
	addr netip.Addr
}

// NewRealIP wraps addr.
func NewRealIP(addr netip.Addr) RealIP {
	return RealIP{addr: addr}
}

// Addr returns the wrapped address.
func (ip RealIP) Addr() netip.Addr {
	return ip.addr
}

// IsValid reports whether ip holds an address.
func (ip RealIP) IsValid() bool {
	return ip.addr.IsValid()
}

// Compare returns an integer comparing the wrapped addresses, using the
// ordering of netip.Addr.Compare.
func (ip RealIP) Compare(other RealIP) int {
	return ip.addr.Compare(other.addr)
}

// String returns the textual form of the wrapped address.
func (ip RealIP) String() string {
	return ip.addr.String()
}

// Mask returns the privacy-masked form of ip.
func (ip RealIP) Mask() PrivacyMaskedIP {
	return PrivacyMaskedIP{ip: RealIP{addr: MaskAddr(ip.addr)}}
}

// PrivacyMaskedIP is a RealIP with the lower 64 bits of IPv6 addresses zeroed.
// IPv4 addresses are kept unchanged.
type PrivacyMaskedIP struct {
	ip RealIP
}

// RealIP returns the masked address as a RealIP.
func (m PrivacyMaskedIP) RealIP() RealIP {
	return m.ip
}

// Addr returns the masked address.
func (m PrivacyMaskedIP) Addr() netip.Addr {
	return m.ip.addr
}

// IsValid reports whether m holds an address.
func (m PrivacyMaskedIP) IsValid() bool {
	return m.ip.IsValid()
}

// Compare returns an integer comparing the masked addresses.
func (m PrivacyMaskedIP) Compare(other PrivacyMaskedIP) int {
	return m.ip.Compare(other.ip)
}

// String returns the textual form of the masked address.
func (m PrivacyMaskedIP) String() string {
	return m.ip.String()
}

// Resolution is the outcome of a successful resolution: the address and the
// name of the source it came from.
type Resolution struct {
	IP RealIP

	// Source is the normalized header name (for example "cf_connecting_ip")
	// or SourceRemoteAddr.
	Source string
}

// IPAddrRejection reports that no client address could be determined for a
// request. It maps to 400 Bad Request.
type IPAddrRejection struct{}

// ErrIPAddressNotFound is returned by the extraction functions when neither a
// recognized header nor the peer address yields an address.
var ErrIPAddressNotFound error = IPAddrRejection{}

func (IPAddrRejection) Error() string {
	return "client ip address not found"
}

// StatusCode returns the HTTP status a framework should answer with.
func (IPAddrRejection) StatusCode() int {
	return http.StatusBadRequest
}

// ServeHTTP writes an empty 400 Bad Request response.
func (r IPAddrRejection) ServeHTTP(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(r.StatusCode())
}

// NormalizeSourceName converts a header name into its source name, for
// example "CF-Connecting-IP" becomes "cf_connecting_ip".
func NormalizeSourceName(headerName string) string {
	return strings.ToLower(strings.ReplaceAll(strings.TrimSpace(headerName), "-", "_"))
}
