package realip

import "net/http"

// HandlerFunc is an http handler that receives the request's client address.
type HandlerFunc func(w http.ResponseWriter, r *http.Request, ip RealIP)

// MaskedHandlerFunc is an http handler that receives the request's
// privacy-masked client address.
type MaskedHandlerFunc func(w http.ResponseWriter, r *http.Request, ip PrivacyMaskedIP)

// Handler adapts fn to http.Handler. Requests without a resolvable address
// are answered with 400 Bad Request and fn is not called.
func (res *Resolver) Handler(fn HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip, err := res.Extract(r)
		if err != nil {
			IPAddrRejection{}.ServeHTTP(w, r)
			return
		}
		fn(w, r, ip)
	})
}

// MaskedHandler is like Handler but passes the privacy-masked address.
func (res *Resolver) MaskedHandler(fn MaskedHandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip, err := res.ExtractPrivacyMasked(r)
		if err != nil {
			IPAddrRejection{}.ServeHTTP(w, r)
			return
		}
		fn(w, r, ip)
	})
}
