// Package realip determines the real client IP address of HTTP requests that
// may have passed through reverse proxies, load balancers, or CDNs.
//
// # Header Precedence
//
// Headers are consulted in this order and the first value that parses wins:
//
//  1. CF-Connecting-IP (Cloudflare)
//  2. X-Cluster-Client-IP
//  3. Fly-Client-IP (Fly.io)
//  4. Fastly-Client-IP (Fastly)
//  5. CloudFront-Viewer-Address (CloudFront, "address:port" accepted)
//  6. X-Real-IP
//  7. X-Forwarded-For (first entry of the hop list)
//  8. X-Original-Forwarded-For
//  9. True-Client-IP
//  10. Client-IP
//
// A malformed value is treated as if the header were absent and resolution
// continues with the next header. When no header yields an address, the peer
// address from Request.RemoteAddr is used.
//
// # Basic Usage
//
// Extract the address inside a handler:
//
//	ip, err := realip.Extract(r)
//	if errors.Is(err, realip.ErrIPAddressNotFound) {
//	    http.Error(w, "bad request", http.StatusBadRequest)
//	    return
//	}
//
// Resolve once per request with the middleware; later extraction calls read
// the cached address:
//
//	mux := http.NewServeMux()
//	mux.Handle("/", realip.Default().Handler(func(w http.ResponseWriter, r *http.Request, ip realip.RealIP) {
//	    fmt.Fprintln(w, ip)
//	}))
//	http.ListenAndServe(":8080", realip.Middleware(mux))
//
// # Privacy Mask
//
// ExtractPrivacyMasked and RealIP.Mask zero the lower 64 bits of IPv6
// addresses, keeping the /64 network. IPv4 addresses are unchanged.
//
// # Observability
//
// A Resolver built with New accepts a Logger (satisfied by *slog.Logger) and
// a Metrics implementation. Adapter packages exist for Prometheus
// (github.com/abczzz13/realip/prometheus) and zerolog
// (github.com/abczzz13/realip/zerolog).
//
//	metrics, _ := realipprom.New()
//	resolver, err := realip.New(
//	    realip.WithLogger(slog.Default()),
//	    realip.WithMetrics(metrics),
//	)
//
// # Security Considerations
//
// Header values are trusted as sent. Deploy behind proxies that overwrite the
// headers they own, and do not use the result for authorization when clients
// can reach the application directly.
//
// # Thread Safety
//
// Resolver instances are safe for concurrent use. They are typically created
// once at application startup and reused across all requests.
package realip
