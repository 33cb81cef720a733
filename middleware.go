package realip

import (
	"context"
	"net/http"
)

// realIPContextKey is used as a key for storing the resolved address in
// request context.
type realIPContextKey struct{}

// NewContext returns a copy of ctx carrying ip as the request's cached
// client address.
func NewContext(ctx context.Context, ip RealIP) context.Context {
	return newResolutionContext(ctx, Resolution{IP: ip})
}

func newResolutionContext(ctx context.Context, resolution Resolution) context.Context {
	return context.WithValue(ctx, realIPContextKey{}, resolution)
}

// FromContext returns the client address cached in ctx, if any.
func FromContext(ctx context.Context) (RealIP, bool) {
	resolution, ok := ResolutionFromContext(ctx)
	return resolution.IP, ok
}

// ResolutionFromContext returns the resolution cached in ctx by the
// middleware, if any. Source is empty when the address was cached with
// NewContext.
func ResolutionFromContext(ctx context.Context) (Resolution, bool) {
	if ctx == nil {
		return Resolution{}, false
	}
	resolution, ok := ctx.Value(realIPContextKey{}).(Resolution)
	return resolution, ok && resolution.IP.IsValid()
}

// Middleware resolves the client address once per request and caches it in
// the request context for later extraction.
//
// When resolution fails nothing is cached; the request is always passed on
// to next and failure surfaces only where the address is extracted.
func (res *Resolver) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if resolution, ok := res.Resolve(r); ok {
			r = r.WithContext(newResolutionContext(r.Context(), resolution))
		}
		next.ServeHTTP(w, r)
	})
}

// Middleware is Default().Middleware.
func Middleware(next http.Handler) http.Handler {
	return defaultResolver.Middleware(next)
}
