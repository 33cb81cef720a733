package realip

import (
	"context"
	"net/http"
)

// Extract returns the client address of r.
//
// An address cached by Middleware is returned as is, without looking at the
// headers again. Otherwise r is resolved on demand. ErrIPAddressNotFound is
// returned when no address can be determined.
func (res *Resolver) Extract(r *http.Request) (RealIP, error) {
	if r == nil {
		res.logAddressNotFound(context.Background(), "", "")
		return RealIP{}, ErrIPAddressNotFound
	}

	ctx := r.Context()
	if ip, ok := FromContext(ctx); ok {
		res.config.metrics.RecordCacheHit()
		return ip, nil
	}

	resolution, ok := res.Resolve(r)
	if !ok {
		res.logAddressNotFound(ctx, requestPath(r), r.RemoteAddr)
		return RealIP{}, ErrIPAddressNotFound
	}

	return resolution.IP, nil
}

// ExtractPrivacyMasked is like Extract but masks the result. The cached
// address itself stays unmasked.
func (res *Resolver) ExtractPrivacyMasked(r *http.Request) (PrivacyMaskedIP, error) {
	ip, err := res.Extract(r)
	if err != nil {
		return PrivacyMaskedIP{}, err
	}
	return ip.Mask(), nil
}

// ExtractFrom returns the client address from framework-agnostic request
// input, preferring an address cached in input.Context.
func (res *Resolver) ExtractFrom(input RequestInput) (RealIP, error) {
	ctx := requestInputContext(input)
	if ip, ok := FromContext(ctx); ok {
		res.config.metrics.RecordCacheHit()
		return ip, nil
	}

	resolution, ok := res.ResolveFrom(input)
	if !ok {
		res.logAddressNotFound(ctx, input.Path, input.RemoteAddr)
		return RealIP{}, ErrIPAddressNotFound
	}

	return resolution.IP, nil
}

// ExtractPrivacyMaskedFrom is like ExtractFrom but masks the result.
func (res *Resolver) ExtractPrivacyMaskedFrom(input RequestInput) (PrivacyMaskedIP, error) {
	ip, err := res.ExtractFrom(input)
	if err != nil {
		return PrivacyMaskedIP{}, err
	}
	return ip.Mask(), nil
}

// Extract is Default().Extract.
func Extract(r *http.Request) (RealIP, error) {
	return defaultResolver.Extract(r)
}

// ExtractPrivacyMasked is Default().ExtractPrivacyMasked.
func ExtractPrivacyMasked(r *http.Request) (PrivacyMaskedIP, error) {
	return defaultResolver.ExtractPrivacyMasked(r)
}

func (res *Resolver) logAddressNotFound(ctx context.Context, path, remoteAddr string) {
	res.config.logger.WarnContext(ctx, "no client ip address found in request",
		"event", eventAddressNotFound,
		"path", path,
		"remote_addr", remoteAddr,
	)
}
