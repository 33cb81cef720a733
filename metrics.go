package realip

// Metrics records resolution outcomes emitted by Resolver.
//
// Implementations should be safe for concurrent use, as a single Resolver
// instance is typically shared across many goroutines.
type Metrics interface {
	// RecordResolutionSuccess is called when a source yields the client
	// address.
	RecordResolutionSuccess(source string)
	// RecordResolutionFailure is called when no source yields an address.
	RecordResolutionFailure()
	// RecordCacheHit is called when extraction is served from the address
	// cached by the middleware.
	RecordCacheHit()
}

// noopMetrics is the default Metrics implementation when metrics are not
// explicitly configured.
type noopMetrics struct{}

func (noopMetrics) RecordResolutionSuccess(string) {}

func (noopMetrics) RecordResolutionFailure() {}

func (noopMetrics) RecordCacheHit() {}
