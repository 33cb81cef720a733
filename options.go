package realip

import "fmt"

// WithHeaders replaces the header precedence table. Rules are consulted in
// the given order; the first header that yields an address wins.
//
// The table is fixed for the lifetime of the Resolver.
func WithHeaders(rules ...HeaderRule) Option {
	rules = cloneHeaderRules(rules)

	return func(c *config) error {
		c.headerRules = cloneHeaderRules(rules)
		return nil
	}
}

// WithPeerFallback controls whether the transport peer address (RemoteAddr)
// is used when no header yields an address. It is enabled by default.
func WithPeerFallback(enable bool) Option {
	return func(c *config) error {
		c.peerFallback = enable
		return nil
	}
}

// WithLogger sets the logger implementation used for warning events.
func WithLogger(logger Logger) Option {
	return func(c *config) error {
		c.logger = logger
		return nil
	}
}

// WithMetrics sets a concrete metrics implementation.
//
// If previously configured, a metrics factory is disabled.
func WithMetrics(metrics Metrics) Option {
	return func(c *config) error {
		c.metrics = metrics
		c.metricsFactory = nil
		c.useMetricsFactory = false
		return nil
	}
}

// WithMetricsFactory configures a lazy metrics constructor.
//
// The factory is invoked only for the final winning metrics option after
// option validation succeeds.
func WithMetricsFactory(factory func() (Metrics, error)) Option {
	return func(c *config) error {
		if factory == nil {
			return fmt.Errorf("metrics factory cannot be nil")
		}

		c.metricsFactory = factory
		c.useMetricsFactory = true
		return nil
	}
}
