package realip

import (
	"fmt"
	"net/textproto"
)

// Option configures a Resolver.
//
// Construct options using package-provided option builder functions.
type Option func(*config) error

// config holds resolver configuration state.
//
// It is mutated by Option functions during construction and frozen once New
// returns.
type config struct {
	headerRules  []HeaderRule
	peerFallback bool

	logger  Logger
	metrics Metrics

	metricsFactory    func() (Metrics, error)
	useMetricsFactory bool
}

// compiledRule is a HeaderRule with its lookup key and source name
// precomputed, so resolution does no per-request string work on names.
type compiledRule struct {
	key        string
	sourceName string
	allowPort  bool
}

func compileHeaderRules(rules []HeaderRule) []compiledRule {
	compiled := make([]compiledRule, len(rules))
	for i, rule := range rules {
		compiled[i] = compiledRule{
			key:        textproto.CanonicalMIMEHeaderKey(rule.Name),
			sourceName: NormalizeSourceName(rule.Name),
			allowPort:  rule.AllowPort,
		}
	}
	return compiled
}

func defaultConfig() *config {
	return &config{
		headerRules:  DefaultHeaderRules(),
		peerFallback: true,
		logger:       noopLogger{},
		metrics:      noopMetrics{},
	}
}

func applyOptions(c *config, opts ...Option) error {
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(c); err != nil {
			return err
		}
	}

	return nil
}

func configFromOptions(opts ...Option) (*config, error) {
	cfg := defaultConfig()

	if err := applyOptions(cfg, opts...); err != nil {
		return nil, err
	}

	if cfg.useMetricsFactory && cfg.metricsFactory == nil {
		return nil, fmt.Errorf("metrics factory cannot be nil")
	}

	validationConfig := cfg
	if cfg.useMetricsFactory {
		validationConfig = cfg.clone()
		validationConfig.metrics = noopMetrics{}
	}

	if err := validationConfig.validate(); err != nil {
		return nil, err
	}

	if cfg.useMetricsFactory {
		metrics, err := cfg.metricsFactory()
		if err != nil {
			return nil, err
		}
		cfg.metrics = metrics

		if err := cfg.validate(); err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

func (c *config) clone() *config {
	return &config{
		headerRules:       cloneHeaderRules(c.headerRules),
		peerFallback:      c.peerFallback,
		logger:            c.logger,
		metrics:           c.metrics,
		metricsFactory:    c.metricsFactory,
		useMetricsFactory: c.useMetricsFactory,
	}
}
