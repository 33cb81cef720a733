package prometheus

import (
	"errors"
	"fmt"

	"github.com/abczzz13/realip"
	prom "github.com/prometheus/client_golang/prometheus"
)

const (
	resolutionTotalName = "ip_resolution_total"
	cacheHitsTotalName  = "ip_resolution_cache_hits_total"

	// unresolvedSource labels failed resolutions, which have no source.
	unresolvedSource = "none"
)

// PrometheusMetrics is a Prometheus-backed implementation of realip.Metrics.
type PrometheusMetrics struct {
	resolutionTotal *prom.CounterVec
	cacheHits       prom.Counter
}

// WithMetrics returns a realip option that installs Prometheus-backed
// metrics using prom.DefaultRegisterer.
func WithMetrics() realip.Option {
	return withMetricsFactory(New)
}

// WithRegisterer returns a realip option that installs Prometheus-backed
// metrics using the provided registerer.
//
// If registerer is nil, prom.DefaultRegisterer is used.
func WithRegisterer(registerer prom.Registerer) realip.Option {
	return withMetricsFactory(func() (*PrometheusMetrics, error) {
		return NewWithRegisterer(registerer)
	})
}

// withMetricsFactory adapts a PrometheusMetrics constructor into a lazy
// realip.Option.
func withMetricsFactory(factory func() (*PrometheusMetrics, error)) realip.Option {
	return realip.WithMetricsFactory(func() (realip.Metrics, error) {
		metrics, err := factory()
		if err != nil {
			return nil, err
		}
		return metrics, nil
	})
}

// New creates PrometheusMetrics and registers its collectors on
// prom.DefaultRegisterer.
func New() (*PrometheusMetrics, error) {
	return NewWithRegisterer(prom.DefaultRegisterer)
}

// NewWithRegisterer creates PrometheusMetrics and registers its collectors on
// the given registerer.
//
// If registerer is nil, prom.DefaultRegisterer is used. If the metrics are
// already registered, existing compatible collectors are reused.
func NewWithRegisterer(registerer prom.Registerer) (*PrometheusMetrics, error) {
	if registerer == nil {
		registerer = prom.DefaultRegisterer
	}

	resolutionTotalCollector := prom.NewCounterVec(
		prom.CounterOpts{
			Name: resolutionTotalName,
			Help: "Total number of client IP resolutions by source (header source name, remote_addr, none) and result (success, not_found).",
		},
		[]string{"source", "result"},
	)
	cacheHitsCollector := prom.NewCounter(
		prom.CounterOpts{
			Name: cacheHitsTotalName,
			Help: "Client IP extractions served from the per-request cache.",
		},
	)

	resolutionTotal, err := registerCollector(registerer, resolutionTotalCollector, resolutionTotalName)
	if err != nil {
		return nil, err
	}

	cacheHits, err := registerCollector(registerer, cacheHitsCollector, cacheHitsTotalName)
	if err != nil {
		return nil, err
	}

	return &PrometheusMetrics{
		resolutionTotal: resolutionTotal,
		cacheHits:       cacheHits,
	}, nil
}

func registerCollector[C prom.Collector](registerer prom.Registerer, collector C, metricName string) (C, error) {
	var zero C

	if err := registerer.Register(collector); err != nil {
		var alreadyRegistered prom.AlreadyRegisteredError
		if errors.As(err, &alreadyRegistered) {
			existing, ok := alreadyRegistered.ExistingCollector.(C)
			if ok {
				return existing, nil
			}
			return zero, fmt.Errorf("metric %q already registered with incompatible collector type %T", metricName, alreadyRegistered.ExistingCollector)
		}

		return zero, fmt.Errorf("register metric %q: %w", metricName, err)
	}

	return collector, nil
}

// RecordResolutionSuccess increments ip_resolution_total with
// result="success" for the provided source.
func (m *PrometheusMetrics) RecordResolutionSuccess(source string) {
	m.resolutionTotal.WithLabelValues(source, "success").Inc()
}

// RecordResolutionFailure increments ip_resolution_total with
// source="none" and result="not_found".
func (m *PrometheusMetrics) RecordResolutionFailure() {
	m.resolutionTotal.WithLabelValues(unresolvedSource, "not_found").Inc()
}

// RecordCacheHit increments ip_resolution_cache_hits_total.
func (m *PrometheusMetrics) RecordCacheHit() {
	m.cacheHits.Inc()
}
