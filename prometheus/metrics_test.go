package prometheus

import (
	"errors"
	"net/http"
	"strings"
	"sync"
	"testing"

	"github.com/abczzz13/realip"
	prom "github.com/prometheus/client_golang/prometheus"
)

type mockMetrics struct {
	mu           sync.Mutex
	successCount map[string]int
}

func newMockMetrics() *mockMetrics {
	return &mockMetrics{
		successCount: make(map[string]int),
	}
}

func (m *mockMetrics) RecordResolutionSuccess(source string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.successCount[source]++
}

func (m *mockMetrics) RecordResolutionFailure() {}

func (m *mockMetrics) RecordCacheHit() {}

func (m *mockMetrics) getSuccessCount(source string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.successCount[source]
}

func newRequest(remoteAddr string) *http.Request {
	return &http.Request{
		RemoteAddr: remoteAddr,
		Header:     make(http.Header),
	}
}

func TestWithMetrics_Option(t *testing.T) {
	resolver, err := realip.New(
		WithMetrics(),
	)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if _, err := resolver.Extract(newRequest("1.1.1.1:12345")); err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
}

func TestWithRegisterer_Option(t *testing.T) {
	registry := prom.NewRegistry()

	resolver, err := realip.New(
		WithRegisterer(registry),
	)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	req := newRequest("1.1.1.1:12345")
	req.Header.Set("CF-Connecting-IP", "8.8.8.8")

	if _, err := resolver.Extract(req); err != nil {
		t.Fatalf("Extract() error = %v", err)
	}

	if got := counterValue(registry, resolutionTotalName, map[string]string{"source": "cf_connecting_ip", "result": "success"}); got != 1 {
		t.Fatalf("%s counter = %v, want 1", resolutionTotalName, got)
	}
}

func TestWithRegisterer_RecordsFailureAndCacheHit(t *testing.T) {
	registry := prom.NewRegistry()

	resolver, err := realip.New(
		WithRegisterer(registry),
	)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	_, err = resolver.Extract(newRequest(""))
	if !errors.Is(err, realip.ErrIPAddressNotFound) {
		t.Fatalf("Extract() error = %v, want ErrIPAddressNotFound", err)
	}

	if got := counterValue(registry, resolutionTotalName, map[string]string{"source": unresolvedSource, "result": "not_found"}); got != 1 {
		t.Fatalf("not_found counter = %v, want 1", got)
	}

	req := newRequest("")
	req = req.WithContext(realip.NewContext(req.Context(), realip.NewRealIP(mustAddr(t, "9.9.9.9"))))
	if _, err := resolver.Extract(req); err != nil {
		t.Fatalf("Extract() error = %v", err)
	}

	if got := counterValue(registry, cacheHitsTotalName, nil); got != 1 {
		t.Fatalf("cache hits counter = %v, want 1", got)
	}
}

func TestMetricsOptions_Precedence_LastWins(t *testing.T) {
	t.Run("custom metrics after prometheus option", func(t *testing.T) {
		registry := prom.NewRegistry()
		customMetrics := newMockMetrics()

		resolver, err := realip.New(
			WithRegisterer(registry),
			realip.WithMetrics(customMetrics),
		)
		if err != nil {
			t.Fatalf("New() error = %v", err)
		}

		resolver.Resolve(newRequest("1.1.1.1:12345"))

		if got := customMetrics.getSuccessCount(realip.SourceRemoteAddr); got != 1 {
			t.Fatalf("custom metrics success count = %d, want 1", got)
		}
		if got := counterValue(registry, resolutionTotalName, map[string]string{"source": realip.SourceRemoteAddr, "result": "success"}); got != 0 {
			t.Fatalf("prometheus counter = %v, want 0", got)
		}
	})

	t.Run("prometheus option after custom metrics", func(t *testing.T) {
		registry := prom.NewRegistry()
		customMetrics := newMockMetrics()

		resolver, err := realip.New(
			realip.WithMetrics(customMetrics),
			WithRegisterer(registry),
		)
		if err != nil {
			t.Fatalf("New() error = %v", err)
		}

		resolver.Resolve(newRequest("1.1.1.1:12345"))

		if got := customMetrics.getSuccessCount(realip.SourceRemoteAddr); got != 0 {
			t.Fatalf("custom metrics success count = %d, want 0", got)
		}
		if got := counterValue(registry, resolutionTotalName, map[string]string{"source": realip.SourceRemoteAddr, "result": "success"}); got != 1 {
			t.Fatalf("prometheus counter = %v, want 1", got)
		}
	})
}

func TestNewWithRegisterer_ReusesRegisteredCollectors(t *testing.T) {
	registry := prom.NewRegistry()
	metricsA, err := NewWithRegisterer(registry)
	if err != nil {
		t.Fatalf("NewWithRegisterer() error = %v", err)
	}

	metricsB, err := NewWithRegisterer(registry)
	if err != nil {
		t.Fatalf("second NewWithRegisterer() error = %v", err)
	}

	metricsA.RecordResolutionSuccess(realip.SourceRemoteAddr)
	metricsB.RecordResolutionSuccess(realip.SourceRemoteAddr)
	metricsB.RecordCacheHit()

	if got := counterValue(registry, resolutionTotalName, map[string]string{"source": realip.SourceRemoteAddr, "result": "success"}); got != 2 {
		t.Fatalf("shared counter = %v, want 2", got)
	}
}

type failingRegisterer struct {
	err error
}

func (r failingRegisterer) Register(prom.Collector) error {
	return r.err
}

func (r failingRegisterer) MustRegister(...prom.Collector) {}

func (r failingRegisterer) Unregister(prom.Collector) bool {
	return false
}

func TestNewWithRegisterer_RegisterError(t *testing.T) {
	registerErr := errors.New("register failed")

	_, err := NewWithRegisterer(failingRegisterer{err: registerErr})
	if !errors.Is(err, registerErr) {
		t.Fatalf("error = %v, want wrapped register error", err)
	}
}

func TestNewWithRegisterer_IncompatibleCollectorType(t *testing.T) {
	registry := prom.NewRegistry()
	gauge := prom.NewGaugeVec(
		prom.GaugeOpts{
			Name: resolutionTotalName,
			Help: "Total number of client IP resolutions by source (header source name, remote_addr, none) and result (success, not_found).",
		},
		[]string{"source", "result"},
	)
	if err := registry.Register(gauge); err != nil {
		t.Fatalf("registry.Register() error = %v", err)
	}

	_, err := NewWithRegisterer(registry)
	if err == nil {
		t.Fatal("expected error for incompatible existing collector type")
	}
	if !strings.Contains(err.Error(), "incompatible collector type") {
		t.Fatalf("error = %q, want incompatible collector type message", err.Error())
	}
}

func TestWithRegisterer_OptionError(t *testing.T) {
	registerErr := errors.New("register failed")

	_, err := realip.New(WithRegisterer(failingRegisterer{err: registerErr}))
	if !errors.Is(err, registerErr) {
		t.Fatalf("error = %v, want wrapped register error", err)
	}
}

func counterValue(registry *prom.Registry, metricName string, labels map[string]string) float64 {
	metricFamilies, err := registry.Gather()
	if err != nil {
		return 0
	}

	for _, family := range metricFamilies {
		if family.GetName() != metricName {
			continue
		}

		for _, metric := range family.GetMetric() {
			metricLabels := make(map[string]string, len(metric.GetLabel()))
			for _, pair := range metric.GetLabel() {
				metricLabels[pair.GetName()] = pair.GetValue()
			}

			if !labelsMatch(metricLabels, labels) {
				continue
			}
			if metric.GetCounter() == nil {
				return 0
			}
			return metric.GetCounter().GetValue()
		}
	}

	return 0
}

func labelsMatch(metricLabels, labels map[string]string) bool {
	for labelName, labelValue := range labels {
		if metricLabels[labelName] != labelValue {
			return false
		}
	}

	return true
}
