package realip

import (
	"context"
	"net/http"
	"net/netip"
	"net/url"
	"sync"
	"testing"
)

type loggerTestContextKey string

type capturedLogEntry struct {
	ctx   context.Context
	msg   string
	attrs map[string]any
}

type capturedLogger struct {
	mu      sync.Mutex
	entries []capturedLogEntry
}

func (l *capturedLogger) WarnContext(ctx context.Context, msg string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.entries = append(l.entries, capturedLogEntry{
		ctx:   ctx,
		msg:   msg,
		attrs: attrsToMap(args),
	})
}

func (l *capturedLogger) snapshot() []capturedLogEntry {
	l.mu.Lock()
	defer l.mu.Unlock()

	entries := make([]capturedLogEntry, len(l.entries))
	copy(entries, l.entries)
	return entries
}

func attrsToMap(args []any) map[string]any {
	attrs := make(map[string]any)
	for i := 0; i+1 < len(args); i += 2 {
		key, ok := args[i].(string)
		if !ok {
			continue
		}
		attrs[key] = args[i+1]
	}
	return attrs
}

type metricsSnapshot struct {
	Successes map[string]int
	Failures  int
	CacheHits int
}

type mockMetrics struct {
	mu        sync.Mutex
	successes map[string]int
	failures  int
	cacheHits int
}

func newMockMetrics() *mockMetrics {
	return &mockMetrics{successes: make(map[string]int)}
}

func (m *mockMetrics) RecordResolutionSuccess(source string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.successes[source]++
}

func (m *mockMetrics) RecordResolutionFailure() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failures++
}

func (m *mockMetrics) RecordCacheHit() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cacheHits++
}

func (m *mockMetrics) snapshot() metricsSnapshot {
	m.mu.Lock()
	defer m.mu.Unlock()

	successes := make(map[string]int, len(m.successes))
	for source, count := range m.successes {
		successes[source] = count
	}
	return metricsSnapshot{
		Successes: successes,
		Failures:  m.failures,
		CacheHits: m.cacheHits,
	}
}

func mustNewResolver(t *testing.T, opts ...Option) *Resolver {
	t.Helper()

	resolver, err := New(opts...)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	return resolver
}

func newTestRequest(remoteAddr, path string) *http.Request {
	req := &http.Request{
		RemoteAddr: remoteAddr,
		Header:     make(http.Header),
	}

	if path != "" {
		req.URL = &url.URL{Path: path}
	}

	return req
}

func addrString(ip RealIP) string {
	if !ip.IsValid() {
		return ""
	}
	return ip.String()
}

func mustRealIP(s string) RealIP {
	return NewRealIP(netip.MustParseAddr(s))
}
