// Package metrics exposes cache telemetry as Prometheus metrics.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vishnu2kmohan/mcp-server-langgraph-sub004/internal/cache"
)

// CacheMetrics implements cache.Telemetry on a dedicated Prometheus registry.
// Derived keys stay out of label sets; only the key type is labelled, keeping
// cardinality bounded by the key policy table.
type CacheMetrics struct {
	registry   *prometheus.Registry
	operations *prometheus.CounterVec
	lookups    *prometheus.CounterVec
}

// New creates the registry and registers the cache metrics plus Go runtime
// collectors.
func New() *CacheMetrics {
	m := &CacheMetrics{
		registry: prometheus.NewRegistry(),

		operations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "cache",
				Name:      "operations_total",
				Help:      "Cache operations by layer, key type and operation (hit, miss, set)",
			},
			[]string{"layer", "cache_type", "operation"},
		),

		lookups: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "cache",
				Name:      "wrapped_lookups_total",
				Help:      "Calls through cacheable wrappers by tier level and outcome",
			},
			[]string{"level", "outcome"},
		),
	}

	m.registry.MustRegister(
		m.operations,
		m.lookups,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return m
}

// RecordHit implements cache.Telemetry.
func (m *CacheMetrics) RecordHit(layer, cacheType string) {
	m.operations.WithLabelValues(layer, cacheType, "hit").Inc()
}

// RecordMiss implements cache.Telemetry.
func (m *CacheMetrics) RecordMiss(layer, cacheType string) {
	m.operations.WithLabelValues(layer, cacheType, "miss").Inc()
}

// RecordSet implements cache.Telemetry.
func (m *CacheMetrics) RecordSet(layer, cacheType string) {
	m.operations.WithLabelValues(layer, cacheType, "set").Inc()
}

// RecordLookup implements cache.Telemetry.
func (m *CacheMetrics) RecordLookup(_ string, level cache.Level, hit bool) {
	outcome := "miss"
	if hit {
		outcome = "hit"
	}
	m.lookups.WithLabelValues(level.String(), outcome).Inc()
}

// Handler returns the HTTP handler serving this registry.
func (m *CacheMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
