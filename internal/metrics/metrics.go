// Package metrics exposes store and cache counters in Prometheus format.
package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

const metricPrefix = "greencalc_"

// Metrics holds the counters of one process. It implements cache.Observer.
type Metrics struct {
	registry *prometheus.Registry

	cacheHits          *prometheus.CounterVec
	cacheMisses        *prometheus.CounterVec
	cacheInvalidations prometheus.Counter
	recordsAppended    *prometheus.CounterVec
}

// New creates counters registered on a private registry
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		cacheHits: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "cache_hits_total",
				Help: "Store reads served from memory",
			},
			[]string{"store"},
		),
		cacheMisses: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "cache_misses_total",
				Help: "Store reads that went to disk",
			},
			[]string{"store"},
		),
		cacheInvalidations: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: metricPrefix + "cache_invalidations_total",
				Help: "Cache group invalidations caused by writes",
			},
		),
		recordsAppended: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "records_appended_total",
				Help: "Records appended to a backing file",
			},
			[]string{"store"},
		),
	}
	m.registry.MustRegister(m.cacheHits, m.cacheMisses, m.cacheInvalidations, m.recordsAppended)
	return m
}

// Hit counts a cache hit
func (m *Metrics) Hit(name string) {
	m.cacheHits.WithLabelValues(name).Inc()
}

// Miss counts a cache miss
func (m *Metrics) Miss(name string) {
	m.cacheMisses.WithLabelValues(name).Inc()
}

// Invalidated counts a cache group invalidation
func (m *Metrics) Invalidated() {
	m.cacheInvalidations.Inc()
}

// Appended returns a save hook counting appends to store
func (m *Metrics) Appended(store string) func() {
	c := m.recordsAppended.WithLabelValues(store)
	return c.Inc
}

// Registry returns the gatherer holding the counters
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// WriteTextfile writes the counters in the node_exporter textfile format
func (m *Metrics) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("writing metrics file: %w", err)
	}
	return nil
}
