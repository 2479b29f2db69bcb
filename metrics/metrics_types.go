// Package metrics exposes Prometheus collectors for the render loop and
// network rebuilds.
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Registry holds all metrics for the application.
// Record methods are safe on a nil *Registry and do nothing.
type Registry struct {
	// Render Metrics
	FramesTotal          *prometheus.CounterVec
	FrameDuration        prometheus.Histogram
	SignalsLive          prometheus.Gauge
	SignalsSpawnedTotal  *prometheus.CounterVec
	SignalsDroppedTotal  prometheus.Counter
	SignalsFinishedTotal *prometheus.CounterVec

	// Network Metrics
	GraphRebuildsTotal prometheus.Counter
	GraphBuildDuration prometheus.Histogram
	GraphNodes         prometheus.Gauge
	GraphEdges         prometheus.Gauge
	RoutesTotal        prometheus.Gauge
	RoutesBlocked      prometheus.Gauge
	RoutesFallback     prometheus.Gauge
	PolicyChangesTotal *prometheus.CounterVec
	ConfigReloadsTotal *prometheus.CounterVec

	registry *prometheus.Registry
}

var (
	// Global registry instance
	defaultRegistry *Registry
	once            sync.Once
)

// DefaultRegistry returns the global metrics registry.
func DefaultRegistry() *Registry {
	once.Do(func() {
		defaultRegistry = NewRegistry()
	})
	return defaultRegistry
}

// NewRegistry creates a new metrics registry with all metrics initialized.
func NewRegistry() *Registry {
	reg := prometheus.NewRegistry()

	r := &Registry{
		registry: reg,
	}

	r.initRenderMetrics()
	r.initNetworkMetrics()

	return r
}

// GetPrometheusRegistry returns the underlying Prometheus registry.
func (r *Registry) GetPrometheusRegistry() *prometheus.Registry {
	return r.registry
}
