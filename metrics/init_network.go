package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initNetworkMetrics() {
	r.GraphRebuildsTotal = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "consentflow_graph_rebuilds_total",
			Help: "Total number of network rebuilds",
		},
	)

	r.GraphBuildDuration = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "consentflow_graph_build_duration_seconds",
			Help:    "Duration of network build plus routing in seconds",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1},
		},
	)

	r.GraphNodes = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "consentflow_graph_nodes",
			Help: "Number of nodes in the current network",
		},
	)

	r.GraphEdges = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "consentflow_graph_edges",
			Help: "Number of edges in the current network",
		},
	)

	r.RoutesTotal = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "consentflow_routes",
			Help: "Number of routes under the current policy",
		},
	)

	r.RoutesBlocked = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "consentflow_routes_blocked",
			Help: "Routes crossing at least one blocked edge",
		},
	)

	r.RoutesFallback = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "consentflow_routes_fallback",
			Help: "Routes that needed the unrestricted search",
		},
	)

	r.PolicyChangesTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "consentflow_policy_changes_total",
			Help: "Consent policy changes applied to a running instance",
		},
		[]string{"policy"}, // granted, mixed, denied
	)

	r.ConfigReloadsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "consentflow_config_reloads_total",
			Help: "Configuration reloads triggered by file changes",
		},
		[]string{"status"}, // success, error
	)
}
