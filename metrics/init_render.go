package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initRenderMetrics() {
	r.FramesTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "consentflow_frames_total",
			Help: "Total number of rendered frames",
		},
		[]string{"mode"}, // animated, static
	)

	r.FrameDuration = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "consentflow_frame_duration_seconds",
			Help:    "Time spent rendering one frame in seconds",
			Buckets: []float64{0.0005, 0.001, 0.002, 0.004, 0.008, 0.016, 0.033, 0.066},
		},
	)

	r.SignalsLive = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "consentflow_signals_live",
			Help: "Number of signals currently animating",
		},
	)

	r.SignalsSpawnedTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "consentflow_signals_spawned_total",
			Help: "Total number of spawned signals",
		},
		[]string{"kind"}, // regular, burst
	)

	r.SignalsDroppedTotal = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "consentflow_signals_dropped_total",
			Help: "Spawn attempts refused by the population cap",
		},
	)

	r.SignalsFinishedTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "consentflow_signals_finished_total",
			Help: "Total number of signals removed from the live list",
		},
		[]string{"outcome"}, // completed, faded
	)
}
