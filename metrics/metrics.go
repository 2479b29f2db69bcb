package metrics

import (
	"time"
)

// RecordFrame records one rendered frame and the live signal count.
func (r *Registry) RecordFrame(static bool, duration time.Duration, live int) {
	if r == nil {
		return
	}
	mode := "animated"
	if static {
		mode = "static"
	}
	r.FramesTotal.WithLabelValues(mode).Inc()
	r.FrameDuration.Observe(duration.Seconds())
	r.SignalsLive.Set(float64(live))
}

// RecordSpawn records a spawn attempt; refused attempts count as dropped.
func (r *Registry) RecordSpawn(burst, accepted bool) {
	if r == nil {
		return
	}
	if !accepted {
		r.SignalsDroppedTotal.Inc()
		return
	}
	kind := "regular"
	if burst {
		kind = "burst"
	}
	r.SignalsSpawnedTotal.WithLabelValues(kind).Inc()
}

// RecordFinished records signals removed during one frame.
func (r *Registry) RecordFinished(completed, faded int) {
	if r == nil {
		return
	}
	if completed > 0 {
		r.SignalsFinishedTotal.WithLabelValues("completed").Add(float64(completed))
	}
	if faded > 0 {
		r.SignalsFinishedTotal.WithLabelValues("faded").Add(float64(faded))
	}
}

// RecordRebuild records a network rebuild.
func (r *Registry) RecordRebuild(duration time.Duration, nodes, edges int) {
	if r == nil {
		return
	}
	r.GraphRebuildsTotal.Inc()
	r.GraphBuildDuration.Observe(duration.Seconds())
	r.GraphNodes.Set(float64(nodes))
	r.GraphEdges.Set(float64(edges))
}

// UpdateRoutes sets the route gauges.
func (r *Registry) UpdateRoutes(total, blocked, fallback int) {
	if r == nil {
		return
	}
	r.RoutesTotal.Set(float64(total))
	r.RoutesBlocked.Set(float64(blocked))
	r.RoutesFallback.Set(float64(fallback))
}

// RecordPolicyChange counts a policy switch.
func (r *Registry) RecordPolicyChange(policy string) {
	if r == nil {
		return
	}
	r.PolicyChangesTotal.WithLabelValues(policy).Inc()
}

// RecordConfigReload counts a configuration reload.
func (r *Registry) RecordConfigReload(err error) {
	if r == nil {
		return
	}
	status := "success"
	if err != nil {
		status = "error"
	}
	r.ConfigReloadsTotal.WithLabelValues(status).Inc()
}
