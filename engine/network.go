package engine

import (
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/katalvlaran/consentflow/builder"
	"github.com/katalvlaran/consentflow/core"
	"github.com/katalvlaran/consentflow/geom"
	"github.com/katalvlaran/consentflow/paint"
	"github.com/katalvlaran/consentflow/profile"
	"github.com/katalvlaran/consentflow/rng"
	"github.com/katalvlaran/consentflow/router"
)

// network is everything derived from one rebuild. It is replaced as a
// whole and never mutated after construction.
type network struct {
	graph    *core.Graph
	rc       profile.RuntimeConfig
	routes   []router.Route
	summary  router.Summary
	backdrop *paint.Backdrop
}

// withRoutes returns a copy of n carrying a new route set.
func (n *network) withRoutes(routes []router.Route) *network {
	c := *n
	c.routes = routes
	c.summary = router.Summarize(routes)
	return &c
}

// flooredBounds reads the host bounds, floored to whole pixels.
func (i *Instance) flooredBounds() (float64, float64) {
	b := i.host.Bounds()
	fix := func(v float64) float64 {
		if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
			return 0
		}
		return math.Floor(v)
	}
	return fix(b.Width), fix(b.Height)
}

// applyResize is the debounced resize handler.
func (i *Instance) applyResize() {
	w, h := i.flooredBounds()
	if w < 1 || h < 1 {
		i.logger.Debug("resize deferred, degenerate bounds", zap.Float64("width", w), zap.Float64("height", h))
		return
	}
	i.env.Width, i.env.Height = w, h
	i.rebuildNow()
}

// rebuildNow builds a network for the current environment and swaps it in.
// A failed build keeps the previous network.
func (i *Instance) rebuildNow() {
	if i.env.Width < 1 || i.env.Height < 1 {
		return
	}
	start := time.Now()
	next, err := i.buildNetwork()
	if err != nil {
		i.logger.Error("network rebuild failed", zap.Error(err))
		return
	}

	i.net = next
	i.render = make([]geom.Point, next.graph.Order())
	i.pool.SetMax(next.rc.MaxSignals)
	i.resetSignals()
	i.pointer.Active = false
	i.parallax.Reset()
	i.stats.Rebuilds++

	i.opts.Metrics.RecordRebuild(time.Since(start), next.graph.Order(), next.graph.Size())
	i.recordRoutes()
	i.logger.Debug("network rebuilt",
		zap.Int("nodes", next.graph.Order()),
		zap.Int("edges", next.graph.Size()),
		zap.Int("routes", len(next.routes)),
		zap.Int("blocked", next.summary.Blocked),
	)

	if i.state == stateRunning && i.env.ReducedMotion {
		i.drawStatic()
	}
}

func (i *Instance) buildNetwork() (*network, error) {
	w, h := i.env.Width, i.env.Height
	rc := profile.Resolve(i.env, i.opts.Density)
	if i.opts.Variant == VariantBackdrop {
		rc.NodeCount = profile.BackdropNodeCount(rc.IsMobile, rc.Density)
		rc.MaxSignals = profile.BackdropMaxSignals(rc.IsMobile)
		rc.Stars = i.style.starCount[0]
		if rc.IsMobile {
			rc.Stars = i.style.starCount[1]
		}
	}
	rc.CanInteract = i.canInteract()

	seed := builder.NetworkSeed(i.opts.Seed, int(w), int(h), rc.IsMobile)
	g, err := builder.BuildWithConfig(w, h, rc, seed, builder.WithLogger(i.logger))
	if err != nil {
		return nil, err
	}

	n := &network{
		graph:    g,
		rc:       rc,
		backdrop: paint.NewBackdrop(i.style.theme, w, h, rc.Stars, i.starSeed(w, h, rc.Stars)),
	}

	return n.withRoutes(i.routesFor(g)), nil
}

// routesFor computes the variant's route set on g.
func (i *Instance) routesFor(g *core.Graph) []router.Route {
	if i.opts.Variant == VariantBackdrop {
		return router.SourceRoutes(g)
	}
	return router.BuildRoutes(g, i.opts.Policy, router.WithLogger(i.logger))
}

// starSeed keys the star field by viewport so it is stable per size.
func (i *Instance) starSeed(w, h float64, stars int) int64 {
	terms := []int64{int64(w) * i.style.starWeights[0], int64(h) * i.style.starWeights[1]}
	if i.opts.Variant == VariantConsent {
		terms = append(terms, int64(stars))
	}
	return rng.Derive(i.opts.Seed, terms...)
}

// fallbackBackdrop describes the static gradient used without a painter.
func (i *Instance) fallbackBackdrop() *paint.Backdrop {
	w, h := i.env.Width, i.env.Height
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	return paint.NewBackdrop(i.style.theme, w, h, 0, i.opts.Seed)
}

func (i *Instance) recordRoutes() {
	if i.net == nil {
		return
	}
	s := i.net.summary
	i.opts.Metrics.UpdateRoutes(s.Total, s.Blocked, s.Fallback)
}
