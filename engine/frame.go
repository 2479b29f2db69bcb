// SPDX-License-Identifier: MIT
// Package: consentflow/engine
//
// frame.go - one animation frame.
//
// Order:
//  1. Ease parallax (zeroed in static frames); backdrop variant spawns and
//     pulses on its timers.
//  2. Resolve rendered node positions: base + drift + parallax·layer.
//  3. Paint backdrop → edges → signals → nodes.
//  4. Consent variant spawns from the rate accumulator.

package engine

import (
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/katalvlaran/consentflow/core"
	"github.com/katalvlaran/consentflow/geom"
	"github.com/katalvlaran/consentflow/paint"
	"github.com/katalvlaran/consentflow/signal"
)

// onFrame is the scheduled callback.
func (i *Instance) onFrame(now time.Duration) {
	i.cancel = nil
	if i.state != stateRunning || i.env.ReducedMotion {
		return
	}
	dt := now - i.lastFrame
	if dt < 0 {
		dt = 0
	}
	if dt > MaxFrameDelta {
		dt = MaxFrameDelta
	}
	i.lastFrame = now

	i.draw(now, dt.Seconds(), false)
	i.schedule()
}

// drawStatic paints the reduced-motion frame.
func (i *Instance) drawStatic() {
	i.draw(i.timers.Now(), 0, true)
}

func (i *Instance) draw(now time.Duration, dt float64, static bool) {
	if i.net == nil || i.painter == nil {
		return
	}
	began := time.Now()
	t := now.Seconds()

	// 1) Parallax and backdrop timers.
	if static {
		i.parallax.Reset()
	} else {
		i.parallax.Ease(i.style.parallaxK)
		if i.opts.Variant == VariantBackdrop {
			i.tickBackdrop(now, dt)
		}
	}

	// 2) Rendered positions.
	i.resolveNodes(t, static)
	geo := i.geometry()

	// 3) Paint.
	if err := i.painter.Begin(i.env.Width, i.env.Height); err != nil {
		i.logger.Warn("frame skipped", zap.Error(err))
		return
	}
	i.painter.Backdrop(i.net.backdrop)
	i.drawEdges(t, geo)
	if !static {
		i.drawSignals(dt, geo)
	}
	i.drawNodes(t)
	if err := i.painter.End(); err != nil {
		i.logger.Warn("frame end failed", zap.Error(err))
	}

	// 4) Rate spawning.
	if !static && i.opts.Variant == VariantConsent {
		i.accumulator += i.net.rc.SignalRate * dt
		for i.accumulator >= 1 {
			i.spawn(false)
			i.accumulator--
		}
	}

	i.stats.Frames++
	i.opts.Metrics.RecordFrame(static, time.Since(began), i.pool.Len())
}

// tickBackdrop fires the interval spawn and the core pulse.
func (i *Instance) tickBackdrop(now time.Duration, dt float64) {
	if now >= i.nextSpawnAt {
		i.spawn(false)
		i.nextSpawnAt = now + msRange(i.anim, 350, 900)
	}
	if now >= i.nextPulseAt {
		i.pulse = 1
		i.nextPulseAt = now + msRange(i.anim, 3000, 6000)
	}
	i.pulse = math.Max(0, i.pulse-0.68*dt)
}

// spawn adds one signal unless the pool is full. The cap is checked before
// any random draw.
func (i *Instance) spawn(burst bool) {
	if i.pool.Full() || len(i.net.routes) == 0 {
		i.stats.Dropped++
		i.opts.Metrics.RecordSpawn(burst, false)
		return
	}
	opts := signal.SpawnOptions{Burst: burst, Tuning: i.style.tuning, Graph: i.net.graph}

	var s *signal.Signal
	if i.opts.Variant == VariantBackdrop {
		route := &i.net.routes[int(math.Floor(i.anim.Float64()*float64(len(i.net.routes))))]
		if len(route.Segments) > 0 {
			s = signal.NewOnRoute(route, i.anim, opts)
		}
	} else {
		s, _ = signal.Spawn(i.net.routes, i.opts.Policy, i.anim, opts)
	}

	accepted := i.pool.Add(s)
	if accepted {
		i.stats.Spawned++
	} else {
		i.stats.Dropped++
	}
	i.opts.Metrics.RecordSpawn(burst, accepted)
}

// resolveNodes fills i.render for time t.
func (i *Instance) resolveNodes(t float64, static bool) {
	for idx, n := range i.net.graph.Nodes {
		p := n.Pos
		if !static {
			p.X += math.Sin(t*n.DriftSpeed+n.DriftPhase) * n.DriftAmp
			p.Y += math.Cos(t*n.DriftSpeed*0.8+n.DriftPhase) * n.DriftAmp * i.style.driftY
		}
		i.render[idx] = p.Add(i.layerOffset(n.Layer))
	}
}

// layerOffset is the parallax shift of a layer.
func (i *Instance) layerOffset(l core.Layer) geom.Point {
	return geom.Pt(i.parallax.X, i.parallax.Y).Scale(i.style.layerShift[l.Clamp()])
}

func (i *Instance) geometry() frameGeometry {
	g := frameGeometry{graph: i.net.graph, render: i.render}
	for l := range g.offsets {
		g.offsets[l] = i.layerOffset(core.Layer(l))
	}
	return g
}

func (i *Instance) drawEdges(t float64, geo frameGeometry) {
	consent := i.opts.Variant == VariantConsent
	for _, e := range i.net.graph.Edges {
		layer := e.Layer.Clamp()
		from, control, to := geo.curve(e)

		var st paint.Stroke
		if consent {
			allowed := i.opts.Policy.AllowsEdge(e)
			base, width := 0.055, 0.8
			if allowed {
				base, width = 0.2, 1
				if layer == 2 {
					width = 1.2
				}
			}
			alpha := base * i.style.layerAlpha[layer] * (0.8 + math.Sin(t*0.42+e.Phase)*0.2)
			st = paint.Stroke{Color: edgeColors[e.Category].WithAlpha(alpha), Width: width}
		} else {
			boost := 1 + i.pulse*(0.3+e.CoreProximity*0.6)
			alpha := 0.12 * i.style.layerAlpha[layer] * (0.86 + math.Sin(t*0.35+e.Phase)*0.14) * boost
			st = paint.Stroke{Color: backdropEdge.WithAlpha(alpha), Width: [3]float64{0.85, 1, 1.15}[layer]}
		}
		if e.Dotted {
			st.Dash = blockedDash
		}
		i.painter.StrokeCurve(from, control, to, st)
	}
}

// drawSignals advances the population, then paints survivors newest first.
func (i *Instance) drawSignals(dt float64, geo frameGeometry) {
	tally := i.pool.Advance(dt, geo)
	i.stats.Completed += tally.Completed
	i.stats.Faded += tally.Faded
	i.opts.Metrics.RecordFinished(tally.Completed, tally.Faded)

	live := i.pool.Signals()
	for k := len(live) - 1; k >= 0; k-- {
		i.drawSignal(live[k])
	}
}

func (i *Instance) drawSignal(s *signal.Signal) {
	theme := i.style.theme
	layer := float64(s.Layer.Clamp())
	base := theme.SignalBlue
	if s.Color == signal.ColorTeal {
		base = theme.SignalTeal
	}

	// Trail, oldest first.
	n := float64(len(s.Trail))
	for k := len(s.Trail) - 1; k >= 0; k-- {
		tp := s.Trail[k]
		ratio := (n - float64(k)) / n
		if i.opts.Variant == VariantBackdrop {
			tint, a := paint.SignalBlue, 0.24
			if s.Color == signal.ColorTeal {
				tint, a = paint.SignalTeal, 0.26
			}
			i.painter.FillCircle(tp.Pos, 0.62+ratio*(0.6+layer*0.35), tint.WithAlpha(tp.Alpha*a))
			continue
		}
		i.painter.FillCircle(tp.Pos, (layer+1)*0.65*ratio+0.6, theme.TrailColor.WithAlpha(tp.Alpha*theme.TrailAlpha))
	}

	// Glow and dot.
	glowR, glowA, dotR := 9+layer*2.8, 0.55, 1.9+layer*0.58
	if s.Blocked {
		glowA = 0.28
	}
	if i.opts.Variant == VariantBackdrop {
		glowR, dotR = 8+layer*2.2, 1.8+layer*0.45
		glowA = 0.54
		if s.Color == signal.ColorTeal {
			glowA = 0.58
		}
	}
	i.painter.FillGlow(s.Pos, glowR, []paint.Stop{
		{Offset: 0, Color: base.WithAlpha(s.Alpha * glowA)},
		{Offset: 1, Color: paint.Transparent},
	})
	dotA := geom.Clamp(s.Alpha, 0, 1)
	if i.opts.Variant == VariantBackdrop {
		dotA = base.A
	}
	i.painter.FillCircle(s.Pos, dotR, base.WithAlpha(dotA))
}

func (i *Instance) drawNodes(t float64) {
	interact := i.canInteract() && i.pointer.Active
	at := geom.Pt(i.pointer.X, i.pointer.Y)
	for idx, n := range i.net.graph.Nodes {
		p := i.render[idx]
		if n.Role == core.RoleCore {
			i.drawCore(p, t)
			continue
		}

		hb := 0.0
		if interact {
			if d := geom.Distance(p, at); d < HoverRadius {
				hb = 1 - d/HoverRadius
			}
		}
		glowR := n.Radius * (i.style.nodeGlow[0] + hb*i.style.nodeGlow[1])
		var glowA float64
		if i.opts.Variant == VariantBackdrop {
			glowA = 0.2 + hb*0.14
		} else {
			glowA = (0.16 + hb*0.18) * 1.2
		}
		i.painter.FillGlow(p, glowR, []paint.Stop{
			{Offset: 0, Color: i.style.nodeGlowTint.WithAlpha(glowA)},
			{Offset: 1, Color: paint.Transparent},
		})
		i.painter.FillCircle(p, n.Radius+hb*i.style.nodeHover, i.style.nodeFill(i.opts.Variant, n.Role))
	}
}

func (i *Instance) drawCore(p geom.Point, t float64) {
	base := i.style.coreRadius[0]
	if i.net.rc.IsMobile {
		base = i.style.coreRadius[1]
	}
	r := base * (1 + math.Sin(t*i.style.coreBreath[0])*i.style.coreBreath[1])

	i.painter.FillGlow(p, r*3.2, i.style.coreHalo)
	i.painter.FillGlow(p, r, i.style.coreFill)
	if i.style.coreRing {
		i.painter.StrokeCircle(p, r*1.7, paint.Stroke{Color: coreRing, Width: 1})
	}
}

// frameGeometry renders edges at this frame's node positions and parallax.
type frameGeometry struct {
	graph   *core.Graph
	render  []geom.Point
	offsets [core.LayerCount]geom.Point
}

var _ signal.Geometry = frameGeometry{}

// Edge implements signal.Geometry.
func (g frameGeometry) Edge(id int) core.Edge { return g.graph.Edges[id] }

// Position implements signal.Geometry.
func (g frameGeometry) Position(node int) geom.Point { return g.render[node] }

// ControlOffset implements signal.Geometry.
func (g frameGeometry) ControlOffset(l core.Layer) geom.Point { return g.offsets[l.Clamp()] }

// curve returns the rendered endpoints and control point of e.
func (g frameGeometry) curve(e core.Edge) (geom.Point, geom.Point, geom.Point) {
	return g.render[e.A], e.Control.Add(g.ControlOffset(e.Layer)), g.render[e.B]
}
