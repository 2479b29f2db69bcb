// SPDX-License-Identifier: MIT
// Package: consentflow/signal
//
// signal.go - route choice, spawning and per-frame advance.

package signal

import (
	"math"

	"github.com/katalvlaran/consentflow/core"
	"github.com/katalvlaran/consentflow/geom"
	"github.com/katalvlaran/consentflow/rng"
	"github.com/katalvlaran/consentflow/router"
)

// Route preference under restrictive policies.
const (
	mixedPreference  = 0.78
	deniedPreference = 0.84
)

// Color is the palette index of a signal.
type Color uint8

const (
	ColorTeal Color = iota
	ColorBlue
)

// String returns the colour name.
func (c Color) String() string {
	if c == ColorBlue {
		return "blue"
	}
	return "teal"
}

// Status is the outcome of one Advance.
type Status uint8

const (
	// Active signals keep moving.
	Active Status = iota
	// Completed signals reached the end of their last segment.
	Completed
	// Faded signals died on a blocked segment or dropped below RemoveAlpha.
	Faded
)

// String returns the status name.
func (s Status) String() string {
	switch s {
	case Completed:
		return "completed"
	case Faded:
		return "faded"
	default:
		return "active"
	}
}

// TrailPoint is one remembered position.
type TrailPoint struct {
	Pos   geom.Point
	Alpha float64
}

// Geometry resolves the rendered shape of edges for the current frame.
type Geometry interface {
	// Edge returns the edge with the given id.
	Edge(id int) core.Edge
	// Position returns the rendered position of a node.
	Position(node int) geom.Point
	// ControlOffset returns the shift applied to control points on a layer.
	ControlOffset(layer core.Layer) geom.Point
}

// StaticGeometry renders g at its base positions.
type StaticGeometry struct {
	Graph *core.Graph
}

// Edge implements Geometry.
func (s StaticGeometry) Edge(id int) core.Edge { return s.Graph.Edges[id] }

// Position implements Geometry.
func (s StaticGeometry) Position(node int) geom.Point { return s.Graph.Nodes[node].Pos }

// ControlOffset implements Geometry.
func (StaticGeometry) ControlOffset(core.Layer) geom.Point { return geom.Point{} }

// Signal is one animated particle on a route.
type Signal struct {
	ID      uint64
	Route   *router.Route
	Segment int
	T       float64
	Speed   float64
	Alpha   float64
	Blocked bool
	Color   Color
	Pos     geom.Point
	Layer   core.Layer
	Burst   bool
	Trail   []TrailPoint

	tuning Tuning
}

// SpawnOptions parameterizes Spawn.
type SpawnOptions struct {
	Burst  bool
	Tuning Tuning
	// Graph supplies the start position and layer; optional.
	Graph *core.Graph
}

// ChooseRoute picks a route for a new signal. Under mixed consent 78% of
// picks come from essential and functional destinations, under denied 84%
// from essential destinations. The rest of the denied picks come from every
// route grouped by category, essential first. An empty pool falls back to
// every route. Returns nil when routes is empty.
func ChooseRoute(routes []router.Route, policy core.Policy, src rng.Generator) *router.Route {
	if len(routes) == 0 {
		return nil
	}

	pool := allIndexes(routes)
	switch policy {
	case core.PolicyMixed:
		if src.Float64() < mixedPreference {
			pool = byCategory(routes, core.CategoryEssential, core.CategoryFunctional)
		}
	case core.PolicyDenied:
		if src.Float64() < deniedPreference {
			pool = byCategory(routes, core.CategoryEssential)
		} else {
			pool = byCategory(routes, core.Categories[:]...)
		}
	}
	if len(pool) == 0 {
		pool = allIndexes(routes)
	}

	return &routes[pool[int(math.Floor(src.Float64()*float64(len(pool))))]]
}

// Spawn creates a signal on a route chosen by ChooseRoute. It reports false
// when there is no route or the chosen route has no segments.
func Spawn(routes []router.Route, policy core.Policy, src rng.Generator, opts SpawnOptions) (*Signal, bool) {
	route := ChooseRoute(routes, policy, src)
	if route == nil || len(route.Segments) == 0 {
		return nil, false
	}

	return NewOnRoute(route, src, opts), true
}

// NewOnRoute creates a signal at the start of route.
func NewOnRoute(route *router.Route, src rng.Generator, opts SpawnOptions) *Signal {
	t := opts.Tuning
	if t.TrailCap == 0 {
		t = Consent()
	}
	first := route.Segments[0]

	color := ColorBlue
	if src.Float64() < t.TealChance {
		color = ColorTeal
	}
	lo, hi := t.SpeedMin, t.SpeedMax
	if opts.Burst {
		lo, hi = t.BurstSpeedMin, t.BurstSpeedMax
	}

	s := &Signal{
		Route:   route,
		Speed:   rng.Range(src, lo, hi),
		Alpha:   1,
		Blocked: first.Blocked && !t.IgnoreBlocking,
		Color:   color,
		Burst:   opts.Burst,
		Trail:   make([]TrailPoint, 0, t.TrailCap),
		tuning:  t,
	}
	if opts.Graph != nil {
		s.Pos = opts.Graph.Nodes[first.From].Pos
		s.Layer = opts.Graph.Edges[first.EdgeID].Layer
	}

	return s
}

// Tuning returns the constants the signal was spawned with.
func (s *Signal) Tuning() Tuning { return s.tuning }

// Current returns the segment the signal is on.
func (s *Signal) Current() router.Segment { return s.Route.Segments[s.Segment] }

// Advance moves the signal by dt seconds over geo and reports its status.
// A finished signal must be discarded by the caller.
func (s *Signal) Advance(dt float64, geo Geometry) Status {
	seg := s.Route.Segments[s.Segment]
	edge := geo.Edge(seg.EdgeID)
	blocked := seg.Blocked && !s.tuning.IgnoreBlocking

	// 1) Move along the segment's curve at rendered positions.
	control := edge.Control.Add(geo.ControlOffset(edge.Layer))
	s.T += s.Speed * dt / edge.Length
	s.Pos = geom.QuadraticBezierPoint(geo.Position(seg.From), control, geo.Position(seg.To), geom.Clamp(s.T, 0, 1))
	s.Layer = edge.Layer
	s.Blocked = blocked

	// 2) Trail: newest first, capped, every stored alpha decays.
	s.pushTrail()

	// 3) Fade on blocked segments past the threshold, recover otherwise.
	if blocked && s.T > s.tuning.FadeAfter {
		s.Alpha -= dt * s.tuning.FadeRate
	} else {
		s.Alpha = math.Min(1, s.Alpha+dt*s.tuning.RecoverRate)
	}

	// 4) Segment end.
	if s.T >= 1 {
		if blocked || s.Alpha <= s.tuning.RemoveAlpha {
			return Faded
		}
		s.Segment++
		s.T = 0
		if s.Segment >= len(s.Route.Segments) {
			return Completed
		}
	}
	if s.Alpha <= s.tuning.RemoveAlpha {
		return Faded
	}

	return Active
}

func (s *Signal) pushTrail() {
	limit := s.tuning.TrailCap
	if len(s.Trail) < limit {
		s.Trail = append(s.Trail, TrailPoint{})
	}
	copy(s.Trail[1:], s.Trail[:len(s.Trail)-1])
	s.Trail[0] = TrailPoint{Pos: s.Pos, Alpha: s.Alpha}
	for i := range s.Trail {
		s.Trail[i].Alpha *= s.tuning.TrailDecay
	}
}

func allIndexes(routes []router.Route) []int {
	out := make([]int, len(routes))
	for i := range out {
		out[i] = i
	}
	return out
}

// byCategory keeps route indexes grouped by category in argument order.
func byCategory(routes []router.Route, cats ...core.Category) []int {
	var out []int
	for _, c := range cats {
		for i := range routes {
			if routes[i].DestinationCategory == c {
				out = append(out, i)
			}
		}
	}
	return out
}
