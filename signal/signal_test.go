package signal_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/consentflow/core"
	"github.com/katalvlaran/consentflow/geom"
	"github.com/katalvlaran/consentflow/router"
	"github.com/katalvlaran/consentflow/signal"
)

// script replays fixed draws, cycling.
type script struct {
	vals []float64
	i    int
}

func (s *script) Float64() float64 {
	v := s.vals[s.i%len(s.vals)]
	s.i++
	return v
}

func draws(v ...float64) *script { return &script{vals: v} }

// line builds 1(src) - 0(core) - 2(dst), two straight 10 px edges.
func line(t *testing.T, cat core.Category) *core.Graph {
	t.Helper()
	nodes := []core.Node{
		{ID: 0, Role: core.RoleCore, Pos: geom.Pt(10, 0)},
		{ID: 1, Role: core.RoleSource, Pos: geom.Pt(0, 0)},
		{ID: 2, Role: core.RoleDestination, Pos: geom.Pt(20, 0), Category: cat},
	}
	edges := []core.Edge{
		{ID: 0, A: 1, B: 0, Length: 10, Control: geom.Pt(5, 0), Category: core.CategoryEssential, Layer: 1},
		{ID: 1, A: 0, B: 2, Length: 10, Control: geom.Pt(15, 0), Category: cat, Layer: 2},
	}
	g, err := core.NewGraph(nodes, edges)
	require.NoError(t, err)

	return g
}

func routesOf(cats ...core.Category) []router.Route {
	out := make([]router.Route, len(cats))
	for i, c := range cats {
		out[i] = router.Route{
			Key:                 router.RouteKey(1, 10+i),
			DestinationCategory: c,
			Segments:            []router.Segment{{EdgeID: 0, From: 1, To: 0}},
		}
	}
	return out
}

func TestChooseRoute(t *testing.T) {
	routes := routesOf(core.CategoryMarketing, core.CategoryFunctional, core.CategoryEssential, core.CategoryAnalytics)

	assert.Nil(t, signal.ChooseRoute(nil, core.PolicyMixed, draws(0)))

	// Mixed, preferred: pool is [essential, functional] in that order.
	r := signal.ChooseRoute(routes, core.PolicyMixed, draws(0.5, 0.0))
	assert.Equal(t, core.CategoryEssential, r.DestinationCategory)
	r = signal.ChooseRoute(routes, core.PolicyMixed, draws(0.77, 0.99))
	assert.Equal(t, core.CategoryFunctional, r.DestinationCategory)

	// Mixed, not preferred: every route.
	r = signal.ChooseRoute(routes, core.PolicyMixed, draws(0.78, 0.0))
	assert.Equal(t, core.CategoryMarketing, r.DestinationCategory)

	// Denied, preferred: essential only.
	r = signal.ChooseRoute(routes, core.PolicyDenied, draws(0.83, 0.99))
	assert.Equal(t, core.CategoryEssential, r.DestinationCategory)

	// Denied, not preferred: every route, ordered essential, functional,
	// analytics, marketing.
	r = signal.ChooseRoute(routes, core.PolicyDenied, draws(0.84, 0.0))
	assert.Equal(t, core.CategoryEssential, r.DestinationCategory)
	r = signal.ChooseRoute(routes, core.PolicyDenied, draws(0.9, 0.3))
	assert.Equal(t, core.CategoryFunctional, r.DestinationCategory)
	r = signal.ChooseRoute(routes, core.PolicyDenied, draws(0.9, 0.6))
	assert.Equal(t, core.CategoryAnalytics, r.DestinationCategory)
	r = signal.ChooseRoute(routes, core.PolicyDenied, draws(0.9, 0.99))
	assert.Equal(t, core.CategoryMarketing, r.DestinationCategory)

	// Granted draws once, uniformly.
	src := draws(0.6)
	r = signal.ChooseRoute(routes, core.PolicyGranted, src)
	assert.Equal(t, core.CategoryEssential, r.DestinationCategory)
	assert.Equal(t, 1, src.i)
}

func TestChooseRoute_EmptyPreferredPool(t *testing.T) {
	routes := routesOf(core.CategoryMarketing, core.CategoryAnalytics)
	r := signal.ChooseRoute(routes, core.PolicyDenied, draws(0.1, 0.7))
	assert.Equal(t, core.CategoryAnalytics, r.DestinationCategory)
}

func TestSpawn(t *testing.T) {
	g := line(t, core.CategoryEssential)
	routes := router.BuildRoutes(g, core.PolicyGranted)

	// route pick, colour, speed
	s, ok := signal.Spawn(routes, core.PolicyGranted, draws(0, 0.8, 0.5), signal.SpawnOptions{Graph: g})
	require.True(t, ok)
	assert.Equal(t, signal.ColorBlue, s.Color)
	assert.InDelta(t, 80.0, s.Speed, 1e-12)
	assert.Equal(t, 1.0, s.Alpha)
	assert.Equal(t, g.Nodes[1].Pos, s.Pos)
	assert.Equal(t, core.Layer(1), s.Layer)
	assert.False(t, s.Burst)

	s, ok = signal.Spawn(routes, core.PolicyGranted, draws(0, 0.1, 0.5), signal.SpawnOptions{Burst: true})
	require.True(t, ok)
	assert.Equal(t, signal.ColorTeal, s.Color)
	assert.InDelta(t, 105.0, s.Speed, 1e-12)
	assert.True(t, s.Burst)

	_, ok = signal.Spawn(nil, core.PolicyGranted, draws(0), signal.SpawnOptions{})
	assert.False(t, ok)
	_, ok = signal.Spawn([]router.Route{{Key: "x"}}, core.PolicyGranted, draws(0), signal.SpawnOptions{})
	assert.False(t, ok)
}

func TestAdvance_AllowedRouteCompletes(t *testing.T) {
	g := line(t, core.CategoryEssential)
	routes := router.BuildRoutes(g, core.PolicyMixed)
	require.Len(t, routes, 1)
	geo := signal.StaticGeometry{Graph: g}

	s := signal.NewOnRoute(&routes[0], draws(0.5), signal.SpawnOptions{})
	s.Speed = 100

	assert.Equal(t, signal.Active, s.Advance(0.05, geo))
	assert.InDelta(t, 0.5, s.T, 1e-12)
	assert.InDelta(t, 5.0, s.Pos.X, 1e-9)

	assert.Equal(t, signal.Active, s.Advance(0.05, geo))
	assert.Equal(t, 1, s.Segment)
	assert.Equal(t, 0.0, s.T)

	assert.Equal(t, signal.Active, s.Advance(0.05, geo))
	assert.Equal(t, core.Layer(2), s.Layer)
	assert.Equal(t, signal.Completed, s.Advance(0.05, geo))
	assert.Equal(t, 1.0, s.Alpha)
}

func TestAdvance_BlockedSegmentFades(t *testing.T) {
	g := line(t, core.CategoryMarketing)
	geo := signal.StaticGeometry{Graph: g}
	segs, err := router.Segments(g, []int{0, 2}, core.PolicyMixed)
	require.NoError(t, err)
	route := router.Route{Segments: segs}

	s := signal.NewOnRoute(&route, draws(0.5), signal.SpawnOptions{})
	require.True(t, s.Blocked)
	s.Speed = 10

	status := signal.Active
	steps := 0
	for status == signal.Active && steps < 100 {
		status = s.Advance(0.05, geo)
		steps++
		assert.LessOrEqual(t, s.Alpha, 1.0)
		if s.T <= 0.24 {
			assert.Equal(t, 1.0, s.Alpha, "no fade before the threshold")
		}
	}
	assert.Equal(t, signal.Faded, status)
	assert.Less(t, s.T, 1.0, "fades out before the end of the segment")
	assert.LessOrEqual(t, s.Alpha, 0.03)
}

func TestAdvance_BlockedSegmentEnds(t *testing.T) {
	g := line(t, core.CategoryMarketing)
	segs, err := router.Segments(g, []int{0, 2}, core.PolicyMixed)
	require.NoError(t, err)
	route := router.Route{Segments: segs}

	s := signal.NewOnRoute(&route, draws(0.5), signal.SpawnOptions{})
	s.Speed = 1000
	assert.Equal(t, signal.Faded, s.Advance(0.05, signal.StaticGeometry{Graph: g}))
}

func TestAdvance_BackdropIgnoresBlocking(t *testing.T) {
	g := line(t, core.CategoryMarketing)
	segs, err := router.Segments(g, []int{0, 2}, core.PolicyDenied)
	require.NoError(t, err)
	route := router.Route{Segments: segs}

	s := signal.NewOnRoute(&route, draws(0.5), signal.SpawnOptions{Tuning: signal.Backdrop()})
	assert.False(t, s.Blocked)
	s.Speed = 100
	assert.Equal(t, signal.Active, s.Advance(0.05, signal.StaticGeometry{Graph: g}))
	assert.Equal(t, signal.Completed, s.Advance(0.05, signal.StaticGeometry{Graph: g}))
}

func TestAdvance_Trail(t *testing.T) {
	g := line(t, core.CategoryEssential)
	routes := router.BuildRoutes(g, core.PolicyGranted)
	s := signal.NewOnRoute(&routes[0], draws(0.5), signal.SpawnOptions{})
	s.Speed = 1
	for i := 0; i < 12; i++ {
		s.Advance(0.01, signal.StaticGeometry{Graph: g})
	}
	require.Len(t, s.Trail, 9)
	assert.Equal(t, s.Pos, s.Trail[0].Pos)
	assert.InDelta(t, 0.84, s.Trail[0].Alpha, 1e-12)
	for i := 1; i < len(s.Trail); i++ {
		assert.Less(t, s.Trail[i].Alpha, s.Trail[i-1].Alpha)
	}
}

type shifted struct {
	signal.StaticGeometry
}

func (shifted) ControlOffset(l core.Layer) geom.Point { return geom.Pt(0, float64(l)*10) }

func TestAdvance_ControlOffset(t *testing.T) {
	g := line(t, core.CategoryEssential)
	routes := router.BuildRoutes(g, core.PolicyGranted)
	s := signal.NewOnRoute(&routes[0], draws(0.5), signal.SpawnOptions{})
	s.Speed = 100
	s.Advance(0.05, shifted{signal.StaticGeometry{Graph: g}})
	// Midpoint of a quadratic Bézier sits halfway toward the control offset.
	assert.InDelta(t, 5.0, s.Pos.Y, 1e-9)
}

func TestStrings(t *testing.T) {
	assert.Equal(t, "teal", signal.ColorTeal.String())
	assert.Equal(t, "blue", signal.ColorBlue.String())
	assert.Equal(t, "active", signal.Active.String())
	assert.Equal(t, "completed", signal.Completed.String())
	assert.Equal(t, "faded", signal.Faded.String())
}
