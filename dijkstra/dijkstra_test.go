// Package dijkstra_test covers validation, filtering, tie-breaking and
// path reconstruction of the dense shortest-path search.
package dijkstra_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/consentflow/core"
	"github.com/katalvlaran/consentflow/dijkstra"
)

// ring builds
//
//	1(src) —10— 0(core) —10— 2(dst)
//	   \                     /
//	    6 —— 3(relay) —— 6
//
// where the direct legs are cheap but 0–2 is analytics and the relay path
// is essential.
func ring(t *testing.T) *core.Graph {
	t.Helper()
	nodes := []core.Node{
		{ID: 0, Role: core.RoleCore},
		{ID: 1, Role: core.RoleSource},
		{ID: 2, Role: core.RoleDestination, Category: core.CategoryAnalytics},
		{ID: 3, Role: core.RoleRelay},
		{ID: 4, Role: core.RoleRelay},
	}
	edges := []core.Edge{
		{ID: 0, A: 1, B: 0, Length: 10, Category: core.CategoryEssential},
		{ID: 1, A: 0, B: 2, Length: 10, Category: core.CategoryAnalytics},
		{ID: 2, A: 0, B: 3, Length: 6, Category: core.CategoryEssential},
		{ID: 3, A: 3, B: 2, Length: 6, Category: core.CategoryEssential},
	}
	g, err := core.NewGraph(nodes, edges)
	require.NoError(t, err)

	return g
}

func TestShortestPath_Validation(t *testing.T) {
	g := ring(t)

	_, err := dijkstra.ShortestPath(nil, 0, 1)
	assert.ErrorIs(t, err, dijkstra.ErrNilGraph)

	_, err = dijkstra.ShortestPath(g, -1, 1)
	assert.ErrorIs(t, err, dijkstra.ErrNodeNotFound)

	_, err = dijkstra.ShortestPath(g, 0, 99)
	assert.ErrorIs(t, err, dijkstra.ErrNodeNotFound)

	assert.Panics(t, func() { dijkstra.WithEdgeFilter(nil) })
}

func TestShortestPath_Unfiltered(t *testing.T) {
	g := ring(t)

	path, err := dijkstra.ShortestPath(g, 0, 2)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 2}, path)

	path, err = dijkstra.ShortestPath(g, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 0, 2}, path)
}

func TestShortestPath_PolicyDetour(t *testing.T) {
	g := ring(t)

	// Mixed consent blocks the analytics edge 0–2; the essential detour via 3 wins.
	path, err := dijkstra.ShortestPath(g, 0, 2, dijkstra.WithPolicy(core.PolicyMixed))
	require.NoError(t, err)
	assert.Equal(t, []int{0, 3, 2}, path)

	// Granted consent keeps the direct edge.
	path, err = dijkstra.ShortestPath(g, 0, 2, dijkstra.WithPolicy(core.PolicyGranted))
	require.NoError(t, err)
	assert.Equal(t, []int{0, 2}, path)
}

func TestShortestPath_Unreachable(t *testing.T) {
	g := ring(t)

	// Node 4 is isolated.
	_, err := dijkstra.ShortestPath(g, 0, 4)
	assert.ErrorIs(t, err, dijkstra.ErrUnreachable)

	// Filtering out every edge strands the target.
	none := dijkstra.WithEdgeFilter(func(core.Edge) bool { return false })
	_, err = dijkstra.ShortestPath(g, 1, 2, none)
	assert.ErrorIs(t, err, dijkstra.ErrUnreachable)
}

func TestShortestPath_SameNode(t *testing.T) {
	g := ring(t)
	path, err := dijkstra.ShortestPath(g, 3, 3)
	require.NoError(t, err)
	assert.Equal(t, []int{3}, path)
}

func TestShortestPath_TieBreaksOnLowestID(t *testing.T) {
	// Two equal-length routes 0→1→3 and 0→2→3; node 1 settles first.
	nodes := []core.Node{
		{ID: 0, Role: core.RoleCore},
		{ID: 1, Role: core.RoleRelay},
		{ID: 2, Role: core.RoleRelay},
		{ID: 3, Role: core.RoleRelay},
	}
	edges := []core.Edge{
		{ID: 0, A: 0, B: 2, Length: 5},
		{ID: 1, A: 0, B: 1, Length: 5},
		{ID: 2, A: 2, B: 3, Length: 5},
		{ID: 3, A: 1, B: 3, Length: 5},
	}
	g, err := core.NewGraph(nodes, edges)
	require.NoError(t, err)

	path, err := dijkstra.ShortestPath(g, 0, 3)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 3}, path)
}

func TestDistances(t *testing.T) {
	g := ring(t)

	res, err := dijkstra.Distances(g, 1)
	require.NoError(t, err)
	assert.Equal(t, []float64{10, 0, 20, 16, math.Inf(1)}, res.Dist)
	assert.Equal(t, []int{1, -1, 0, 0, -1}, res.Prev)

	path, err := res.PathTo(3)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 0, 3}, path)

	_, err = res.PathTo(4)
	assert.ErrorIs(t, err, dijkstra.ErrUnreachable)
	_, err = res.PathTo(12)
	assert.ErrorIs(t, err, dijkstra.ErrNodeNotFound)

	_, err = dijkstra.Distances(nil, 0)
	assert.ErrorIs(t, err, dijkstra.ErrNilGraph)
}
