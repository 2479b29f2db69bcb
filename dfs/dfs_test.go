package dfs_test

import (
	"context"
	"errors"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/consentflow/builder"
	"github.com/katalvlaran/consentflow/core"
	"github.com/katalvlaran/consentflow/dfs"
	"github.com/katalvlaran/consentflow/profile"
)

// ring builds
//
//	1(src) —e0— 0(core) —e1(analytics)— 2(dst)
//	             \                      /
//	              e2 —— 3(relay) —— e3
//
// plus an isolated relay 4.
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

func TestDFS_Validation(t *testing.T) {
	res, err := dfs.DFS(nil, 0)
	assert.Nil(t, res)
	assert.ErrorIs(t, err, dfs.ErrGraphNil)

	res, err = dfs.DFS(ring(t), 9)
	assert.Nil(t, res)
	assert.ErrorIs(t, err, dfs.ErrStartVertexNotFound)
}

func TestDFS_Order(t *testing.T) {
	res, err := dfs.DFS(ring(t), 0)
	require.NoError(t, err)

	assert.Equal(t, []int{1, 3, 2, 0}, res.Order)
	assert.Equal(t, []int{0, 1, 1, 2, -1}, res.Depth)
	assert.Equal(t, []int{-1, 0, 0, 2, -1}, res.Parent)
	assert.Equal(t, []bool{true, true, true, true, false}, res.Visited)
	assert.Zero(t, res.SkippedEdges)
}

func TestDFS_Policy(t *testing.T) {
	res, err := dfs.DFS(ring(t), 0, dfs.WithPolicy(core.PolicyMixed))
	require.NoError(t, err)

	// The analytics edge is skipped from both ends; 2 is reached via 3.
	assert.Equal(t, []int{1, 2, 3, 0}, res.Order)
	assert.Equal(t, []int{0, 1, 2, 1, -1}, res.Depth)
	assert.Equal(t, 3, res.Parent[2])
	assert.Equal(t, 2, res.SkippedEdges)
}

func TestDFS_MaxDepth(t *testing.T) {
	res, err := dfs.DFS(ring(t), 0, dfs.WithMaxDepth(0))
	require.NoError(t, err)
	assert.Equal(t, []int{0}, res.Order)
	assert.Equal(t, []int{-1, -1, -1, -1, -1}, res.Parent)

	res, err = dfs.DFS(ring(t), 0, dfs.WithMaxDepth(1))
	require.NoError(t, err)
	assert.ElementsMatch(t, []int{0, 1, 2, 3}, res.Order)
	assert.Equal(t, 1, res.Depth[3], "3 is reached directly once 2 cannot recurse")
}

func TestDFS_FullTraversal(t *testing.T) {
	res, err := dfs.DFS(ring(t), -1, dfs.WithFullTraversal())
	require.NoError(t, err)
	assert.Equal(t, []int{1, 3, 2, 0, 4}, res.Order)
	assert.Equal(t, 0, res.Depth[4])
}

func TestDFS_Hooks(t *testing.T) {
	var pre, post []int
	_, err := dfs.DFS(ring(t), 0,
		dfs.WithOnVisit(func(id int) error { pre = append(pre, id); return nil }),
		dfs.WithOnExit(func(id int) error { post = append(post, id); return nil }),
	)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 2, 3}, pre)
	assert.Equal(t, []int{1, 3, 2, 0}, post)

	boom := errors.New("boom")
	res, err := dfs.DFS(ring(t), 0, dfs.WithOnVisit(func(id int) error {
		if id == 2 {
			return boom
		}
		return nil
	}))
	assert.ErrorIs(t, err, boom)
	assert.Nil(t, res.Order)

	res, err = dfs.DFS(ring(t), 0, dfs.WithOnExit(func(id int) error {
		if id == 3 {
			return boom
		}
		return nil
	}))
	assert.ErrorIs(t, err, boom)
	assert.Nil(t, res.Order)
}

func TestDFS_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := dfs.DFS(ring(t), 0, dfs.WithContext(ctx))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestBridges(t *testing.T) {
	g := ring(t)

	got, err := dfs.Bridges(g)
	require.NoError(t, err)
	assert.Equal(t, []int{0}, got, "only the source spur is critical")

	// Without the analytics edge the remainder is a path: every edge is critical.
	got, err = dfs.Bridges(g, dfs.WithPolicy(core.PolicyMixed))
	require.NoError(t, err)
	assert.Equal(t, []int{0, 2, 3}, got)

	_, err = dfs.Bridges(nil)
	assert.ErrorIs(t, err, dfs.ErrGraphNil)
}

// components counts connected components with edge skip removed.
func components(g *core.Graph, skip int) int {
	d := core.NewDisjointSet(g.Order())
	for _, e := range g.Edges {
		if e.ID != skip {
			d.Union(e.A, e.B)
		}
	}
	return d.Sets()
}

// TestBridges_MatchRemoval checks every edge of a synthesized network:
// removing it adds a component iff Bridges reports it.
func TestBridges_MatchRemoval(t *testing.T) {
	for _, seed := range []int64{1, 42, 2026} {
		g, err := builder.Build(1280, 720, false, profile.DensityLow, seed)
		require.NoError(t, err)

		got, err := dfs.Bridges(g)
		require.NoError(t, err)

		base := components(g, -1)
		for _, e := range g.Edges {
			split := components(g, e.ID) > base
			assert.Equalf(t, split, slices.Contains(got, e.ID), "seed %d edge %d", seed, e.ID)
		}
	}
}
