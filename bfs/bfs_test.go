package bfs_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/consentflow/bfs"
	"github.com/katalvlaran/consentflow/core"
)

// chain builds 0 - 1 - 2 - 3 plus a marketing shortcut 0 - 3 and an
// isolated node 4.
func chain(t *testing.T) *core.Graph {
	t.Helper()
	nodes := []core.Node{
		{ID: 0, Role: core.RoleCore},
		{ID: 1, Role: core.RoleSource},
		{ID: 2, Role: core.RoleRelay},
		{ID: 3, Role: core.RoleDestination, Category: core.CategoryMarketing},
		{ID: 4, Role: core.RoleRelay},
	}
	edges := []core.Edge{
		{ID: 0, A: 0, B: 1, Length: 1, Category: core.CategoryEssential},
		{ID: 1, A: 1, B: 2, Length: 1, Category: core.CategoryEssential},
		{ID: 2, A: 2, B: 3, Length: 1, Category: core.CategoryEssential},
		{ID: 3, A: 0, B: 3, Length: 1, Category: core.CategoryMarketing},
	}
	g, err := core.NewGraph(nodes, edges)
	require.NoError(t, err)

	return g
}

func TestBFS_Errors(t *testing.T) {
	g := chain(t)

	_, err := bfs.BFS(nil, 0)
	assert.ErrorIs(t, err, bfs.ErrGraphNil)

	_, err = bfs.BFS(g, 17)
	assert.ErrorIs(t, err, bfs.ErrStartVertexNotFound)

	_, err = bfs.BFS(g, 0, bfs.WithMaxDepth(-1))
	assert.ErrorIs(t, err, bfs.ErrOptionViolation)
}

func TestBFS_OrderDepthParent(t *testing.T) {
	g := chain(t)
	res, err := bfs.BFS(g, 0)
	require.NoError(t, err)

	assert.Equal(t, []int{0, 1, 3, 2}, res.Order)
	assert.Equal(t, []int{0, 1, 2, 1, -1}, res.Depth)
	assert.Equal(t, []int{-1, 0, 1, 0, -1}, res.Parent)
	assert.False(t, res.Reached(4))
	assert.Equal(t, 2, res.Eccentricity())

	path, err := res.PathTo(2)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 2}, path)

	_, err = res.PathTo(4)
	assert.ErrorIs(t, err, bfs.ErrNoPath)
}

func TestBFS_PolicyFilter(t *testing.T) {
	g := chain(t)

	// Denied consent drops the marketing shortcut, so 3 sits three hops out.
	res, err := bfs.BFS(g, 0, bfs.WithPolicy(core.PolicyDenied))
	require.NoError(t, err)
	assert.Equal(t, 3, res.Depth[3])

	path, err := res.PathTo(3)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 2, 3}, path)
}

func TestBFS_MaxDepth(t *testing.T) {
	g := chain(t)
	res, err := bfs.BFS(g, 1, bfs.WithMaxDepth(1))
	require.NoError(t, err)
	assert.ElementsMatch(t, []int{1, 0, 2}, res.Order)
	assert.Equal(t, -1, res.Depth[3])
}

func TestBFS_Hooks(t *testing.T) {
	g := chain(t)
	var seen, depths []int
	res, err := bfs.BFS(g, 0, bfs.WithOnVisit(func(id, depth int) error {
		seen = append(seen, id)
		depths = append(depths, depth)
		return nil
	}))
	require.NoError(t, err)
	assert.Equal(t, res.Order, seen)
	for i, id := range seen {
		assert.Equal(t, res.Depth[id], depths[i])
	}

	stop := errors.New("stop")
	_, err = bfs.BFS(g, 0, bfs.WithOnVisit(func(id, _ int) error {
		if id == 3 {
			return stop
		}
		return nil
	}))
	assert.ErrorIs(t, err, stop)
}

func TestBFS_Cancelled(t *testing.T) {
	g := chain(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := bfs.BFS(g, 0, bfs.WithContext(ctx))
	assert.ErrorIs(t, err, context.Canceled)
}
