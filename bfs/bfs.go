// SPDX-License-Identifier: MIT
// Package: consentflow/bfs
//
// bfs.go - hop-ordered traversal over the consent network.
//
// Algorithm:
//  1. Depth[start] = 0; every other node -1 (undiscovered).
//  2. Pop the queue head, record it in Order, call OnVisit.
//  3. Unless MaxDepth is reached, discover each neighbour whose edge passes
//     FilterEdge, in adjacency (edge id) order.

package bfs

import (
	"fmt"

	"github.com/katalvlaran/consentflow/core"
)

// BFS runs breadth-first search on g starting from start.
// Returns ErrGraphNil or ErrStartVertexNotFound for invalid input,
// ErrOptionViolation for bad options, the context error on cancellation,
// or a wrapped OnVisit error.
func BFS(g *core.Graph, start int, opts ...Option) (*BFSResult, error) {
	if g == nil {
		return nil, ErrGraphNil
	}
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}
	if !g.HasNode(start) {
		return nil, fmt.Errorf("%w: %d", ErrStartVertexNotFound, start)
	}

	// 1) Initialise.
	n := g.Order()
	res := &BFSResult{
		Start:  start,
		Order:  make([]int, 0, n),
		Depth:  make([]int, n),
		Parent: make([]int, n),
	}
	for i := 0; i < n; i++ {
		res.Depth[i] = -1
		res.Parent[i] = -1
	}
	res.Depth[start] = 0
	queue := make([]int, 1, n)
	queue[0] = start

	for len(queue) > 0 {
		if err := o.Ctx.Err(); err != nil {
			return res, err
		}

		// 2) Visit.
		cur := queue[0]
		queue = queue[1:]
		res.Order = append(res.Order, cur)
		if err := o.OnVisit(cur, res.Depth[cur]); err != nil {
			return res, fmt.Errorf("bfs: OnVisit error at %d: %w", cur, err)
		}

		// 3) Discover.
		next := res.Depth[cur] + 1
		if o.MaxDepth > 0 && next > o.MaxDepth {
			continue
		}
		for _, adj := range g.Adjacent(cur) {
			if res.Depth[adj.To] >= 0 || !o.FilterEdge(cur, g.Edges[adj.EdgeID]) {
				continue
			}
			res.Depth[adj.To] = next
			res.Parent[adj.To] = cur
			queue = append(queue, adj.To)
		}
	}

	return res, nil
}
