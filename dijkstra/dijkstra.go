// SPDX-License-Identifier: MIT
// Package: consentflow/dijkstra
//
// dijkstra.go - dense O(V²) shortest paths over edge arc lengths.
//
// Algorithm:
//  1. dist[start] = 0, all others +Inf; prev = -1.
//  2. Repeat V times: pick the unvisited node with the smallest finite dist
//     (lowest id on ties); stop when none remains or it is the target.
//  3. Mark it visited and relax each allowed incident edge.
//  4. Rebuild the path from prev, target back to start.

package dijkstra

import (
	"fmt"
	"math"

	"github.com/katalvlaran/consentflow/core"
)

// Result holds single-source distances and predecessors, indexed by node id.
// Unreached nodes have Dist = +Inf and Prev = -1.
type Result struct {
	Source int
	Dist   []float64
	Prev   []int
}

// PathTo reconstructs the node path from Source to target.
func (r *Result) PathTo(target int) ([]int, error) {
	if target < 0 || target >= len(r.Dist) {
		return nil, fmt.Errorf("PathTo: target %d: %w", target, ErrNodeNotFound)
	}
	if math.IsInf(r.Dist[target], 1) {
		return nil, fmt.Errorf("PathTo: %d→%d: %w", r.Source, target, ErrUnreachable)
	}

	var path []int
	for cur := target; cur != -1; cur = r.Prev[cur] {
		path = append(path, cur)
		if cur == r.Source {
			break
		}
	}
	if path[len(path)-1] != r.Source {
		return nil, fmt.Errorf("PathTo: %d→%d: %w", r.Source, target, ErrUnreachable)
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}

	return path, nil
}

// ShortestPath returns the node ids of a shortest start→end path through
// edges accepted by the options' filter. start == end yields [start].
//
// Errors: ErrNilGraph, ErrNodeNotFound, ErrUnreachable.
// Complexity: O(V² + E) time, O(V) space.
func ShortestPath(g *core.Graph, start, end int, opts ...Option) ([]int, error) {
	if g == nil {
		return nil, ErrNilGraph
	}
	if !g.HasNode(end) {
		return nil, fmt.Errorf("ShortestPath: end %d: %w", end, ErrNodeNotFound)
	}
	res, err := search(g, start, end, opts)
	if err != nil {
		return nil, fmt.Errorf("ShortestPath: %w", err)
	}

	return res.PathTo(end)
}

// Distances runs a full single-source search from source.
//
// Errors: ErrNilGraph, ErrNodeNotFound.
// Complexity: O(V² + E) time, O(V) space.
func Distances(g *core.Graph, source int, opts ...Option) (*Result, error) {
	if g == nil {
		return nil, ErrNilGraph
	}
	res, err := search(g, source, -1, opts)
	if err != nil {
		return nil, fmt.Errorf("Distances: %w", err)
	}

	return res, nil
}

// search settles nodes until target (or every reachable node when target < 0).
func search(g *core.Graph, start, target int, opts []Option) (*Result, error) {
	if !g.HasNode(start) {
		return nil, fmt.Errorf("start %d: %w", start, ErrNodeNotFound)
	}
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	n := g.Order()
	res := &Result{Source: start, Dist: make([]float64, n), Prev: make([]int, n)}
	visited := make([]bool, n)
	for i := range res.Dist {
		res.Dist[i] = math.Inf(1)
		res.Prev[i] = -1
	}
	res.Dist[start] = 0

	for step := 0; step < n; step++ {
		// 1) Closest unvisited node; strict < keeps the lowest id on ties.
		cur, best := -1, math.Inf(1)
		for i := 0; i < n; i++ {
			if !visited[i] && res.Dist[i] < best {
				cur, best = i, res.Dist[i]
			}
		}
		if cur == -1 || cur == target {
			break
		}
		visited[cur] = true

		// 2) Relax allowed incident edges.
		for _, adj := range g.Adjacent(cur) {
			e := g.Edges[adj.EdgeID]
			if !o.allows(e) {
				continue
			}
			if cand := res.Dist[cur] + e.Length; cand < res.Dist[adj.To] {
				res.Dist[adj.To] = cand
				res.Prev[adj.To] = cur
			}
		}
	}

	return res, nil
}
