// SPDX-License-Identifier: MIT
// Package: consentflow/dfs
//
// bridges.go - critical edges by discovery time and low-link.
//
// Algorithm:
//  1. Walk every component depth-first, stamping discovery times tin[v].
//  2. low[v] = min(tin[v], tin of any back-edge target, low of tree children).
//  3. Tree edge (p, c) is a bridge iff low[c] > tin[p].
//
// The parent edge is skipped by edge id, not by node, so the check stays
// correct if two nodes were ever joined twice.

package dfs

import (
	"sort"

	"github.com/katalvlaran/consentflow/core"
)

// Bridges returns the ids, ascending, of edges whose removal would split
// their connected component. Options restrict the walk the same way DFS
// does; only FilterEdge is honored, so WithPolicy yields the critical edges
// of the policy-allowed subnetwork.
//
// Complexity: O(V + E) time, O(V) space.
func Bridges(g *core.Graph, opts ...Option) ([]int, error) {
	if g == nil {
		return nil, ErrGraphNil
	}
	o := DefaultOptions()
	for _, fn := range opts {
		fn(&o)
	}

	n := g.Order()
	b := &bridgeWalker{
		graph: g,
		allow: o.FilterEdge,
		tin:   make([]int, n),
		low:   make([]int, n),
	}
	for v := 0; v < n; v++ {
		if b.tin[v] == 0 {
			b.visit(v, -1)
		}
	}
	sort.Ints(b.out)

	return b.out, nil
}

type bridgeWalker struct {
	graph *core.Graph
	allow func(core.Edge) bool
	timer int
	tin   []int // 0 = undiscovered
	low   []int
	out   []int
}

func (b *bridgeWalker) visit(v, parentEdge int) {
	b.timer++
	b.tin[v], b.low[v] = b.timer, b.timer

	for _, adj := range b.graph.Adjacent(v) {
		if adj.EdgeID == parentEdge {
			continue
		}
		if b.allow != nil && !b.allow(b.graph.Edges[adj.EdgeID]) {
			continue
		}
		if b.tin[adj.To] != 0 {
			b.low[v] = min(b.low[v], b.tin[adj.To])
			continue
		}
		b.visit(adj.To, adj.EdgeID)
		b.low[v] = min(b.low[v], b.low[adj.To])
		if b.low[adj.To] > b.tin[v] {
			b.out = append(b.out, adj.EdgeID)
		}
	}
}
