// SPDX-License-Identifier: MIT
// Package: consentflow/core
//
// graph.go - immutable Graph assembly and O(1) lookups.
//
// Contract:
//   - NewGraph validates ids, endpoints, lengths and the single-core rule.
//   - SourceIDs/DestinationIDs are collected in ascending id order.
//   - Adjacency lists preserve edge order (edge id ascending per node).
//
// Complexity:
//   - NewGraph: O(V + E) time and space.
//   - EdgeBetween / EdgeIndex / Adjacent / Node: O(1).

package core

import "fmt"

// Graph is an immutable consent-routing network.
// Nodes and Edges are exposed for iteration; callers must not modify them.
type Graph struct {
	Nodes []Node
	Edges []Edge

	CoreID         int
	SourceIDs      []int
	DestinationIDs []int

	pairIndex map[PairKey]int
	adjacency [][]Adjacent
}

// NewGraph validates nodes and edges and assembles a Graph with its pair
// index and adjacency lists. The slices are retained, not copied.
func NewGraph(nodes []Node, edges []Edge) (*Graph, error) {
	g := &Graph{
		Nodes:     nodes,
		Edges:     edges,
		CoreID:    -1,
		pairIndex: make(map[PairKey]int, len(edges)),
		adjacency: make([][]Adjacent, len(nodes)),
	}

	// 1) Nodes: ids must equal their position; exactly one core.
	for i := range nodes {
		n := &nodes[i]
		if n.ID != i {
			return nil, fmt.Errorf("NewGraph: node at %d has id %d: %w", i, n.ID, ErrNodeID)
		}
		switch n.Role {
		case RoleCore:
			if g.CoreID >= 0 {
				return nil, fmt.Errorf("NewGraph: nodes %d and %d: %w", g.CoreID, i, ErrMultipleCores)
			}
			g.CoreID = i
		case RoleSource:
			g.SourceIDs = append(g.SourceIDs, i)
		case RoleDestination:
			g.DestinationIDs = append(g.DestinationIDs, i)
		}
	}
	if g.CoreID < 0 {
		return nil, fmt.Errorf("NewGraph: %d nodes: %w", len(nodes), ErrNoCore)
	}

	// 2) Edges: valid endpoints, no loops, unique pairs, positive lengths.
	for i := range edges {
		e := &edges[i]
		if e.ID != i {
			return nil, fmt.Errorf("NewGraph: edge at %d has id %d: %w", i, e.ID, ErrEdgeID)
		}
		if e.A < 0 || e.A >= len(nodes) || e.B < 0 || e.B >= len(nodes) {
			return nil, fmt.Errorf("NewGraph: edge %d (%d,%d): %w", i, e.A, e.B, ErrEdgeEndpoint)
		}
		if e.A == e.B {
			return nil, fmt.Errorf("NewGraph: edge %d on node %d: %w", i, e.A, ErrSelfLoop)
		}
		if !(e.Length > 0) {
			return nil, fmt.Errorf("NewGraph: edge %d length %g: %w", i, e.Length, ErrBadLength)
		}
		key := MakePairKey(e.A, e.B)
		if prev, dup := g.pairIndex[key]; dup {
			return nil, fmt.Errorf("NewGraph: edges %d and %d share (%d,%d): %w", prev, i, key.Lo, key.Hi, ErrDuplicatePair)
		}
		g.pairIndex[key] = i
		g.adjacency[e.A] = append(g.adjacency[e.A], Adjacent{To: e.B, EdgeID: i})
		g.adjacency[e.B] = append(g.adjacency[e.B], Adjacent{To: e.A, EdgeID: i})
	}

	return g, nil
}

// Order returns |V|.
func (g *Graph) Order() int { return len(g.Nodes) }

// Size returns |E|.
func (g *Graph) Size() int { return len(g.Edges) }

// HasNode reports whether id addresses a node.
func (g *Graph) HasNode(id int) bool { return id >= 0 && id < len(g.Nodes) }

// Core returns the core node.
func (g *Graph) Core() Node { return g.Nodes[g.CoreID] }

// EdgeIndex returns the id of the edge joining a and b.
func (g *Graph) EdgeIndex(a, b int) (int, bool) {
	id, ok := g.pairIndex[MakePairKey(a, b)]
	return id, ok
}

// EdgeBetween returns the edge joining a and b.
func (g *Graph) EdgeBetween(a, b int) (Edge, bool) {
	id, ok := g.EdgeIndex(a, b)
	if !ok {
		return Edge{}, false
	}

	return g.Edges[id], true
}

// Adjacent returns the adjacency list of id, or nil for unknown ids.
// The returned slice is shared; callers must not modify it.
func (g *Graph) Adjacent(id int) []Adjacent {
	if !g.HasNode(id) {
		return nil
	}

	return g.adjacency[id]
}

// Degree returns the number of edges touching id.
func (g *Graph) Degree(id int) int { return len(g.Adjacent(id)) }
