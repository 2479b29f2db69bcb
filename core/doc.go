// Package core defines the data model of a consent-routing network:
// nodes with roles and depth layers, curved edges tagged with a traffic
// category, the tri-state consent Policy that decides which categories may
// flow, and the immutable Graph that ties them together.
//
// The Graph G = (V,E) is always:
//
//   - Undirected: each unordered endpoint pair appears at most once.
//   - Loop-free: an edge never joins a node to itself.
//   - Index-addressed: Node.ID == position in Nodes, Edge.ID == position in Edges.
//   - Anchored on exactly one RoleCore node (the policy decision point).
//
// Graphs are assembled once by NewGraph, which validates the invariants above
// and precomputes two lookups:
//
//	EdgeBetween(a, b) → Edge     // O(1), pair index
//	Adjacent(id)      → []Adjacent // O(1), per-node adjacency list
//
// Nothing mutates a Graph after construction. Hosts that need a different
// layout build a new Graph and swap the pointer.
//
// Connectivity:
//
//	DisjointSet  – array-backed union-find (path halving + union by rank)
//	Components   – number of connected components via DisjointSet, O(E·α(V))
//	Connected    – Components(g) == 1
//
// Consent:
//
//	Policy.Allows(category)
//	  granted – every category
//	  mixed   – essential, functional
//	  denied  – essential only
//
// Errors:
//
//	ErrNoCore          – no node carries RoleCore
//	ErrMultipleCores   – more than one RoleCore node
//	ErrNodeID          – Node.ID differs from its slice position
//	ErrEdgeID          – Edge.ID differs from its slice position
//	ErrEdgeEndpoint    – edge endpoint outside [0, len(Nodes))
//	ErrSelfLoop        – edge joins a node to itself
//	ErrDuplicatePair   – unordered pair already present
//	ErrBadLength       – edge length not strictly positive
//	ErrUnknownPolicy   – ParsePolicy on an unknown token
//	ErrUnknownCategory – ParseCategory on an unknown token
package core
