// Package dijkstra defines the types and options of the dense shortest-path
// search used by the router.
//
// The search is the classic O(V²) formulation: no priority queue, one linear
// scan per settled vertex. At the tens-of-nodes scale of a consent network it
// beats a heap on constant factors and keeps tie-breaking fully deterministic
// (lowest node id wins among equal distances).
//
// Weights are edge arc lengths (core.Edge.Length, always > 0).
//
// Options:
//
//	– WithEdgeFilter(fn): only edges with fn(edge) == true are traversed.
//	– WithPolicy(p):      shorthand for WithEdgeFilter(p.AllowsEdge).
//
// Errors (sentinel):
//
//	– ErrNilGraph      if the graph pointer is nil.
//	– ErrNodeNotFound  if start or end is not a node id of the graph.
//	– ErrUnreachable   if end cannot be reached through allowed edges.
package dijkstra

import (
	"errors"

	"github.com/katalvlaran/consentflow/core"
)

// Sentinel errors returned by the search.
var (
	// ErrNilGraph indicates that a nil *core.Graph was passed.
	ErrNilGraph = errors.New("dijkstra: graph is nil")

	// ErrNodeNotFound indicates a start or end id outside the graph.
	ErrNodeNotFound = errors.New("dijkstra: node not found in graph")

	// ErrUnreachable indicates that no path exists under the edge filter.
	ErrUnreachable = errors.New("dijkstra: target unreachable")
)

// EdgeFilter decides whether an edge may be traversed.
type EdgeFilter func(core.Edge) bool

// Options configures one search.
//
// EdgeFilter – nil means every edge is traversable.
type Options struct {
	EdgeFilter EdgeFilter
}

// Option mutates Options before a search starts.
type Option func(*Options)

// DefaultOptions returns options that traverse every edge.
func DefaultOptions() Options {
	return Options{}
}

// WithEdgeFilter restricts traversal to edges accepted by fn.
// Panics on nil.
func WithEdgeFilter(fn EdgeFilter) Option {
	if fn == nil {
		panic("dijkstra: WithEdgeFilter(nil)")
	}
	return func(o *Options) {
		o.EdgeFilter = fn
	}
}

// WithPolicy restricts traversal to edges whose category p allows.
func WithPolicy(p core.Policy) Option {
	return WithEdgeFilter(p.AllowsEdge)
}

// allows applies the configured filter.
func (o *Options) allows(e core.Edge) bool {
	return o.EdgeFilter == nil || o.EdgeFilter(e)
}
