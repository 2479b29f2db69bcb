package router

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/consentflow/core"
)

// ErrBrokenPath is returned by Segments when two consecutive path nodes are
// not joined by an edge.
var ErrBrokenPath = errors.New("router: consecutive path nodes are not adjacent")

// Segment is one edge traversal of a route, oriented From → To.
type Segment struct {
	EdgeID   int
	From     int
	To       int
	Category core.Category
	Blocked  bool
}

// Route is the ordered segment list from a source, through the core, to a
// destination.
type Route struct {
	Key                 string
	SourceID            int
	DestinationID       int
	DestinationCategory core.Category
	Segments            []Segment

	// Fallback is set when the policy-restricted search failed and the route
	// was found over every edge.
	Fallback bool
}

// RouteKey formats the stable "source-destination" key of a route.
func RouteKey(source, destination int) string {
	return fmt.Sprintf("%d-%d", source, destination)
}

// Blocked reports whether any segment is blocked.
func (r *Route) Blocked() bool {
	for _, s := range r.Segments {
		if s.Blocked {
			return true
		}
	}

	return false
}

// FirstBlocked returns the index of the first blocked segment, or -1.
func (r *Route) FirstBlocked() int {
	for i, s := range r.Segments {
		if s.Blocked {
			return i
		}
	}

	return -1
}

// Length sums the arc lengths of the route's edges in g.
func (r *Route) Length(g *core.Graph) float64 {
	var total float64
	for _, s := range r.Segments {
		total += g.Edges[s.EdgeID].Length
	}

	return total
}

// Nodes returns the node path of the route.
func (r *Route) Nodes() []int {
	if len(r.Segments) == 0 {
		return nil
	}
	out := make([]int, 0, len(r.Segments)+1)
	out = append(out, r.Segments[0].From)
	for _, s := range r.Segments {
		out = append(out, s.To)
	}

	return out
}
