// Package dfs implements depth-first search (single-source and forest) on
// core.Graph.
package dfs

import (
	"fmt"

	"github.com/katalvlaran/consentflow/core"
)

// dfsWalker encapsulates state during DFS.
type dfsWalker struct {
	graph *core.Graph
	opts  DFSOptions
	res   *DFSResult
}

// DFS performs depth-first search on graph g. If opts include
// WithFullTraversal it covers all components; otherwise it starts only from
// start. Neighbors are explored in adjacency order (edge id ascending).
// Returns DFSResult or error if aborted by context or hook.
func DFS(g *core.Graph, start int, opts ...Option) (*DFSResult, error) {
	// 1. Validate input graph
	if g == nil {
		return nil, ErrGraphNil
	}

	// 2. Apply options
	dopts := DefaultOptions()
	for _, fn := range opts {
		fn(&dopts)
	}

	// 3. Single-source mode: verify start
	if !dopts.FullTraversal && !g.HasNode(start) {
		return nil, fmt.Errorf("%w: %d", ErrStartVertexNotFound, start)
	}

	// 4. Initialize result
	n := g.Order()
	res := &DFSResult{
		Order:   make([]int, 0, n),
		Depth:   make([]int, n),
		Parent:  make([]int, n),
		Visited: make([]bool, n),
	}
	for i := 0; i < n; i++ {
		res.Depth[i] = -1
		res.Parent[i] = -1
	}

	walker := &dfsWalker{graph: g, opts: dopts, res: res}

	// 5. Traverse: forest or single tree
	if dopts.FullTraversal {
		for v := 0; v < n; v++ {
			if !res.Visited[v] {
				if err := walker.traverse(v, 0); err != nil {
					return res, err
				}
			}
		}
	} else if err := walker.traverse(start, 0); err != nil {
		return res, err
	}

	// 6. Expose diagnostics
	res.SkippedEdges = walker.opts.SkippedEdges

	return res, nil
}

// traverse visits vertex id at the given depth, recursing to neighbors.
func (w *dfsWalker) traverse(id, depth int) error {
	// 1. Cancellation check
	select {
	case <-w.opts.Ctx.Done():
		return w.opts.Ctx.Err()
	default:
	}

	// 2. Depth limit
	if w.opts.MaxDepth >= 0 && depth > w.opts.MaxDepth {
		return nil
	}

	// 3. Mark visited and record depth
	w.res.Visited[id] = true
	w.res.Depth[id] = depth

	// 4. Pre-order hook
	if w.opts.OnVisit != nil {
		if err := w.opts.OnVisit(id); err != nil {
			w.res.Order = nil
			return fmt.Errorf("dfs: OnVisit hook for %d: %w", id, err)
		}
	}

	// 5. Explore each neighbor
	for _, adj := range w.graph.Adjacent(id) {
		if w.opts.FilterEdge != nil && !w.opts.FilterEdge(w.graph.Edges[adj.EdgeID]) {
			w.opts.SkippedEdges++
			continue
		}
		if w.res.Visited[adj.To] {
			continue
		}
		w.res.Parent[adj.To] = id
		if err := w.traverse(adj.To, depth+1); err != nil {
			return err
		}
		// A depth-limited child was never marked; drop its parent link.
		if !w.res.Visited[adj.To] {
			w.res.Parent[adj.To] = -1
		}
	}

	// 6. Post-order hook
	if w.opts.OnExit != nil {
		if err := w.opts.OnExit(id); err != nil {
			w.res.Order = nil
			return fmt.Errorf("dfs: OnExit hook for %d: %w", id, err)
		}
	}

	// 7. Record finish order
	w.res.Order = append(w.res.Order, id)

	return nil
}
