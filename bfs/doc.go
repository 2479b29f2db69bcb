// Package bfs provides breadth-first search over a consent network
// (core.Graph), returning hop distances, parent links and visit order.
//
// What
//
//   - Explore nodes in non-decreasing hop count from a start node.
//   - Returns a BFSResult containing:
//   - Order: visit sequence
//   - Depth: per-node hop count (-1 when unreached)
//   - Parent: per-node predecessor in the BFS tree (-1 for root/unreached)
//   - Calls an optional OnVisit hook per node (may abort with an error).
//   - Stops on context cancellation.
//   - Filters individual edges via WithFilterEdge or WithPolicy.
//   - Honors a MaxDepth limit (d>0) or explicit “no limit” (d==0).
//
// Why
//
//   - Connectivity checks over builder output (every node reached from the core).
//   - Hop-depth layering for the `graph` CLI report.
//   - Reachability under a consent policy (which destinations are reachable
//     without crossing a blocked edge).
//
// Determinism
//
//	Adjacency lists are ordered by edge id and neighbours are enqueued in
//	that order, so the visit sequence is fully reproducible.
//
// Complexity (V = |Nodes|, E = |Edges|)
//
//   - Time:   O(V + E)
//   - Memory: O(V)
//
// Errors
//
//   - ErrGraphNil             if the graph pointer is nil.
//   - ErrStartVertexNotFound  if the start id is out of range.
//   - ErrOptionViolation      if an Option is invalid (negative MaxDepth).
//   - ErrNoPath               from PathTo for unreached nodes.
//   - Wrapped user-supplied hook errors from OnVisit.
package bfs
