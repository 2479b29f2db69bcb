// Package dfs implements depth-first traversal and bridge detection on a
// consent network (core.Graph).
//
// What:
//
//   - DFS: explores as far as possible along each branch before
//     backtracking. Supports:
//   - Pre-order and post-order hooks
//   - Cancellation via context.Context
//   - Depth limiting
//   - Edge filtering, including consent-policy filtering
//   - Forest traversal over every component
//   - Bridges: lists the edges whose removal splits their component, i.e.
//     the single points of failure of the network, optionally under a
//     consent policy.
//
// Key Types & Constants:
//
//   - White, Gray, Black: visitation markers
//   - Option: functional options for DFS behavior
//   - DFSOptions: holds Context, hooks, MaxDepth, FilterEdge
//   - DFSResult: post-order, Depth, Parent and Visited, indexed by node id
//
// Complexity:
//
//   - DFS:     Time O(V+E), Memory O(V)
//   - Bridges: Time O(V+E), Memory O(V)
//
// Errors:
//
//   - ErrGraphNil             graph pointer is nil
//   - ErrStartVertexNotFound  start id not in graph
//   - context.Canceled        DFS canceled via context
//   - hook errors             propagated from OnVisit or OnExit
package dfs
