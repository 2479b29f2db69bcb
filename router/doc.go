// Package router turns a consent network into per-(source, destination)
// routes that signals travel along.
//
// Every route goes source → core → destination. Both legs are first
// searched with dijkstra restricted to the edges the consent policy allows;
// if either leg fails, both are searched again over every edge so that each
// source–destination pair still yields a route. Segments crossing an edge the
// policy does not allow are flagged Blocked; signals fade out on them.
//
// Determinism:
//
//	Routes are emitted sources-major in ascending id order, destinations
//	minor, and dijkstra breaks distance ties on the lowest node id.
//
// Complexity:
//
//	BuildRoutes runs 2 or 4 O(V²) searches per pair: O(S·D·V²) overall.
package router
