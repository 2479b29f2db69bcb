// Package builder synthesizes the consent-routing network: one policy core,
// sources along the left margin, destinations along the right margin and a
// field of relays, wired into a single connected component of gently curved
// edges.
//
// Pipeline (one seeded rng.Source drives every random draw, in this order):
//
//  1. Core at (0.63w, 0.5h), layer 2.
//  2. Sources at x∈[0.08w,0.24w], destinations at x∈[0.76w,0.94w], spread
//     vertically with jitter; destinations take categories
//     essential, functional, analytics, marketing in rotation.
//  3. Relays up to RuntimeConfig.NodeCount at x∈[0.2w,0.84w], y∈[0.1h,0.9h].
//  4. k-nearest neighbours inside MaxEdgeDistance (unordered pairs deduplicated).
//  5. Anchors: each source and destination joins the core and its two nearest
//     neighbours that are not of the opposite role.
//  6. Repair: union-find over the proposed pairs; while more than one
//     component remains, bridge the globally closest cross-component pair.
//  7. Geometry: control point on the perpendicular bisector, arc length,
//     layer, category, dotted flag, pulse phase, core proximity.
//  8. core.NewGraph builds the pair index and adjacency lists.
//
// Guarantees:
//
//   - Connectivity: the returned graph always has exactly one component.
//   - Determinism: equal (width, height, config, seed, options) produce
//     bit-identical graphs on every platform.
//   - Degenerate viewports are clamped to 1×1 instead of producing NaN.
//
// Options (functional, validated eagerly; nonsense panics):
//
//	WithNeighbors(k)              override RuntimeConfig.EdgeNeighbors
//	WithMaxEdgeDistance(d)        override RuntimeConfig.MaxEdgeDistance
//	WithRelayThresholds(e,f,a)    cumulative category odds for relay edges
//	WithLengthSamples(n)          polyline resolution for arc length
//	WithLogger(l)                 zap logger for build diagnostics
//
// Complexity: O(n²) for the neighbour scan and each repair round; n stays in
// the tens, so a full build costs well under a millisecond.
package builder
