// Package consentflow renders consent-aware network animations: a seeded
// network of traffic sources, a policy core and data destinations, with
// signals flowing along routes that the visitor's consent policy either
// allows or blocks.
//
// Layout:
//
//	rng/          seeded PRNG and seed derivation
//	geom/         vectors and quadratic-curve edge geometry
//	core/         Node, Edge, Graph, Policy and union-find connectivity
//	profile/      device class and density tiers → runtime sizing
//	builder/      deterministic network synthesis with connectivity repair
//	dijkstra/     dense shortest paths under an edge filter
//	bfs/, dfs/    hop-depth traversals and critical-edge detection
//	router/       source→core→destination routes with blocked segments
//	signal/       moving pulses and the capped signal pool
//	scheduler/    frame and timer sources (real-time loop, manual clock)
//	paint/        painter abstraction, backdrop, recorder; raster/ draws PNGs
//	engine/       the animation instance: lifecycle, events, frame loop
//	metrics/      Prometheus instruments
//	config/       YAML/TOML configuration with hot reload
//	tui/          terminal host for the engine
//	cmd/consentflow   CLI: run, snapshot, routes, graph
//
// Quick start:
//
//	go run ./cmd/consentflow routes --consent denied
//	go run ./cmd/consentflow snapshot --out frame.png --all-policies
package consentflow
