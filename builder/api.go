// SPDX-License-Identifier: MIT
// Package: consentflow/builder
//
// api.go - public entry points.
//
// Contract:
//   - Build resolves a RuntimeConfig from (width, isMobile, density) and
//     delegates to BuildWithConfig.
//   - BuildWithConfig runs the full pipeline with a single rng.Source seeded
//     from seed; equal inputs yield bit-identical graphs.
//   - Neither function panics; validation failures return sentinels.

package builder

import (
	"math"

	"go.uber.org/zap"

	"github.com/katalvlaran/consentflow/core"
	"github.com/katalvlaran/consentflow/profile"
	"github.com/katalvlaran/consentflow/rng"
)

// Build synthesizes a connected network for a width×height viewport.
// The density tier and device class pick the node budget and wiring reach
// (see profile.For). seed feeds the random source directly; hosts that key
// layouts by viewport derive it with NetworkSeed.
//
// Errors:
//   - ErrInvalidDensity if density is not low/medium/high.
//   - ErrConstructFailed if the assembled graph fails validation.
//
// Complexity: O(n²) time, O(n + e) space.
func Build(width, height float64, isMobile bool, density profile.Density, seed int64, opts ...BuilderOption) (*core.Graph, error) {
	if !density.Valid() {
		return nil, builderErrorf(MethodBuild, "density %d: %w", uint8(density), ErrInvalidDensity)
	}
	w, _ := clampViewport(width, height)

	g, err := BuildWithConfig(width, height, profile.For(w, isMobile, density), seed, opts...)
	if err != nil {
		return nil, builderErrorf(MethodBuild, "%w", err)
	}

	return g, nil
}

// BuildWithConfig synthesizes a network from an explicit RuntimeConfig.
//
// Errors:
//   - ErrBadRuntimeConfig if rc has no sources, no destinations or a
//     negative node budget.
//   - ErrConstructFailed if the assembled graph fails validation.
func BuildWithConfig(width, height float64, rc profile.RuntimeConfig, seed int64, opts ...BuilderOption) (*core.Graph, error) {
	if rc.SourceCount < 1 || rc.DestinationCount < 1 || rc.NodeCount < 0 {
		return nil, builderErrorf(MethodBuildWithConfig, "sources=%d destinations=%d nodes=%d: %w",
			rc.SourceCount, rc.DestinationCount, rc.NodeCount, ErrBadRuntimeConfig)
	}
	w, h := clampViewport(width, height)
	cfg := newBuilderConfig(w, h, rc, opts...)
	src := rng.New(seed)

	// 1-3) Place core, sources, destinations, relays.
	nodes := placeNodes(cfg, src)

	// 4-5) Propose pairs: k-nearest plus anchors.
	pairs := newPairSet(len(nodes))
	linkNearest(nodes, pairs, cfg.neighbors, cfg.maxEdgeDistance)
	linkAnchors(nodes, pairs)

	// 6) Bridge components until one remains.
	bridges := repairConnectivity(nodes, pairs)

	// 7) Shape each edge.
	edges := shapeEdges(nodes, pairs.list, cfg, src)

	// 8) Index.
	g, err := core.NewGraph(nodes, edges)
	if err != nil {
		return nil, builderErrorf(MethodBuildWithConfig, "%v: %w", err, ErrConstructFailed)
	}

	cfg.logger.Debug("network built",
		zap.Int64("seed", seed),
		zap.Float64("width", w),
		zap.Float64("height", h),
		zap.Int("nodes", g.Order()),
		zap.Int("edges", g.Size()),
		zap.Int("bridges", bridges),
	)

	return g, nil
}

// NetworkSeed keys a base seed by viewport and device class, so that each
// size gets a stable but distinct arrangement.
func NetworkSeed(seed int64, width, height int, isMobile bool) int64 {
	device := int64(11)
	if isMobile {
		device = 3
	}

	return rng.Derive(seed, int64(width)*31, int64(height)*19, device)
}

// clampViewport floors both dimensions at 1 and maps NaN to 1.
func clampViewport(width, height float64) (float64, float64) {
	fix := func(v float64) float64 {
		if math.IsNaN(v) || v < 1 {
			return 1
		}
		return v
	}

	return fix(width), fix(height)
}
