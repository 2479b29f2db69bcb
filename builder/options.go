// SPDX-License-Identifier: MIT
// Package: consentflow/builder
//
// options.go - functional options for Build / BuildWithConfig.
//
// Contract:
//   - Options are functional (type BuilderOption func(*builderConfig)).
//   - Option constructors validate and panic on meaningless inputs;
//     Build itself never panics.
//   - Later options override earlier ones.

package builder

import (
	"math"

	"go.uber.org/zap"
)

// BuilderOption customizes one build before it starts.
type BuilderOption func(*builderConfig)

// WithNeighbors overrides the k of the k-nearest-neighbour pass.
// Panics if k < 1.
func WithNeighbors(k int) BuilderOption {
	if k < 1 {
		panic("builder: WithNeighbors(k<1)")
	}
	return func(c *builderConfig) {
		c.neighbors = k
	}
}

// WithMaxEdgeDistance overrides the neighbour reach in pixels.
// Panics if d is not a positive finite number.
func WithMaxEdgeDistance(d float64) BuilderOption {
	if !(d > 0) || math.IsInf(d, 0) {
		panic("builder: WithMaxEdgeDistance(d<=0)")
	}
	return func(c *builderConfig) {
		c.maxEdgeDistance = d
	}
}

// WithRelayThresholds sets the cumulative odds of essential, functional and
// analytics for relay edges; the remainder is marketing.
// Panics unless 0 ≤ essential ≤ functional ≤ analytics ≤ 1.
func WithRelayThresholds(essential, functional, analytics float64) BuilderOption {
	if !(0 <= essential && essential <= functional && functional <= analytics && analytics <= 1) {
		panic("builder: WithRelayThresholds(non-monotone)")
	}
	return func(c *builderConfig) {
		c.relayThresholds = [3]float64{essential, functional, analytics}
	}
}

// WithLengthSamples sets the polyline resolution used for arc lengths.
// Panics if n < 1.
func WithLengthSamples(n int) BuilderOption {
	if n < 1 {
		panic("builder: WithLengthSamples(n<1)")
	}
	return func(c *builderConfig) {
		c.lengthSamples = n
	}
}

// WithLogger routes build diagnostics to l. Panics on nil.
func WithLogger(l *zap.Logger) BuilderOption {
	if l == nil {
		panic("builder: WithLogger(nil)")
	}
	return func(c *builderConfig) {
		c.logger = l
	}
}
