// SPDX-License-Identifier: MIT
// Package: consentflow/builder
//
// config.go - resolved per-build configuration.
//
// Deterministic defaults:
//   - neighbors       = RuntimeConfig.EdgeNeighbors
//   - maxEdgeDistance = RuntimeConfig.MaxEdgeDistance
//   - relayThresholds = DefaultRelayThresholds
//   - lengthSamples   = DefaultLengthSamples
//   - logger          = zap.NewNop()

package builder

import (
	"go.uber.org/zap"

	"github.com/katalvlaran/consentflow/profile"
)

// builderConfig is the single source of truth for one build.
type builderConfig struct {
	width, height float64
	rc            profile.RuntimeConfig

	neighbors       int
	maxEdgeDistance float64
	relayThresholds [3]float64
	lengthSamples   int

	logger *zap.Logger
}

// newBuilderConfig seeds the config from rc and applies opts in order.
func newBuilderConfig(width, height float64, rc profile.RuntimeConfig, opts ...BuilderOption) builderConfig {
	cfg := builderConfig{
		width:           width,
		height:          height,
		rc:              rc,
		neighbors:       rc.EdgeNeighbors,
		maxEdgeDistance: rc.MaxEdgeDistance,
		relayThresholds: DefaultRelayThresholds,
		lengthSamples:   DefaultLengthSamples,
		logger:          zap.NewNop(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	return cfg
}
