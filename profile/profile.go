// SPDX-License-Identifier: MIT
// Package: consentflow/profile
//
// Package profile turns pure viewport and device inputs into the
// RuntimeConfig every other stage consumes: node budget, neighbour count,
// edge reach, signal rate and population cap.
//
// A RuntimeConfig is resolved once per resize and threaded through the
// builder, the animator and the render loop; nothing re-queries the
// environment ad hoc.
package profile

import (
	"errors"
	"fmt"
	"math"
)

// ErrUnknownDensity indicates a density token other than low, medium or high.
var ErrUnknownDensity = errors.New("profile: unknown density")

// Density is the coarse sizing knob for node and signal populations.
type Density uint8

const (
	// DensityMedium is the default tier.
	DensityMedium Density = iota
	// DensityLow scales populations by 0.8.
	DensityLow
	// DensityHigh scales populations by 1.24.
	DensityHigh
)

// DefaultDensity is used when hosts do not choose a tier.
const DefaultDensity = DensityMedium

// MobileMaxWidth is the widest viewport treated as a mobile device.
const MobileMaxWidth = 768

// Valid reports whether d is one of the three declared tiers.
func (d Density) Valid() bool { return d <= DensityHigh }

// Scale returns the population multiplier for d.
func (d Density) Scale() float64 {
	switch d {
	case DensityLow:
		return 0.8
	case DensityHigh:
		return 1.24
	default:
		return 1
	}
}

// Densities lists the tiers from sparsest to densest.
var Densities = [...]Density{DensityLow, DensityMedium, DensityHigh}

// Denser returns the next tier up, or d itself at the top.
func (d Density) Denser() Density { return d.step(1) }

// Sparser returns the next tier down, or d itself at the bottom.
func (d Density) Sparser() Density { return d.step(-1) }

func (d Density) step(by int) Density {
	for i, t := range Densities {
		if t == d {
			return Densities[max(0, min(len(Densities)-1, i+by))]
		}
	}
	return d
}

// String returns the lowercase tier token.
func (d Density) String() string {
	switch d {
	case DensityLow:
		return "low"
	case DensityMedium:
		return "medium"
	case DensityHigh:
		return "high"
	default:
		return fmt.Sprintf("density(%d)", uint8(d))
	}
}

// ParseDensity maps "low", "medium" or "high" onto a Density.
func ParseDensity(s string) (Density, error) {
	switch s {
	case "low":
		return DensityLow, nil
	case "medium":
		return DensityMedium, nil
	case "high":
		return DensityHigh, nil
	default:
		return DefaultDensity, fmt.Errorf("%w: %q", ErrUnknownDensity, s)
	}
}

// Environment is everything the host knows about the viewport and device.
type Environment struct {
	Width, Height float64

	// PointerFine is true for mouse-like primary input.
	PointerFine bool
	// ReducedMotion mirrors the user's reduced-motion preference.
	ReducedMotion bool
	// Interactive is the host's opt-in for parallax and click bursts.
	Interactive bool
}

// IsMobile reports whether the viewport is narrow enough for the mobile budget.
func (e Environment) IsMobile() bool { return e.Width <= MobileMaxWidth }

// CanInteract reports whether pointer parallax and bursts are enabled.
func (e Environment) CanInteract() bool {
	return e.Interactive && e.PointerFine && !e.ReducedMotion && !e.IsMobile()
}

// RuntimeConfig holds the per-resize sizing derived from an Environment
// and a Density.
type RuntimeConfig struct {
	NodeCount        int
	SourceCount      int
	DestinationCount int
	EdgeNeighbors    int
	MaxEdgeDistance  float64

	// SignalRate is the expected number of spawns per second.
	SignalRate float64
	MaxSignals int
	BurstCount int
	Stars      int

	IsMobile    bool
	CanInteract bool
	Density     Density
}

// For returns the RuntimeConfig for a viewport width, device class and tier.
// Invalid tiers fall back to DefaultDensity.
func For(width float64, isMobile bool, density Density) RuntimeConfig {
	if !density.Valid() {
		density = DefaultDensity
	}
	scale := density.Scale()

	rc := RuntimeConfig{
		NodeCount:        int(math.Round(58 * scale)),
		SourceCount:      6,
		DestinationCount: 7,
		EdgeNeighbors:    3,
		MaxEdgeDistance:  math.Min(width*0.55, 360),
		SignalRate:       1.95 * scale,
		MaxSignals:       int(math.Round(82 * scale)),
		BurstCount:       9,
		Stars:            52,
		Density:          density,
	}
	if isMobile {
		rc.NodeCount = int(math.Round(34 * scale))
		rc.SourceCount = 4
		rc.DestinationCount = 5
		rc.EdgeNeighbors = 2
		rc.MaxEdgeDistance = math.Min(width*0.5, 360)
		rc.SignalRate = 1.05 * scale
		rc.MaxSignals = int(math.Round(34 * scale))
		rc.BurstCount = 4
		rc.Stars = 22
		rc.IsMobile = true
	}

	return rc
}

// Resolve is For applied to an Environment; it also fills CanInteract.
func Resolve(env Environment, density Density) RuntimeConfig {
	rc := For(env.Width, env.IsMobile(), density)
	rc.CanInteract = env.CanInteract()

	return rc
}

// BackdropNodeCount is the ambient variant's node budget per tier.
func BackdropNodeCount(isMobile bool, density Density) int {
	switch density {
	case DensityLow:
		if isMobile {
			return 30
		}
		return 44
	case DensityHigh:
		if isMobile {
			return 44
		}
		return 78
	default:
		if isMobile {
			return 38
		}
		return 62
	}
}

// BackdropMaxSignals is the ambient variant's population cap.
func BackdropMaxSignals(isMobile bool) int {
	if isMobile {
		return 18
	}

	return 34
}
